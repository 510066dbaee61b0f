package main

// Flag names for Viper binding
const (
	// Global flags
	FlagVerbose  = "verbose"
	FlagLogFile  = "log-file"
	FlagTree     = "tree"
	FlagEngine   = "engine"
	FlagMaxDepth = "max-depth"

	// Lookup flags
	FlagNode = "node"

	// Output format flags
	FlagJSON   = "json"
	FlagFormat = "format"
)

// Evaluator engine names accepted by --engine.
const (
	EngineExpr = "expr"
	EngineCEL  = "cel"
	EngineJS   = "js"
)

// Log rotation defaults for --log-file.
const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
	logMaxAgeDays = 28
)
