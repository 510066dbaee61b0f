package main

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerResult holds the logger and the file it writes to, if any.
type LoggerResult struct {
	Logger  *slog.Logger
	LogFile io.WriteCloser
}

// Close closes the log file if it was opened.
func (r *LoggerResult) Close() error {
	if r.LogFile != nil {
		return r.LogFile.Close()
	}
	return nil
}

// SetupLogger returns a JSON logger. With an empty path it writes to stderr;
// otherwise to a lumberjack-rotated file at path.
func SetupLogger(path string, level slog.Leveler) *LoggerResult {
	if path == "" {
		return &LoggerResult{Logger: SetupLoggerWithWriter(os.Stderr, level)}
	}
	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
	}
	return &LoggerResult{
		Logger:  SetupLoggerWithWriter(writer, level),
		LogFile: writer,
	}
}

// SetupLoggerWithWriter creates a JSON logger that writes to w.
func SetupLoggerWithWriter(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
