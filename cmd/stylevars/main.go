package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	style "github.com/goliatone/go-style"
	"github.com/goliatone/go-style/pkg/activity"
	"github.com/goliatone/go-style/pkg/tree"
	"github.com/goliatone/go-style/schema/openapi"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	logLevel := &slog.LevelVar{}
	var logs *LoggerResult

	viper.SetEnvPrefix("STYLEVARS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "stylevars",
		Short: "Inspect custom variable resolution over a view tree",
		Long: `stylevars loads a view tree from YAML, builds a style per node and
resolves custom variables the way a running UI would: global entries win over
scoped ones at the same node, and lookups fall back to ancestors.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if viper.GetBool(FlagVerbose) {
				logLevel.Set(slog.LevelDebug)
			}
			logs = SetupLogger(viper.GetString(FlagLogFile), logLevel)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logs != nil {
				_ = logs.Close()
			}
		},
	}

	rootCmd.PersistentFlags().Bool(FlagVerbose, false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().String(FlagLogFile, "", "Write JSON logs to a rotated file instead of stderr")
	rootCmd.PersistentFlags().String(FlagTree, "", "YAML tree file")
	rootCmd.PersistentFlags().String(FlagEngine, EngineExpr, "calc() engine: expr, cel or js")
	rootCmd.PersistentFlags().Int(FlagMaxDepth, style.DefaultMaxDepth, "Maximum ancestor depth for variable lookups")
	rootCmd.PersistentFlags().Bool(FlagJSON, false, "Output as JSON")

	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = viper.BindPFlag(f.Name, f)
	})

	logger := func() *slog.Logger {
		if logs == nil {
			return slog.Default()
		}
		return logs.Logger
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stylevars %s\n", version)
		},
	}

	resolveCmd := &cobra.Command{
		Use:   "resolve NAME",
		Short: "Resolve a custom variable on a node and show the lookup trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTree(cmd.Context(), logger())
			if err != nil {
				return err
			}
			nodeName := viper.GetString(FlagNode)
			node, err := t.Node(nodeName)
			if err != nil {
				return err
			}
			value, found, trace := node.Style().ResolveWithTrace(args[0])
			logger().Debug("variable resolved", "node", nodeName, "name", args[0], "found", found, "probes", len(trace.Steps))
			return renderResolve(cmd.OutOrStdout(), resolveOutput{
				Node:  nodeName,
				Name:  args[0],
				Value: value,
				Found: found,
				Trace: trace,
			}, viper.GetBool(FlagJSON))
		},
	}
	resolveCmd.Flags().String(FlagNode, "", "Node to resolve on")
	_ = resolveCmd.MarkFlagRequired(FlagNode)

	evalCmd := &cobra.Command{
		Use:   "eval VALUE",
		Short: "Substitute var() references and reduce calc() in VALUE on a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTree(cmd.Context(), logger())
			if err != nil {
				return err
			}
			nodeName := viper.GetString(FlagNode)
			node, err := t.Node(nodeName)
			if err != nil {
				return err
			}
			output, err := node.Style().Resolve(args[0])
			if err != nil {
				return err
			}
			return renderEval(cmd.OutOrStdout(), evalOutput{Node: nodeName, Input: args[0], Output: output}, viper.GetBool(FlagJSON))
		},
	}
	evalCmd.Flags().String(FlagNode, "", "Node to evaluate on")
	_ = evalCmd.MarkFlagRequired(FlagNode)

	applyCmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply every node's property declarations and list the changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTree(cmd.Context(), logger())
			if err != nil {
				return err
			}
			return renderChanges(cmd.OutOrStdout(), t.Names(), t.Changes, viper.GetBool(FlagJSON))
		},
	}

	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the property schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []style.Option
			switch format := viper.GetString(FlagFormat); format {
			case string(style.SchemaFormatDescriptors):
			case string(style.SchemaFormatOpenAPI):
				opts = append(opts, openapi.Option())
			default:
				return fmt.Errorf("unknown schema format %q", format)
			}
			doc, err := tree.NewNode("schema", opts...).Style().Schema()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), doc.Document)
		},
	}
	schemaCmd.Flags().String(FlagFormat, string(style.SchemaFormatDescriptors), "Schema format: descriptors or openapi")

	// Subcommand flags share names; bind only the running command's.
	for _, cmd := range []*cobra.Command{resolveCmd, evalCmd, schemaCmd} {
		cmd.PreRun = func(cmd *cobra.Command, args []string) {
			cmd.Flags().VisitAll(func(f *pflag.Flag) {
				_ = viper.BindPFlag(f.Name, f)
			})
		}
	}

	rootCmd.AddCommand(versionCmd, resolveCmd, evalCmd, applyCmd, schemaCmd)
	return rootCmd
}

func loadTree(ctx context.Context, logger *slog.Logger) (*Tree, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	spec, err := LoadTreeSpec(viper.GetString(FlagTree))
	if err != nil {
		return nil, err
	}
	opts, err := styleOptions(viper.GetString(FlagEngine), viper.GetInt(FlagMaxDepth), logger)
	if err != nil {
		return nil, err
	}
	t, err := BuildTree(ctx, spec, activity.Hooks{activityLogHook(logger)}, opts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("tree loaded", "nodes", len(t.Names()), "roots", len(t.Roots), "themes", t.Themes)
	return t, nil
}

// styleOptions configures every node style of a tree to share one program
// cache and function registry.
func styleOptions(engine string, maxDepth int, logger *slog.Logger) ([]style.Option, error) {
	cache := style.NewMemoryProgramCache()
	registry := style.CSSMathFunctions()

	var evaluator style.Evaluator
	switch engine {
	case EngineExpr, "":
		evaluator = style.NewExprEvaluator(style.ExprWithProgramCache(cache), style.ExprWithFunctionRegistry(registry))
	case EngineCEL:
		evaluator = style.NewCELEvaluator(style.CELWithProgramCache(cache), style.CELWithFunctionRegistry(registry))
	case EngineJS:
		evaluator = style.NewJSEvaluator(style.JSWithProgramCache(cache), style.JSWithFunctionRegistry(registry))
		if evaluator == nil {
			return nil, fmt.Errorf("engine %q requires a build with -tags js_eval", engine)
		}
	default:
		return nil, fmt.Errorf("unknown engine %q", engine)
	}

	return []style.Option{
		style.WithEvaluator(evaluator),
		style.WithProgramCache(cache),
		style.WithFunctionRegistry(registry),
		style.WithMaxDepth(maxDepth),
		style.WithTracer(style.SlogTracer(logger)),
		style.WithEvaluatorLogger(style.SlogEvaluatorLogger(logger)),
	}, nil
}

func activityLogHook(logger *slog.Logger) activity.ActivityHook {
	return activity.HookFunc(func(ctx context.Context, event activity.Event) error {
		logger.DebugContext(ctx, event.Summary(),
			"object_type", event.ObjectType,
			"channel", event.Channel,
			"metadata", event.Metadata,
		)
		return nil
	})
}
