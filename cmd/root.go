// Package cmd implements the hypergraph command line.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/TFMV/hypergraph/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var version = "0.3.0"

var (
	configPath string
	envFiles   []string
	logLevel   string
	logFile    string

	cfg     *config.Config
	logSink io.WriteCloser
)

// Status colors
var (
	Brand  = color.New(color.FgHiYellow, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

var rootCmd = &cobra.Command{
	Use:   "hypergraph",
	Short: "Random graphs on the hyperbolic plane",
	Long: Brand.Sprint("hypergraph") + ": generate, drag and relax random graphs on the hyperbolic plane\n" +
		Subtle.Sprint("Nodes live on the hyperboloid and are drawn in its Klein disk projection"),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lookup, err := config.Environment(envFiles...)
		if err != nil {
			return err
		}
		loaded, err := config.Load(configPath, lookup)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.Log.Level = logLevel
			if err := config.Validate(loaded); err != nil {
				return err
			}
		}
		cfg = loaded
		return setupLogging(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logSink != nil {
			logSink.Close()
			logSink = nil
		}
	},
}

func init() {
	rootCmd.SetVersionTemplate("hypergraph {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a TOML or YAML config file")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "Dotenv files read for HYPERGRAPH_* overrides")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(
		windowCmd(),
		tuiCmd(),
		renderCmd(),
		serveCmd(),
		configCmd(),
	)
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", Bad.Sprint("hypergraph:"), err)
	}
	return err
}

// setupLogging installs the default slog logger. The tui discards logs unless
// a log file is given, since stderr shares the terminal.
func setupLogging(cmd *cobra.Command) error {
	var w io.Writer = os.Stderr
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		logSink = f
		w = f
	case cmd.Name() == "tui":
		w = io.Discard
	}
	slog.SetDefault(newLogger(w, cfg.Log.Level, cfg.Log.Format))
	return nil
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
