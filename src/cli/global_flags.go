package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"vault-raft-backup/src/safety"
)

// addGlobalFlags adds persistent safety and logging flags to the root command.
func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool("dry-run", false, "Show planned actions without making changes")
	cmd.PersistentFlags().BoolP("yes", "y", false, "Assume 'yes' to prompts and run non-interactively")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}

// getSafetyOptions reads global flags into a safety.Options struct.
func getSafetyOptions(cmd *cobra.Command) safety.Options {
	dry, _ := cmd.Root().PersistentFlags().GetBool("dry-run")
	yes, _ := cmd.Root().PersistentFlags().GetBool("yes")
	return safety.Options{DryRun: dry, Yes: yes}
}

// newLogger builds the console slog logger from the --log-level flag.
func newLogger(cmd *cobra.Command, stderr io.Writer) *slog.Logger {
	levelStr, _ := cmd.Root().PersistentFlags().GetString("log-level")
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}
