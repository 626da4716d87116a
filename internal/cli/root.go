// Package cli implements the medq command line interface: translating
// questions, validating statements, seeding the sample database, and
// inspecting the schema.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  Config
	Logger  zerolog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the medq CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "medq",
		Short: "medq - natural language queries over a medical dataset",
		Long: "Translates plain-English questions into read-only SQL over a small\n" +
			"medical SQLite database, with a safety validator gating everything\n" +
			"that reaches the database.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			opts.Config = LoadConfig()
			opts.Logger = newLogger(opts)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewAskCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewSchemaCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}

// newLogger builds the CLI logger on stderr. --verbose forces debug
// regardless of the configured level.
func newLogger(opts *RootOptions) zerolog.Logger {
	level, err := zerolog.ParseLevel(opts.Config.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
