package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/himanishpuri/AcousticAlign/pkg/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	DBPath     string
	TempDir    string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the acousticalign CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "acousticalign",
		Short: "Align two recordings of the same event",
		Long: `acousticalign estimates the time offset between two recordings of the same
event from their loudness envelopes and writes both back out aligned to a
common timeline.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			log := logger.GetLogger()
			log.SetOutput(cmd.ErrOrStderr())
			if opts.Verbose {
				log.SetLevel(logger.DEBUG)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "path to the alignment history database")
	cmd.PersistentFlags().StringVar(&opts.TempDir, "temp", "", "directory for temporary conversion files")

	cmd.AddCommand(NewAlignCommand(opts))
	cmd.AddCommand(NewShiftCommand(opts))
	cmd.AddCommand(NewInfoCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// Execute runs the command line in args and returns the process exit code.
// Errors already reported by a command arrive as *ExitError; anything else
// (unknown flags, wrong argument counts) is printed here.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(stderr, "Error: %v\nRun '%s --help' for usage.\n", err, cmd.CommandPath())
	return ExitCommandError
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
