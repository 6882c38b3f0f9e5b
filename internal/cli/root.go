// Package cli provides the command-line interface for timelog.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/timelog/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	commands.ExitCode = 0

	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	g := &commands.GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "timelog",
		Short: "Summarize personal time logs",
		Long: `timelog turns plain-text work logs into time statistics.

A time log starts with the line "time log:" followed by entries such as:

  1/2/23: 9:00am - 12:30pm client work
  1:15pm - 5:00pm review
  notes carried into the day's comment

It reports:
  - Total time spent and days worked
  - Calendar days elapsed
  - Mean and median time per working day
  - The longest working session

Configuration is read from --config (YAML), a .env file and TIMELOG_*
environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&g.ConfigPath, "config", "c", "", "Path to YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&g.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().BoolVar(&g.NoColor, "no-color", false, "Disable colored log output")

	// Add subcommands
	rootCmd.AddCommand(commands.NewStatsCommand(g))
	rootCmd.AddCommand(commands.NewValidateCommand(g))
	rootCmd.AddCommand(commands.NewInspectCommand(g))
	rootCmd.AddCommand(commands.NewServeCommand(g))
	rootCmd.AddCommand(commands.NewSubmitCommand(g))
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
