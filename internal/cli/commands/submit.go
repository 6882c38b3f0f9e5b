package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/timelog/pkg/client"
	"github.com/ccollicutt/timelog/pkg/parser"
)

// SubmitOptions holds options for the submit command.
type SubmitOptions struct {
	URL     string
	Timeout time.Duration
	Verbose bool
}

// NewSubmitCommand creates the submit command.
func NewSubmitCommand(g *GlobalOptions) *cobra.Command {
	opts := &SubmitOptions{}

	cmd := &cobra.Command{
		Use:   "submit <file>...",
		Short: "Send time logs to a running server",
		Long: `Send one or more time logs to a timelog server's JSON endpoint and
print the statistics it returns.

Exit codes:
  0 - Every line was understood
  1 - Some lines were skipped
  2 - Request or server error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(cmd, args, g, opts)
		},
	}

	cmd.Flags().StringVar(&opts.URL, "url", "http://localhost:5000", "Server base URL")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", client.DefaultTimeout, "Request timeout")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "List skipped lines")

	return cmd
}

func runSubmit(cmd *cobra.Command, args []string, g *GlobalOptions, opts *SubmitOptions) error {
	ctx, _, log, err := g.setup(cmd)
	if err != nil {
		return err
	}

	files, err := parser.ExpandGlobs(args)
	if err != nil {
		return fmt.Errorf("expanding file patterns: %w", err)
	}

	c := client.New(opts.URL, client.WithTimeout(opts.Timeout))
	out := cmd.OutOrStdout()

	for _, file := range files {
		lines, err := parser.ReadFile(ctx, file)
		if err != nil {
			return err
		}

		resp, err := c.Parse(ctx, filepath.Base(file), lines)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		fmt.Fprintln(out, strings.Join(resp.Output, "\n"))

		if len(resp.Skipped) > 0 {
			ExitCode = 1
			log.Warn().Str("file", file).Int("skipped", len(resp.Skipped)).Msg("server skipped lines")
			if opts.Verbose {
				fmt.Fprintf(out, "Skipped lines: %d\n", len(resp.Skipped))
				for _, le := range resp.Skipped {
					fmt.Fprintf(out, "  %d: %q (%v)\n", le.Line, le.Text, le.Err)
				}
			}
		}
	}

	return nil
}
