package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/timelog/pkg/parser"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(g *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check time logs without computing statistics",
		Long: `Validate one or more time logs without computing statistics.

Checks:
  - The "time log:" header on the first line
  - Every line matches an accepted shape
  - Dates and clock times are well formed

Exit codes:
  0 - Every file is a clean time log
  1 - A file is not a time log or has skipped lines
  2 - Configuration or runtime error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, g)
		},
	}
}

func runValidate(cmd *cobra.Command, args []string, g *GlobalOptions) error {
	ctx, cfg, _, err := g.setup(cmd)
	if err != nil {
		return err
	}

	files, err := parser.ExpandGlobs(args)
	if err != nil {
		return fmt.Errorf("expanding file patterns: %w", err)
	}

	out := cmd.OutOrStdout()
	p := parser.New(parser.WithFlushPolicy(cfg.Parser.ParsedFlushPolicy()))

	for _, file := range files {
		lines, err := parser.ReadFile(ctx, file)
		if err != nil {
			return err
		}

		result, err := p.Parse(lines)
		if errors.Is(err, parser.ErrFormat) {
			fmt.Fprintf(out, "%s: invalid: %v\n", file, err)
			ExitCode = 1
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		if len(result.Skipped) == 0 {
			fmt.Fprintf(out, "%s: ok (%d lines, %d records)\n", file, result.LinesRead, len(result.Records))
			continue
		}

		ExitCode = 1
		fmt.Fprintf(out, "%s: %d of %d lines skipped\n", file, len(result.Skipped), result.LinesRead)
		for _, le := range result.Skipped {
			fmt.Fprintf(out, "  line %d: %v\n", le.Line, le.Err)
			fmt.Fprintf(out, "    %s\n", le.Text)
		}
	}

	return nil
}
