package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/timelog/pkg/parser"
)

// InspectOptions holds options for the inspect command
type InspectOptions struct {
	Output string
}

// LineReport describes how a single line was read.
type LineReport struct {
	Line    int      `json:"line"`
	Shape   string   `json:"shape"`
	Date    string   `json:"date,omitempty"`
	Times   []string `json:"times,omitempty"`
	Minutes int      `json:"minutes,omitempty"`
	Comment string   `json:"comment,omitempty"`
	Problem string   `json:"problem,omitempty"`
}

// NewInspectCommand creates the inspect command
func NewInspectCommand(g *GlobalOptions) *cobra.Command {
	opts := &InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show how each line of a time log is read",
		Long: `Show how each line of a time log is tokenized.

Every line is listed with its shape (header, comment, time_pair,
time_pair_comment, dated or invalid), its date, its clock times, the
minutes they span and any remaining comment text.

Example:
  timelog inspect week.txt
  timelog inspect -o json week.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], g, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")

	return cmd
}

func runInspect(cmd *cobra.Command, path string, g *GlobalOptions, opts *InspectOptions) error {
	ctx, _, _, err := g.setup(cmd)
	if err != nil {
		return err
	}

	lines, err := parser.ReadFile(ctx, path)
	if err != nil {
		return err
	}

	reports := InspectLines(lines)

	switch opts.Output {
	case "text":
		return printInspection(cmd.OutOrStdout(), reports)
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(reports)
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

// InspectLines classifies every line of a time log. The first line is
// reported as the header or flagged when it is not one.
func InspectLines(lines []string) []LineReport {
	reports := make([]LineReport, 0, len(lines))

	for i, line := range lines {
		r := LineReport{Line: i + 1}

		if i == 0 {
			if strings.ToLower(strings.TrimSpace(line)) == parser.Header {
				r.Shape = "header"
			} else {
				r.Shape = string(parser.ShapeInvalid)
				r.Problem = parser.ErrFormat.Error()
			}
			reports = append(reports, r)
			continue
		}

		pl := parser.TokenizeLine(line)
		r.Shape = string(pl.Shape())
		r.Date = pl.Date
		r.Comment = pl.Comment
		for _, t := range pl.Times {
			r.Times = append(r.Times, t.Value)
		}

		switch {
		case pl.Shape() == parser.ShapeInvalid:
			r.Problem = parser.ErrLineShape.Error()
		case len(pl.Times) == 2:
			minutes, err := parser.TimeDelta(pl.Times[0].Value, pl.Times[1].Value)
			if err != nil {
				r.Problem = err.Error()
			} else {
				r.Minutes = minutes
			}
		}

		reports = append(reports, r)
	}

	return reports
}

func printInspection(w io.Writer, reports []LineReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tSHAPE\tDATE\tTIMES\tMINUTES\tCOMMENT")

	for _, r := range reports {
		minutes := ""
		if len(r.Times) == 2 && r.Problem == "" {
			minutes = fmt.Sprint(r.Minutes)
		}
		comment := r.Comment
		if r.Problem != "" {
			comment = "! " + r.Problem
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.Line, r.Shape, r.Date, strings.Join(r.Times, " "), minutes, comment)
	}

	return tw.Flush()
}
