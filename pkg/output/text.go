package output

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	s := report.Stats
	_, err := fmt.Fprintf(w, "%s: %d hours, %d minutes over %d working day(s), %d line(s) skipped\n",
		s.Filename, s.TotalMinutes/60, s.TotalMinutes%60, s.WorkingDays(), len(report.Skipped))
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	if _, err := fmt.Fprintln(w, strings.Join(report.Lines, "\n")); err != nil {
		return err
	}

	if !f.opts.Verbose {
		return nil
	}

	if len(report.Skipped) > 0 {
		fmt.Fprintf(w, "Skipped lines: %d\n", len(report.Skipped))
		for _, le := range report.Skipped {
			fmt.Fprintf(w, "  %d: %q (%v)\n", le.Line, le.Text, le.Err)
		}
	}
	fmt.Fprintf(w, "Lines read: %d\n", report.Metadata.LinesRead)
	fmt.Fprintf(w, "Flush policy: %s\n", report.Metadata.FlushPolicy)
	fmt.Fprintf(w, "Median mode: %s\n", report.Metadata.MedianMode)
	fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e3))

	return nil
}
