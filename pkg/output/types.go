// Package output renders time log statistics for terminals, HTML pages and JSON clients.
package output

import (
	"time"

	"github.com/ccollicutt/timelog/pkg/parser"
	"github.com/ccollicutt/timelog/pkg/stats"
)

// Report is the complete result of processing one time log.
type Report struct {
	// Lines are the formatted display lines.
	Lines []string `json:"output"`

	// Stats are the computed statistics.
	Stats *stats.Stats `json:"stats"`

	// Skipped lists the lines the parser could not use.
	Skipped []*parser.LineError `json:"skipped"`

	// Metadata describes the run.
	Metadata Metadata `json:"metadata"`
}

// Metadata provides context about a parse run.
type Metadata struct {
	// Source is the path or upload name the log was read from.
	Source string `json:"source"`

	// LinesRead counts input lines including the header.
	LinesRead int `json:"lines_read"`

	// FlushPolicy is the parser's end-of-input policy.
	FlushPolicy parser.FlushPolicy `json:"flush_policy"`

	// MedianMode is the median computation used.
	MedianMode stats.MedianMode `json:"median_mode"`

	// ParsedAt is when the log was processed.
	ParsedAt time.Time `json:"parsed_at"`

	// Duration is how long processing took.
	Duration time.Duration `json:"duration"`
}

// NewReport assembles a Report from a parse result and its statistics.
func NewReport(result *parser.Result, s *stats.Stats, meta Metadata) *Report {
	meta.LinesRead = result.LinesRead
	skipped := result.Skipped
	if skipped == nil {
		skipped = []*parser.LineError{}
	}
	return &Report{
		Lines:    Lines(s),
		Stats:    s,
		Skipped:  skipped,
		Metadata: meta,
	}
}

// HasIssues returns true if any line was skipped.
func (r *Report) HasIssues() bool {
	return len(r.Skipped) > 0
}
