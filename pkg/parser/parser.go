package parser

import (
	"fmt"
	"strings"
)

// FlushPolicy controls whether the group still open at end of input becomes a record.
type FlushPolicy string

const (
	// FlushAtDateChange emits a group only when a later line introduces a
	// different date. The last group of a log is left out of the records
	// although its minutes count toward the total. This is the default.
	FlushAtDateChange FlushPolicy = "at_date_change"

	// FlushAlways also emits the group still open at end of input.
	FlushAlways FlushPolicy = "always"
)

// ParseFlushPolicy converts a configuration string into a FlushPolicy.
func ParseFlushPolicy(s string) (FlushPolicy, error) {
	switch p := FlushPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return FlushAtDateChange, nil
	case FlushAtDateChange, FlushAlways:
		return p, nil
	default:
		return "", fmt.Errorf("invalid flush policy %q (must be %s or %s)", s, FlushAtDateChange, FlushAlways)
	}
}

// Result is the outcome of parsing one time log.
type Result struct {
	// Records are the finished day groups in order of first appearance.
	Records []TimeRecord `json:"records"`

	// TotalMinutes sums every interval read, including those of a group that
	// was never emitted.
	TotalMinutes int `json:"total_minutes"`

	// Skipped lists lines that could not be used.
	Skipped []*LineError `json:"skipped,omitempty"`

	// LinesRead counts input lines including the header.
	LinesRead int `json:"lines_read"`
}

// Parser converts time log lines into records. A Parser holds only options,
// so one value may be shared between goroutines.
type Parser struct {
	flush FlushPolicy
}

// Option configures a Parser.
type Option func(*Parser)

// WithFlushPolicy sets how the final open group is handled.
func WithFlushPolicy(p FlushPolicy) Option {
	return func(ps *Parser) {
		if p != "" {
			ps.flush = p
		}
	}
}

// New creates a Parser with the given options.
func New(opts ...Option) *Parser {
	p := &Parser{flush: FlushAtDateChange}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FlushPolicy returns the parser's end-of-input policy.
func (p *Parser) FlushPolicy() FlushPolicy {
	return p.flush
}

// Parse parses lines with the default options.
func Parse(lines []string) (*Result, error) {
	return New().Parse(lines)
}

// Parse folds lines into time records. It fails only when the first line is
// not the time log header; bad lines after it are skipped and reported in
// Result.Skipped.
func (p *Parser) Parse(lines []string) (*Result, error) {
	if len(lines) == 0 {
		return nil, &FormatError{}
	}
	if strings.ToLower(strings.TrimSpace(lines[0])) != Header {
		return nil, &FormatError{Got: strings.TrimRight(lines[0], "\r\n")}
	}

	st := &state{}
	for i, line := range lines[1:] {
		if err := st.apply(TokenizeLine(line)); err != nil {
			st.result.Skipped = append(st.result.Skipped, &LineError{
				Line: i + 2,
				Text: strings.TrimRight(line, "\r\n"),
				Err:  err,
			})
		}
	}

	if p.flush == FlushAlways && st.date != "" {
		st.flush()
	}

	st.result.LinesRead = len(lines)
	if st.result.Records == nil {
		st.result.Records = []TimeRecord{}
	}
	return &st.result, nil
}

// state is the running accumulator for a single Parse call.
type state struct {
	date     string
	minutes  int
	comments []string
	result   Result
}

// apply folds one tokenized line into the state. A line that fails leaves the
// state untouched.
func (s *state) apply(pl ParsedLine) error {
	shape := pl.Shape()
	if shape == ShapeInvalid {
		return fmt.Errorf("%w: date=%t times=%d", ErrLineShape, pl.HasDate, len(pl.Times))
	}
	if shape == ShapeComment {
		if pl.Comment != "" {
			s.comments = append(s.comments, pl.Comment)
		}
		return nil
	}

	delta, err := TimeDelta(pl.Times[0].Value, pl.Times[1].Value)
	if err != nil {
		return err
	}

	switch shape {
	case ShapeTimePair:
		s.comments = nil
	case ShapeDated:
		if s.date == "" {
			s.date = pl.Date
		} else if pl.Date != s.date {
			s.flush()
			s.date = pl.Date
		}
	}

	s.minutes += delta
	s.result.TotalMinutes += delta
	if pl.Comment != "" {
		s.comments = append(s.comments, pl.Comment)
	}
	return nil
}

// flush emits the current group as a record and resets the group accumulators.
func (s *state) flush() {
	indent := "\n" + strings.Repeat(" ", len(s.date)+2)
	s.result.Records = append(s.result.Records, TimeRecord{
		Date:    s.date,
		Minutes: s.minutes,
		Comment: strings.Join(s.comments, indent),
	})
	s.minutes = 0
	s.comments = nil
}
