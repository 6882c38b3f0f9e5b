package parser

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Header is the required first line of every time log, compared case-insensitively.
const Header = "time log:"

var (
	// ErrFormat indicates the input does not begin with the time log header.
	ErrFormat = errors.New("not a time log")

	// ErrLineShape indicates a line whose fields match none of the accepted patterns.
	ErrLineShape = errors.New("unrecognized line shape")

	// ErrTimeToken indicates an unparsable or out-of-range time token.
	ErrTimeToken = errors.New("invalid time token")

	// ErrDateToken indicates an unparsable or out-of-range date.
	ErrDateToken = errors.New("invalid date")
)

// FormatError rejects a whole input whose first line is not the header.
type FormatError struct {
	// Got is the first line as read, or empty for empty input.
	Got string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%v: first line is %q, want %q", ErrFormat, e.Got, Header)
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// LineError describes a single line that was skipped during parsing.
type LineError struct {
	// Line is the 1-based line number in the input, header included.
	Line int `json:"line"`

	// Text is the raw line content.
	Text string `json:"text"`

	// Err is the underlying cause.
	Err error `json:"-"`
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// MarshalJSON renders the cause as a string so skipped lines survive JSON output.
func (e *LineError) MarshalJSON() ([]byte, error) {
	reason := ""
	if e.Err != nil {
		reason = e.Err.Error()
	}
	return json.Marshal(struct {
		Line   int    `json:"line"`
		Text   string `json:"text"`
		Reason string `json:"reason"`
	}{e.Line, e.Text, reason})
}

// UnmarshalJSON restores a skipped line decoded from a server response. The
// cause comes back as a plain error carrying the same message.
func (e *LineError) UnmarshalJSON(data []byte) error {
	var v struct {
		Line   int    `json:"line"`
		Text   string `json:"text"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	e.Line, e.Text = v.Line, v.Text
	if v.Reason != "" {
		e.Err = errors.New(v.Reason)
	}
	return nil
}
