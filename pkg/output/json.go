package output

import (
	"context"
	"encoding/json"
	"io"
)

// JSONFormatter formats reports as JSON. By default only the display lines
// are written, as {"output": [...]}.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format renders the report as JSON.
func (f *JSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	switch {
	case f.opts.Quiet:
		return encoder.Encode(report.Stats)
	case f.opts.Verbose:
		return encoder.Encode(report)
	default:
		return encoder.Encode(OutputResponse{Output: report.Lines})
	}
}

// OutputResponse is the minimal JSON document carrying display lines.
type OutputResponse struct {
	Output []string `json:"output"`
}
