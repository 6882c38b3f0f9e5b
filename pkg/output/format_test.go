package output

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ccollicutt/timelog/pkg/parser"
)

func createTestReport() *Report {
	result := &parser.Result{
		LinesRead: 5,
		Skipped: []*parser.LineError{
			{Line: 4, Text: "9:00am forgot", Err: parser.ErrLineShape},
		},
	}
	return NewReport(result, createTestStats(), Metadata{
		Source:      "testdata/week.txt",
		FlushPolicy: parser.FlushAtDateChange,
		ParsedAt:    time.Date(2023, 1, 5, 10, 0, 0, 0, time.UTC),
		Duration:    3 * time.Millisecond,
	})
}

func TestNewReport(t *testing.T) {
	report := createTestReport()
	if !report.HasIssues() {
		t.Error("HasIssues() = false, want true")
	}
	if report.Metadata.LinesRead != 5 {
		t.Errorf("LinesRead = %d, want 5", report.Metadata.LinesRead)
	}
	if len(report.Lines) != 10 {
		t.Errorf("len(Lines) = %d, want 10", len(report.Lines))
	}
}

func TestNewReport_NoSkipped(t *testing.T) {
	report := NewReport(&parser.Result{}, createTestStats(), Metadata{})
	if report.HasIssues() {
		t.Error("HasIssues() = true, want false")
	}
	if report.Skipped == nil {
		t.Error("Skipped is nil, want empty slice")
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"text", "json", "html"} {
		f, err := New(name, FormatOptions{})
		if err != nil {
			t.Fatalf("New(%q) error = %v", name, err)
		}
		if f.Name() != name {
			t.Errorf("Name() = %q, want %q", f.Name(), name)
		}
	}

	if _, err := New("yaml", FormatOptions{}); err == nil {
		t.Error("New(\"yaml\") expected error")
	}
}

func TestTextFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextFormatter(FormatOptions{}).Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	if !strings.HasPrefix(output, "Statistics for week.txt:\n") {
		t.Errorf("Output missing header: %q", output)
	}
	if !strings.Contains(output, "Total days elapsed: 1\n\nMean time") {
		t.Error("Output missing blank line after elapsed days")
	}
	if strings.Contains(output, "Skipped lines") {
		t.Error("non-verbose output lists skipped lines")
	}
}

func TestTextFormatter_Format_Verbose(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextFormatter(FormatOptions{Verbose: true}).Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Skipped lines: 1") {
		t.Error("Output missing skipped count")
	}
	if !strings.Contains(output, `4: "9:00am forgot"`) {
		t.Error("Output missing skipped line")
	}
	if !strings.Contains(output, "Flush policy: at_date_change") {
		t.Error("Output missing flush policy")
	}
}

func TestTextFormatter_Format_Quiet(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextFormatter(FormatOptions{Quiet: true}).Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "week.txt: 12 hours, 5 minutes over 2 working day(s), 1 line(s) skipped\n"
	if buf.String() != want {
		t.Errorf("Format() = %q, want %q", buf.String(), want)
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONFormatter(FormatOptions{}).Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed map[string][]string
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(parsed) != 1 {
		t.Errorf("keys = %v, want only output", parsed)
	}
	if len(parsed["output"]) != 10 {
		t.Errorf("len(output) = %d, want 10", len(parsed["output"]))
	}
}

func TestJSONFormatter_Format_Verbose(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONFormatter(FormatOptions{Verbose: true}).Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed struct {
		Output []string `json:"output"`
		Stats  struct {
			TotalMinutes int `json:"total_minutes"`
		} `json:"stats"`
		Skipped []struct {
			Line   int    `json:"line"`
			Reason string `json:"reason"`
		} `json:"skipped"`
	}
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if parsed.Stats.TotalMinutes != 725 {
		t.Errorf("TotalMinutes = %d, want 725", parsed.Stats.TotalMinutes)
	}
	if len(parsed.Skipped) != 1 || parsed.Skipped[0].Line != 4 {
		t.Fatalf("Skipped = %+v", parsed.Skipped)
	}
	if parsed.Skipped[0].Reason != parser.ErrLineShape.Error() {
		t.Errorf("Reason = %q", parsed.Skipped[0].Reason)
	}
}

func TestJSONFormatter_Format_Quiet(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONFormatter(FormatOptions{Quiet: true}).Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed struct {
		Filename string `json:"filename"`
	}
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if parsed.Filename != "week.txt" {
		t.Errorf("Filename = %q, want week.txt", parsed.Filename)
	}
}

func TestHTMLFormatter_Format(t *testing.T) {
	report := createTestReport()
	report.Stats.Longest.Comment = "<script>"
	report.Lines = Lines(report.Stats)

	var buf bytes.Buffer
	if err := NewHTMLFormatter(FormatOptions{Verbose: true}).Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "<pre>Statistics for week.txt:</pre>") {
		t.Error("Output missing header line")
	}
	if strings.Contains(output, "<script>") {
		t.Error("Output contains unescaped comment")
	}
	if !strings.Contains(output, "Skipped lines") {
		t.Error("verbose output missing skipped lines")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestTextFormatter_Format_WriteError(t *testing.T) {
	err := NewTextFormatter(FormatOptions{}).Format(context.Background(), createTestReport(), failingWriter{})
	if err == nil {
		t.Error("Format() expected error from writer")
	}
}
