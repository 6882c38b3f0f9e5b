package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Console: &buf, NoColor: true})

	log.Info().Msg("hidden")
	log.Warn().Int("line", 4).Msg("line skipped")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Error("info message written at warn level")
	}
	if !strings.Contains(output, "line skipped") || !strings.Contains(output, "line=4") {
		t.Errorf("Output = %q, want warn message with field", output)
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timelog.log")
	log := New(Config{Level: "info", File: path, MaxSizeMB: 1, MaxBackups: 1})

	log.Info().Str("file", "week.txt").Msg("parsed")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `"file":"week.txt"`) {
		t.Errorf("log file = %q, want JSON event", data)
	}
}

func TestNew_Discard(t *testing.T) {
	log := New(Config{})
	log.Error().Msg("nowhere")
}
