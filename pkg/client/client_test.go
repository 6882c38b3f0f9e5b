package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ccollicutt/timelog/pkg/server"
)

func TestParse(t *testing.T) {
	srv := httptest.NewServer(server.New(server.Options{MaxUploadBytes: 1 << 20}, zerolog.Nop()).Handler())
	defer srv.Close()

	c := New(srv.URL + "/")
	resp, err := c.Parse(context.Background(), "week.txt", []string{
		"time log:",
		"1/2/23: 9:00am 5:00pm client work",
		"1/3/23: 9:00am 1:00pm review",
		"not a line 9:00am",
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(resp.Output) == 0 || resp.Output[0] != "Statistics for week.txt:" {
		t.Errorf("Output = %q", resp.Output)
	}
	if len(resp.Skipped) != 1 || resp.Skipped[0].Line != 4 {
		t.Errorf("Skipped = %+v, want line 4", resp.Skipped)
	}
}

func TestParse_APIError(t *testing.T) {
	srv := httptest.NewServer(server.New(server.Options{MaxUploadBytes: 1 << 20}, zerolog.Nop()).Handler())
	defer srv.Close()

	_, err := New(srv.URL).Parse(context.Background(), "bad.txt", []string{"hello"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("StatusCode = %d, want 422", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Message, "not a time log") {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestParse_PlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Parse(context.Background(), "a.txt", []string{"time log:"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Message != "upstream down" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "upstream down")
	}
}

func TestParse_RequestBody(t *testing.T) {
	var got server.ParseRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/parse_timelog" || r.Method != http.MethodPost {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"output":["ok"],"skipped":[]}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Parse(context.Background(), "a.txt", []string{"time log:", "x"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got.Filename != "a.txt" || len(got.Timelog) != 2 {
		t.Errorf("request body = %+v", got)
	}
	if len(resp.Output) != 1 || resp.Output[0] != "ok" {
		t.Errorf("Output = %q", resp.Output)
	}
}

func TestParse_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := New(srv.URL, WithTimeout(20*time.Millisecond)).Parse(context.Background(), "a.txt", []string{"time log:"})
	if err == nil {
		t.Error("expected timeout error")
	}
}
