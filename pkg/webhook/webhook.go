// Package webhook sends time log reports to webhook endpoints.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ccollicutt/timelog/pkg/output"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 10 * time.Second

// Client sends reports to webhook endpoints.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new webhook client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{},
	}
}

// SendOptions configures a webhook request.
type SendOptions struct {
	URL     string
	Token   string        // Bearer token (optional)
	Timeout time.Duration // Request timeout (uses DefaultTimeout if zero)
}

// Event types sent in the X-Timelog-Event header.
const (
	EventParsed  = "timelog.parsed"
	EventSkipped = "timelog.skipped_lines"
)

// Event is the JSON body of every webhook delivery.
type Event struct {
	// ID identifies the delivery and is repeated in X-Timelog-Delivery.
	ID string `json:"id"`

	// Type is EventSkipped when the parser skipped lines, EventParsed otherwise.
	Type string `json:"type"`

	// Source is the file or upload name the report describes.
	Source string `json:"source"`

	// Skipped counts the lines the parser could not use.
	Skipped int `json:"skipped"`

	SentAt time.Time      `json:"sent_at"`
	Report *output.Report `json:"report"`
}

// NewEvent wraps report in a delivery envelope with a fresh id.
func NewEvent(report *output.Report) Event {
	typ := EventParsed
	if report.HasIssues() {
		typ = EventSkipped
	}
	return Event{
		ID:      uuid.NewString(),
		Type:    typ,
		Source:  report.Metadata.Source,
		Skipped: len(report.Skipped),
		SentAt:  time.Now().UTC(),
		Report:  report,
	}
}

// Response contains the result of a webhook request.
type Response struct {
	DeliveryID string
	StatusCode int
	Body       string
	Duration   time.Duration
	Error      error
}

// Success returns true if the webhook was sent successfully (2xx status).
func (r *Response) Success() bool {
	return r.Error == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Send posts report, wrapped in an Event, to a webhook endpoint. Failures are
// reported in the returned Response rather than as an error.
func (c *Client) Send(ctx context.Context, report *output.Report, opts SendOptions) *Response {
	start := time.Now()
	event := NewEvent(report)
	resp := &Response{DeliveryID: event.ID}
	fail := func(err error) *Response {
		resp.Error = err
		resp.Duration = time.Since(start)
		return resp
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fail(fmt.Errorf("failed to marshal event: %w", err))
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, opts.URL, bytes.NewReader(payload))
	if err != nil {
		return fail(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "timelog-webhook")
	req.Header.Set("X-Timelog-Event", event.Type)
	req.Header.Set("X-Timelog-Delivery", event.ID)
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(fmt.Errorf("request failed: %w", err))
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, 1024*1024))
	if err != nil {
		return fail(fmt.Errorf("failed to read response: %w", err))
	}

	resp.StatusCode = httpResp.StatusCode
	resp.Body = string(body)
	resp.Duration = time.Since(start)

	if resp.StatusCode >= 400 {
		resp.Error = fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return resp
}
