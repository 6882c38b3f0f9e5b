package webhook

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ccollicutt/timelog/pkg/config"
	"github.com/ccollicutt/timelog/pkg/output"
)

// ShouldFire determines if a webhook fires for a report with or without skipped lines.
func ShouldFire(trigger config.WebhookTrigger, hasIssues bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	default:
		return hasIssues
	}
}

// Dispatch sends report to every webhook whose trigger matches and returns
// the number of successful deliveries. Failures are logged, never returned.
func (c *Client) Dispatch(ctx context.Context, hooks []config.WebhookConfig, report *output.Report, log zerolog.Logger) int {
	sent := 0
	for _, wh := range hooks {
		if !ShouldFire(wh.Trigger, report.HasIssues()) {
			continue
		}

		resp := c.Send(ctx, report, SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			sent++
			log.Info().
				Str("webhook", name).
				Str("delivery", resp.DeliveryID).
				Int("status", resp.StatusCode).
				Dur("duration", resp.Duration).
				Msg("webhook sent")
		} else {
			log.Warn().
				Str("webhook", name).
				Err(resp.Error).
				Msg("webhook failed")
		}
	}
	return sent
}
