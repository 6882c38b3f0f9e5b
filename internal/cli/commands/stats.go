package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/timelog/pkg/config"
	"github.com/ccollicutt/timelog/pkg/output"
	"github.com/ccollicutt/timelog/pkg/parser"
	"github.com/ccollicutt/timelog/pkg/stats"
	"github.com/ccollicutt/timelog/pkg/webhook"
)

// StatsOptions holds command-line options for the stats command.
type StatsOptions struct {
	Output      string
	FlushPolicy string
	Median      string
	Verbose     bool
	Quiet       bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(g *GlobalOptions) *cobra.Command {
	opts := &StatsOptions{}

	cmd := &cobra.Command{
		Use:   "stats <file>...",
		Short: "Summarize time logs",
		Long: `Parse one or more time logs and print their statistics.

Arguments may be glob patterns. Each file is reported separately.

Reports:
  - Total time spent and days worked
  - Calendar days elapsed between the first and last date
  - Mean and median time per working day
  - The longest working session

Exit codes:
  0 - Every line was understood
  1 - Some lines were skipped
  2 - Configuration or runtime error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args, g, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|json|html), defaults to the configured format")
	cmd.Flags().StringVar(&opts.FlushPolicy, "flush-policy", "", "End-of-input handling (at_date_change|always)")
	cmd.Flags().StringVar(&opts.Median, "median", "", "Median computation (standard|legacy)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "List skipped lines and run details")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary line only")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", "on_skipped", "When to fire webhook (on_skipped|always|never)")

	return cmd
}

func runStats(cmd *cobra.Command, args []string, g *GlobalOptions, opts *StatsOptions) error {
	ctx, cfg, log, err := g.setup(cmd)
	if err != nil {
		return err
	}

	policy := cfg.Parser.ParsedFlushPolicy()
	if opts.FlushPolicy != "" {
		if policy, err = parser.ParseFlushPolicy(opts.FlushPolicy); err != nil {
			return err
		}
	}

	median := cfg.Parser.ParsedMedian()
	if opts.Median != "" {
		if median, err = stats.ParseMedianMode(opts.Median); err != nil {
			return err
		}
	}

	format := cfg.Output.Format
	if opts.Output != "" {
		format = opts.Output
	}
	formatter, err := output.New(format, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	webhooks, err := collectWebhooks(cfg, opts)
	if err != nil {
		return err
	}

	files, err := parser.ExpandGlobs(args)
	if err != nil {
		return fmt.Errorf("expanding file patterns: %w", err)
	}

	p := parser.New(parser.WithFlushPolicy(policy))
	client := webhook.NewClient()

	for _, file := range files {
		report, err := processFile(ctx, p, file, median, log)
		if err != nil {
			return err
		}

		if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("formatting output: %w", err)
		}

		// Webhook failures are logged but never fail the command.
		client.Dispatch(ctx, webhooks, report, log)

		if report.HasIssues() {
			ExitCode = 1
		}
	}

	return nil
}

// processFile reads, parses and summarizes a single time log.
func processFile(ctx context.Context, p *parser.Parser, path string, median stats.MedianMode, log zerolog.Logger) (*output.Report, error) {
	start := time.Now()

	lines, err := parser.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	result, err := p.Parse(lines)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for _, le := range result.Skipped {
		log.Warn().Str("file", path).Int("line", le.Line).Err(le.Err).Msg("line skipped")
	}

	s, err := stats.Compute(result.Records, result.TotalMinutes, path, stats.WithMedianMode(median))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Debug().
		Str("file", path).
		Int("records", len(result.Records)).
		Int("total_minutes", result.TotalMinutes).
		Msg("parsed time log")

	return output.NewReport(result, s, output.Metadata{
		Source:      path,
		FlushPolicy: p.FlushPolicy(),
		MedianMode:  median,
		ParsedAt:    start,
		Duration:    time.Since(start),
	}), nil
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *StatsOptions) ([]config.WebhookConfig, error) {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		switch trigger {
		case "":
			trigger = config.WebhookTriggerOnSkipped
		case config.WebhookTriggerOnSkipped, config.WebhookTriggerAlways, config.WebhookTriggerNever:
		default:
			return nil, fmt.Errorf("invalid webhook trigger %q (must be on_skipped, always, or never)", opts.WebhookTrigger)
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks, nil
}
