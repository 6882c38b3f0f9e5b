package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/timelog/pkg/config"
	"github.com/ccollicutt/timelog/pkg/logging"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// GlobalOptions holds the persistent flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	LogLevel   string
	NoColor    bool
}

// setup loads configuration and builds the command's logger. A --log-level
// flag takes precedence over the configured level.
func (g *GlobalOptions) setup(cmd *cobra.Command) (context.Context, *config.Config, zerolog.Logger, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, g.ConfigPath)
	if err != nil {
		return nil, nil, zerolog.Nop(), fmt.Errorf("loading config: %w", err)
	}

	level := cfg.Logging.Level
	if g.LogLevel != "" {
		level = g.LogLevel
	}

	log := logging.New(logging.Config{
		Level:      level,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		Console:    cmd.ErrOrStderr(),
		NoColor:    g.NoColor,
	})

	return ctx, cfg, log, nil
}
