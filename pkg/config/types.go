// Package config provides configuration loading and validation for timelog.
package config

import (
	"time"

	"github.com/ccollicutt/timelog/pkg/parser"
	"github.com/ccollicutt/timelog/pkg/stats"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	Parser   ParserConfig    `yaml:"parser"`
	Output   OutputConfig    `yaml:"output"`
	Server   ServerConfig    `yaml:"server"`
	Logging  LoggingConfig   `yaml:"logging"`
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// ParserConfig selects parser and statistics behavior.
type ParserConfig struct {
	// FlushPolicy is at_date_change (default) or always.
	FlushPolicy string `yaml:"flush_policy"`

	// Median is standard (default) or legacy.
	Median string `yaml:"median"`

	// Parsed values (populated during validation).
	flushPolicy parser.FlushPolicy
	medianMode  stats.MedianMode
}

// ParsedFlushPolicy returns the validated flush policy.
func (p *ParserConfig) ParsedFlushPolicy() parser.FlushPolicy {
	return p.flushPolicy
}

// ParsedMedian returns the validated median mode.
func (p *ParserConfig) ParsedMedian() stats.MedianMode {
	return p.medianMode
}

// OutputConfig selects the default output format.
type OutputConfig struct {
	// Format is text, json or html.
	Format string `yaml:"format"`
}

// ServerConfig configures the HTTP upload service.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":5000".
	Addr string `yaml:"addr"`

	// UploadDir is where uploaded logs are saved when SaveUploads is set.
	UploadDir string `yaml:"upload_dir"`

	// AllowedExtensions lists accepted upload file extensions without the dot.
	AllowedExtensions []string `yaml:"allowed_extensions"`

	// MaxUploadBytes bounds the size of an uploaded log.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	// SaveUploads keeps a copy of every accepted upload in UploadDir.
	SaveUploads bool `yaml:"save_uploads"`

	// ReadTimeout and WriteTimeout bound a single request.
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// LoggingConfig configures the application logger.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`

	// File enables a rotating log file at this path.
	File string `yaml:"file"`

	// MaxSizeMB and MaxBackups control log file rotation.
	MaxSizeMB  int `yaml:"max_size_mb"`
	MaxBackups int `yaml:"max_backups"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnSkipped fires only when the parser skipped lines (default).
	WebhookTriggerOnSkipped WebhookTrigger = "on_skipped"
	// WebhookTriggerAlways fires after every processed log.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint that receives reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token. ${VAR} and $VAR are expanded.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires. Defaults to on_skipped.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout. Defaults to 10s.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
