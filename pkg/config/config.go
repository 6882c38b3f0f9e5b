package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/timelog/pkg/parser"
	"github.com/ccollicutt/timelog/pkg/stats"
)

// Load builds a configuration from defaults, the YAML file at path (if any),
// a .env file in the working directory and TIMELOG_* environment variables,
// in increasing order of precedence.
func Load(_ context.Context, path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// A missing .env is not an error.
	_ = godotenv.Load()

	if err := cfg.applyEnvironmentOverrides(); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// envKeys are the configuration keys that may be overridden from the
// environment. Dots become underscores: server.addr is TIMELOG_SERVER_ADDR.
var envKeys = []string{
	"parser.flush_policy",
	"parser.median",
	"output.format",
	"server.addr",
	"server.upload_dir",
	"server.allowed_extensions",
	"server.max_upload_bytes",
	"server.save_uploads",
	"logging.level",
	"logging.file",
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return err
		}
	}

	setString := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}

	setString("parser.flush_policy", &c.Parser.FlushPolicy)
	setString("parser.median", &c.Parser.Median)
	setString("output.format", &c.Output.Format)
	setString("server.addr", &c.Server.Addr)
	setString("server.upload_dir", &c.Server.UploadDir)
	setString("logging.level", &c.Logging.Level)
	setString("logging.file", &c.Logging.File)

	if v.IsSet("server.allowed_extensions") {
		c.Server.AllowedExtensions = strings.Split(v.GetString("server.allowed_extensions"), ",")
	}
	if v.IsSet("server.max_upload_bytes") {
		c.Server.MaxUploadBytes = v.GetInt64("server.max_upload_bytes")
	}
	if v.IsSet("server.save_uploads") {
		c.Server.SaveUploads = v.GetBool("server.save_uploads")
	}

	return nil
}

// Validate checks a configuration for errors and normalizes its values.
func Validate(cfg *Config) error {
	policy, err := parser.ParseFlushPolicy(cfg.Parser.FlushPolicy)
	if err != nil {
		return fmt.Errorf("parser: %w", err)
	}
	cfg.Parser.flushPolicy = policy

	median, err := stats.ParseMedianMode(cfg.Parser.Median)
	if err != nil {
		return fmt.Errorf("parser: %w", err)
	}
	cfg.Parser.medianMode = median

	switch cfg.Output.Format {
	case "":
		cfg.Output.Format = DefaultFormat
	case "text", "json", "html":
	default:
		return fmt.Errorf("output: invalid format %q (must be text, json or html)", cfg.Output.Format)
	}

	if err := validateServer(&cfg.Server); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	if err := validateLogging(&cfg.Logging); err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

func validateServer(s *ServerConfig) error {
	if s.Addr == "" {
		return errors.New("addr is required")
	}
	if s.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive, got %d", s.MaxUploadBytes)
	}
	if s.SaveUploads && s.UploadDir == "" {
		return errors.New("upload_dir is required when save_uploads is set")
	}

	exts := make([]string, 0, len(s.AllowedExtensions))
	for _, ext := range s.AllowedExtensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	if len(exts) == 0 {
		return errors.New("allowed_extensions: at least one extension is required")
	}
	s.AllowedExtensions = exts

	if s.ReadTimeout <= 0 {
		s.ReadTimeout = DefaultReadTimeout
	}
	if s.WriteTimeout <= 0 {
		s.WriteTimeout = DefaultWriteTimeout
	}
	return nil
}

func validateLogging(l *LoggingConfig) error {
	switch strings.ToLower(l.Level) {
	case "":
		l.Level = DefaultLogLevel
	case "debug", "info", "warn", "warning", "error":
		l.Level = strings.ToLower(l.Level)
	default:
		return fmt.Errorf("invalid level %q (must be debug, info, warn or error)", l.Level)
	}
	if l.MaxSizeMB <= 0 {
		l.MaxSizeMB = DefaultLogMaxSizeMB
	}
	if l.MaxBackups <= 0 {
		l.MaxBackups = DefaultLogMaxBackups
	}
	return nil
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("url must have a host")
	}

	wh.Token = expandEnvVar(wh.Token)

	switch wh.Trigger {
	case "":
		wh.Trigger = WebhookTriggerOnSkipped
	case WebhookTriggerOnSkipped, WebhookTriggerAlways, WebhookTriggerNever:
	default:
		return fmt.Errorf("invalid trigger %q (must be on_skipped, always, or never)", wh.Trigger)
	}

	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

// expandEnvVar expands a token written as ${VAR} or $VAR.
func expandEnvVar(s string) string {
	switch {
	case strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}"):
		return os.Getenv(s[2 : len(s)-1])
	case strings.HasPrefix(s, "$"):
		return os.Getenv(s[1:])
	default:
		return s
	}
}
