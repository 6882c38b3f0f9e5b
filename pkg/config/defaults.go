package config

import "time"

// Default values for configuration.
const (
	DefaultFlushPolicy    = "at_date_change"
	DefaultMedian         = "standard"
	DefaultFormat         = "text"
	DefaultAddr           = ":5000"
	DefaultUploadDir      = "./uploads"
	DefaultMaxUploadBytes = 1 << 20
	DefaultReadTimeout    = 15 * time.Second
	DefaultWriteTimeout   = 15 * time.Second
	DefaultLogLevel       = "info"
	DefaultLogMaxSizeMB   = 10
	DefaultLogMaxBackups  = 5
	DefaultWebhookTimeout = 10 * time.Second
)

// EnvPrefix prefixes every environment override, e.g. TIMELOG_SERVER_ADDR.
const EnvPrefix = "TIMELOG"

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			FlushPolicy: DefaultFlushPolicy,
			Median:      DefaultMedian,
		},
		Output: OutputConfig{
			Format: DefaultFormat,
		},
		Server: ServerConfig{
			Addr:              DefaultAddr,
			UploadDir:         DefaultUploadDir,
			AllowedExtensions: []string{"txt"},
			MaxUploadBytes:    DefaultMaxUploadBytes,
			SaveUploads:       true,
			ReadTimeout:       DefaultReadTimeout,
			WriteTimeout:      DefaultWriteTimeout,
		},
		Logging: LoggingConfig{
			Level:      DefaultLogLevel,
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxBackups: DefaultLogMaxBackups,
		},
	}
}
