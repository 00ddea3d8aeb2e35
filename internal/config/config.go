package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the complete application configuration
type Config struct {
	Report  ReportConfig  `mapstructure:"report"`
	Workday WorkdayConfig `mapstructure:"workday"`
	Storage StorageConfig `mapstructure:"storage"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ReportConfig defines where the timesheet is written
type ReportConfig struct {
	OutputPath string `mapstructure:"output_path"`
}

// WorkdayConfig defines the thresholds used to classify a day
type WorkdayConfig struct {
	Expected  string `mapstructure:"expected"`  // Time a regular day should last
	Undertime string `mapstructure:"undertime"` // Days shorter than this are flagged ut
	Overtime  string `mapstructure:"overtime"`  // Days longer than this are flagged ot
}

// StorageConfig defines the optional report archive
type StorageConfig struct {
	Type  string      `mapstructure:"type"` // "none" or "redis"
	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig defines Redis connection settings
type RedisConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	Password      string `mapstructure:"password"`
	DB            int    `mapstructure:"db"`
	PoolSize      int    `mapstructure:"pool_size"`
	MinIdleConns  int    `mapstructure:"min_idle_conns"`
	DialTimeout   string `mapstructure:"dial_timeout"`
	ReadTimeout   string `mapstructure:"read_timeout"`
	WriteTimeout  string `mapstructure:"write_timeout"`
	KeyPrefix     string `mapstructure:"key_prefix"`
	RetentionDays int    `mapstructure:"retention_days"` // 0 keeps everything
}

// MetricsConfig defines where run metrics are exported
type MetricsConfig struct {
	TextfilePath   string `mapstructure:"textfile_path"`   // node_exporter textfile collector target
	PushgatewayURL string `mapstructure:"pushgateway_url"` // Prometheus Pushgateway base URL
	Job            string `mapstructure:"job"`
	PushTimeout    string `mapstructure:"push_timeout"`
}

// LoggingConfig defines logging behavior
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "text", "json" or "journal"
}

// Load loads configuration from an optional file and environment variables.
// An empty configPath uses defaults and the environment only.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	SetDefaults(v)

	// Configure viper
	v.SetEnvPrefix("GATESHEET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal config
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	_ = v.Unmarshal(&cfg)

	return &cfg
}

// SetDefaults sets default configuration values
func SetDefaults(v *viper.Viper) {
	// Report defaults
	v.SetDefault("report.output_path", "result")

	// Workday defaults
	v.SetDefault("workday.expected", "8h")
	v.SetDefault("workday.undertime", "6h")
	v.SetDefault("workday.overtime", "9h")

	// Storage defaults
	v.SetDefault("storage.type", "none")
	v.SetDefault("storage.redis.host", "localhost")
	v.SetDefault("storage.redis.port", 6379)
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.pool_size", 10)
	v.SetDefault("storage.redis.min_idle_conns", 0)
	v.SetDefault("storage.redis.dial_timeout", "5s")
	v.SetDefault("storage.redis.read_timeout", "3s")
	v.SetDefault("storage.redis.write_timeout", "3s")
	v.SetDefault("storage.redis.key_prefix", "gatesheet")
	v.SetDefault("storage.redis.retention_days", 0)

	// Metrics defaults
	v.SetDefault("metrics.textfile_path", "")
	v.SetDefault("metrics.pushgateway_url", "")
	v.SetDefault("metrics.job", "gatesheet")
	v.SetDefault("metrics.push_timeout", "10s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// ValidKeys returns the set of all recognised configuration keys
func ValidKeys() map[string]bool {
	return map[string]bool{
		// Report
		"report.output_path": true,

		// Workday
		"workday.expected":  true,
		"workday.undertime": true,
		"workday.overtime":  true,

		// Storage
		"storage.type":                 true,
		"storage.redis.host":           true,
		"storage.redis.port":           true,
		"storage.redis.password":       true,
		"storage.redis.db":             true,
		"storage.redis.pool_size":      true,
		"storage.redis.min_idle_conns": true,
		"storage.redis.dial_timeout":   true,
		"storage.redis.read_timeout":   true,
		"storage.redis.write_timeout":  true,
		"storage.redis.key_prefix":     true,
		"storage.redis.retention_days": true,

		// Metrics
		"metrics.textfile_path":   true,
		"metrics.pushgateway_url": true,
		"metrics.job":             true,
		"metrics.push_timeout":    true,

		// Logging
		"logging.level":  true,
		"logging.format": true,
	}
}

// Thresholds parses the workday durations.
func (c WorkdayConfig) Thresholds() (expected, undertime, overtime time.Duration, err error) {
	if expected, err = time.ParseDuration(c.Expected); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid workday.expected: %w", err)
	}
	if undertime, err = time.ParseDuration(c.Undertime); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid workday.undertime: %w", err)
	}
	if overtime, err = time.ParseDuration(c.Overtime); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid workday.overtime: %w", err)
	}
	return expected, undertime, overtime, nil
}

// validate validates the configuration
func validate(cfg *Config) error {
	if cfg.Report.OutputPath == "" {
		return fmt.Errorf("report output path is required")
	}

	expected, undertime, overtime, err := cfg.Workday.Thresholds()
	if err != nil {
		return err
	}
	if expected <= 0 || undertime < 0 || overtime <= 0 {
		return fmt.Errorf("workday durations must be positive")
	}
	if undertime > overtime {
		return fmt.Errorf("workday.undertime (%s) exceeds workday.overtime (%s)", undertime, overtime)
	}

	switch cfg.Storage.Type {
	case "", "none":
		cfg.Storage.Type = "none"
	case "redis":
		if cfg.Storage.Redis.Host == "" {
			return fmt.Errorf("storage.redis.host is required")
		}
		if cfg.Storage.Redis.RetentionDays < 0 {
			return fmt.Errorf("invalid retention days: %d", cfg.Storage.Redis.RetentionDays)
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}

	if _, err := time.ParseDuration(cfg.Metrics.PushTimeout); err != nil {
		return fmt.Errorf("invalid metrics.push_timeout: %w", err)
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	switch cfg.Logging.Format {
	case "text", "json", "journal":
	default:
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
