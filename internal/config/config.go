package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// CheckConfig holds the retry and classification knobs of the core engine.
type CheckConfig struct {
	MaxRetries      int     `mapstructure:"max_retries"`
	RetryDelay      float64 `mapstructure:"retry_delay"`
	RequestDelay    float64 `mapstructure:"request_delay"`
	ExpiryAlertDays int     `mapstructure:"expiry_alert_days"`
}

// LookupConfig holds the upstream provider settings.
type LookupConfig struct {
	Endpoint     string   `mapstructure:"endpoint"`
	Timeout      float64  `mapstructure:"timeout"`
	SuccessCodes []string `mapstructure:"success_codes"`
}

// SourceConfig selects where the domain list comes from.
type SourceConfig struct {
	Backend         string  `mapstructure:"backend"`
	File            string  `mapstructure:"file"`
	EtcdHost        string  `mapstructure:"etcd_host"`
	EtcdPort        int     `mapstructure:"etcd_port"`
	EtcdPathPrefix  string  `mapstructure:"etcd_path_prefix"`
	EtcdDialTimeout float64 `mapstructure:"etcd_dial_timeout"`
}

// TelegramConfig holds notifier credentials. Both values empty means
// notification is skipped, not failed.
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

// MetricsConfig holds the optional Pushgateway target for per-run gauges.
type MetricsConfig struct {
	PushgatewayURL string `mapstructure:"pushgateway_url"`
	JobName        string `mapstructure:"job_name"`
}

// LoggingConfig holds the logging-related configuration.
type LoggingConfig struct {
	Level       string `mapstructure:"log_level"`
	File        string `mapstructure:"log_file"`
	FileMaxSize int    `mapstructure:"log_file_max_size"`
}

// Config is the top-level configuration struct.
type Config struct {
	Check    CheckConfig    `mapstructure:"check"`
	Lookup   LookupConfig   `mapstructure:"lookup"`
	Source   SourceConfig   `mapstructure:"source"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Logging  LoggingConfig  `mapstructure:"log"`
}

// RetryDelayDuration converts the configured seconds into a time.Duration.
func (c *CheckConfig) RetryDelayDuration() time.Duration {
	return time.Duration(c.RetryDelay * float64(time.Second))
}

// RequestDelayDuration converts the configured seconds into a time.Duration.
func (c *CheckConfig) RequestDelayDuration() time.Duration {
	return time.Duration(c.RequestDelay * float64(time.Second))
}

// TimeoutDuration converts the configured seconds into a time.Duration.
func (c *LookupConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout * float64(time.Second))
}

// Configured reports whether both Telegram credentials are present.
func (c *TelegramConfig) Configured() bool {
	return c.BotToken != "" && c.ChatID != ""
}

// Configured reports whether a Pushgateway target is present.
func (c *MetricsConfig) Configured() bool {
	return c.PushgatewayURL != ""
}

// InitConfig performs the initial configuration: setting defaults, specifying
// the config file, and reading it.
func InitConfig() error {
	viper.SetDefault("check.max_retries", 3)
	viper.SetDefault("check.retry_delay", 2.0)
	viper.SetDefault("check.request_delay", 1.0)
	viper.SetDefault("check.expiry_alert_days", 16)
	viper.SetDefault("lookup.endpoint", "")
	viper.SetDefault("lookup.timeout", 10.0)
	viper.SetDefault("lookup.success_codes", []string{"1", "200"})
	viper.SetDefault("source.backend", "file")
	viper.SetDefault("source.file", "domains.txt")
	viper.SetDefault("source.etcd_host", "localhost")
	viper.SetDefault("source.etcd_port", 2379)
	viper.SetDefault("source.etcd_path_prefix", "/domainwatch/domains")
	viper.SetDefault("source.etcd_dial_timeout", 2.0)
	viper.SetDefault("telegram.bot_token", "")
	viper.SetDefault("telegram.chat_id", "")
	viper.SetDefault("metrics.pushgateway_url", "")
	viper.SetDefault("metrics.job_name", "domainwatch")
	viper.SetDefault("log.log_level", "INFO")
	viper.SetDefault("log.log_file", "")
	viper.SetDefault("log.log_file_max_size", 10)

	viper.SetConfigName("config") // Looks for config.yaml
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// If the file is not found, just continue with defaults and env vars.
	}

	// TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID resolve to telegram.bot_token
	// and telegram.chat_id through the replacer.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return nil
}

// Load unmarshals the configuration into the Config struct and validates it.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects values the core contracts cannot accept.
func (c *Config) Validate() error {
	if c.Check.MaxRetries < 0 {
		return fmt.Errorf("check.max_retries must be >= 0, got %d", c.Check.MaxRetries)
	}
	if c.Check.RetryDelay < 0 {
		return fmt.Errorf("check.retry_delay must be >= 0, got %v", c.Check.RetryDelay)
	}
	if c.Check.RequestDelay < 0 {
		return fmt.Errorf("check.request_delay must be >= 0, got %v", c.Check.RequestDelay)
	}
	if c.Check.ExpiryAlertDays < 0 {
		return fmt.Errorf("check.expiry_alert_days must be >= 0, got %d", c.Check.ExpiryAlertDays)
	}
	switch c.Source.Backend {
	case "file", "etcd":
	default:
		return fmt.Errorf("source.backend must be \"file\" or \"etcd\", got %q", c.Source.Backend)
	}
	if c.Lookup.Endpoint == "" {
		return fmt.Errorf("lookup.endpoint must be set")
	}
	return nil
}
