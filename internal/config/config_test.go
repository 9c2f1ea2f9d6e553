package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Check: CheckConfig{
			MaxRetries:      3,
			RetryDelay:      2.0,
			RequestDelay:    1.0,
			ExpiryAlertDays: 16,
		},
		Lookup: LookupConfig{Endpoint: "https://lookup.example/api", Timeout: 10.0},
		Source: SourceConfig{Backend: "file", File: "domains.txt"},
	}
}

func TestValidate_Accepts(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	etcdCfg := validConfig()
	etcdCfg.Source.Backend = "etcd"
	assert.NoError(t, etcdCfg.Validate())

	zeroCfg := validConfig()
	zeroCfg.Check.MaxRetries = 0
	zeroCfg.Check.RetryDelay = 0
	zeroCfg.Check.RequestDelay = 0
	zeroCfg.Check.ExpiryAlertDays = 0
	assert.NoError(t, zeroCfg.Validate())
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "negative max_retries", mutate: func(c *Config) { c.Check.MaxRetries = -1 }},
		{name: "negative retry_delay", mutate: func(c *Config) { c.Check.RetryDelay = -0.5 }},
		{name: "negative request_delay", mutate: func(c *Config) { c.Check.RequestDelay = -1 }},
		{name: "negative alert window", mutate: func(c *Config) { c.Check.ExpiryAlertDays = -1 }},
		{name: "unknown source backend", mutate: func(c *Config) { c.Source.Backend = "consul" }},
		{name: "missing lookup endpoint", mutate: func(c *Config) { c.Lookup.Endpoint = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDurationConversions(t *testing.T) {
	cfg := CheckConfig{RetryDelay: 2.5, RequestDelay: 0.1}
	assert.Equal(t, 2500*time.Millisecond, cfg.RetryDelayDuration())
	assert.Equal(t, 100*time.Millisecond, cfg.RequestDelayDuration())

	lookup := LookupConfig{Timeout: 10}
	assert.Equal(t, 10*time.Second, lookup.TimeoutDuration())
}

func TestConfiguredHelpers(t *testing.T) {
	assert.False(t, (&TelegramConfig{}).Configured())
	assert.False(t, (&TelegramConfig{BotToken: "t"}).Configured())
	assert.True(t, (&TelegramConfig{BotToken: "t", ChatID: "c"}).Configured())

	assert.False(t, (&MetricsConfig{}).Configured())
	assert.True(t, (&MetricsConfig{PushgatewayURL: "http://pushgw:9091"}).Configured())
}
