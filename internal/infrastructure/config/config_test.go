package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "teleshop-client", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "http://localhost:8080", cfg.Backend.BaseURL)
	assert.Equal(t, 15, cfg.Backend.TimeoutSeconds)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 30*time.Second, cfg.Refresh.Interval)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, cfg.App.Name, cfg.Telemetry.ServiceName)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TELESHOP_BACKEND_BASE_URL", "https://shop.example.com")
	t.Setenv("TELESHOP_STORE_DRIVER", "memory")
	t.Setenv("TELESHOP_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "relative base url",
			mutate:  func(c *Config) { c.Backend.BaseURL = "not-a-url" },
			wantErr: "base_url",
		},
		{
			name:    "unknown store driver",
			mutate:  func(c *Config) { c.Store.Driver = "redis" },
			wantErr: "store.driver",
		},
		{
			name:    "negative session ttl",
			mutate:  func(c *Config) { c.Session.TTL = -time.Hour },
			wantErr: "session.ttl",
		},
		{
			name: "refresh interval too small",
			mutate: func(c *Config) {
				c.Refresh.Enabled = true
				c.Refresh.Interval = 100 * time.Millisecond
			},
			wantErr: "refresh.interval",
		},
		{
			name: "plain http in production",
			mutate: func(c *Config) {
				c.App.Env = "production"
				c.Backend.BaseURL = "http://shop.example.com"
			},
			wantErr: "https",
		},
		{
			name:    "sampling ratio out of range",
			mutate:  func(c *Config) { c.Telemetry.SamplingRatio = 1.5 },
			wantErr: "sampling_ratio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			applyDefaults(cfg)
			tt.mutate(cfg)

			err := cfg.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateDefaultsPass(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	assert.NoError(t, cfg.validate())
}
