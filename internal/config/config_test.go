package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090
rate_limit = 5
rate_burst = 10

[logs]
level = "debug"

[database]
host = "localhost"
user = "wizard"
password = "from-file"
dbname = "wizard"

[redis]
addr = "localhost:6379"

[booking_api]
url = "http://backend.local/api"
timeout = 3

[wizard]
session_ttl = 1800
service_id = 12
show_service = false
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ReadTimeout, "default is kept")
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "wizard:", cfg.Redis.KeyPrefix)
	assert.Equal(t, 1800, cfg.Wizard.SessionTTL)
	assert.Equal(t, int64(12), cfg.Wizard.ServiceID)
	assert.False(t, cfg.Wizard.ShowService)
	assert.True(t, cfg.Wizard.ShowEmployee)
	assert.Equal(t, 3*time.Second, Seconds(cfg.BookingAPI.Timeout))
	assert.Equal(t, "host=localhost port=5432 user=wizard password=from-file dbname=wizard sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_PASSWORD", "secret")
	t.Setenv("BOOKING_API_URL", "https://booking.example.com")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("DATABASE_PORT", "6543")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "https://booking.example.com", cfg.BookingAPI.URL)
	assert.Equal(t, "sk_test_123", cfg.Stripe.SecretKey)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrLoad)

	_, err = Load(writeConfig(t, "[server\nhttp_port = 1"))
	assert.ErrorIs(t, err, ErrLoad)

	t.Setenv("DATABASE_PORT", "abc")
	_, err = Load(writeConfig(t, sampleConfig))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := defaults()
		cfg.Database.Host = "db"
		cfg.Database.DBName = "wizard"
		cfg.Redis.Addr = "redis:6379"
		cfg.BookingAPI.URL = "http://backend"
		return cfg
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"bad port", func(c *Config) { c.Server.HTTPPort = 0 }},
		{"unknown log level", func(c *Config) { c.Logs.Level = "verbose" }},
		{"no database host", func(c *Config) { c.Database.Host = "" }},
		{"no redis", func(c *Config) { c.Redis.Addr = "" }},
		{"no api url", func(c *Config) { c.BookingAPI.URL = "" }},
		{"relative api url", func(c *Config) { c.BookingAPI.URL = "/api" }},
		{"zero timeout", func(c *Config) { c.BookingAPI.Timeout = 0 }},
		{"negative rate", func(c *Config) { c.Server.RateLimit = -1 }},
		{"zero session ttl", func(c *Config) { c.Wizard.SessionTTL = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
