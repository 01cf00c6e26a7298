package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	assert.Equal(t, "30/minute", cfg.UserRate)
	assert.Equal(t, "120/minute", cfg.IPRate)
	assert.Equal(t, "", cfg.CORSAllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2*time.Second, cfg.LimiterTimeout)
	assert.Empty(t, cfg.RedisAddr)
}

func TestParseEnv_OverridesDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("RATE_LIMIT_USER", "10/minute")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com")
	t.Setenv("REQUEST_TIMEOUT", "3s")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":9090", cfg.EndpointAddrHTTP)
	assert.Equal(t, "10/minute", cfg.UserRate)
	assert.Equal(t, "https://app.example.com", cfg.CORSAllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	// untouched fields keep their defaults
	assert.Equal(t, "120/minute", cfg.IPRate)
}

func TestLoadConfig_NoOverrides(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"app"}

	cfg := LoadConfig()
	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
}
