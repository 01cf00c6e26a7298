package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"app",
		"-a", ":9999",
		"-d", "postgres://localhost/gating",
		"-s", "flag-secret",
		"-u", "5/minute",
		"-o", "https://a.example.com,https://b.example.com",
	}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":9999", cfg.EndpointAddrHTTP)
	assert.Equal(t, "postgres://localhost/gating", cfg.DatabaseDSN)
	assert.Equal(t, "flag-secret", cfg.JWTSecret)
	assert.Equal(t, "5/minute", cfg.UserRate)
	assert.Equal(t, "https://a.example.com,https://b.example.com", cfg.CORSAllowedOrigins)
	// flags not passed keep prior values
	assert.Equal(t, "120/minute", cfg.IPRate)
}

func TestParseFlags_IgnoresForeignFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"app", "-z", "whatever", "-a", ":6060"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":6060", cfg.EndpointAddrHTTP)
}
