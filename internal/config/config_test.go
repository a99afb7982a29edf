package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		URL:          "http://localhost:8080",
		DocRoot:      "./public",
		HTTPClient:   "gohttp",
		ProbeTimeout: 5 * time.Second,
		ReportFormat: "text",
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	cfg := validConfig()
	cfg.LogLevel = "debug"
	require.NoError(t, cfg.Validate())

	cases := map[string]func(c *Config){
		"URL":          func(c *Config) { c.URL = "" },
		"HTTPClient":   func(c *Config) { c.HTTPClient = "chrome" },
		"ProbeTimeout": func(c *Config) { c.ProbeTimeout = 0 },
		"ReportFormat": func(c *Config) { c.ReportFormat = "pdf" },
		"MaxRedirects": func(c *Config) { c.MaxRedirects = -1 },
		"DocRoot":      func(c *Config) { c.DocRoot = "" },
		"LogLevel":     func(c *Config) { c.LogLevel = "verbose" },
	}

	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			cfg := validConfig()
			mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), field)
		})
	}
}
