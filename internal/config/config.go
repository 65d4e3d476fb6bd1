package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"ci"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// TranslateAPIEndpoint is the base URL of the Translation v3 API. Only
	// overridden in tests and local dry runs.
	TranslateAPIEndpoint string `envconfig:"TRANSLATE_API_ENDPOINT" default:"https://translation.googleapis.com/v3/"`
	HTTPTimeoutSeconds   int    `envconfig:"HTTP_TIMEOUT_SECONDS" default:"120"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	endpoint := strings.TrimSpace(c.TranslateAPIEndpoint)
	if endpoint == "" {
		return fmt.Errorf("TRANSLATE_API_ENDPOINT is required")
	}
	parsed, err := url.Parse(endpoint)
	if err != nil || strings.TrimSpace(parsed.Host) == "" {
		return fmt.Errorf("TRANSLATE_API_ENDPOINT is not a valid URL: %q", c.TranslateAPIEndpoint)
	}
	if c.HTTPTimeoutSeconds < 1 {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDS must be >= 1")
	}
	return nil
}

// Endpoint returns the API base URL with a guaranteed trailing slash so
// operation names can be appended directly.
func (c *Config) Endpoint() string {
	endpoint := strings.TrimSpace(c.TranslateAPIEndpoint)
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	return endpoint
}

func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}
