package provider

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// ClientConfig tunes the HTTP client shared by the remote providers.
type ClientConfig struct {
	Timeout   time.Duration
	Retries   int
	UserAgent string
}

// NewHTTPClient returns a resty client with timeout, retry and user agent applied.
func NewHTTPClient(cfg ClientConfig) *resty.Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Mozilla/5.0"
	}

	return resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json")
}
