package ratelimit

import (
	"net/http"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends with "/"
	Method string        // HTTP method
	Limit  int           // requests per window
	Window time.Duration // refill window
	Burst  int           // bucket capacity, defaults to Limit
}

// Settings are the operator-facing knobs; see config.RateLimitConfig.
type Settings struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       []string
	Blacklist       []string
}

// NewConfig builds the limiter configuration with the default endpoint tiers.
func NewConfig(s Settings) *Config {
	if !s.Enabled {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    s.DefaultLimit,
		DefaultWindow:   s.DefaultWindow,
		CleanupInterval: s.CleanupInterval,
		Whitelist:       toSet(s.Whitelist),
		Blacklist:       toSet(s.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// headless Chrome and file parsing
		{Path: "/export/pdf", Method: http.MethodPost, Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/ats", Method: http.MethodPost, Limit: 30, Window: time.Minute, Burst: 5},

		// other compilers
		{Path: "/export/", Method: http.MethodPost, Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/render", Method: http.MethodPost, Limit: 240, Window: time.Minute, Burst: 40},

		// writes
		{Path: "/drafts", Method: http.MethodPost, Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/drafts/", Method: http.MethodPut, Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/drafts/", Method: http.MethodDelete, Limit: 60, Window: time.Minute, Burst: 10},
	}
}

func toSet(list []string) map[string]bool {
	out := make(map[string]bool, len(list))
	for _, ip := range list {
		if ip != "" {
			out[ip] = true
		}
	}
	return out
}
