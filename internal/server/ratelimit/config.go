package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Settings are the user-facing knobs from the application config.
type Settings struct {
	Enabled           bool
	RequestsPerMinute int
	Burst             int
	Whitelist         []string
	Blacklist         []string
}

// NewConfig builds a limiter Config from settings, adding the built-in
// endpoint tiers.
func NewConfig(s Settings) *Config {
	if !s.Enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    s.RequestsPerMinute,
		DefaultWindow:   time.Minute,
		DefaultBurst:    s.Burst,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       parseIPList(s.Whitelist),
		Blacklist:       parseIPList(s.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: document processing (strictest limits)
		{Path: "/resume/upload", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/ats/export-pdf", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},

		// Tier 2: scoring and matching - handled by default limit
		// Tier 3: health and metrics (unlimited) - handled by special case in matcher
	}
}

// parseIPList turns a list of addresses into a lookup set, ignoring blanks.
func parseIPList(list []string) map[string]bool {
	result := make(map[string]bool, len(list))
	for _, entry := range list {
		for _, ip := range strings.Split(entry, ",") {
			ip = strings.TrimSpace(ip)
			if ip != "" {
				result[ip] = true
			}
		}
	}
	return result
}
