// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults, Load(ctx) to layer
//   file and environment on top.
// - External errors are wrapped via this package's error kinds.
package config

type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// UpstreamURL is the base URL of the prediction service.
	UpstreamURL string `koanf:"upstream_url"`

	// UpstreamTimeoutMS bounds each request to the prediction service.
	UpstreamTimeoutMS int `koanf:"upstream_timeout_ms"`

	// DefaultYear is the season shown when a request names none.
	DefaultYear int `koanf:"default_year"`

	// MaxCustomDrivers caps the grid size of a custom scenario.
	MaxCustomDrivers int `koanf:"max_custom_drivers"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":8090",
		UpstreamURL:       "http://localhost:8000",
		UpstreamTimeoutMS: 10_000,
		DefaultYear:       2025,
		MaxCustomDrivers:  20,
	}
}
