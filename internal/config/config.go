// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DefaultTopVotedLimit is used for GET /toplist/top-voted when no limit is given.
	DefaultTopVotedLimit int `koanf:"default_top_voted_limit"`

	// MaxTopVotedLimit caps GET /toplist/top-voted?limit.
	MaxTopVotedLimit int `koanf:"max_top_voted_limit"`

	// CategoryLockWaitMS bounds how long a mutation waits for a category's
	// rank sequence before failing with a conflict.
	CategoryLockWaitMS int `koanf:"category_lock_wait_ms"`

	// MetricsEnabled toggles Prometheus metrics collection.
	MetricsEnabled bool `koanf:"metrics_enabled"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		DefaultTopVotedLimit: 10,
		MaxTopVotedLimit:     100,
		CategoryLockWaitMS:   250,
		MetricsEnabled:       true,
	}
}
