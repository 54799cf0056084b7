package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if TOPLIST_CONFIG is set
//  3. env (prefix TOPLIST_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("TOPLIST_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: TOPLIST_ADDR, TOPLIST_MAX_TOP_VOTED_LIMIT, ...
	// Map env keys like TOPLIST_LOG_LEVEL -> log_level (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("TOPLIST_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "toplist_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch {
	case cfg.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.DefaultTopVotedLimit < 1:
		return fmt.Errorf("%w: default_top_voted_limit must be positive", ErrInvalidConfig)
	case cfg.MaxTopVotedLimit < cfg.DefaultTopVotedLimit:
		return fmt.Errorf("%w: max_top_voted_limit must be >= default_top_voted_limit", ErrInvalidConfig)
	case cfg.CategoryLockWaitMS < 1:
		return fmt.Errorf("%w: category_lock_wait_ms must be positive", ErrInvalidConfig)
	}
	return nil
}
