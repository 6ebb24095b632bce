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

// EnvPrefix prefixes every environment override; EnvFile names the YAML file.
const (
	EnvPrefix = "MERITSIM_"
	EnvFile   = "MERITSIM_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if MERITSIM_CONFIG is set
//  3. env (prefix MERITSIM_)
func Load(ctx context.Context) (*Config, error) {
	return LoadFile(ctx, os.Getenv(EnvFile))
}

// LoadFile is Load with an explicit file path. An empty path skips the file layer.
func LoadFile(_ context.Context, path string) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// MERITSIM_WORKERS -> workers (flat keys, underscores kept).
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "meritsim_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Slices decode element-wise into an existing slice, so lists start
	// empty and fall back to the defaults only when nothing was loaded.
	cfg := *base
	cfg.Tiers, cfg.Counts = nil, nil
	cfg.Roster.Departments, cfg.Roster.Sections = nil, nil
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if cfg.Tiers == nil {
		cfg.Tiers = base.Tiers
	}
	if cfg.Counts == nil {
		cfg.Counts = base.Counts
	}
	if cfg.Roster.Departments == nil {
		cfg.Roster.Departments = base.Roster.Departments
	}
	if cfg.Roster.Sections == nil {
		cfg.Roster.Sections = base.Roster.Sections
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
