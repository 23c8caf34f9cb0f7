package config

import (
	"context"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/reflekt-labs/reflekt/internal/domain/tier"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if REFLEKT_CONFIG is set
//  3. env (prefix REFLEKT_)
//
// The tier bin ladder is validated here so a malformed ladder fails the
// process before it serves traffic.
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("REFLEKT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: REFLEKT_ADDR, REFLEKT_UPDATE_DEAD_BAND, ...
	// Keys keep their underscores to match the koanf tags.
	envProvider := env.Provider("REFLEKT_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "reflekt_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate fails fast on configuration the service cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return ErrEmptyAddr
	case c.RefreshQueueSize <= 0:
		return ErrBadQueueSize
	case c.RefreshWorkerCount <= 0:
		return ErrBadWorkerCount
	case c.UpdateDeadBand < 0:
		return ErrBadDeadBand
	}
	// NewClassifier rejects non-contiguous or non-exhaustive ladders
	// with ErrInvalidTierConfig.
	if _, err := tier.NewClassifier(c.TierBins); err != nil {
		return err
	}
	return nil
}
