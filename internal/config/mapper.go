package config

import (
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"
)

// Map applies dto over [Default] and validates the result.
// path is only used in errors.
func Map(path string, dto YAMLConfig) (Config, error) {
	cfg := Default()

	invalid := func(field string, err error) error {
		return &Error{
			Op:    "config.map",
			Kind:  KindInvalidConfig,
			Path:  path,
			Field: field,
			Err:   err,
		}
	}

	g := dto.Generator
	if g.Count != nil {
		if *g.Count < 0 {
			return Config{}, invalid("generator.count", fmt.Errorf("must not be negative, got %d", *g.Count))
		}
		cfg.Generator.Count = *g.Count
	}
	if g.Delay != nil {
		d, err := time.ParseDuration(*g.Delay)
		if err != nil {
			return Config{}, invalid("generator.delay", err)
		}
		if d < 0 {
			return Config{}, invalid("generator.delay", fmt.Errorf("must not be negative, got %s", d))
		}
		cfg.Generator.Delay = d
	}
	if g.Min != nil {
		cfg.Generator.Min = *g.Min
	}
	if g.Max != nil {
		cfg.Generator.Max = *g.Max
	}
	if cfg.Generator.Min > cfg.Generator.Max {
		return Config{}, invalid("generator.max", fmt.Errorf("must not be less than min (%g), got %g", cfg.Generator.Min, cfg.Generator.Max))
	}
	if g.Seed != nil {
		cfg.Generator.Seed = *g.Seed
	}

	if p := dto.Measure.Parallel; p != nil {
		if *p < 1 {
			return Config{}, invalid("measure.parallel", fmt.Errorf("must be positive, got %d", *p))
		}
		cfg.Measure.Parallel = *p
	}

	if l := dto.Log.Level; l != nil {
		if _, err := zapcore.ParseLevel(*l); err != nil {
			return Config{}, invalid("log.level", err)
		}
		cfg.Log.Level = *l
	}
	if d := dto.Log.Development; d != nil {
		cfg.Log.Development = *d
	}

	if err := cfg.Generator.Validate(); err != nil {
		return Config{}, invalid("generator", err)
	}

	return cfg, nil
}
