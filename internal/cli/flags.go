package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/b97tsk/asyncgen/internal/uniform"
)

// generatorFlags are the flags shared by every command that creates
// generators. Flags that are set on the command line override the
// configuration file.
type generatorFlags struct {
	count int
	delay time.Duration
	min   float64
	max   float64
	seed  uint64
}

func (f *generatorFlags) register(c *cobra.Command) {
	def := uniform.DefaultConfig()
	c.Flags().IntVarP(&f.count, "count", "n", def.Count, "number of values per generator")
	c.Flags().DurationVar(&f.delay, "delay", def.Delay, "wait before each value")
	c.Flags().Float64Var(&f.min, "min", def.Min, "lower bound of the values")
	c.Flags().Float64Var(&f.max, "max", def.Max, "upper bound of the values")
	c.Flags().Uint64Var(&f.seed, "seed", 0, "random seed (0 picks one)")
}

func (f *generatorFlags) apply(c *cobra.Command, cfg uniform.Config) (uniform.Config, error) {
	flags := c.Flags()
	if flags.Changed("count") {
		cfg.Count = f.count
	}
	if flags.Changed("delay") {
		cfg.Delay = f.delay
	}
	if flags.Changed("min") {
		cfg.Min = f.min
	}
	if flags.Changed("max") {
		cfg.Max = f.max
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if err := cfg.Validate(); err != nil {
		return uniform.Config{}, fmt.Errorf("invalid generator flags: %w", err)
	}
	return cfg, nil
}

func checkFormat(format string) error {
	switch format {
	case "pretty", "json":
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}
