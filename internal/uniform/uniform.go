// Package uniform provides a generator of uniformly distributed random
// numbers that waits before producing each of them.
package uniform

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/b97tsk/asyncgen"
)

// Config describes what a generator produces.
type Config struct {
	Count int           // number of values
	Delay time.Duration // wait before each value
	Min   float64       // lower bound, inclusive
	Max   float64       // upper bound
	Seed  uint64        // 0 picks a random seed
}

// DefaultConfig returns ten values in [0, 10], one per second.
func DefaultConfig() Config {
	return Config{
		Count: 10,
		Delay: time.Second,
		Min:   0,
		Max:   10,
	}
}

// Validate reports the first field of c that is out of range.
func (c Config) Validate() error {
	switch {
	case c.Count < 0:
		return fmt.Errorf("count must not be negative, got %d", c.Count)
	case c.Delay < 0:
		return fmt.Errorf("delay must not be negative, got %s", c.Delay)
	case c.Min > c.Max:
		return fmt.Errorf("min (%g) must not exceed max (%g)", c.Min, c.Max)
	}
	return nil
}

// ErrInvalidConfig is wrapped by the failure of a generator created with
// a Config that does not validate.
var ErrInvalidConfig = errors.New("uniform: invalid config")

// New returns a generator that, c.Count times, waits c.Delay and then yields
// a random number between c.Min and c.Max.
//
// Each generator owns its random source; two generators never share state.
func New(c Config) *asyncgen.Generator[float64] {
	return asyncgen.NewGenerator(func(ctx context.Context, yield func(float64) bool) error {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}

		r := newRand(c.Seed)

		var timer *time.Timer
		if c.Delay > 0 {
			timer = time.NewTimer(c.Delay)
			defer timer.Stop()
		}

		for i := range c.Count {
			if timer != nil {
				if i != 0 {
					timer.Reset(c.Delay)
				}
				select {
				case <-timer.C:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			if !yield(c.Min + r.Float64()*(c.Max-c.Min)) {
				return nil
			}
		}

		return nil
	})
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
