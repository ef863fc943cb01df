// Package measure times several collections running side by side on one
// executor.
package measure

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/b97tsk/asyncgen"
)

// Report is the outcome of [Runtime].
type Report struct {
	Parallel int           `json:"parallel"`
	Elapsed  time.Duration `json:"elapsed"`
	Runs     [][]float64   `json:"runs"`
}

// Runtime collects parallel generators, each created by newGen, concurrently
// on a single executor, and reports the wall time it takes for all of them
// to be drained.
//
// Since the collections only suspend while awaiting values, the elapsed time
// is close to that of the slowest collection rather than to their sum.
//
// If any collection fails, the others are canceled and Runtime returns the
// failure along with a report of what was collected so far.
func Runtime(ctx context.Context, log *zap.Logger, parallel int, newGen func() *asyncgen.Generator[float64]) (Report, error) {
	if parallel < 1 {
		return Report{}, fmt.Errorf("measure: parallel must be positive, got %d", parallel)
	}

	rep := Report{
		Parallel: parallel,
		Runs:     make([][]float64, parallel),
	}

	tasks := make([]asyncgen.Task, parallel)
	for i := range tasks {
		tasks[i] = asyncgen.Collect(newGen(), &rep.Runs[i]).Then(asyncgen.Do(func() {
			log.Debug("Collection finished",
				zap.Int("run", i),
				zap.Int("values", len(rep.Runs[i])))
		}))
	}

	log.Debug("Measuring runtime", zap.Int("parallel", parallel))

	start := time.Now()
	err := asyncgen.Run(ctx, asyncgen.Join(tasks...))
	rep.Elapsed = time.Since(start)

	if err != nil {
		log.Warn("Measurement failed", zap.Duration("elapsed", rep.Elapsed), zap.Error(err))
		return rep, err
	}

	log.Info("Measured runtime",
		zap.Int("parallel", parallel),
		zap.Duration("elapsed", rep.Elapsed))

	return rep, nil
}
