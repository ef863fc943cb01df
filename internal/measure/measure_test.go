package measure

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/b97tsk/asyncgen"
	"github.com/b97tsk/asyncgen/internal/uniform"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRuntime(t *testing.T) {
	const (
		parallel = 4
		count    = 5
		delay    = 20 * time.Millisecond
	)

	newGen := func() *asyncgen.Generator[float64] {
		return uniform.New(uniform.Config{Count: count, Delay: delay, Max: 10})
	}

	rep, err := Runtime(context.Background(), zap.NewNop(), parallel, newGen)
	if err != nil {
		t.Fatalf("Runtime returned %v", err)
	}

	if rep.Parallel != parallel {
		t.Errorf("Parallel = %d", rep.Parallel)
	}
	if rep.Elapsed < count*delay {
		t.Errorf("Elapsed = %s, shorter than one collection", rep.Elapsed)
	}
	if rep.Elapsed >= parallel*count*delay {
		t.Errorf("Elapsed = %s, collections did not overlap", rep.Elapsed)
	}
	if len(rep.Runs) != parallel {
		t.Fatalf("got %d runs", len(rep.Runs))
	}
	for i, s := range rep.Runs {
		if len(s) != count {
			t.Errorf("run %d has %d values", i, len(s))
		}
	}
}

func TestRuntimeFailure(t *testing.T) {
	boom := errors.New("boom")

	calls := 0
	newGen := func() *asyncgen.Generator[float64] {
		calls++
		if calls == 2 {
			return asyncgen.NewGenerator(func(ctx context.Context, yield func(float64) bool) error {
				return boom
			})
		}
		return uniform.New(uniform.Config{Count: 3, Delay: time.Hour, Max: 1})
	}

	_, err := Runtime(context.Background(), zap.NewNop(), 3, newGen)
	if !errors.Is(err, boom) {
		t.Fatalf("Runtime returned %v, want %v", err, boom)
	}
}

func TestRuntimeRejectsParallel(t *testing.T) {
	_, err := Runtime(context.Background(), zap.NewNop(), 0, nil)
	if err == nil {
		t.Fatal("expected error")
	}
}
