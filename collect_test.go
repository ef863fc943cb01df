package asyncgen_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/b97tsk/asyncgen"
)

// countdown yields n, n-1, ..., 1, sleeping d before each.
func countdown(n int, d time.Duration) *asyncgen.Generator[float64] {
	return asyncgen.NewGenerator(func(ctx context.Context, yield func(float64) bool) error {
		for i := n; i > 0; i-- {
			if d > 0 {
				select {
				case <-time.After(d):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			if !yield(float64(i)) {
				return nil
			}
		}
		return nil
	})
}

func TestCollectAll(t *testing.T) {
	tests := []struct {
		name string
		gen  *asyncgen.Generator[float64]
		want []float64
	}{
		{"Ten", countdown(10, 0), []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}},
		{"Delayed", countdown(3, 5*time.Millisecond), []float64{3, 2, 1}},
		{"Slice", asyncgen.FromSlice([]float64{0.5, 7.25, 0.5}), []float64{0.5, 7.25, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := asyncgen.CollectAll(context.Background(), tt.gen)
			if err != nil {
				t.Fatalf("CollectAll returned %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("CollectAll (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCollectAllEmpty(t *testing.T) {
	got, err := asyncgen.CollectAll(context.Background(), countdown(0, 0))
	if err != nil {
		t.Fatalf("CollectAll returned %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("CollectAll returned %v, want an empty slice", got)
	}
}

func TestCollectAllFailure(t *testing.T) {
	boom := errors.New("boom")

	g := asyncgen.NewGenerator(func(ctx context.Context, yield func(float64) bool) error {
		if !yield(1.5) || !yield(2.5) {
			return nil
		}
		return boom
	})

	got, err := asyncgen.CollectAll(context.Background(), g)

	if err != boom {
		t.Fatalf("CollectAll returned %v, want %v unchanged", err, boom)
	}
	if diff := cmp.Diff([]float64{1.5, 2.5}, got); diff != "" {
		t.Fatalf("values collected before the failure (-want +got):\n%s", diff)
	}
}

func TestCollectIndependentRuns(t *testing.T) {
	newGen := func() *asyncgen.Generator[float64] { return countdown(4, time.Millisecond) }

	var s1, s2 []float64

	err := asyncgen.Run(context.Background(), asyncgen.Join(
		asyncgen.Collect(newGen(), &s1),
		asyncgen.Collect(newGen(), &s2),
	))
	if err != nil {
		t.Fatalf("Run returned %v", err)
	}

	want := []float64{4, 3, 2, 1}
	if diff := cmp.Diff(want, s1); diff != "" {
		t.Errorf("first run (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, s2); diff != "" {
		t.Errorf("second run (-want +got):\n%s", diff)
	}

	s1[0] = -1
	if s2[0] != 4 {
		t.Error("runs share storage")
	}
}

func TestCollectAppends(t *testing.T) {
	s := []float64{-1}

	err := asyncgen.Run(context.Background(), asyncgen.Collect(countdown(2, 0), &s))
	if err != nil {
		t.Fatalf("Run returned %v", err)
	}

	if diff := cmp.Diff([]float64{-1, 2, 1}, s); diff != "" {
		t.Fatalf("Collect (-want +got):\n%s", diff)
	}
}

func TestCollectConcurrentRuntime(t *testing.T) {
	const (
		n     = 4
		count = 5
		delay = 20 * time.Millisecond
	)

	tasks := make([]asyncgen.Task, n)
	runs := make([][]float64, n)
	for i := range tasks {
		tasks[i] = asyncgen.Collect(countdown(count, delay), &runs[i])
	}

	start := time.Now()
	if err := asyncgen.Run(context.Background(), asyncgen.Join(tasks...)); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	elapsed := time.Since(start)

	if elapsed >= n*count*delay {
		t.Errorf("collections did not overlap: took %s", elapsed)
	}
	for i, s := range runs {
		if len(s) != count {
			t.Errorf("run %d collected %d values", i, len(s))
		}
	}
}
