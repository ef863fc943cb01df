package asyncgen

import "context"

// Collect returns a [Task] that drains g, appending every value g yields to
// *s in the order they are yielded, and then ends.
//
// The task suspends at each retrieval until g makes a value available.
// Values are neither filtered nor transformed, and g is always drained to
// the end.
//
// If g fails, the task fails with the same error. Values appended before
// the failure stay in *s.
//
// If the coroutine running the task is canceled, g is closed.
func Collect[T any](g *Generator[T], s *[]T) Task {
	return func(co *Coroutine) Result {
		for {
			v, r := g.poll(co.Executor())
			switch r {
			case pollValue:
				*s = append(*s, v)
			case pollPending:
				co.CleanupFunc(func() {
					if co.Canceled() {
						g.Close()
					}
				})
				return co.Yield(g)
			default:
				if err := g.Err(); err != nil {
					return co.Throw(err)
				}
				return co.End()
			}
		}
	}
}

// CollectAll drains g on a fresh [Executor] and returns every value g yields,
// in the order they are yielded.
//
// If g fails, CollectAll returns the values yielded before the failure
// together with the failure itself.
// If ctx is done first, g is closed and CollectAll returns the values
// collected so far together with ctx.Err().
func CollectAll[T any](ctx context.Context, g *Generator[T]) ([]T, error) {
	var s []T
	err := Run(ctx, Collect(g, &s))
	return s, err
}
