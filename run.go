package asyncgen

import "context"

// Run spawns t on a fresh [Executor], which runs on goroutines started by
// its autorun function, and blocks until t ends or ctx is done.
//
// Run returns the failure of t, if any.
// If ctx is done before t ends, t is canceled and Run returns ctx.Err().
func Run(ctx context.Context, t Task) error {
	var (
		e         Executor
		err       error
		completed bool
		canceled  Signal
	)

	done := make(chan struct{})

	e.Autorun(func() { go e.Run() })

	stop := context.AfterFunc(ctx, func() {
		e.Spawn(Do(canceled.Notify))
	})
	defer stop()

	e.Spawn(Block(
		Select(
			Try(t, &err).Then(Do(func() { completed = true })),
			func(co *Coroutine) Result {
				if ctx.Err() != nil {
					return co.End()
				}
				return co.Yield(&canceled)
			},
		),
		Do(func() { close(done) }),
	))

	<-done

	if !completed {
		return ctx.Err()
	}

	return err
}
