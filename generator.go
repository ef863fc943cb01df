package asyncgen

import (
	"context"
	"errors"
	"iter"
)

// ErrClosed is reported by a [Generator] pulled after Close was called
// before it was exhausted.
var ErrClosed = errors.New("asyncgen: generator closed")

type generatorState int8

const (
	genIdle      generatorState = iota // nothing requested
	genRequested                       // producer is working on the next value
	genReady                           // a value is waiting to be taken
	genDone                            // producer returned
)

// A GeneratorFunc produces values by calling yield once per value, in order.
// It should stop and return when yield returns false, or when ctx is done.
// A non-nil return value is the failure of the [Generator].
type GeneratorFunc[T any] func(ctx context.Context, yield func(T) bool) error

// A Generator is an asynchronous producer of values.
//
// A Generator runs its [GeneratorFunc] on a goroutine of its own, started on
// the first pull.
// The function is lazy: after handing a value over, it stays blocked in
// yield until the next value is pulled, or until the Generator is closed.
//
// Values are pulled inside [Task] functions, with [Generator.Next] or
// [Collect].
// A pull that finds no value ready watches the Generator and yields; the
// Generator notifies when the value arrives.
//
// A Generator can only be iterated once, by one coroutine at a time, and must
// not be shared by more than one [Executor].
type Generator[T any] struct {
	Signal
	f        GeneratorFunc[T]
	state    generatorState
	value    T
	err      error
	executor *Executor
	demand   chan struct{}
	cancel   context.CancelFunc
}

// NewGenerator returns a [Generator] that produces values with f.
func NewGenerator[T any](f GeneratorFunc[T]) *Generator[T] {
	if f == nil {
		panic("asyncgen: nil GeneratorFunc")
	}
	return &Generator[T]{f: f}
}

// FromSeq returns a [Generator] that produces the values of seq.
func FromSeq[T any](seq iter.Seq[T]) *Generator[T] {
	return NewGenerator(func(ctx context.Context, yield func(T) bool) error {
		for v := range seq {
			if !yield(v) {
				break
			}
		}
		return nil
	})
}

// FromSlice returns a [Generator] that produces the elements of s.
func FromSlice[T any](s []T) *Generator[T] {
	return NewGenerator(func(ctx context.Context, yield func(T) bool) error {
		for _, v := range s {
			if !yield(v) {
				break
			}
		}
		return nil
	})
}

type pollResult int8

const (
	pollPending pollResult = iota
	pollValue
	pollDone
)

// poll takes the value that is ready, if any; otherwise it makes sure the
// producer is working on one.
func (g *Generator[T]) poll(e *Executor) (v T, r pollResult) {
	switch g.state {
	case genIdle:
		g.request(e)
		return v, pollPending
	case genRequested:
		return v, pollPending
	case genReady:
		v, g.value = g.value, v
		g.state = genIdle
		return v, pollValue
	default:
		return v, pollDone
	}
}

func (g *Generator[T]) request(e *Executor) {
	if g.executor == nil {
		ctx, cancel := context.WithCancel(context.Background())
		g.executor = e
		g.cancel = cancel
		g.demand = make(chan struct{}, 1)
		go g.produce(ctx, e)
	} else if g.executor != e {
		panic("asyncgen: generator shared by more than one executor")
	}
	g.state = genRequested
	g.demand <- struct{}{}
}

// produce runs on the producer goroutine. Results are handed over to e, one
// task per result, since the state of g is only touched by e.
func (g *Generator[T]) produce(ctx context.Context, e *Executor) {
	select {
	case <-g.demand:
	case <-ctx.Done():
		return
	}

	var err error

	if perr := try(func() {
		err = g.f(ctx, func(v T) bool {
			if ctx.Err() != nil {
				return false
			}
			e.Spawn(Do(func() { g.deliver(v) }))
			select {
			case <-g.demand:
				return true
			case <-ctx.Done():
				return false
			}
		})
	}); perr != nil {
		err = perr
	}

	if ctx.Err() != nil {
		return // Closed; nobody is listening.
	}

	e.Spawn(Do(func() { g.finish(err) }))
}

func (g *Generator[T]) deliver(v T) {
	if g.state != genRequested {
		return
	}
	g.value = v
	g.state = genReady
	g.Notify()
}

func (g *Generator[T]) finish(err error) {
	if g.state == genDone {
		return
	}
	g.state = genDone
	g.err = err
	g.cancel()
	g.Notify()
}

// Err returns the failure of g, once g is done.
// It returns nil if g is exhausted without failure, or if g is not yet done.
func (g *Generator[T]) Err() error {
	if g.state != genDone {
		return nil
	}
	return g.err
}

// Close stops the producer of g.
// Later pulls report that g is done, with [ErrClosed] as its failure unless
// g was already done.
//
// Close must not be called concurrently with tasks pulling g.
func (g *Generator[T]) Close() {
	if g.state == genDone {
		return
	}
	var zero T
	g.value = zero
	g.state = genDone
	g.err = ErrClosed
	if g.cancel != nil {
		g.cancel()
	}
}

// Next returns a [Task] that awaits the next value of g, stores it in *v,
// sets *ok to true, and then ends.
// If g is exhausted, the task sets *ok to false and ends.
// If g fails, the task sets *ok to false and fails with the same error.
func (g *Generator[T]) Next(v *T, ok *bool) Task {
	return func(co *Coroutine) Result {
		x, r := g.poll(co.Executor())
		switch r {
		case pollPending:
			return co.Yield(g)
		case pollValue:
			*v, *ok = x, true
			return co.End()
		default:
			*ok = false
			if err := g.Err(); err != nil {
				return co.Throw(err)
			}
			return co.End()
		}
	}
}
