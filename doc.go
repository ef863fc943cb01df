// Package asyncgen is a library for consuming asynchronous generators.
//
// An asynchronous generator produces values lazily, one at a time, on its own
// goroutine.
// A consumer pulls values from it inside a [Coroutine], which suspends at each
// retrieval until the generator hands the next value over.
//
// Coroutines are run by an [Executor], a single-threaded runner.
// One can create as many executors as they like.
//
// # Collecting
//
// The most common thing to do with a [Generator] is to drain it into a slice,
// keeping every value in the order it was produced.
// [Collect] returns a [Task] that does exactly that inside an executor, and
// [CollectAll] does it from ordinary Go code:
//
//	g := asyncgen.FromSlice([]float64{1, 2, 3})
//	s, err := asyncgen.CollectAll(ctx, g)
//
// If the generator fails, the failure is returned unchanged together with
// whatever was collected before it.
//
// # Coroutines
//
// A coroutine is spawned with a [Task] function.
// The task returns a [Result] that tells the coroutine to end, to make
// a transition to another task, or to yield and await some events
// (e.g. [Signal], [WaitGroup] and [Generator]).
// A notification of any awaited event resumes the coroutine.
//
// A coroutine can spawn child coroutines.
// Children that have not yet ended are canceled when their parent resumes or
// ends.
// A failure in a child, caused by [Coroutine.Throw] or by a panic, fails the
// parent too, unless the child was started with [Try].
//
// [Join], [Select] and [Spawn] compose tasks that run in child coroutines.
// [Run] runs a task on a fresh executor and blocks until it ends.
package asyncgen
