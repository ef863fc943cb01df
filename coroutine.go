package asyncgen

import "slices"

type action int

const (
	_ action = iota
	doYield
	doTransition
	doEnd
	doThrow
)

const (
	flagResumed = 1 << iota
	flagEnqueued
	flagEnded
	flagCanceled
	flagFailing
	flagRecyclable
	flagRecycled
)

// A Coroutine is an execution of code, similar to a goroutine but cooperative
// and stackless.
//
// A coroutine is created with a function called [Task].
// A coroutine's job is to end the task.
// When an [Executor] spawns a coroutine with a task, it runs the coroutine by
// calling the task function with the coroutine as the argument.
// The return value determines whether to end the coroutine or to yield it
// so that it could resume later.
//
// In order for a coroutine to resume, the coroutine must watch at least one
// [Event] (e.g. [Signal], [WaitGroup] and [Generator], etc.), when calling the task
// function.
// A notification of such an event resumes the coroutine.
// When a coroutine is resumed, the executor runs the coroutine again.
type Coroutine struct {
	flag     uint8
	level    uint32
	parent   *Coroutine
	executor *Executor
	task     Task
	deps     map[Event]struct{}
	cleanups []Cleanup
	exit     func(err error) error
	err      error
}

func (co *Coroutine) init(e *Executor, t Task) *Coroutine {
	co.flag = flagResumed
	co.level = 0
	co.executor = e
	co.task = t
	return co
}

func (co *Coroutine) recyclable() *Coroutine {
	co.flag |= flagRecyclable
	return co
}

func (co *Coroutine) less(other *Coroutine) bool {
	return co.level < other.level
}

// Resume resumes co.
//
// One should only call this method in a [Task] function.
func (co *Coroutine) Resume() {
	co.executor.resumeCoroutine(co)
}

func (co *Coroutine) run() (yielded bool) {
	var res Result

	for {
		co.clearDeps()
		co.clearCleanups()

		co.flag &^= flagResumed

		if err := try(func() { res = co.task(co) }); err != nil {
			if err != errStopped {
				co.err = err
			}
			res = Result{action: doThrow}
		}

		if res.task != nil {
			co.task = res.task
		}

		if res.action != doTransition {
			break
		}
	}

	if res.action == doYield {
		return true
	}

	co.end()
	co.finish()

	if co.flag&flagEnqueued == 0 {
		co.executor.freeCoroutine(co)
	}

	return false
}

func (co *Coroutine) end() {
	co.flag |= flagEnded
	co.clearDeps()
	co.clearCleanups()
	co.removeFromParent()
}

// finish reports how co ended to whoever is interested.
func (co *Coroutine) finish() {
	err := co.err
	if exit := co.exit; exit != nil {
		err = exit(err)
	}
	if err == nil {
		return
	}
	if parent := co.parent; parent != nil {
		parent.raise(err)
		return
	}
	co.executor.unhandled(err)
}

// raise makes co fail with err as soon as co runs again.
func (co *Coroutine) raise(err error) {
	if co.flag&flagEnded != 0 {
		return
	}
	if co.err == nil {
		co.err = err
	}
	co.flag |= flagFailing
	co.task = (*Coroutine).rethrow
	co.Resume()
}

func (co *Coroutine) rethrow() Result {
	return Result{action: doThrow}
}

func (co *Coroutine) cancel() {
	co.flag |= flagCanceled
	co.end()

	if co.err != nil && co.parent != nil {
		co.parent.raise(co.err) // A cleanup panicked.
	}

	if co.flag&flagEnqueued == 0 {
		co.executor.freeCoroutine(co)
	}
}

func (co *Coroutine) clearDeps() {
	deps := co.deps
	for d := range deps {
		delete(deps, d)
		d.removeListener(co)
	}
}

func (co *Coroutine) clearCleanups() {
	cleanups := co.cleanups
	co.cleanups = nil
	for _, c := range slices.Backward(cleanups) {
		if err := try(c.Cleanup); err != nil && co.err == nil {
			co.err = err
			co.flag |= flagFailing
			co.task = (*Coroutine).rethrow
		}
	}
	clear(cleanups)
	if co.cleanups == nil {
		co.cleanups = cleanups[:0]
	}
}

func (co *Coroutine) removeFromParent() {
	parent := co.parent
	if parent == nil {
		return
	}
	for i, c := range parent.cleanups {
		if c == (*childCoroutineCleanup)(co) {
			parent.cleanups = slices.Delete(parent.cleanups, i, i+1)
			break
		}
	}
}

type childCoroutineCleanup Coroutine

func (child *childCoroutineCleanup) Cleanup() {
	(*Coroutine)(child).cancel()
}

// Parent returns the parent coroutine of co.
func (co *Coroutine) Parent() *Coroutine {
	return co.parent
}

// Executor returns the executor that spawned co.
func (co *Coroutine) Executor() *Executor {
	return co.executor
}

// Ended reports whether co has already ended.
func (co *Coroutine) Ended() bool {
	return co.flag&flagEnded != 0
}

// Resumed reports whether co has been resumed.
func (co *Coroutine) Resumed() bool {
	return co.flag&flagResumed != 0
}

// Canceled reports whether co has been canceled.
//
// A child coroutine is canceled when its parent resumes or ends before it.
// A canceled coroutine ends without running its task again, but it still
// runs its cleanups, during which Canceled reports true.
func (co *Coroutine) Canceled() bool {
	return co.flag&flagCanceled != 0
}

// Watch watches some events so that, when any of them notifies, co resumes.
func (co *Coroutine) Watch(ev ...Event) {
	if co.Ended() {
		return
	}
	for _, d := range ev {
		deps := co.deps
		if deps == nil {
			deps = make(map[Event]struct{})
			co.deps = deps
		}
		deps[d] = struct{}{}
		d.addListener(co)
	}
}

// Cleanup represents any type that carries a Cleanup method.
// A Cleanup can be added to a coroutine in a [Task] function for making
// an effect some time later when the coroutine resumes or ends, or when
// the coroutine is making a transition to work on another [Task].
type Cleanup interface {
	Cleanup()
}

// A CleanupFunc is a func() that implements the [Cleanup] interface.
type CleanupFunc func()

// Cleanup implements the [Cleanup] interface.
func (f CleanupFunc) Cleanup() { f() }

// Cleanup adds something to clean up when co resumes or ends, or when co is
// making a transition to work on another [Task].
func (co *Coroutine) Cleanup(c Cleanup) {
	if co.Ended() {
		panic("asyncgen: coroutine has already ended")
	}
	if c == nil {
		return
	}
	co.cleanups = append(co.cleanups, c)
}

// CleanupFunc adds a function call when co resumes or ends, or when co is
// making a transition to work on another [Task].
func (co *Coroutine) CleanupFunc(f func()) {
	if f == nil {
		return
	}
	co.Cleanup(CleanupFunc(f))
}

// Spawn creates a child coroutine to work on t.
//
// Spawn runs t immediately. If t fails immediately, co fails too and the
// running task of co stops right there.
//
// Child coroutines, if not yet ended, are canceled when the parent one resumes
// or ends, or when the parent one is making a transition to work on another
// [Task].
func (co *Coroutine) Spawn(t Task) {
	co.spawn(t, nil)
}

// spawn creates a child coroutine to work on t.
// When the child ends (but not when it is canceled), exit is called with its
// failure, if any; what exit returns is then raised in co.
func (co *Coroutine) spawn(t Task, exit func(err error) error) {
	if co.Ended() {
		panic("asyncgen: coroutine has already ended")
	}

	level := co.level + 1
	if level == 0 {
		panic("asyncgen: too many levels")
	}

	child := co.executor.newCoroutine().init(co.executor, must(t)).recyclable()
	child.level = level
	child.parent = co
	child.exit = exit

	switch yielded := child.run(); {
	case yielded:
		co.cleanups = append(co.cleanups, (*childCoroutineCleanup)(child))
	case co.flag&flagFailing != 0:
		panic(stop{}) // Stop current task.
	}
}

// Result is the type of the return value of a [Task] function.
// A Result determines what next for a coroutine to do after running a task.
//
// A Result can be created by calling one of the following methods:
//   - [Coroutine.Await]: for creating a [PendingResult] that can be transformed
//     into a [Result] with one of its methods, which will then cause
//     the running coroutine to yield;
//   - [Coroutine.Yield]: for yielding a coroutine with additional events to
//     watch and, when resumed, reiterating the running task;
//   - [Coroutine.Transition]: for making a transition to work on another task;
//   - [Coroutine.End]: for ending the running task of a coroutine;
//   - [Coroutine.Throw]: for failing a coroutine.
//
// One should just return a Result right after it is created.
type Result struct {
	action action
	task   Task // used by doYield and doTransition
}

// PendingResult is the return type of the [Coroutine.Await] method.
// A PendingResult is an intermediate value that must be transformed into
// a [Result] with one of its methods before returning from a [Task].
type PendingResult struct {
	res Result
}

// Reiterate returns a [Result] that will cause the running coroutine to yield
// and, when resumed, reiterate the running task.
func (pr PendingResult) Reiterate() Result {
	return pr.res
}

// Then returns a [Result] that will cause the running coroutine to yield and,
// when resumed, make a transition to work on another [Task].
func (pr PendingResult) Then(t Task) Result {
	pr.res.task = must(t)
	return pr.res
}

// End returns a [Result] that will cause the running coroutine to yield and,
// when resumed, end the running task.
func (pr PendingResult) End() Result {
	return pr.Then(End())
}

// Await returns a [PendingResult] that can be transformed into a [Result]
// with one of its methods, which will then cause co to yield.
// Await also accepts additional events to watch.
func (co *Coroutine) Await(ev ...Event) PendingResult {
	if len(ev) != 0 {
		co.Watch(ev...)
	}
	return PendingResult{res: Result{action: doYield}}
}

// Yield returns a [Result] that will cause co to yield and, when co is resumed,
// reiterate the running task.
// Yield also accepts additional events to watch.
func (co *Coroutine) Yield(ev ...Event) Result {
	return co.Await(ev...).Reiterate()
}

// Transition returns a [Result] that will cause co to make a transition to
// work on t.
func (co *Coroutine) Transition(t Task) Result {
	return Result{action: doTransition, task: must(t)}
}

// End returns a [Result] that will cause co to end its current running task.
func (co *Coroutine) End() Result {
	return Result{action: doEnd}
}

// Throw returns a [Result] that will cause co to fail with err.
// The failure propagates to the parent coroutine, if any.
func (co *Coroutine) Throw(err error) Result {
	if err == nil {
		panic("asyncgen: Throw called with nil error")
	}
	co.err = err
	return Result{action: doThrow}
}
