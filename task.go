package asyncgen

// A Task is a piece of work that a coroutine is given to do when it is spawned.
// The return value of a task, a [Result], determines what next for a coroutine
// to do.
//
// co must not escape to another goroutine because, co may be put into pool for
// recycling when co ends.
type Task func(co *Coroutine) Result

func must(t Task) Task {
	if t == nil {
		panic("asyncgen: nil Task")
	}
	return t
}

// Then returns a [Task] that first works on t, then next after t ends.
// If t fails, next is not run.
//
// To chain multiple tasks, use [Block] function.
func (t Task) Then(next Task) Task {
	must(t)
	must(next)
	return func(co *Coroutine) Result {
		return co.Transition(then(t, next))
	}
}

// then returns a task that stays the running task of a coroutine until t
// ends, so that, when t yields, it is resumed inside the same wrapper.
func then(t, next Task) Task {
	var self Task
	self = func(co *Coroutine) Result {
		res := t(co)
		switch res.action {
		case doEnd:
			return co.Transition(next)
		case doYield, doTransition:
			if res.task != nil {
				t = res.task
			}
			res.task = self
			return res
		default:
			return res
		}
	}
	return self
}

// Block returns a [Task] that runs each of the given tasks in sequence.
// When one task ends, Block runs another.
func Block(s ...Task) Task {
	switch len(s) {
	case 0:
		return End()
	case 1:
		return must(s[0])
	}
	t := s[len(s)-1]
	for i := len(s) - 2; i >= 0; i-- {
		t = s[i].Then(t)
	}
	return t
}

// Do returns a [Task] that calls f, and then ends.
func Do(f func()) Task {
	return func(co *Coroutine) Result {
		f()
		return co.End()
	}
}

// End returns a [Task] that ends without doing anything.
func End() Task {
	return (*Coroutine).End
}

// Throw returns a [Task] that causes the coroutine that runs it to fail with
// err.
func Throw(err error) Task {
	return func(co *Coroutine) Result {
		return co.Throw(err)
	}
}

// Await returns a [Task] that awaits some events until any of them notifies,
// and then ends.
// If ev is empty, Await returns a [Task] that never ends.
func Await(ev ...Event) Task {
	return func(co *Coroutine) Result {
		return co.Await(ev...).End()
	}
}

// Spawn returns a [Task] that runs t in a child coroutine and awaits until
// t ends, and then ends.
// A failure of t fails the coroutine that runs the returned task.
func Spawn(t Task) Task {
	must(t)
	return func(co *Coroutine) Result {
		co.spawn(t, func(err error) error {
			co.Resume()
			return err
		})
		return co.Await().End()
	}
}

// Try returns a [Task] that runs t in a child coroutine and awaits until
// t ends, and then ends.
// Unlike [Spawn], a failure of t is stored in *err instead of failing
// the coroutine that runs the returned task.
// If t ends without failure, *err is set to nil.
func Try(t Task, err *error) Task {
	must(t)
	return func(co *Coroutine) Result {
		*err = nil
		co.spawn(t, func(e error) error {
			*err = e
			co.Resume()
			return nil
		})
		return co.Await().End()
	}
}

// Join returns a [Task] that runs each of the given tasks in its own
// child coroutine and awaits until all of them end, and then ends.
// If any of them fails, the others are canceled and the coroutine that runs
// the returned task fails too.
//
// When passed no arguments, Join returns a [Task] that ends immediately.
func Join(s ...Task) Task {
	for _, t := range s {
		must(t)
	}
	return func(co *Coroutine) Result {
		var wg WaitGroup
		wg.Add(len(s))
		for _, t := range s {
			co.spawn(t, func(err error) error {
				wg.Done()
				return err
			})
		}
		if wg.n == 0 {
			return co.End()
		}
		return co.Await(&wg).End()
	}
}

// Select returns a [Task] that runs each of the given tasks in its own
// child coroutine and awaits until any of them ends, and then ends.
// When Select ends, tasks other than the one that ends are canceled.
//
// When passed no arguments, Select returns a [Task] that never ends.
func Select(s ...Task) Task {
	for _, t := range s {
		must(t)
	}
	return func(co *Coroutine) Result {
		for _, t := range s {
			co.spawn(t, func(err error) error {
				co.Resume()
				return err
			})
			if co.Resumed() {
				break
			}
		}
		return co.Await().End()
	}
}
