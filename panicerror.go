package asyncgen

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// stop is panicked with to stop a running task whose coroutine is already
// failing.
type stop struct{}

var errStopped = errors.New("asyncgen: stopped")

// try calls f and turns a panic into an error.
func try(f func()) (err error) {
	ok := false
	defer func() {
		if ok {
			return
		}
		v := recover()
		switch v.(type) {
		case nil:
			panic("asyncgen: asyncgen does not support runtime.Goexit()")
		case stop:
			err = errStopped
		default:
			err = &PanicError{Value: v, Stack: debug.Stack()}
		}
	}()
	f()
	ok = true
	return nil
}

// PanicError is the failure of a coroutine, or of a [Generator], that
// panicked.
type PanicError struct {
	Value any    // the value passed to panic
	Stack []byte // stack trace taken where the panic was recovered
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v\n\n%s", e.Value, e.Stack)
}

// Unwrap returns Value if it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
