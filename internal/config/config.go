// Package config loads the asyncgen configuration file.
package config

import (
	"errors"
	"fmt"

	"github.com/b97tsk/asyncgen/internal/uniform"
)

// Config is the validated configuration.
type Config struct {
	Generator uniform.Config
	Measure   Measure
	Log       Log
}

type Measure struct {
	Parallel int
}

type Log struct {
	Level       string
	Development bool
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Generator: uniform.DefaultConfig(),
		Measure:   Measure{Parallel: 4},
		Log:       Log{Level: "info"},
	}
}

// Kind classifies an [Error].
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindInvalidConfig
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalidConfig:
		return "invalid config"
	default:
		return "unknown"
	}
}

// Error is returned by [Load].
type Error struct {
	Op    string
	Kind  Kind
	Path  string
	Field string
	Err   error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Path)
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an [Error] of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
