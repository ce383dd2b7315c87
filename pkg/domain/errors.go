package domain

import (
	"errors"
	"strings"
)

// ErrUnsupportedInput is returned when an invocation input cannot seed a Context.
var ErrUnsupportedInput = errors.New("unsupported input")

// ErrContextRolledBack is returned when a rolled-back context is reused for a new invocation.
var ErrContextRolledBack = errors.New("context already rolled back")

// ErrHookNotFound is returned when a named hook cannot be resolved on the actor instance.
var ErrHookNotFound = errors.New("hook not found")

// ErrInvalidActor is returned for actor definitions that cannot be run.
var ErrInvalidActor = errors.New("invalid actor")

// Failure is the signal raised when a context transitions to the failed state.
// It is the only error the non-strict call variant swallows.
type Failure struct {
	Context *Context
}

func (f *Failure) Error() string {
	if f.Context == nil {
		return "actor: context failed"
	}
	if errs := f.Context.Errors(); len(errs) > 0 {
		return "actor: context failed: " + strings.Join(errs, "; ")
	}
	return "actor: context failed"
}

// AsFailure reports whether err is, or wraps, a Failure.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
