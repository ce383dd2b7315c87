package runtime

import (
	"fmt"
	"reflect"

	"github.com/aretw0/actor/pkg/domain"
)

type hookFunc func(*domain.Context) error

type aroundFunc func(*domain.Context, domain.Continuation) error

// chain composes the hooks of a around its core operation:
//
//	around[0]( around[1]( ... before..., core, after (reversed) ... ) )
//
// Each around hook receives a continuation for the rest of the chain. Named hooks
// are resolved against inst before anything runs.
func (e *Engine) chain(a *domain.Actor, inst domain.Performer, c *domain.Context, depth int) (domain.Continuation, error) {
	before, err := resolveHooks(inst, a.Hooks.Before)
	if err != nil {
		return nil, err
	}
	after, err := resolveHooks(inst, a.Hooks.After)
	if err != nil {
		return nil, err
	}
	around := make([]aroundFunc, len(a.Hooks.Around))
	for i, h := range a.Hooks.Around {
		fn, err := resolveAround(inst, h)
		if err != nil {
			return nil, err
		}
		around[i] = fn
	}

	core := func() error {
		if a.IsOrganizer() {
			return e.organize(a, c, depth)
		}
		return inst.Call(c)
	}

	next := domain.Continuation(func() error {
		for _, h := range before {
			if err := settle(c, h(c)); err != nil {
				return err
			}
		}
		if err := settle(c, core()); err != nil {
			return err
		}
		// After hooks only run while the context is successful; settle stops the
		// loop as soon as one of them fails it.
		for i := len(after) - 1; i >= 0; i-- {
			if err := settle(c, after[i](c)); err != nil {
				return err
			}
		}
		return nil
	})

	for i := len(around) - 1; i >= 0; i-- {
		hook, inner := around[i], next
		next = func() error {
			err, innerErr := callAround(hook, c, inner)
			if innerErr == nil {
				return settle(c, err)
			}
			// The inner error wins unless the hook itself broke.
			if err != nil && !ownFailure(c, err) {
				return err
			}
			return innerErr
		}
	}
	return next, nil
}

// unwind is panicked by a continuation whose inner chain returned an error, so
// the hook's code after next() is skipped. Deferred calls in the hook still run.
type unwind struct{}

// callAround runs hook with a continuation over inner. innerErr is what inner
// returned; err is what the hook returned, nil when it was unwound.
func callAround(hook aroundFunc, c *domain.Context, inner domain.Continuation) (err, innerErr error) {
	defer func() {
		if innerErr == nil {
			return
		}
		if r := recover(); r != nil {
			if _, ok := r.(unwind); !ok {
				panic(r)
			}
		}
	}()
	err = hook(c, func() error {
		if innerErr = inner(); innerErr != nil {
			panic(unwind{})
		}
		return nil
	})
	return err, innerErr
}

func resolveHooks(inst domain.Performer, hooks []domain.Hook) ([]hookFunc, error) {
	fns := make([]hookFunc, len(hooks))
	for i, h := range hooks {
		if h.Fn != nil {
			fns[i] = h.Fn
			continue
		}
		m, err := method(inst, h.Method)
		if err != nil {
			return nil, err
		}
		switch fn := m.(type) {
		case func():
			fns[i] = func(*domain.Context) error { fn(); return nil }
		case func() error:
			fns[i] = func(*domain.Context) error { return fn() }
		case func(*domain.Context):
			fns[i] = func(c *domain.Context) error { fn(c); return nil }
		case func(*domain.Context) error:
			fns[i] = fn
		default:
			return nil, fmt.Errorf("%w: %T.%s has unsupported signature %T", domain.ErrHookNotFound, inst, h.Method, m)
		}
	}
	return fns, nil
}

func resolveAround(inst domain.Performer, h domain.AroundHook) (aroundFunc, error) {
	if h.Fn != nil {
		return h.Fn, nil
	}
	m, err := method(inst, h.Method)
	if err != nil {
		return nil, err
	}
	switch fn := m.(type) {
	case func(domain.Continuation) error:
		return func(_ *domain.Context, next domain.Continuation) error { return fn(next) }, nil
	case func(func() error) error:
		return func(_ *domain.Context, next domain.Continuation) error { return fn(next) }, nil
	case func(*domain.Context, domain.Continuation) error:
		return fn, nil
	case func(*domain.Context, func() error) error:
		return func(c *domain.Context, next domain.Continuation) error { return fn(c, next) }, nil
	default:
		return nil, fmt.Errorf("%w: %T.%s has unsupported signature %T", domain.ErrHookNotFound, inst, h.Method, m)
	}
}

// method returns the bound method value named name on inst.
func method(inst domain.Performer, name string) (any, error) {
	m := reflect.ValueOf(inst).MethodByName(name)
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %T has no method %s", domain.ErrHookNotFound, inst, name)
	}
	return m.Interface(), nil
}
