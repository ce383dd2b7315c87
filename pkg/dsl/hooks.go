package dsl

import (
	"fmt"
	"strings"

	"github.com/aretw0/actor/pkg/domain"
)

// Hook converts a before/after declaration. Accepted forms:
//
//	"methodName"                    resolved on the actor instance at run time
//	func()
//	func() error
//	func(*domain.Context)
//	func(*domain.Context) error
//	domain.Hook
func Hook(h any) (domain.Hook, error) {
	switch fn := h.(type) {
	case string:
		name := strings.TrimSpace(fn)
		if name == "" {
			return domain.Hook{}, fmt.Errorf("empty method name")
		}
		return domain.Hook{Method: name}, nil
	case domain.Hook:
		if fn.Fn == nil && fn.Method == "" {
			return domain.Hook{}, fmt.Errorf("hook has neither function nor method")
		}
		return fn, nil
	case func():
		return domain.Hook{Fn: func(*domain.Context) error { fn(); return nil }}, nil
	case func() error:
		return domain.Hook{Fn: func(*domain.Context) error { return fn() }}, nil
	case func(*domain.Context):
		return domain.Hook{Fn: func(c *domain.Context) error { fn(c); return nil }}, nil
	case func(*domain.Context) error:
		return domain.Hook{Fn: fn}, nil
	default:
		return domain.Hook{}, fmt.Errorf("unsupported hook %T", h)
	}
}

// AroundHook converts an around declaration. Accepted forms:
//
//	"methodName"                                    resolved on the actor instance
//	func(next domain.Continuation) error
//	func(next func() error) error
//	func(*domain.Context, domain.Continuation) error
//	func(*domain.Context, func() error) error
//	domain.AroundHook
func AroundHook(h any) (domain.AroundHook, error) {
	switch fn := h.(type) {
	case string:
		name := strings.TrimSpace(fn)
		if name == "" {
			return domain.AroundHook{}, fmt.Errorf("empty method name")
		}
		return domain.AroundHook{Method: name}, nil
	case domain.AroundHook:
		if fn.Fn == nil && fn.Method == "" {
			return domain.AroundHook{}, fmt.Errorf("hook has neither function nor method")
		}
		return fn, nil
	case func(domain.Continuation) error:
		return domain.AroundHook{Fn: func(_ *domain.Context, next domain.Continuation) error { return fn(next) }}, nil
	case func(func() error) error:
		return domain.AroundHook{Fn: func(_ *domain.Context, next domain.Continuation) error { return fn(next) }}, nil
	case func(*domain.Context, domain.Continuation) error:
		return domain.AroundHook{Fn: fn}, nil
	case func(*domain.Context, func() error) error:
		return domain.AroundHook{Fn: func(c *domain.Context, next domain.Continuation) error { return fn(c, next) }}, nil
	default:
		return domain.AroundHook{}, fmt.Errorf("unsupported around hook %T", h)
	}
}
