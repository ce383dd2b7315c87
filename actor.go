package actor

import (
	"log/slog"

	"github.com/aretw0/actor/internal/runtime"
	"github.com/aretw0/actor/pkg/domain"
	"github.com/aretw0/actor/pkg/dsl"
	"github.com/aretw0/actor/pkg/observability"
)

type (
	// Actor is an actor definition. See package dsl for the builder.
	Actor = domain.Actor
	// Context is the shared state of one invocation.
	Context = domain.Context
	// Failure is the error returned by the strict variants when the context fails.
	Failure = domain.Failure
	// Performer is an actor instance.
	Performer = domain.Performer
	// Continuation resumes the chain wrapped by an around hook.
	Continuation = domain.Continuation
)

// Engine is the high-level entry point for the library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime *runtime.Engine
	hooks   []domain.LifecycleHooks
	logger  *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks. It may be given several times.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = append(e.hooks, hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics records every invocation in m.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.hooks = append(e.hooks, m.Hooks())
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	var runtimeOpts []runtime.EngineOption
	if eng.logger != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithLogger(eng.logger))
	}
	switch len(eng.hooks) {
	case 0:
	case 1:
		runtimeOpts = append(runtimeOpts, runtime.WithLifecycleHooks(eng.hooks[0]))
	default:
		runtimeOpts = append(runtimeOpts, runtime.WithLifecycleHooks(domain.CombineHooks(eng.hooks...)))
	}
	eng.runtime = runtime.NewEngine(runtimeOpts...)
	return eng
}

// Call runs a against input and returns the resulting context. Business failures
// are reported through the context only; a non-nil error is a defect.
//
// input may be a *Context (reused as is), a map, a slice of domain.Attr or a struct.
func (e *Engine) Call(a *Actor, input any) (*Context, error) {
	return e.runtime.Call(a, input)
}

// CallStrict is like Call but returns a *Failure when the context fails.
func (e *Engine) CallStrict(a *Actor, input any) (*Context, error) {
	return e.runtime.CallStrict(a, input)
}

// Perform is another name for Call.
func (e *Engine) Perform(a *Actor, input any) (*Context, error) {
	return e.runtime.Call(a, input)
}

// PerformStrict is another name for CallStrict.
func (e *Engine) PerformStrict(a *Actor, input any) (*Context, error) {
	return e.runtime.CallStrict(a, input)
}

var defaultEngine = New()

// Call runs a on the default engine. See Engine.Call.
func Call(a *Actor, input any) (*Context, error) {
	return defaultEngine.Call(a, input)
}

// CallStrict runs a on the default engine. See Engine.CallStrict.
func CallStrict(a *Actor, input any) (*Context, error) {
	return defaultEngine.CallStrict(a, input)
}

// Perform is another name for Call.
func Perform(a *Actor, input any) (*Context, error) {
	return defaultEngine.Call(a, input)
}

// PerformStrict is another name for CallStrict.
func PerformStrict(a *Actor, input any) (*Context, error) {
	return defaultEngine.CallStrict(a, input)
}

// Define starts an actor definition.
func Define(name string) *dsl.Builder {
	return dsl.New(name)
}

// Organize starts the definition of an organizer running steps in order.
func Organize(name string, steps ...*Actor) *dsl.Builder {
	return dsl.Organize(name, steps...)
}

// AsFailure reports whether err is, or wraps, a *Failure.
func AsFailure(err error) (*Failure, bool) {
	return domain.AsFailure(err)
}
