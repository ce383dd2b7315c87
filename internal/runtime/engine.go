package runtime

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/actor/internal/logging"
	"github.com/aretw0/actor/pkg/domain"
)

// Engine runs actor definitions: contract validation, hook composition, completion
// tracking and rollback. It holds no per-invocation state and can be shared.
type Engine struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	clock  func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger. A nil logger keeps the default.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithClock overrides the time source used for events.
func WithClock(clock func() time.Time) EngineOption {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// NewEngine creates an engine. Without WithLogger it logs nothing.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: logging.NewNop(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Call runs the actor and reports business failures through the returned context
// only. The error is non-nil for defects: invalid input, unexpected errors
// returned by the actor or its hooks.
func (e *Engine) Call(a *domain.Actor, input any) (*domain.Context, error) {
	c, err := e.CallStrict(a, input)
	if ownFailure(c, err) {
		return c, nil
	}
	return c, err
}

// CallStrict runs the actor and returns the *domain.Failure when the context fails.
// This is the variant organizers use to stop a chain.
func (e *Engine) CallStrict(a *domain.Actor, input any) (*domain.Context, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil actor", domain.ErrInvalidActor)
	}
	c, err := domain.Build(input)
	if err != nil {
		return nil, err
	}
	return c, e.run(a, c, 0)
}
