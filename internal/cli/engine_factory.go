package cli

import (
	"log/slog"

	"github.com/aretw0/actor"
	"github.com/aretw0/actor/pkg/domain"
	"github.com/aretw0/actor/pkg/observability"
)

// createEngine initializes an engine with standard CLI conventions: the shared
// logger for the runner and one log record per lifecycle event.
func createEngine(logger *slog.Logger, hooks ...domain.LifecycleHooks) *actor.Engine {
	opts := []actor.Option{
		actor.WithLogger(logger),
		actor.WithLifecycleHooks(observability.LogHooks(logger)),
	}
	for _, h := range hooks {
		opts = append(opts, actor.WithLifecycleHooks(h))
	}
	return actor.New(opts...)
}
