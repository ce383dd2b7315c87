package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/actor/pkg/domain"
)

// LogHooks returns lifecycle hooks writing one structured record per event.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnActorStart: func(e *domain.ActorEvent) {
			logger.Debug("actor_start",
				"actor", e.Actor,
				"invocation", e.InvocationID,
				"depth", e.Depth,
			)
		},
		OnActorFinish: func(e *domain.ActorEvent) {
			level := slog.LevelInfo
			if e.Outcome == domain.OutcomeDefect {
				level = slog.LevelError
			}
			attrs := []any{
				"actor", e.Actor,
				"invocation", e.InvocationID,
				"depth", e.Depth,
				"phase", e.Phase,
				"outcome", e.Outcome,
				"duration", e.Duration,
			}
			if len(e.Errors) > 0 {
				attrs = append(attrs, "errors", e.Errors)
			}
			if e.Err != nil && e.Outcome == domain.OutcomeDefect {
				attrs = append(attrs, "error", e.Err)
			}
			logger.Log(context.Background(), level, "actor_finish", attrs...)
		},
		OnRollback: func(e *domain.RollbackEvent) {
			logger.Info("rollback",
				"actor", e.Actor,
				"invocation", e.InvocationID,
				"compensated", e.Compensated,
			)
		},
	}
}
