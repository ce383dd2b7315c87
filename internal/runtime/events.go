package runtime

import (
	"time"

	"github.com/aretw0/actor/pkg/domain"
)

func (e *Engine) emitStart(a *domain.Actor, c *domain.Context, depth int) {
	if e.hooks.OnActorStart == nil {
		return
	}
	e.hooks.OnActorStart(&domain.ActorEvent{
		Timestamp:    e.clock(),
		InvocationID: c.ID(),
		Actor:        a.String(),
		Depth:        depth,
		Phase:        domain.PhasePending,
	})
}

func (e *Engine) emitFinish(a *domain.Actor, c *domain.Context, depth int, start time.Time, phase domain.Phase, outcome domain.Outcome, err error) {
	if e.hooks.OnActorFinish == nil {
		return
	}
	now := e.clock()
	e.hooks.OnActorFinish(&domain.ActorEvent{
		Timestamp:    now,
		InvocationID: c.ID(),
		Actor:        a.String(),
		Depth:        depth,
		Phase:        phase,
		Outcome:      outcome,
		Duration:     now.Sub(start),
		Errors:       c.Errors(),
		Err:          err,
	})
}
