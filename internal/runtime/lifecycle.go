package runtime

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/actor/pkg/domain"
)

// run drives one actor through its lifecycle against c:
//
//	pending -> validating_input -> running -> validating_output -> completed
//
// Any error or panic leaving run triggers the context rollback first.
func (e *Engine) run(a *domain.Actor, c *domain.Context, depth int) (err error) {
	if c.RolledBack() {
		return fmt.Errorf("%w: cannot run %s", domain.ErrContextRolledBack, a)
	}

	start := e.clock()
	log := e.logger.With("actor", a.String(), "invocation", c.ID(), "depth", depth)
	phase := domain.PhasePending
	e.emitStart(a, c, depth)

	defer func() {
		if r := recover(); r != nil {
			log.Error("actor panicked", "phase", phase, "panic", r)
			e.rollback(a, c, log)
			e.emitFinish(a, c, depth, start, domain.PhaseRolledBack, domain.OutcomeDefect, fmt.Errorf("panic: %v", r))
			panic(r)
		}
		if err == nil {
			log.Debug("actor completed")
			e.emitFinish(a, c, depth, start, domain.PhaseCompleted, domain.OutcomeSuccess, nil)
			return
		}

		outcome := domain.OutcomeFailure
		if ownFailure(c, err) {
			log.Info("actor failed", "phase", phase, "errors", c.Errors())
		} else {
			outcome = domain.OutcomeDefect
			log.Error("actor returned an unexpected error", "phase", phase, "error", err)
		}
		final := domain.PhaseFailed
		if e.rollback(a, c, log) {
			final = domain.PhaseRolledBack
		}
		e.emitFinish(a, c, depth, start, final, outcome, err)
	}()

	inst := a.Instance()

	phase = domain.PhaseValidatingInput
	log.Debug("validating input")
	if err := e.validate(a.InputContract(), c); err != nil {
		return err
	}

	phase = domain.PhaseRunning
	log.Debug("running")
	chain, err := e.chain(a, inst, c, depth)
	if err != nil {
		return err
	}
	if err := settle(c, chain()); err != nil {
		return err
	}
	c.MarkCompleted(inst)

	// Output is validated only while the context is still successful.
	phase = domain.PhaseValidatingOutput
	if c.Success() {
		log.Debug("validating output")
		if err := e.validate(a.OutputContract(), c); err != nil {
			return err
		}
	}

	phase = domain.PhaseCompleted
	return nil
}

// rollback compensates the completed actors once and reports whether it ran.
func (e *Engine) rollback(a *domain.Actor, c *domain.Context, log *slog.Logger) bool {
	n := len(c.Completed())
	if !c.Rollback() {
		return false
	}
	log.Info("context rolled back", "compensated", n)
	if e.hooks.OnRollback != nil {
		e.hooks.OnRollback(&domain.RollbackEvent{
			Timestamp:    e.clock(),
			InvocationID: c.ID(),
			Actor:        a.String(),
			Compensated:  n,
		})
	}
	return true
}

// settle turns a silently failed context into a Failure.
// ownFailure reports whether err is the failure signal of c. A failure raised by
// another context is a defect here.
func ownFailure(c *domain.Context, err error) bool {
	f, ok := domain.AsFailure(err)
	return ok && c != nil && f.Context == c
}

func settle(c *domain.Context, err error) error {
	if err != nil {
		return err
	}
	if c.Failed() {
		return &domain.Failure{Context: c}
	}
	return nil
}
