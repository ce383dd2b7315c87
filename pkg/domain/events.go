package domain

import "time"

// Phase is a step of the actor lifecycle.
type Phase string

const (
	PhasePending          Phase = "pending"
	PhaseValidatingInput  Phase = "validating_input"
	PhaseRunning          Phase = "running"
	PhaseValidatingOutput Phase = "validating_output"
	PhaseCompleted        Phase = "completed" // Terminal on success
	PhaseFailed           Phase = "failed"
	PhaseRolledBack       Phase = "rolled_back" // Terminal on failure
)

// Outcome classifies how an invocation ended.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure" // Business failure, reported through the context
	OutcomeDefect  Outcome = "defect"  // Unexpected error or panic
)

// ActorEvent describes one actor invocation.
type ActorEvent struct {
	Timestamp    time.Time     `json:"timestamp"`
	InvocationID string        `json:"invocation_id"`
	Actor        string        `json:"actor"`
	Depth        int           `json:"depth"` // 0 for the top-level actor
	Phase        Phase         `json:"phase"`
	Outcome      Outcome       `json:"outcome,omitempty"`
	Duration     time.Duration `json:"duration,omitempty"`
	Errors       []string      `json:"errors,omitempty"`
	Err          error         `json:"-"`
}

// RollbackEvent describes a compensation pass triggered by a failing actor.
type RollbackEvent struct {
	Timestamp    time.Time `json:"timestamp"`
	InvocationID string    `json:"invocation_id"`
	Actor        string    `json:"actor"` // The actor whose failure triggered the rollback
	Compensated  int       `json:"compensated"`
}

// LifecycleHooks defines callbacks for runner observability.
type LifecycleHooks struct {
	OnActorStart  func(*ActorEvent)
	OnActorFinish func(*ActorEvent)
	OnRollback    func(*RollbackEvent)
}

// CombineHooks fans every callback out to all given hooks, in order.
func CombineHooks(hooks ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnActorStart: func(e *ActorEvent) {
			for _, h := range hooks {
				if h.OnActorStart != nil {
					h.OnActorStart(e)
				}
			}
		},
		OnActorFinish: func(e *ActorEvent) {
			for _, h := range hooks {
				if h.OnActorFinish != nil {
					h.OnActorFinish(e)
				}
			}
		},
		OnRollback: func(e *RollbackEvent) {
			for _, h := range hooks {
				if h.OnRollback != nil {
					h.OnRollback(e)
				}
			}
		},
	}
}
