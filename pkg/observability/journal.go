package observability

import (
	"sync"

	"github.com/aretw0/actor/pkg/domain"
)

// Journal keeps finished actor events in memory, in completion order.
// It is safe to share between invocations running on different goroutines.
type Journal struct {
	mu        sync.Mutex
	events    []domain.ActorEvent
	rollbacks []domain.RollbackEvent
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{}
}

// Hooks returns lifecycle hooks recording into the journal.
func (j *Journal) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnActorFinish: func(e *domain.ActorEvent) {
			j.mu.Lock()
			defer j.mu.Unlock()
			j.events = append(j.events, *e)
		},
		OnRollback: func(e *domain.RollbackEvent) {
			j.mu.Lock()
			defer j.mu.Unlock()
			j.rollbacks = append(j.rollbacks, *e)
		},
	}
}

// Events returns a copy of the recorded finish events.
func (j *Journal) Events() []domain.ActorEvent {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]domain.ActorEvent(nil), j.events...)
}

// Rollbacks returns a copy of the recorded rollback events.
func (j *Journal) Rollbacks() []domain.RollbackEvent {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]domain.RollbackEvent(nil), j.rollbacks...)
}

// Invocation returns the finish events of one invocation.
func (j *Journal) Invocation(id string) []domain.ActorEvent {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []domain.ActorEvent
	for _, e := range j.events {
		if e.InvocationID == id {
			out = append(out, e)
		}
	}
	return out
}

// Reset drops everything recorded so far.
func (j *Journal) Reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = nil
	j.rollbacks = nil
}
