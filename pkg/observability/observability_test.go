package observability

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/actor/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	h := m.Hooks()
	h.OnActorFinish(&domain.ActorEvent{Actor: "Greet", Outcome: domain.OutcomeSuccess, Duration: time.Millisecond})
	h.OnActorFinish(&domain.ActorEvent{Actor: "Greet", Outcome: domain.OutcomeFailure})
	h.OnActorFinish(&domain.ActorEvent{Actor: "Greet", Outcome: domain.OutcomeFailure})
	h.OnRollback(&domain.RollbackEvent{Actor: "Greet", Compensated: 2})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.calls.WithLabelValues("Greet", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.calls.WithLabelValues("Greet", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rollbacks.WithLabelValues("Greet")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))

	expected := `
# HELP actor_rollbacks_total Total number of rollbacks triggered by a failing actor
# TYPE actor_rollbacks_total counter
actor_rollbacks_total{actor="Greet"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "actor_rollbacks_total"))
}

func TestMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	var already prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &already)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := LogHooks(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	h.OnActorStart(&domain.ActorEvent{Actor: "Greet", InvocationID: "inv-1"})
	h.OnActorFinish(&domain.ActorEvent{
		Actor:   "Greet",
		Phase:   domain.PhaseRolledBack,
		Outcome: domain.OutcomeDefect,
		Err:     errors.New("boom"),
	})
	h.OnRollback(&domain.RollbackEvent{Actor: "Greet", Compensated: 1})

	out := buf.String()
	assert.Contains(t, out, `"msg":"actor_start"`)
	assert.Contains(t, out, `"level":"ERROR","msg":"actor_finish"`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"compensated":1`)
}

func TestJournal(t *testing.T) {
	j := NewJournal()
	h := domain.CombineHooks(j.Hooks())

	h.OnActorFinish(&domain.ActorEvent{Actor: "A", InvocationID: "1"})
	h.OnActorFinish(&domain.ActorEvent{Actor: "B", InvocationID: "2"})
	h.OnRollback(&domain.RollbackEvent{Actor: "B", InvocationID: "2"})

	require.Len(t, j.Events(), 2)
	assert.Equal(t, "B", j.Invocation("2")[0].Actor)
	assert.Len(t, j.Rollbacks(), 1)

	j.Reset()
	assert.Empty(t, j.Events())
	assert.Empty(t, j.Rollbacks())
}
