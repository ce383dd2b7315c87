package actor

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/actor/pkg/domain"
	"github.com/aretw0/actor/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failing() *Actor {
	return Define("Fails").
		Perform(func(ctx *Context) error { return ctx.Fail(map[string]any{"why": "no"}) }).
		MustBuild()
}

func TestEngine_Variants(t *testing.T) {
	e := New()

	for name, call := range map[string]func(*Actor, any) (*Context, error){
		"Call":    e.Call,
		"Perform": e.Perform,
		"pkg":     Call,
		"pkgAlt":  Perform,
	} {
		c, err := call(failing(), nil)
		require.NoError(t, err, name)
		assert.True(t, c.Failed(), name)
	}

	for name, call := range map[string]func(*Actor, any) (*Context, error){
		"CallStrict":    e.CallStrict,
		"PerformStrict": e.PerformStrict,
		"pkg":           CallStrict,
		"pkgAlt":        PerformStrict,
	} {
		c, err := call(failing(), nil)
		f, ok := AsFailure(err)
		require.True(t, ok, name)
		assert.Same(t, c, f.Context, name)
	}
}

func TestEngine_Options(t *testing.T) {
	var buf bytes.Buffer
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	journal := observability.NewJournal()

	e := New(
		WithLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))),
		WithMetrics(metrics),
		WithLifecycleHooks(journal.Hooks()),
	)

	c, err := e.Call(failing(), nil)
	require.NoError(t, err)

	events := journal.Invocation(c.ID())
	require.Len(t, events, 1)
	assert.Equal(t, domain.OutcomeFailure, events[0].Outcome)
	assert.Contains(t, buf.String(), "actor=Fails")

	n, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, n)
}
