package runtime

import (
	"errors"
	"testing"

	"github.com/aretw0/actor/pkg/domain"
	"github.com/aretw0/actor/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trace []string

func (t *trace) add(s string) func() { return func() { *t = append(*t, s) } }

func (t *trace) around(name string) func(domain.Continuation) error {
	return func(next domain.Continuation) error {
		*t = append(*t, name+":in")
		if err := next(); err != nil {
			return err
		}
		*t = append(*t, name+":out")
		return nil
	}
}

func TestChain_Order(t *testing.T) {
	var got trace
	a := dsl.New("Ordered").
		Around(got.around("outer"), got.around("inner")).
		Before(got.add("before1"), got.add("before2")).
		After(got.add("after1"), got.add("after2")).
		Perform(func(*domain.Context) error { got.add("core")(); return nil }).
		MustBuild()

	c, err := NewEngine().Call(a, nil)
	require.NoError(t, err)
	assert.True(t, c.Success())
	assert.Equal(t, trace{
		"outer:in", "inner:in",
		"before1", "before2",
		"core",
		"after2", "after1",
		"inner:out", "outer:out",
	}, got)
}

func TestChain_FailureStopsTheChain(t *testing.T) {
	var got trace
	a := dsl.New("Failing").
		Around(got.around("outer")).
		Before(got.add("before")).
		After(got.add("after")).
		Perform(func(ctx *domain.Context) error {
			got.add("core")()
			return ctx.Fail(map[string]any{"why": "core"})
		}).
		MustBuild()

	c, err := NewEngine().Call(a, nil)
	require.NoError(t, err)
	assert.True(t, c.Failed())
	assert.Equal(t, trace{"outer:in", "before", "core"}, got)
}

func TestChain_BeforeFailureSkipsCore(t *testing.T) {
	var got trace
	a := dsl.New("Guarded").
		Before(func(ctx *domain.Context) error { return ctx.Fail(map[string]any{"guard": true}) }).
		Before(got.add("second before")).
		Perform(func(*domain.Context) error { got.add("core")(); return nil }).
		MustBuild()

	c, err := NewEngine().Call(a, nil)
	require.NoError(t, err)
	assert.True(t, c.Failed())
	assert.Empty(t, got)
}

func TestChain_AroundWithoutContinuation(t *testing.T) {
	var got trace
	a := dsl.New("ShortCircuit").
		Before(got.add("before")).
		Around(func(ctx *domain.Context, _ domain.Continuation) error {
			ctx.Set("cached", true)
			return nil
		}).
		After(got.add("after")).
		Perform(func(*domain.Context) error { got.add("core")(); return nil }).
		MustBuild()

	c, err := NewEngine().Call(a, nil)
	require.NoError(t, err)
	assert.True(t, c.Success())
	assert.Equal(t, true, c.Get("cached"))
	assert.Empty(t, got, "before hooks run inside the around hooks")
}

func TestChain_InnerFailureWinsOverAroundResult(t *testing.T) {
	var got trace
	a := dsl.New("Swallowing").
		Around(func(next domain.Continuation) error {
			defer got.add("deferred")()
			_ = next()
			got.add("trailing")()
			return nil
		}).
		Perform(func(ctx *domain.Context) error { return ctx.Fail() }).
		MustBuild()

	c, err := NewEngine().CallStrict(a, nil)
	_, ok := domain.AsFailure(err)
	assert.True(t, ok, "an around hook cannot hide an inner failure")
	assert.True(t, c.Failed())
	assert.True(t, c.RolledBack())
	assert.Equal(t, trace{"deferred"}, got, "code after a failed continuation is skipped")
}

func TestChain_NestedAroundSkipsTrailingCode(t *testing.T) {
	var got trace
	swallow := func(name string) func(domain.Continuation) error {
		return func(next domain.Continuation) error {
			got.add(name + ":in")()
			_ = next()
			got.add(name + ":out")()
			return nil
		}
	}
	a := dsl.New("Nested").
		Around(swallow("outer"), swallow("inner")).
		After(got.add("after")).
		Perform(func(ctx *domain.Context) error { return ctx.Fail(map[string]any{"why": "core"}) }).
		MustBuild()

	c, err := NewEngine().Call(a, nil)
	require.NoError(t, err)
	assert.True(t, c.Failed())
	assert.Equal(t, "core", c.Get("why"))
	assert.Equal(t, trace{"outer:in", "inner:in"}, got)
}

func TestChain_AroundDefectWinsOverInnerFailure(t *testing.T) {
	boom := errors.New("boom")
	a := dsl.New("Broken").
		Around(func(next domain.Continuation) (err error) {
			defer func() {
				if recover() != nil {
					err = boom
				}
			}()
			return next()
		}).
		Perform(func(ctx *domain.Context) error { return ctx.Fail() }).
		MustBuild()

	c, err := NewEngine().Call(a, nil)
	assert.ErrorIs(t, err, boom, "a broken hook is reported, not masked by the failure")
	_, ok := domain.AsFailure(err)
	assert.False(t, ok)
	assert.True(t, c.RolledBack())
}

func TestChain_AroundPanicAfterFailurePropagates(t *testing.T) {
	a := dsl.New("Panicking").
		Around(func(next domain.Continuation) error {
			defer func() { panic("cleanup") }()
			return next()
		}).
		Perform(func(ctx *domain.Context) error { return ctx.Fail() }).
		MustBuild()

	assert.Panics(t, func() { _, _ = NewEngine().Call(a, nil) })
}

func TestChain_AroundCanFail(t *testing.T) {
	a := dsl.New("Denied").
		Around(func(ctx *domain.Context, next domain.Continuation) error {
			if !ctx.Has("token") {
				return ctx.Fail(map[string]any{"message": "unauthorized"})
			}
			return next()
		}).
		MustBuild()

	c, err := NewEngine().Call(a, nil)
	require.NoError(t, err)
	assert.True(t, c.Failed())
	assert.Equal(t, "unauthorized", c.Get("message"))

	c, err = NewEngine().Call(a, map[string]any{"token": "t"})
	require.NoError(t, err)
	assert.True(t, c.Success())
}

func TestChain_HookDefect(t *testing.T) {
	boom := errors.New("boom")
	a := dsl.New("Broken").
		After(func() error { return boom }).
		MustBuild()

	c, err := NewEngine().Call(a, nil)
	assert.ErrorIs(t, err, boom)
	assert.True(t, c.Success(), "a defect does not fail the context")
	assert.True(t, c.RolledBack())
}

type audited struct {
	log *trace
}

func (a *audited) Call(ctx *domain.Context) error {
	a.log.add("core")()
	ctx.Set("done", true)
	return nil
}

func (a *audited) Rollback(*domain.Context) { a.log.add("rollback")() }

func (a *audited) Prepare() { a.log.add("prepare")() }

func (a *audited) Audit(ctx *domain.Context) error {
	a.log.add("audit")()
	return nil
}

func (a *audited) Measure(next domain.Continuation) error {
	a.log.add("measure:in")()
	if err := next(); err != nil {
		return err
	}
	a.log.add("measure:out")()
	return nil
}

func (a *audited) Wrong(int) {}

func TestChain_NamedHooks(t *testing.T) {
	var got trace
	build := func(hook string) *domain.Actor {
		return dsl.New("Audited").
			Instance(func() domain.Performer { return &audited{log: &got} }).
			Around("Measure").
			Before("Prepare").
			After(hook).
			MustBuild()
	}

	c, err := NewEngine().Call(build("Audit"), nil)
	require.NoError(t, err)
	assert.True(t, c.Success())
	assert.Equal(t, trace{"measure:in", "prepare", "core", "audit", "measure:out"}, got)

	for _, name := range []string{"Missing", "Wrong"} {
		got = nil
		_, err = NewEngine().Call(build(name), nil)
		assert.ErrorIs(t, err, domain.ErrHookNotFound, name)
		assert.Empty(t, got, "hooks are resolved before anything runs")
	}
}
