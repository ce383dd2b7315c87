package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/actor/internal/runtime"
	"github.com/aretw0/actor/pkg/domain"
	"github.com/aretw0/actor/pkg/dsl"
	"github.com/aretw0/actor/pkg/observability"
	"github.com/aretw0/actor/pkg/registry"
	"github.com/aretw0/actor/pkg/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	greet := dsl.New("Greet").
		Input(func(c *schema.Builder) {
			c.Required("name").Filled("string")
			c.Required("age").Filled("integer")
		}).
		Perform(func(ctx *domain.Context) error {
			name, _ := ctx.GetString("name")
			ctx.Set("greeting", "Hello, "+name)
			return nil
		}).
		MustBuild()
	broken := dsl.New("Broken").
		Perform(func(*domain.Context) error { return errors.New("database unreachable") }).
		MustBuild()

	engine := runtime.NewEngine(runtime.WithLifecycleHooks(metrics.Hooks()))
	return NewHandler(engine, registry.NewRegistry(greet, broken), WithMetrics(reg))
}

func post(t *testing.T, h http.Handler, path, body string) (*httptest.ResponseRecorder, CallResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp CallResponse
	if w.Code == http.StatusOK || w.Code == http.StatusUnprocessableEntity {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestCallActor_Success(t *testing.T) {
	h := newTestHandler(t)

	w, resp := post(t, h, "/actors/Greet", `{"name":"Alice","age":30}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.InvocationID)
	assert.Equal(t, "Hello, Alice", resp.Attributes["greeting"])
	assert.Equal(t, map[string]any{"greeting": "Hello, Alice"}, resp.Changed)
	assert.Empty(t, resp.Errors)
}

func TestCallActor_BusinessFailure(t *testing.T) {
	h := newTestHandler(t)

	w, resp := post(t, h, "/actors/Greet", `{"name":"Alice"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, []string{"age is required but missing"}, resp.Errors)

	w, resp = post(t, h, "/actors/Greet", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Len(t, resp.Errors, 2)
}

func TestCallActor_Errors(t *testing.T) {
	h := newTestHandler(t)

	w, _ := post(t, h, "/actors/Missing", `{}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "actor not found")

	w, _ = post(t, h, "/actors/Greet", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = post(t, h, "/actors/Broken", `{}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "database unreachable")
}

func TestListActors(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/actors", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["Broken","Greet"]`, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsRoute(t *testing.T) {
	h := newTestHandler(t)
	post(t, h, "/actors/Greet", `{"name":"Alice"}`)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `actor_calls_total{actor="Greet",outcome="failure"} 1`)
}
