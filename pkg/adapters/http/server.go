package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/actor/internal/logging"
	"github.com/aretw0/actor/pkg/domain"
	"github.com/aretw0/actor/pkg/registry"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine defines the call surface the server needs. Only business failures are
// reported through the returned context; a non-nil error is a defect.
type Engine interface {
	Call(a *domain.Actor, input any) (*domain.Context, error)
}

// Server exposes registered actors over HTTP.
type Server struct {
	Engine   Engine
	Registry *registry.Registry
	Logger   *slog.Logger
}

// Option configures the handler built by NewHandler.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

// WithLogger sets the logger used for request errors.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics serves the collectors of g on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(o *options) {
		o.gatherer = g
	}
}

// CallResponse is the body returned by POST /actors/{name}.
type CallResponse struct {
	InvocationID string         `json:"invocation_id"`
	Success      bool           `json:"success"`
	Attributes   map[string]any `json:"attributes"`
	Changed      map[string]any `json:"changed,omitempty"`
	Errors       []string       `json:"errors,omitempty"`
}

// ErrorResponse is the body of 4xx/5xx responses that carry no context.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, reg *registry.Registry, opts ...Option) http.Handler {
	o := options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	server := &Server{
		Engine:   engine,
		Registry: reg,
		Logger:   o.logger,
	}

	r := chi.NewRouter()
	r.Get("/actors", server.ListActors)
	r.Post("/actors/{name}", server.CallActor)
	if o.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(o.gatherer, promhttp.HandlerOpts{}))
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListActors handles GET /actors.
func (s *Server) ListActors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, http.StatusOK, s.Registry.Names())
}

// CallActor handles POST /actors/{name}. The JSON body seeds the context; an
// empty body means no input.
func (s *Server) CallActor(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	a, err := s.Registry.Lookup(name)
	if err != nil {
		writeJSON(w, s.Logger, http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	input := map[string]any{}
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&input); err != nil && !errors.Is(err, io.EOF) {
		s.Logger.Warn("CallActor: invalid request body", "actor", name, "error", err)
		writeJSON(w, s.Logger, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	before := make(map[string]any, len(input))
	for k, v := range input {
		before[k] = v
	}

	c, err := s.Engine.Call(a, input)
	if err != nil {
		s.Logger.Error("CallActor: actor defect", "actor", name, "error", err)
		writeJSON(w, s.Logger, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	status := http.StatusOK
	if c.Failed() {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, s.Logger, status, CallResponse{
		InvocationID: c.ID(),
		Success:      c.Success(),
		Attributes:   c.Attributes(),
		Changed:      domain.Diff(before, c),
		Errors:       c.Errors(),
	})
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("response encode failed", "error", err)
	}
}
