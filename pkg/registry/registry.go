package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/actor/pkg/domain"
)

// ErrNotFound is returned when no actor is registered under a name.
var ErrNotFound = errors.New("actor not found")

// Registry manages the actors exposed by name to adapters such as the HTTP server.
type Registry struct {
	mu     sync.RWMutex
	actors map[string]*domain.Actor
}

// NewRegistry creates a registry holding the given actors under their own names.
func NewRegistry(actors ...*domain.Actor) *Registry {
	r := &Registry{
		actors: make(map[string]*domain.Actor),
	}
	for _, a := range actors {
		r.Register(a.Name, a)
	}
	return r
}

// Register adds an actor to the registry.
// If an actor with the same name exists, it is overwritten.
func (r *Registry) Register(name string, a *domain.Actor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actors[name] = a
}

// Lookup returns the actor registered under name.
func (r *Registry) Lookup(name string) (*domain.Actor, error) {
	r.mu.RLock()
	a, ok := r.actors[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return a, nil
}

// Names returns the registered names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.actors))
	for name := range r.actors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
