package domain

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"

	"github.com/aretw0/actor/pkg/schema"
)

// ErrorsKey is the attribute under which contract violations are stored.
const ErrorsKey = "errors"

// Attr is an ordered key/value pair used to seed a Context.
type Attr struct {
	Key   string
	Value any
}

// Context is the mutable record shared by an actor, or by every actor of an
// organized chain. It keeps attributes in insertion order, tracks success and
// the actors that completed, and owns the rollback protocol.
//
// A Context is not safe for concurrent use.
type Context struct {
	id         string
	keys       []string
	values     map[string]any
	failed     bool
	rolledBack bool
	completed  []Performer
}

// NewContext creates a context seeded from attrs. Keys are inserted in sorted order
// so that construction from a map is deterministic.
func NewContext(attrs map[string]any) *Context {
	c := &Context{
		id:     uuid.NewString(),
		values: make(map[string]any, len(attrs)),
	}
	c.merge(attrs)
	return c
}

// NewOrderedContext creates a context preserving the order of attrs.
func NewOrderedContext(attrs ...Attr) *Context {
	c := NewContext(nil)
	for _, a := range attrs {
		c.Set(a.Key, a.Value)
	}
	return c
}

// Build returns source unchanged when it is already a *Context, so that a chain of
// actors shares one context. Otherwise it constructs a new context from nil, a
// map, a slice of Attr, or a struct (decoded with mapstructure).
func Build(source any) (*Context, error) {
	switch s := source.(type) {
	case *Context:
		if s == nil {
			return NewContext(nil), nil
		}
		return s, nil
	case nil:
		return NewContext(nil), nil
	case map[string]any:
		return NewContext(s), nil
	case schema.Map:
		return NewContext(s), nil
	case map[string]string:
		m := make(map[string]any, len(s))
		for k, v := range s {
			m[k] = v
		}
		return NewContext(m), nil
	case []Attr:
		return NewOrderedContext(s...), nil
	}

	rv := reflect.ValueOf(source)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedInput, source)
	}
	var m map[string]any
	if err := mapstructure.Decode(source, &m); err != nil {
		return nil, fmt.Errorf("failed to decode input: %w", err)
	}
	return NewContext(m), nil
}

// ID returns the invocation identifier assigned when the context was created.
func (c *Context) ID() string { return c.id }

// Get returns the value for key, or nil when the key was never set.
func (c *Context) Get(key string) any {
	return c.values[schema.CanonicalName(key)]
}

// Lookup returns the value for key and whether it is present.
// It satisfies schema.Attributes.
func (c *Context) Lookup(key string) (any, bool) {
	v, ok := c.values[schema.CanonicalName(key)]
	return v, ok
}

// Has reports whether key is present.
func (c *Context) Has(key string) bool {
	_, ok := c.Lookup(key)
	return ok
}

// Set stores value under key. New keys are appended to the attribute order.
func (c *Context) Set(key string, value any) {
	key = schema.CanonicalName(key)
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}

// Delete removes key.
func (c *Context) Delete(key string) {
	key = schema.CanonicalName(key)
	if _, ok := c.values[key]; !ok {
		return
	}
	delete(c.values, key)
	for i, k := range c.keys {
		if k == key {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
}

// Keys returns attribute names in insertion order.
func (c *Context) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Len returns the number of attributes.
func (c *Context) Len() int { return len(c.keys) }

// Attributes returns a copy of all attributes.
func (c *Context) Attributes() map[string]any {
	m := make(map[string]any, len(c.values))
	for k, v := range c.values {
		m[k] = v
	}
	return m
}

// Pairs returns the attributes in insertion order.
func (c *Context) Pairs() []Attr {
	pairs := make([]Attr, len(c.keys))
	for i, k := range c.keys {
		pairs[i] = Attr{Key: k, Value: c.values[k]}
	}
	return pairs
}

// GetString returns the attribute coerced to a string.
func (c *Context) GetString(key string) (string, error) {
	return cast.ToStringE(c.Get(key))
}

// GetInt returns the attribute coerced to an int.
func (c *Context) GetInt(key string) (int, error) {
	return cast.ToIntE(c.Get(key))
}

// GetFloat returns the attribute coerced to a float64.
func (c *Context) GetFloat(key string) (float64, error) {
	return cast.ToFloat64E(c.Get(key))
}

// GetBool returns the attribute coerced to a bool.
func (c *Context) GetBool(key string) (bool, error) {
	return cast.ToBoolE(c.Get(key))
}

// GetStrings returns the attribute coerced to a string slice.
func (c *Context) GetStrings(key string) ([]string, error) {
	return cast.ToStringSliceE(c.Get(key))
}

// Decode copies the attributes into target, typically a pointer to a struct.
func (c *Context) Decode(target any) error {
	if err := mapstructure.Decode(c.Attributes(), target); err != nil {
		return fmt.Errorf("failed to decode context: %w", err)
	}
	return nil
}

func (c *Context) merge(attrs map[string]any) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c.Set(k, attrs[k])
	}
}

// Fail merges updates, marks the context as failed and returns the Failure that
// carries it. Core operations return it directly:
//
//	return ctx.Fail(map[string]any{"message": "card declined"})
//
// Failing an already failed context is allowed and merges the new updates.
func (c *Context) Fail(updates ...map[string]any) error {
	for _, u := range updates {
		c.merge(u)
	}
	c.failed = true
	return &Failure{Context: c}
}

// Success reports whether the context has not failed.
func (c *Context) Success() bool { return !c.failed }

// Failed reports whether the context has failed. Once true it stays true.
func (c *Context) Failed() bool { return c.failed }

// Errors returns the contract violations stored on the context, if any.
func (c *Context) Errors() []string {
	v, ok := c.Lookup(ErrorsKey)
	if !ok {
		return nil
	}
	if errs, ok := v.([]string); ok {
		return errs
	}
	errs, _ := cast.ToStringSliceE(v)
	return errs
}

// MarkCompleted records an actor instance that finished successfully.
func (c *Context) MarkCompleted(p Performer) {
	c.completed = append(c.completed, p)
}

// Completed returns the completed actor instances in completion order.
func (c *Context) Completed() []Performer {
	return append([]Performer(nil), c.completed...)
}

// RolledBack reports whether Rollback already ran.
func (c *Context) RolledBack() bool { return c.rolledBack }

// Rollback compensates every completed actor in reverse completion order.
// It runs at most once per context and returns false on subsequent calls.
func (c *Context) Rollback() bool {
	if c.rolledBack {
		return false
	}
	c.rolledBack = true
	for i := len(c.completed) - 1; i >= 0; i-- {
		if comp, ok := c.completed[i].(Compensator); ok {
			comp.Rollback(c)
		}
	}
	return true
}
