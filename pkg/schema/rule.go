package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// Attributes is a read-only view of named values, such as an actor context.
type Attributes interface {
	Lookup(name string) (any, bool)
}

// Map adapts a plain map to Attributes.
type Map map[string]any

// Lookup implements Attributes.
func (m Map) Lookup(name string) (any, bool) {
	v, ok := m[CanonicalName(name)]
	return v, ok
}

// CanonicalName normalises an attribute name so that "name" and ":name" are equal.
func CanonicalName(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), ":")
}

// Rule is the validation specification for a single attribute.
// Rules are immutable once the contract that owns them has been built.
type Rule struct {
	name       string
	required   bool
	filled     bool
	maybe      bool
	typ        *Type
	validators []Validator
}

// Name returns the attribute the rule applies to.
func (r *Rule) Name() string { return r.name }

// Required reports whether the attribute must be present.
func (r *Rule) Required() bool { return r.required }

// Filled reports whether the value must be non-empty.
func (r *Rule) Filled() bool { return r.filled }

// Maybe reports whether a nil value is accepted.
func (r *Rule) Maybe() bool { return r.maybe }

// Type returns the declared type, if any.
func (r *Rule) Type() (Type, bool) {
	if r.typ == nil {
		return Type{}, false
	}
	return *r.typ, true
}

// Validate checks the attribute against attrs. Categories short-circuit in order:
// presence, emptiness, nil allowance, type; custom validators all run.
func (r *Rule) Validate(attrs Attributes) []string {
	value, present := attrs.Lookup(r.name)
	if !present {
		if r.required {
			return []string{fmt.Sprintf("%s is required but missing", r.name)}
		}
		return nil
	}

	if r.filled && isEmpty(value) {
		return []string{fmt.Sprintf("%s must be filled but is empty", r.name)}
	}

	if r.maybe && value == nil {
		return nil
	}

	if r.typ != nil && !r.typ.Matches(value) {
		return []string{fmt.Sprintf("%s must be of type %s but got %s", r.name, r.typ.Name(), TypeName(value))}
	}

	var errs []string
	for _, v := range r.validators {
		if msg, ok := v(r.name, value); !ok {
			errs = append(errs, msg)
		}
	}
	return errs
}

type emptiable interface {
	IsEmpty() bool
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	if e, ok := value.(emptiable); ok {
		return e.IsEmpty()
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
