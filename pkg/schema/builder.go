package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Builder collects rule declarations for one contract.
//
//	c, err := schema.Define(func(b *schema.Builder) {
//	    b.Required("name").Filled("string")
//	    b.Optional("age").Maybe("integer").InRange(0, 150)
//	})
type Builder struct {
	rules  []*RuleBuilder
	frozen bool
}

// NewBuilder creates an empty contract builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Define runs block against a fresh builder and builds the contract.
func Define(block func(b *Builder)) (*Contract, error) {
	b := NewBuilder()
	if block != nil {
		block(b)
	}
	return b.Build()
}

// MustDefine is like Define but panics on definition errors.
func MustDefine(block func(b *Builder)) *Contract {
	c, err := Define(block)
	if err != nil {
		panic(err)
	}
	return c
}

// Required declares an attribute that must be present.
func (b *Builder) Required(name string) *RuleBuilder {
	return b.declare(name, true)
}

// Optional declares an attribute that may be absent.
func (b *Builder) Optional(name string) *RuleBuilder {
	return b.declare(name, false)
}

func (b *Builder) declare(name string, required bool) *RuleBuilder {
	if b.frozen {
		panic(&DefinitionError{Attribute: name, Err: ErrFrozenRule})
	}
	rb := &RuleBuilder{
		rule:    Rule{name: CanonicalName(name), required: required},
		builder: b,
	}
	b.rules = append(b.rules, rb)
	return rb
}

// Build validates the declarations and freezes every rule.
// All definition errors are reported together.
func (b *Builder) Build() (*Contract, error) {
	b.frozen = true

	var errs []error
	seen := make(map[string]bool, len(b.rules))
	rules := make([]*Rule, 0, len(b.rules))
	for _, rb := range b.rules {
		errs = append(errs, rb.errs...)
		if rb.rule.name == "" {
			errs = append(errs, &DefinitionError{Err: ErrEmptyArgument, Detail: "attribute name"})
			continue
		}
		if seen[rb.rule.name] {
			errs = append(errs, &DefinitionError{Attribute: rb.rule.name, Err: ErrDuplicateRule})
			continue
		}
		seen[rb.rule.name] = true
		r := rb.rule
		r.validators = append([]Validator(nil), rb.rule.validators...)
		rules = append(rules, &r)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return newContract(rules), nil
}

// RuleBuilder configures one rule. Every method returns the receiver for chaining.
type RuleBuilder struct {
	rule    Rule
	errs    []error
	builder *Builder
}

func (rb *RuleBuilder) mutable() {
	if rb.builder.frozen {
		panic(&DefinitionError{Attribute: rb.rule.name, Err: ErrFrozenRule})
	}
}

func (rb *RuleBuilder) fail(err error) {
	var derr *DefinitionError
	if errors.As(err, &derr) {
		rb.errs = append(rb.errs, err)
		return
	}
	sentinel, detail := splitSentinel(err)
	rb.errs = append(rb.errs, &DefinitionError{Attribute: rb.rule.name, Err: sentinel, Detail: detail})
}

// splitSentinel separates a package sentinel from the detail wrapped around it.
func splitSentinel(err error) (error, string) {
	for _, s := range []error{ErrInvalidType, ErrInvalidFormat, ErrEmptyArgument, ErrInvalidRange} {
		if errors.Is(err, s) {
			return s, strings.TrimPrefix(err.Error(), s.Error()+": ")
		}
	}
	return err, ""
}

func (rb *RuleBuilder) setType(descriptors []any) {
	switch len(descriptors) {
	case 0:
	case 1:
		rb.Type(descriptors[0])
	default:
		rb.fail(fmt.Errorf("%w: expected one descriptor, got %d", ErrInvalidType, len(descriptors)))
	}
}

// Filled requires a non-empty value, optionally of the given type.
func (rb *RuleBuilder) Filled(typ ...any) *RuleBuilder {
	rb.mutable()
	rb.rule.filled = true
	rb.setType(typ)
	return rb
}

// Maybe accepts nil values, optionally constraining non-nil values to the given type.
func (rb *RuleBuilder) Maybe(typ ...any) *RuleBuilder {
	rb.mutable()
	rb.rule.maybe = true
	rb.setType(typ)
	return rb
}

// Type constrains the value to a kind or nominal type. See ParseType.
func (rb *RuleBuilder) Type(descriptor any) *RuleBuilder {
	rb.mutable()
	t, err := ParseType(descriptor)
	if err != nil {
		rb.fail(err)
		return rb
	}
	rb.rule.typ = &t
	return rb
}

// Format adds a pattern validator.
func (rb *RuleBuilder) Format(pattern any) *RuleBuilder {
	rb.mutable()
	return rb.with(Format(pattern))
}

// RespondsTo adds a method-set validator.
func (rb *RuleBuilder) RespondsTo(method string) *RuleBuilder {
	rb.mutable()
	return rb.with(RespondsTo(method))
}

// OneOf adds an enumeration validator.
func (rb *RuleBuilder) OneOf(values ...any) *RuleBuilder {
	rb.mutable()
	return rb.with(OneOf(values...))
}

// InRange adds a closed-interval validator.
func (rb *RuleBuilder) InRange(min, max any) *RuleBuilder {
	rb.mutable()
	return rb.with(InRange(min, max))
}

// Satisfies adds a predicate validator.
func (rb *RuleBuilder) Satisfies(description string, predicate func(any) bool) *RuleBuilder {
	rb.mutable()
	return rb.with(Satisfies(description, predicate))
}

// Validate appends an already constructed validator.
func (rb *RuleBuilder) Validate(v Validator) *RuleBuilder {
	rb.mutable()
	if v == nil {
		rb.fail(fmt.Errorf("%w: validator", ErrEmptyArgument))
		return rb
	}
	rb.rule.validators = append(rb.rule.validators, v)
	return rb
}

func (rb *RuleBuilder) with(v Validator, err error) *RuleBuilder {
	if err != nil {
		rb.fail(err)
		return rb
	}
	rb.rule.validators = append(rb.rule.validators, v)
	return rb
}
