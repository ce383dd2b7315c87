package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/actor/pkg/domain"
	"github.com/aretw0/actor/pkg/schema"
)

// Builder manages the construction of one actor definition.
// Errors are collected and reported by Build.
type Builder struct {
	actor   domain.Actor
	perform func(*domain.Context) error
	undo    func(*domain.Context)
	errs    []error
}

// New starts the definition of an actor.
func New(name string) *Builder {
	return &Builder{actor: domain.Actor{Name: name}}
}

// Organize starts the definition of an organizer running steps in order
// against one shared context.
func Organize(name string, steps ...*domain.Actor) *Builder {
	return New(name).Steps(steps...)
}

// Extends inherits the parent's contracts. Redeclaring an attribute overrides the
// parent rule.
func (b *Builder) Extends(parent *domain.Actor) *Builder {
	b.actor.Parent = parent
	return b
}

// Input declares the input contract with a schema block.
func (b *Builder) Input(block func(c *schema.Builder)) *Builder {
	c, err := schema.Define(block)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("input contract: %w", err))
		return b
	}
	b.actor.Input = c
	return b
}

// Output declares the output contract with a schema block.
func (b *Builder) Output(block func(c *schema.Builder)) *Builder {
	c, err := schema.Define(block)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("output contract: %w", err))
		return b
	}
	b.actor.Output = c
	return b
}

// InputContract sets an already built input contract.
func (b *Builder) InputContract(c *schema.Contract) *Builder {
	b.actor.Input = c
	return b
}

// OutputContract sets an already built output contract.
func (b *Builder) OutputContract(c *schema.Contract) *Builder {
	b.actor.Output = c
	return b
}

// Before registers a hook run before the core operation, in declaration order.
// See Hook for the accepted forms.
func (b *Builder) Before(hooks ...any) *Builder {
	for _, h := range hooks {
		hook, err := Hook(h)
		if err != nil {
			b.errs = append(b.errs, fmt.Errorf("before hook: %w", err))
			continue
		}
		b.actor.Hooks.Before = append(b.actor.Hooks.Before, hook)
	}
	return b
}

// After registers a hook run after the core operation, in reverse declaration
// order, while the context is still successful.
func (b *Builder) After(hooks ...any) *Builder {
	for _, h := range hooks {
		hook, err := Hook(h)
		if err != nil {
			b.errs = append(b.errs, fmt.Errorf("after hook: %w", err))
			continue
		}
		b.actor.Hooks.After = append(b.actor.Hooks.After, hook)
	}
	return b
}

// Around registers a hook wrapping the rest of the chain. The first declared
// around hook is the outermost. See AroundHook for the accepted forms.
func (b *Builder) Around(hooks ...any) *Builder {
	for _, h := range hooks {
		hook, err := AroundHook(h)
		if err != nil {
			b.errs = append(b.errs, fmt.Errorf("around hook: %w", err))
			continue
		}
		b.actor.Hooks.Around = append(b.actor.Hooks.Around, hook)
	}
	return b
}

// Perform sets the core operation.
func (b *Builder) Perform(fn func(ctx *domain.Context) error) *Builder {
	b.perform = fn
	return b
}

// Rollback sets the compensating operation of a Perform-based actor.
func (b *Builder) Rollback(fn func(ctx *domain.Context)) *Builder {
	b.undo = fn
	return b
}

// Instance sets the factory of actor instances. Named hooks resolve against the
// instances it returns.
func (b *Builder) Instance(factory func() domain.Performer) *Builder {
	b.actor.New = factory
	return b
}

// Steps appends organized actors.
func (b *Builder) Steps(steps ...*domain.Actor) *Builder {
	b.actor.Steps = append(b.actor.Steps, steps...)
	return b
}

// Build returns the actor definition.
func (b *Builder) Build() (*domain.Actor, error) {
	errs := append([]error(nil), b.errs...)

	if b.actor.Name == "" {
		errs = append(errs, fmt.Errorf("%w: name is required", domain.ErrInvalidActor))
	}
	hasFuncs := b.perform != nil || b.undo != nil
	if hasFuncs && b.actor.New != nil {
		errs = append(errs, fmt.Errorf("%w: %s: Perform/Rollback and Instance are exclusive", domain.ErrInvalidActor, b.actor.Name))
	}
	if len(b.actor.Steps) > 0 && (hasFuncs || b.actor.New != nil) {
		errs = append(errs, fmt.Errorf("%w: %s: an organizer delegates to its steps", domain.ErrInvalidActor, b.actor.Name))
	}
	for i, s := range b.actor.Steps {
		if s == nil {
			errs = append(errs, fmt.Errorf("%w: %s: step %d is nil", domain.ErrInvalidActor, b.actor.Name, i))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	a := b.actor
	a.Steps = append([]*domain.Actor(nil), b.actor.Steps...)
	a.Hooks = domain.Hooks{
		Before: append([]domain.Hook(nil), b.actor.Hooks.Before...),
		After:  append([]domain.Hook(nil), b.actor.Hooks.After...),
		Around: append([]domain.AroundHook(nil), b.actor.Hooks.Around...),
	}
	if hasFuncs {
		perform, undo := b.perform, b.undo
		a.New = func() domain.Performer {
			return &domain.Funcs{Perform: perform, Undo: undo}
		}
	}
	return &a, nil
}

// MustBuild is like Build but panics on error. Intended for package-level definitions.
func (b *Builder) MustBuild() *domain.Actor {
	a, err := b.Build()
	if err != nil {
		panic(err)
	}
	return a
}
