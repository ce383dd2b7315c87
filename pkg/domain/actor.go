package domain

import "github.com/aretw0/actor/pkg/schema"

// Performer is an actor instance. Call is the core operation: its only effect is
// mutating the context, possibly by returning ctx.Fail(...).
type Performer interface {
	Call(ctx *Context) error
}

// Compensator is implemented by instances that can undo their forward effect.
// Rollback must not fail; it is invoked only while the context is rolled back.
type Compensator interface {
	Rollback(ctx *Context)
}

// Continuation resumes the chain wrapped by an around hook. It returns only when
// the wrapped chain succeeded: on failure it unwinds the hook, so code after the
// call never runs. Use defer for cleanup that must always happen.
type Continuation func() error

// Hook is a before or after behavior. Either Fn is set, or Method names a method
// resolved on the actor instance at run time.
type Hook struct {
	Method string
	Fn     func(*Context) error
}

// AroundHook wraps the remainder of the chain. Either Fn is set, or Method names a
// method resolved on the actor instance at run time.
type AroundHook struct {
	Method string
	Fn     func(*Context, Continuation) error
}

// Hooks groups the hooks declared on one actor, in declaration order.
type Hooks struct {
	Before []Hook
	After  []Hook
	Around []AroundHook
}

// Empty reports whether no hook is declared.
func (h Hooks) Empty() bool {
	return len(h.Before) == 0 && len(h.After) == 0 && len(h.Around) == 0
}

// Actor is the definition of a unit of business logic: its contracts, hooks and the
// factory of the instance that performs the work.
//
// An Actor with Steps is an organizer: its core operation runs every step, in order,
// against the same context.
type Actor struct {
	Name string

	// Parent contributes contracts. Its rules are merged with this actor's own
	// declarations on every lookup, own rules winning by attribute name.
	Parent *Actor

	// Input and Output are the contracts declared by this actor itself.
	Input  *schema.Contract
	Output *schema.Contract

	Hooks Hooks

	// New returns a fresh instance for every invocation.
	New func() Performer

	// Steps are the organized actors.
	Steps []*Actor
}

// InputContract returns the effective input contract, or nil when none is declared
// along the parent chain.
func (a *Actor) InputContract() *schema.Contract {
	if a == nil {
		return nil
	}
	return schema.Merge(a.Parent.InputContract(), a.Input)
}

// OutputContract returns the effective output contract.
func (a *Actor) OutputContract() *schema.Contract {
	if a == nil {
		return nil
	}
	return schema.Merge(a.Parent.OutputContract(), a.Output)
}

// IsOrganizer reports whether the actor delegates to steps.
func (a *Actor) IsOrganizer() bool {
	return len(a.Steps) > 0
}

// Instance returns a new instance of the actor. Organizers and actors without a
// factory get an instance with no behavior.
func (a *Actor) Instance() Performer {
	if a.New != nil {
		if p := a.New(); p != nil {
			return p
		}
	}
	return noop{}
}

// String returns the actor name.
func (a *Actor) String() string {
	if a == nil {
		return "<nil>"
	}
	if a.Name == "" {
		return "anonymous"
	}
	return a.Name
}

type noop struct{}

func (noop) Call(*Context) error { return nil }

// Funcs adapts plain functions to an instance. A nil Perform does nothing; a nil
// Undo makes the instance non-compensating.
type Funcs struct {
	Perform func(*Context) error
	Undo    func(*Context)
}

// Call implements Performer.
func (f *Funcs) Call(ctx *Context) error {
	if f.Perform == nil {
		return nil
	}
	return f.Perform(ctx)
}

// Rollback implements Compensator.
func (f *Funcs) Rollback(ctx *Context) {
	if f.Undo != nil {
		f.Undo(ctx)
	}
}
