/*
Package actor is a micro-framework for single-purpose units of business logic.

An actor reads from and writes to a shared, mutable Context. It may declare input and
output contracts, wrap its operation in before, after and around hooks, and undo its
work when a later actor in the same chain fails.

# Concept

Each invocation goes through a small state machine:

	pending -> validating_input -> running -> validating_output -> completed

A failure at any point rolls the context back: every actor that already completed
on it is compensated, most recent first. An Organizer is an actor whose operation
runs other actors, in order, against one context, so a failing step unwinds the
steps before it.

Failures come in two kinds. A business failure is raised with Context.Fail and is
reported through the context. Any other error, or a panic, is a defect and always
reaches the caller.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/actor"
		"github.com/aretw0/actor/pkg/schema"
	)

	var Greet = actor.Define("Greet").
		Input(func(c *schema.Builder) {
			c.Required("name").Filled("string")
		}).
		Perform(func(ctx *actor.Context) error {
			name, _ := ctx.GetString("name")
			ctx.Set("greeting", "Hello, "+name)
			return nil
		}).
		MustBuild()

	func main() {
		ctx, err := actor.Call(Greet, map[string]any{"name": "Alice"})
		if err != nil {
			log.Fatal(err) // a defect
		}
		if ctx.Failed() {
			fmt.Println(ctx.Errors())
			return
		}
		fmt.Println(ctx.Get("greeting"))
	}

# Two call variants

Call (alias Perform) returns the failed context and a nil error on business failure;
it is the entry point for boundaries such as HTTP handlers. CallStrict (alias
PerformStrict) also returns the *Failure, which is what organizers rely on to stop.

# Observability

The engine emits lifecycle events (domain.LifecycleHooks). Package observability
turns them into structured logs, Prometheus metrics or an in-memory journal.
*/
package actor
