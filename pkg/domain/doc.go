/*
Package domain contains the core models of the actor framework.

It is kept free of execution logic: the runner in internal/runtime drives these
types, and adapters only ever see them through the facade.

# Key Entities

  - Context: the ordered, mutable attribute record shared by an actor or an organized
    chain. It tracks success, the completed actor instances, and owns rollback.
  - Failure: the error returned by Context.Fail. It is the business-failure signal;
    every other error is treated as a defect.
  - Actor: a definition made of input/output contracts, hooks, an instance factory,
    and optionally the steps of an organizer.
  - LifecycleHooks: observer callbacks for invocations and rollbacks.
*/
package domain
