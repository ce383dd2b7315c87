/*
Package observability turns actor lifecycle events into logs, metrics and traces.

Every helper returns a domain.LifecycleHooks value; combine them with
domain.CombineHooks and pass the result to the engine.
*/
package observability
