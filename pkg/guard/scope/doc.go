// Package scope is the structured-concurrency runtime the guardrail
// builder composes against. A Scope owns a cancellable context and the
// goroutines spawned through it; a scope's outcome is the first recorded
// failure among its own body and its children.
//
// Key operations:
// - New: create a root scope from a context
// - Spawn: launch a structurally-owned child goroutine
// - Block: run a body in a child scope, join its children, report the
//   aggregate result
// - Shielded/Shield: run a body immune to the enclosing scope's
//   cancellation (cleanup and recovery handlers use this)
// - Cancel/Active/Cancelled/Err/Cause: state queries and control
//
// Failures from spawned children are wrapped in *TaskError so the
// failing task can be named; errors.Is and errors.As reach the cause
// through Unwrap. Cancellation of a scope surfaces as a *CancelError,
// which guard.IsCancellation recognizes.
//
// Panics are deliberately outside the error model: a panic in a spawned
// child is captured as *PanicError and re-raised at the join point, and
// a panic in a body propagates directly. Neither is ever converted into
// a returned error.
package scope
