// Package task provides an immutable builder that attaches catch and
// finally handlers to a structured computation, and the Task[T] handle
// produced when the builder is terminated with Build.
//
// Each attachment wraps the previous computation in a new one that
// awaits its outcome, branches, and possibly runs a handler inside a
// shielded (non-cancellable) scope:
// - New: lift a body into a bare builder
// - CatchIf: recover from failures matching a predicate
// - Catch: recover from failures of a specific error type
// - CatchCancellation: recover from cancellation failures
// - Finally: run cleanup on every path, success, failure or cancellation
// - Build: hand the composed computation to a Task
//
// Builders are values: attaching a handler returns a new builder and
// never mutates the receiver, so one base builder can be forked into
// several differently-guarded tasks.
package task
