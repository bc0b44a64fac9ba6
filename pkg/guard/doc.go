// Package guard provides the Outcome[T] variant used across guardrail:
// the tagged success/failure value produced by exactly one evaluation of
// a computation.
//
// Key pieces:
// - Success/Failed: construct an outcome directly
// - Capture: fold a (value, error) return pair into an outcome
// - Match: collapse an outcome into a concrete value via handlers
// - Tee: observe an outcome without changing it
// - IsCancellation: classify a failure cause as a cancellation signal
//
// Cancellation is not a third outcome kind. A cancelled computation
// surfaces as Failed with a cause that IsCancellation recognizes; code
// that needs to treat cancellation specially does so through predicates
// over the cause, not through the outcome tag.
package guard
