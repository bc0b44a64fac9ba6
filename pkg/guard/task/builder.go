package task

import (
	"errors"

	"github.com/ib-77/guardrail/pkg/guard"
	"github.com/ib-77/guardrail/pkg/guard/scope"
)

// Body is a computation executed within a scope. It may spawn children
// through the scope and should honor the scope's context at blocking
// points.
type Body[T any] func(s *scope.Scope) (T, error)

// Builder composes a computation with catch and finally handlers.
// The zero value is not usable; create one with New. Builders are
// immutable values, safe to share and to fork.
type Builder[T any] struct {
	run func(s *scope.Scope) guard.Outcome[T]
}

// New lifts body into a builder. The body runs inside an aggregating
// block: the captured outcome reflects the first failure among the body
// and every child it spawned, not just the body's own return. A panic
// in the body or a child is not captured into the outcome.
func New[T any](body Body[T]) Builder[T] {
	return Builder[T]{
		run: func(s *scope.Scope) guard.Outcome[T] {
			return guard.Capture(scope.Block(s, body))
		},
	}
}

// CatchIf attaches a conditional recovery handler. The returned builder
// runs the previous computation and branches on its outcome:
//   - success passes through untouched, handler and predicate unused;
//   - a failure matching pred runs handler inside a shielded scope and
//     the handler's return becomes the new success;
//   - a non-matching failure passes through unchanged.
//
// The predicate is evaluated at most once per execution, only on
// failure. A failure of the handler itself replaces the original cause.
func (b Builder[T]) CatchIf(pred func(err error) bool, handler func(s *scope.Scope, cause error) (T, error)) Builder[T] {
	prev := b.run

	return Builder[T]{
		run: func(s *scope.Scope) guard.Outcome[T] {
			out := prev(s)
			if out.IsSuccess() {
				return out
			}

			cause := out.Err()
			if !pred(cause) {
				return out
			}

			return guard.Capture(scope.Shielded(s, cause, func(hs *scope.Scope) (T, error) {
				return handler(hs, cause)
			}))
		},
	}
}

// Catch attaches a recovery handler for failures whose chain contains
// an E. It is CatchIf with an errors.As predicate; the handler receives
// the narrowed cause. Go methods cannot introduce type parameters, so
// Catch is a package-level function over the builder.
func Catch[E error, T any](b Builder[T], handler func(s *scope.Scope, cause E) (T, error)) Builder[T] {
	return b.CatchIf(
		func(err error) bool {
			var e E
			return errors.As(err, &e)
		},
		func(s *scope.Scope, cause error) (T, error) {
			var e E
			errors.As(cause, &e)
			return handler(s, e)
		},
	)
}

// CatchCancellation attaches a recovery handler for cancellation
// failures, as classified by guard.IsCancellation.
func (b Builder[T]) CatchCancellation(handler func(s *scope.Scope, cause error) (T, error)) Builder[T] {
	return b.CatchIf(guard.IsCancellation, handler)
}

// Finally attaches a cleanup handler that runs on every path. The
// handler receives the failure cause, nil when the previous computation
// succeeded, and runs inside a shielded scope either way. It cannot
// replace the result: on success the value passes through, on failure
// the original cause is rethrown after the handler returns. A failure
// of the handler itself supersedes the original cause.
func (b Builder[T]) Finally(handler func(s *scope.Scope, cause error) error) Builder[T] {
	prev := b.run

	return Builder[T]{
		run: func(s *scope.Scope) guard.Outcome[T] {
			out := prev(s)

			var cause error
			if out.IsFailure() {
				cause = out.Err()
			}

			if err := s.Shield(cause, func(hs *scope.Scope) error {
				return handler(hs, cause)
			}); err != nil {
				return guard.Failed[T](err)
			}

			return out
		},
	}
}

// Build terminates the builder: the composed computation is handed to a
// Task running in a child scope of parent. The builder holds no state
// of its own afterwards; building twice produces independent tasks.
func (b Builder[T]) Build(parent *scope.Scope, opts ...Option) *Task[T] {
	return newTask(parent, b.run, opts...)
}
