package scope

import (
	"context"
	"sync"
	"sync/atomic"
)

// Scope is a structured execution context: a cancellable context plus
// the set of goroutines spawned through it. The first recorded failure
// cancels the scope and becomes its result; remaining children observe
// the cancelled context and wind down.
type Scope struct {
	ctx    context.Context
	cancel context.CancelCauseFunc

	wg sync.WaitGroup

	errOnce  sync.Once
	firstErr atomicError

	panicMu  sync.Mutex
	panicVal *PanicError

	// cause is the failure a shielded scope is handling, nil elsewhere.
	cause    error
	shielded bool
}

// atomicError is a typed wrapper over atomic.Value for error storage.
type atomicError struct {
	v atomic.Value
}

func (a *atomicError) Store(err error) {
	a.v.Store(err)
}

func (a *atomicError) Load() error {
	err, _ := a.v.Load().(error)
	return err
}

// New creates a root scope whose context is derived from parent.
func New(parent context.Context) *Scope {
	ctx, cancel := context.WithCancelCause(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// child derives a scope that inherits s's cancellation.
func (s *Scope) child() *Scope {
	ctx, cancel := context.WithCancelCause(s.ctx)
	return &Scope{ctx: ctx, cancel: cancel}
}

// shieldedChild derives a scope immune to s's cancellation. cause is
// the failure the shielded block is handling, exposed via Cause.
func (s *Scope) shieldedChild(cause error) *Scope {
	ctx, cancel := context.WithCancelCause(context.WithoutCancel(s.ctx))
	return &Scope{ctx: ctx, cancel: cancel, cause: cause, shielded: true}
}

// Context returns the scope's context. It is cancelled when the scope
// is cancelled or when a child failure is recorded.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Active reports whether the scope has not been cancelled.
func (s *Scope) Active() bool {
	return s.ctx.Err() == nil
}

// Cancelled reports whether the scope's context has been cancelled.
func (s *Scope) Cancelled() bool {
	return s.ctx.Err() != nil
}

// Err returns the scope's context error, nil while active.
func (s *Scope) Err() error {
	return s.ctx.Err()
}

// Cancel cancels the scope with the given cause. Subsequent calls have
// no further effect.
func (s *Scope) Cancel(cause error) {
	s.cancel(cause)
}

// Cause returns the failure this scope's shielded block is handling.
// It is nil outside shielded scopes and nil inside a shielded block
// entered on the success path.
func (s *Scope) Cause() error {
	return s.cause
}

// IsShielded reports whether the scope is immune to its parent's
// cancellation.
func (s *Scope) IsShielded() bool {
	return s.shielded
}

// Spawn launches fn as a structurally-owned child goroutine. The child
// receives the scope's context and should return promptly once it is
// cancelled. A non-nil return is wrapped in *TaskError, recorded if it
// is the scope's first failure, and cancels the scope. A panic in fn is
// captured and re-raised at the scope's join point.
func (s *Scope) Spawn(name string, fn func(ctx context.Context) error) {
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.recordPanic(NewPanicError(r))
			}
		}()

		if s.ctx.Err() != nil {
			// Scope already cancelled, skip execution silently.
			return
		}

		if err := fn(s.ctx); err != nil {
			s.recordError(&TaskError{Name: name, Err: err})
		}
	}()
}

// recordError stores the scope's first failure and cancels the scope
// with it.
func (s *Scope) recordError(err error) {
	s.errOnce.Do(func() {
		s.firstErr.Store(err)
		s.cancel(err)
	})
}

func (s *Scope) recordPanic(pe *PanicError) {
	s.panicMu.Lock()
	if s.panicVal == nil {
		s.panicVal = pe
	}
	s.panicMu.Unlock()
	s.cancel(pe)
}

// join waits for every spawned child, re-raises a captured child panic,
// and returns the scope's aggregate failure: the first recorded error,
// or the cancellation cause if the context was cancelled without one.
func (s *Scope) join() error {
	s.wg.Wait()

	s.panicMu.Lock()
	pv := s.panicVal
	s.panicMu.Unlock()
	if pv != nil {
		panic(pv)
	}

	if err := s.firstErr.Load(); err != nil {
		return err
	}

	if s.ctx.Err() != nil {
		return cancelCause(s.ctx)
	}

	return nil
}

// cancelCause converts a cancelled context into a failure cause that
// guard.IsCancellation recognizes.
func cancelCause(ctx context.Context) error {
	cause := context.Cause(ctx)
	if cause == nil || cause == ctx.Err() {
		return ctx.Err()
	}
	return &CancelError{Cause: cause}
}

// Block runs body inline in a child scope of parent, then joins every
// child spawned there. The returned error is the first recorded failure
// among the body and its children; the body's own failure is recorded
// through the same path, so whichever failed first wins and cancels the
// rest. Cancellation of the parent reaching the child context surfaces
// as a failure, not as a distinct state.
func Block[T any](parent *Scope, body func(s *Scope) (T, error)) (T, error) {
	return run(parent.child(), body)
}

// Shielded runs body in a scope immune to parent's cancellation: the
// enclosing task may already be cancelled, the body still executes to
// completion. cause is the failure being handled, available to the body
// through Scope.Cause. The body may still fail, and a new Cancel on the
// shielded scope itself is honored.
func Shielded[T any](parent *Scope, cause error, body func(s *Scope) (T, error)) (T, error) {
	return run(parent.shieldedChild(cause), body)
}

// Shield is Shielded for bodies with no result value.
func (s *Scope) Shield(cause error, body func(s *Scope) error) error {
	_, err := Shielded(s, cause, func(hs *Scope) (struct{}, error) {
		return struct{}{}, body(hs)
	})
	return err
}

func run[T any](s *Scope, body func(s *Scope) (T, error)) (T, error) {
	defer s.cancel(nil)

	v, err := body(s)
	if err != nil {
		s.recordError(err)
	}

	if joinErr := s.join(); joinErr != nil {
		var zero T
		return zero, joinErr
	}

	return v, nil
}
