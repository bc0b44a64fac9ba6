package task

import (
	"sync"

	"github.com/ib-77/guardrail/pkg/guard"
	"github.com/ib-77/guardrail/pkg/guard/scope"
)

// Task is the concrete handle produced by Builder.Build. It runs the
// composed computation in its own scope, derived from the build parent,
// and publishes exactly one outcome.
type Task[T any] struct {
	name string
	s    *scope.Scope
	run  func(s *scope.Scope) guard.Outcome[T]

	start sync.Once
	done  chan struct{}
	out   guard.Outcome[T]
	fatal *scope.PanicError
}

func newTask[T any](parent *scope.Scope, run func(s *scope.Scope) guard.Outcome[T], opts ...Option) *Task[T] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	t := &Task[T]{
		name: cfg.name,
		s:    scope.New(parent.Context()),
		run:  run,
		done: make(chan struct{}),
	}

	if !cfg.lazy {
		t.Start()
	}

	return t
}

// Name returns the task's name.
func (t *Task[T]) Name() string {
	return t.name
}

// Start launches the task. It is a no-op after the first call; eagerly
// built tasks are already started.
func (t *Task[T]) Start() {
	t.start.Do(func() {
		go func() {
			defer close(t.done)
			defer func() {
				if r := recover(); r != nil {
					if pe, ok := r.(*scope.PanicError); ok {
						t.fatal = pe
					} else {
						t.fatal = scope.NewPanicError(r)
					}
				}
			}()

			t.out = t.run(t.s)
		}()
	})
}

// Done returns a channel closed when the task has completed. A lazily
// built task must be started before the channel can close.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Cancel requests cancellation of the task with the given cause. The
// running computation observes a cancelled context; handlers attached
// via the builder still run, shielded from this signal.
func (t *Task[T]) Cancel(cause error) {
	t.s.Cancel(cause)
}

// Await starts the task if needed, blocks until it completes, and
// returns its result. A panic that escaped the computation is re-raised
// here.
func (t *Task[T]) Await() (T, error) {
	out := t.Outcome()
	return out.Value(), out.Err()
}

// Outcome starts the task if needed, blocks until it completes, and
// returns the outcome. Every call observes the same outcome value.
func (t *Task[T]) Outcome() guard.Outcome[T] {
	t.Start()
	<-t.done

	if t.fatal != nil {
		panic(t.fatal)
	}

	return t.out
}
