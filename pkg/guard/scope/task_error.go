package scope

import (
	"context"
	"errors"
	"fmt"
)

// TaskError attributes a failure to the named child task that produced
// it. Unwrap exposes the cause, so errors.Is and errors.As match
// through it.
type TaskError struct {
	Name string
	Err  error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %q failed: %v", e.Name, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// CancelError is the failure surfaced when a scope was cancelled with
// an explicit cause and no child recorded an error first. It matches
// both the cause and context.Canceled, so cancellation predicates and
// cause-specific predicates both see it.
type CancelError struct {
	Cause error
}

func (e *CancelError) Error() string {
	return fmt.Sprintf("scope cancelled: %v", e.Cause)
}

func (e *CancelError) Unwrap() []error {
	return []error{e.Cause, context.Canceled}
}

// CauseOf unwraps the first *TaskError in err's chain and returns its
// underlying cause. If err carries no TaskError it is returned as-is.
func CauseOf(err error) error {
	if err == nil {
		return nil
	}

	var te *TaskError
	if errors.As(err, &te) {
		return te.Err
	}

	return err
}
