package scope

import (
	"fmt"
	"runtime"
)

// PanicError wraps a panic recovered in a spawned child together with
// the stack captured at the point of the panic. It is re-raised at the
// scope's join point, never returned as an error: panics are the
// unconditionally-propagating category and bypass outcome capture.
type PanicError struct {
	// Value is the original value passed to panic().
	Value any

	// Stack is the goroutine stack trace at the point of panic.
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v\n\n%s", e.Value, e.Stack)
}

// NewPanicError captures the current stack alongside a recovered panic
// value. Callers that recover only to re-raise at a better place use
// this to keep the original stack visible.
func NewPanicError(v any) *PanicError {
	// 8 KiB is enough for most stack traces. runtime.Stack truncates
	// gracefully if the buffer is too small.
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return &PanicError{
		Value: v,
		Stack: string(buf[:n]),
	}
}
