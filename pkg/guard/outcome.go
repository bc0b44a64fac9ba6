package guard

import (
	"time"

	"github.com/google/uuid"
)

// Outcome is the result of one evaluation of a computation: either
// Success carrying a value, or Failed carrying the cause. Outcomes are
// immutable; the id identifies the evaluation that produced the value,
// so a layer that passes a failure through unchanged preserves it.
type Outcome[T any] struct {
	id        uuid.UUID
	createdAt time.Time
	value     T
	err       error
	isSuccess bool
}

func Success[T any](v T) Outcome[T] {
	return Outcome[T]{
		value:     v,
		err:       nil,
		isSuccess: true,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

func Failed[T any](err error) Outcome[T] {
	return Outcome[T]{
		err:       err,
		isSuccess: false,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

// Capture folds a conventional (value, error) return pair into an
// Outcome: a non-nil error wins.
func Capture[T any](v T, err error) Outcome[T] {
	if err != nil {
		return Failed[T](err)
	}
	return Success(v)
}

// Value returns the successful value. Zero when the outcome is Failed.
func (o Outcome[T]) Value() T {
	return o.value
}

// Err returns the failure cause, nil on success.
func (o Outcome[T]) Err() error {
	return o.err
}

func (o Outcome[T]) IsSuccess() bool {
	return o.isSuccess
}

func (o Outcome[T]) IsFailure() bool {
	return !o.isSuccess
}

// CreatedAt is the UTC instant the outcome was produced.
func (o Outcome[T]) CreatedAt() time.Time {
	return o.createdAt
}

// Id identifies the evaluation that produced this outcome.
func (o Outcome[T]) Id() uuid.UUID {
	return o.id
}
