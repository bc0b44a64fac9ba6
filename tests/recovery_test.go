package tests

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/guardrail/pkg/guard"
	"github.com/ib-77/guardrail/pkg/guard/scope"
	"github.com/ib-77/guardrail/pkg/guard/task"
)

var errPrimaryDown = errors.New("primary store unavailable")

type storeError struct {
	Store string
	Err   error
}

func (e *storeError) Error() string {
	return fmt.Sprintf("store %q: %v", e.Store, e.Err)
}

func (e *storeError) Unwrap() error {
	return e.Err
}

// loadProfile simulates a primary lookup that consults replicas as
// structurally-owned children.
func loadProfile(primaryUp bool) task.Body[string] {
	return func(s *scope.Scope) (string, error) {
		s.Spawn("replica-check", func(ctx context.Context) error {
			select {
			case <-time.After(5 * time.Millisecond):
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})

		if !primaryUp {
			return "", &storeError{Store: "primary", Err: errPrimaryDown}
		}
		return "profile:fresh", nil
	}
}

// TestProfileLookupWithCacheFallback exercises the full composition:
// a failing primary lookup, a typed catch that falls back to the cache,
// and a finally that audits every path.
func TestProfileLookupWithCacheFallback(t *testing.T) {
	s := scope.New(context.Background())

	var audited []string
	b := task.Catch(task.New(loadProfile(false)),
		func(hs *scope.Scope, cause *storeError) (string, error) {
			require.Equal(t, "primary", cause.Store)
			return "profile:cached", nil
		}).
		Finally(func(hs *scope.Scope, cause error) error {
			audited = append(audited, fmt.Sprintf("lookup done, cause=%v", cause))
			return nil
		})

	v, err := b.Build(s, task.WithName("profile-lookup")).Await()

	require.NoError(t, err)
	assert.Equal(t, "profile:cached", v)
	assert.Equal(t, []string{"lookup done, cause=<nil>"}, audited)
}

func TestProfileLookupHealthyPrimary(t *testing.T) {
	s := scope.New(context.Background())

	b := task.Catch(task.New(loadProfile(true)),
		func(hs *scope.Scope, cause *storeError) (string, error) {
			t.Errorf("fallback must not run when the primary is healthy")
			return "", nil
		})

	v, err := b.Build(s).Await()

	require.NoError(t, err)
	assert.Equal(t, "profile:fresh", v)
}

// TestShutdownRunsCleanup cancels a long poll mid-flight and verifies
// the cleanup handler still completes, shielded from the cancellation.
func TestShutdownRunsCleanup(t *testing.T) {
	s := scope.New(context.Background())
	shutdown := errors.New("deploy in progress")

	cleanupDone := false
	b := task.New(func(bs *scope.Scope) (int, error) {
		<-bs.Context().Done()
		return 0, context.Cause(bs.Context())
	}).Finally(func(hs *scope.Scope, cause error) error {
		require.True(t, hs.Active(), "cleanup scope must not inherit the cancellation")
		hs.Spawn("flush", func(ctx context.Context) error {
			cleanupDone = true
			return nil
		})
		return nil
	})

	tk := b.Build(s, task.WithName("poller"))
	tk.Cancel(shutdown)

	_, err := tk.Await()

	assert.ErrorIs(t, err, shutdown)
	assert.True(t, cleanupDone)
}

// TestOutcomeCollapse renders task outcomes the way a caller-facing
// layer would, via guard.Match.
func TestOutcomeCollapse(t *testing.T) {
	s := scope.New(context.Background())

	render := func(o guard.Outcome[string]) string {
		return guard.Match(o,
			func(v string) string { return "ok: " + v },
			func(err error) string {
				if guard.IsCancellation(err) {
					return "cancelled"
				}
				return "failed"
			})
	}

	okTask := task.New(loadProfile(true)).Build(s)
	assert.Equal(t, "ok: profile:fresh", render(okTask.Outcome()))

	badTask := task.New(loadProfile(false)).Build(s)
	assert.Equal(t, "failed", render(badTask.Outcome()))

	slow := task.New(func(bs *scope.Scope) (string, error) {
		<-bs.Context().Done()
		return "", bs.Context().Err()
	}).Build(s)
	slow.Cancel(nil)
	assert.Equal(t, "cancelled", render(slow.Outcome()))
}
