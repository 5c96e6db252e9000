package study

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowAutoCompletesWhenBothRequirementsHold(t *testing.T) {
	completions := 0
	flow := NewFlow(StateUnlocked, Requirements{HasVideo: true, HasQuiz: true}, func(context.Context) error {
		completions++
		return nil
	})

	// video alone must not complete
	fired, err := flow.ApplyVideoProgress(context.Background(), 85)
	require.NoError(t, err)
	assert.False(t, fired)
	assert.Equal(t, StateUnlocked, flow.State())

	// quiz closes the second requirement: completion fires
	fired, err = flow.ApplyQuizResult(context.Background())
	require.NoError(t, err)
	assert.True(t, fired)
	assert.Equal(t, StateCompleted, flow.State())
	assert.Equal(t, 1, completions)
}

func TestFlowQuizAloneDoesNotComplete(t *testing.T) {
	flow := NewFlow(StateUnlocked, Requirements{HasVideo: true, HasQuiz: true}, func(context.Context) error {
		t.Fatal("must not complete")
		return nil
	})

	fired, err := flow.ApplyQuizResult(context.Background())
	require.NoError(t, err)
	assert.False(t, fired)

	fired, err = flow.ApplyVideoProgress(context.Background(), 79)
	require.NoError(t, err)
	assert.False(t, fired)
}

func TestFlowVacuousRequirements(t *testing.T) {
	// no quiz questions: the quiz requirement is vacuously satisfied
	completions := 0
	flow := NewFlow(StateUnlocked, Requirements{HasVideo: true}, func(context.Context) error {
		completions++
		return nil
	})

	fired, err := flow.ApplyVideoProgress(context.Background(), 80)
	require.NoError(t, err)
	assert.True(t, fired)
	assert.Equal(t, 1, completions)
}

func TestFlowManualUncompleteSuppressesAutoFire(t *testing.T) {
	completions := 0
	flow := NewFlow(StateUnlocked, Requirements{HasVideo: true}, func(context.Context) error {
		completions++
		return nil
	})

	fired, _ := flow.ApplyVideoProgress(context.Background(), 90)
	require.True(t, fired)
	require.Equal(t, 1, completions)

	flow.MarkIncomplete()
	assert.Equal(t, StateUnlocked, flow.State())
	assert.True(t, flow.Suppressed())

	// requirements are still satisfied; auto-completion must not re-fire
	fired, err := flow.ApplyVideoProgress(context.Background(), 95)
	require.NoError(t, err)
	assert.False(t, fired)
	assert.Equal(t, StateUnlocked, flow.State())
	assert.Equal(t, 1, completions)
}

func TestFlowNewVisitResetsSuppression(t *testing.T) {
	flow := NewFlow(StateUnlocked, Requirements{HasVideo: true}, func(context.Context) error { return nil })
	flow.MarkIncomplete()
	require.True(t, flow.Suppressed())

	// a navigation builds a fresh Flow; suppression does not carry over
	next := NewFlow(StateUnlocked, Requirements{HasVideo: true}, func(context.Context) error { return nil })
	assert.False(t, next.Suppressed())

	fired, err := next.ApplyVideoProgress(context.Background(), 80)
	require.NoError(t, err)
	assert.True(t, fired)
}

func TestFlowVideoPercentIsMonotonic(t *testing.T) {
	completions := 0
	flow := NewFlow(StateUnlocked, Requirements{HasVideo: true, HasQuiz: true}, func(context.Context) error {
		completions++
		return nil
	})

	_, _ = flow.ApplyVideoProgress(context.Background(), 83)
	// learner rewinds; the tracked max must not drop below the threshold
	_, _ = flow.ApplyVideoProgress(context.Background(), 10)
	require.Equal(t, 0, completions)

	fired, err := flow.ApplyQuizResult(context.Background())
	require.NoError(t, err)
	assert.True(t, fired)
	assert.Equal(t, 1, completions)
}

func TestFlowCompletionFailureLeavesStateRetryable(t *testing.T) {
	calls := 0
	flow := NewFlow(StateUnlocked, Requirements{HasVideo: true}, func(context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("server unavailable")
		}
		return nil
	})

	fired, err := flow.ApplyVideoProgress(context.Background(), 90)
	require.Error(t, err)
	assert.False(t, fired)
	assert.Equal(t, StateUnlocked, flow.State())

	// the next satisfied input retries
	fired, err = flow.ApplyVideoProgress(context.Background(), 91)
	require.NoError(t, err)
	assert.True(t, fired)
	assert.Equal(t, StateCompleted, flow.State())
}

func TestFlowCompletedVisitNeverRefires(t *testing.T) {
	completions := 0
	flow := NewFlow(StateCompleted, Requirements{}, func(context.Context) error {
		completions++
		return nil
	})

	fired, err := flow.ApplyVideoProgress(context.Background(), 100)
	require.NoError(t, err)
	assert.False(t, fired)
	assert.Equal(t, 0, completions)
}

func TestFlowNilCompleteFuncDisablesAutoFire(t *testing.T) {
	flow := NewFlow(StateUnlocked, Requirements{}, nil)
	fired, err := flow.ApplyQuizResult(context.Background())
	require.NoError(t, err)
	assert.False(t, fired)
}

func TestFlowSyncCompleted(t *testing.T) {
	flow := NewFlow(StateUnlocked, Requirements{HasQuiz: true}, nil)
	flow.SyncCompleted(true)
	assert.Equal(t, StateCompleted, flow.State())

	flow.SyncCompleted(false)
	assert.Equal(t, StateUnlocked, flow.State())
}
