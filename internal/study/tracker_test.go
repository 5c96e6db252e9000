package study

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PhucLe22/lms-client/internal/models"
)

type fakePusher struct {
	mu      sync.Mutex
	sent    []int
	failIdx map[int]bool // fail the i-th call (0-based)
	block   chan struct{}
	calls   int
}

func (p *fakePusher) UpdateWatchProgress(ctx context.Context, lessonID string, percent int) (*models.LessonProgress, error) {
	p.mu.Lock()
	idx := p.calls
	p.calls++
	block := p.block
	p.mu.Unlock()

	if block != nil {
		<-block
	}
	if p.failIdx[idx] {
		return nil, errors.New("push failed")
	}
	p.mu.Lock()
	p.sent = append(p.sent, percent)
	p.mu.Unlock()
	return &models.LessonProgress{LessonID: lessonID, WatchPercent: percent}, nil
}

func (p *fakePusher) sentValues() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]int, len(p.sent))
	copy(out, p.sent)
	return out
}

func TestTrackerPushesOnlyAtStepBoundaries(t *testing.T) {
	pusher := &fakePusher{}
	tracker := NewWatchTracker("l1", pusher)

	ctx := context.Background()
	for _, p := range []int{3, 7, 9} {
		tracker.Observe(ctx, p)
	}
	assert.Empty(t, pusher.sentValues(), "below the first boundary nothing is sent")

	tracker.Observe(ctx, 12)
	assert.Equal(t, []int{10}, pusher.sentValues())

	// within the same decade, nothing more is sent
	tracker.Observe(ctx, 14)
	tracker.Observe(ctx, 19)
	assert.Equal(t, []int{10}, pusher.sentValues())

	// a jump across several boundaries sends the highest crossed boundary
	tracker.Observe(ctx, 47)
	assert.Equal(t, []int{10, 40}, pusher.sentValues())
}

func TestTrackerSentValuesAreNonDecreasing(t *testing.T) {
	pusher := &fakePusher{}
	tracker := NewWatchTracker("l1", pusher)

	ctx := context.Background()
	samples := []int{5, 15, 8, 35, 20, 35, 90, 50, 100}
	for _, p := range samples {
		tracker.Observe(ctx, p)
	}

	sent := pusher.sentValues()
	require.NotEmpty(t, sent)
	for i := 1; i < len(sent); i++ {
		assert.GreaterOrEqual(t, sent[i], sent[i-1])
	}
	assert.Equal(t, 100, tracker.Percent())
}

func TestTrackerRewindNeverLowersTrackedPercent(t *testing.T) {
	tracker := NewWatchTracker("l1", &fakePusher{})

	ctx := context.Background()
	tracker.Observe(ctx, 42)
	tracker.Observe(ctx, 7)
	assert.Equal(t, 42, tracker.Percent())
}

func TestTrackerAtMostOnePushInFlight(t *testing.T) {
	block := make(chan struct{})
	pusher := &fakePusher{block: block}
	tracker := NewWatchTracker("l1", pusher)

	ctx := context.Background()
	done := make(chan struct{})
	go func() {
		tracker.Observe(ctx, 15) // blocks inside the pusher
		close(done)
	}()

	// wait for the first push to be in flight
	require.Eventually(t, func() bool {
		pusher.mu.Lock()
		defer pusher.mu.Unlock()
		return pusher.calls == 1
	}, time.Second, time.Millisecond)

	// a second boundary crossing while pending is skipped entirely
	tracker.Observe(ctx, 27)
	pusher.mu.Lock()
	assert.Equal(t, 1, pusher.calls)
	pusher.mu.Unlock()

	close(block)
	<-done

	// the dropped update is re-covered by the next tick's observation
	tracker.Observe(ctx, 28)
	assert.Equal(t, []int{10, 20}, pusher.sentValues())
}

func TestTrackerFailedPushIsRetriedAtNextBoundary(t *testing.T) {
	pusher := &fakePusher{failIdx: map[int]bool{0: true}}
	tracker := NewWatchTracker("l1", pusher)

	ctx := context.Background()
	tracker.Observe(ctx, 12)
	assert.Empty(t, pusher.sentValues())
	assert.Equal(t, 0, tracker.LastSent())

	tracker.Observe(ctx, 13)
	assert.Equal(t, []int{10}, pusher.sentValues())
	assert.Equal(t, 10, tracker.LastSent())
}

func TestTrackerSeededFromServerProgress(t *testing.T) {
	pusher := &fakePusher{}
	tracker := NewWatchTracker("l1", pusher, WithInitialPercent(30))

	ctx := context.Background()
	// nothing below the seeded value is re-sent
	tracker.Observe(ctx, 25)
	tracker.Observe(ctx, 33)
	assert.Empty(t, pusher.sentValues())

	tracker.Observe(ctx, 41)
	assert.Equal(t, []int{40}, pusher.sentValues())
}

func TestTrackerObserveRatio(t *testing.T) {
	pusher := &fakePusher{}
	tracker := NewWatchTracker("l1", pusher)

	ctx := context.Background()
	tracker.ObserveRatio(ctx, 45, 100)
	assert.Equal(t, 45, tracker.Percent())

	// unknown duration samples are ignored
	tracker.ObserveRatio(ctx, 10, 0)
	assert.Equal(t, 45, tracker.Percent())
}

type scriptedProbe struct {
	mu       sync.Mutex
	position float64
	duration float64
}

func (p *scriptedProbe) Position() (float64, float64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.duration == 0 {
		return 0, 0, false
	}
	return p.position, p.duration, true
}

func TestTrackerPollSamplesProbe(t *testing.T) {
	pusher := &fakePusher{}
	tracker := NewWatchTracker("l1", pusher)
	probe := &scriptedProbe{position: 50, duration: 100}

	ctx, cancel := context.WithCancel(context.Background())
	pollDone := make(chan struct{})
	go func() {
		tracker.Poll(ctx, probe, time.Millisecond)
		close(pollDone)
	}()

	require.Eventually(t, func() bool {
		return tracker.Percent() == 50
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-pollDone:
	case <-time.After(time.Second):
		t.Fatal("poll did not stop on cancel")
	}
}

func TestTrackerOnPushHookFeedsFlow(t *testing.T) {
	completions := 0
	flow := NewFlow(StateUnlocked, Requirements{HasVideo: true}, func(context.Context) error {
		completions++
		return nil
	})
	pusher := &fakePusher{}
	tracker := NewWatchTracker("l1", pusher, WithOnPush(func(ctx context.Context, percent int) {
		_, _ = flow.ApplyVideoProgress(ctx, percent)
	}))

	ctx := context.Background()
	tracker.Observe(ctx, 45)
	assert.Equal(t, 0, completions)

	tracker.Observe(ctx, 82)
	assert.Equal(t, 1, completions)
	assert.Equal(t, StateCompleted, flow.State())
}
