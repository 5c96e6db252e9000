package study

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/PhucLe22/lms-client/internal/models"
)

// DefaultPushStep is the boundary granularity for server pushes.
const DefaultPushStep = 10

// DefaultPollInterval is how often the embedded player is sampled.
const DefaultPollInterval = 3 * time.Second

// PlayerProbe reads playback position from the embedded video player. ok is
// false while the player is not ready or the duration is unknown.
type PlayerProbe interface {
	Position() (current, duration float64, ok bool)
}

// ProgressPusher sends a watch percentage to the server. Satisfied by the
// API progress service.
type ProgressPusher interface {
	UpdateWatchProgress(ctx context.Context, lessonID string, watchPercent int) (*models.LessonProgress, error)
}

// WatchTracker tracks cumulative watched percentage for one lesson visit.
//
// The tracked value is a monotonic max: rewinding never lowers it. Pushes
// to the server happen only when the tracked value crosses the next
// step boundary above the last value sent, with at most one push in
// flight. A push skipped because one is pending is re-covered by the next
// observation, which carries a newer, larger value.
type WatchTracker struct {
	mu       sync.Mutex
	lessonID string
	step     int
	tracked  int
	lastSent int
	pending  bool

	pusher ProgressPusher
	onPush func(ctx context.Context, percent int)
	logger *zap.Logger
}

// TrackerOption configures a WatchTracker.
type TrackerOption func(*WatchTracker)

// WithPushStep overrides the 10% push granularity.
func WithPushStep(step int) TrackerOption {
	return func(t *WatchTracker) { t.step = step }
}

// WithInitialPercent seeds the tracker from server-side progress so an
// earlier visit's percentage is not re-sent.
func WithInitialPercent(percent int) TrackerOption {
	return func(t *WatchTracker) {
		t.tracked = clampPercent(percent)
		t.lastSent = t.tracked
	}
}

// WithOnPush registers a hook invoked after each successful push, with the
// percentage that was sent.
func WithOnPush(fn func(ctx context.Context, percent int)) TrackerOption {
	return func(t *WatchTracker) { t.onPush = fn }
}

// WithTrackerLogger attaches a logger.
func WithTrackerLogger(l *zap.Logger) TrackerOption {
	return func(t *WatchTracker) { t.logger = l }
}

// NewWatchTracker builds a tracker for one lesson.
func NewWatchTracker(lessonID string, pusher ProgressPusher, opts ...TrackerOption) *WatchTracker {
	t := &WatchTracker{
		lessonID: lessonID,
		step:     DefaultPushStep,
		pusher:   pusher,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Percent returns the tracked cumulative percentage.
func (t *WatchTracker) Percent() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tracked
}

// LastSent returns the last percentage successfully pushed.
func (t *WatchTracker) LastSent() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastSent
}

// Observe feeds one playback sample. The percentage is clamped to 0-100 and
// max-tracked; when the tracked value crosses the next step boundary above
// the last sent value and no push is in flight, the boundary value is
// pushed synchronously.
func (t *WatchTracker) Observe(ctx context.Context, percent int) {
	t.mu.Lock()
	percent = clampPercent(percent)
	if percent > t.tracked {
		t.tracked = percent
	}
	boundary := t.tracked / t.step * t.step
	shouldPush := boundary > t.lastSent && !t.pending
	if shouldPush {
		t.pending = true
	}
	t.mu.Unlock()

	if !shouldPush {
		return
	}

	_, err := t.pusher.UpdateWatchProgress(ctx, t.lessonID, boundary)

	t.mu.Lock()
	t.pending = false
	if err == nil && boundary > t.lastSent {
		t.lastSent = boundary
	}
	t.mu.Unlock()

	if err != nil {
		// lastSent unchanged; the next boundary crossing re-sends
		t.logger.Debug("watch progress push failed", zap.Error(err))
		return
	}
	if t.onPush != nil {
		t.onPush(ctx, boundary)
	}
}

// ObserveRatio converts a player position sample into a percentage.
func (t *WatchTracker) ObserveRatio(ctx context.Context, current, duration float64) {
	if duration <= 0 {
		return
	}
	t.Observe(ctx, int(current/duration*100))
}

// Poll samples the probe on every tick until ctx is cancelled. Run it in
// its own goroutine for the duration of the lesson visit.
func (t *WatchTracker) Poll(ctx context.Context, probe PlayerProbe, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if current, duration, ok := probe.Position(); ok {
				t.ObserveRatio(ctx, current, duration)
			}
		}
	}
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
