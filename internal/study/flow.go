package study

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// DefaultVideoThreshold is the watched percentage that satisfies the video
// requirement.
const DefaultVideoThreshold = 80

// Requirements declares which completion requirements are active for the
// lesson being visited. An inactive requirement is vacuously satisfied.
type Requirements struct {
	HasVideo bool
	HasQuiz  bool
}

// CompleteFunc marks the lesson complete server-side. Implementations must
// also refetch the full course progress rather than patching locally, so
// derived unlock state stays consistent.
type CompleteFunc func(ctx context.Context) error

// Flow is the completion state machine for a single lesson visit.
//
// Inputs are the tracked video percentage, the quiz result, and an explicit
// "mark incomplete" action. When every active requirement is satisfied and
// the learner has not manually marked the lesson incomplete during this
// visit, completion fires automatically, once.
type Flow struct {
	mu sync.Mutex

	state          State
	req            Requirements
	videoThreshold int

	videoPercent int // monotonic max for this visit
	quizDone     bool
	suppressed   bool // set by MarkIncomplete, reset only by a new visit
	completing   bool

	complete CompleteFunc
	logger   *zap.Logger
}

// FlowOption configures a Flow.
type FlowOption func(*Flow)

// WithVideoThreshold overrides the 80% video requirement.
func WithVideoThreshold(threshold int) FlowOption {
	return func(f *Flow) { f.videoThreshold = threshold }
}

// WithFlowLogger attaches a logger.
func WithFlowLogger(l *zap.Logger) FlowOption {
	return func(f *Flow) { f.logger = l }
}

// NewFlow starts a visit in the given state. A nil complete func disables
// auto-completion (admin preview).
func NewFlow(initial State, req Requirements, complete CompleteFunc, opts ...FlowOption) *Flow {
	f := &Flow{
		state:          initial,
		req:            req,
		videoThreshold: DefaultVideoThreshold,
		complete:       complete,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns the current visit state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Suppressed reports whether auto-completion is disabled for this visit.
func (f *Flow) Suppressed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.suppressed
}

// ApplyVideoProgress feeds the tracked watch percentage. Returns true when
// this input caused the lesson to complete.
func (f *Flow) ApplyVideoProgress(ctx context.Context, percent int) (bool, error) {
	f.mu.Lock()
	if percent > f.videoPercent {
		f.videoPercent = percent
	}
	f.mu.Unlock()
	return f.evaluate(ctx)
}

// ApplyQuizResult records that a quiz result exists for this lesson.
// Returns true when this input caused the lesson to complete.
func (f *Flow) ApplyQuizResult(ctx context.Context) (bool, error) {
	f.mu.Lock()
	f.quizDone = true
	f.mu.Unlock()
	return f.evaluate(ctx)
}

// MarkIncomplete records an explicit un-complete action. The lesson drops
// back to unlocked and auto-completion stays suppressed for the rest of
// this visit, so requirements that are still satisfied cannot immediately
// re-complete it.
func (f *Flow) MarkIncomplete() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateCompleted {
		f.state = StateUnlocked
	}
	f.suppressed = true
}

// SyncCompleted reconciles the visit state with freshly fetched server
// progress.
func (f *Flow) SyncCompleted(completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if completed {
		f.state = StateCompleted
	} else if f.state == StateCompleted {
		f.state = StateUnlocked
	}
}

func (f *Flow) videoSatisfied() bool {
	return !f.req.HasVideo || f.videoPercent >= f.videoThreshold
}

func (f *Flow) quizSatisfied() bool {
	return !f.req.HasQuiz || f.quizDone
}

// evaluate fires auto-completion when every active requirement holds. The
// completing flag keeps a slow completion call from firing twice.
func (f *Flow) evaluate(ctx context.Context) (bool, error) {
	f.mu.Lock()
	fire := f.state == StateUnlocked &&
		!f.suppressed &&
		!f.completing &&
		f.complete != nil &&
		f.videoSatisfied() &&
		f.quizSatisfied()
	if fire {
		f.completing = true
	}
	f.mu.Unlock()

	if !fire {
		return false, nil
	}

	err := f.complete(ctx)

	f.mu.Lock()
	f.completing = false
	if err == nil {
		f.state = StateCompleted
	}
	f.mu.Unlock()

	if err != nil {
		f.logger.Debug("auto-completion failed", zap.Error(err))
		return false, err
	}
	return true, nil
}
