package pages

import (
	"context"
	"net/http"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/PhucLe22/lms-client/internal/api"
	"github.com/PhucLe22/lms-client/internal/models"
	"github.com/PhucLe22/lms-client/internal/study"
	apperrors "github.com/PhucLe22/lms-client/pkg/errors"
)

// ErrLessonLocked is returned when navigation targets a lesson whose
// prerequisites are not completed.
var ErrLessonLocked = apperrors.New("LESSON_LOCKED", http.StatusForbidden, "complete the previous lesson first")

// StudyPage drives the lesson study screen for one course visit: the lesson
// rail with lock states, the active lesson's completion flow, and the watch
// tracker feeding it.
//
// The mutex covers the view state because the tracker's push path (possibly
// driven by WatchTracker.Poll on its own goroutine) refreshes progress while
// the rail is being read.
type StudyPage struct {
	client  *api.Client
	toasts  Notifier
	logger  *zap.Logger
	isAdmin bool

	videoThreshold int
	pushStep       int

	mu       sync.Mutex
	course   *models.CourseDetail
	progress *models.CourseProgress
	lessons  []models.Lesson
	states   []study.State

	current int
	flow    *study.Flow
	tracker *study.WatchTracker
}

// StudyPageOption configures a StudyPage.
type StudyPageOption func(*StudyPage)

// WithStudyLogger attaches a logger.
func WithStudyLogger(logger *zap.Logger) StudyPageOption {
	return func(p *StudyPage) { p.logger = logger }
}

// WithStudyThresholds overrides the video completion threshold and the
// watch-push granularity.
func WithStudyThresholds(videoThreshold, pushStep int) StudyPageOption {
	return func(p *StudyPage) {
		p.videoThreshold = videoThreshold
		p.pushStep = pushStep
	}
}

// NewStudyPage builds the page. isAdmin unlocks every lesson, skips the
// per-student progress fetch, and disables completion: admins preview.
func NewStudyPage(client *api.Client, toasts Notifier, isAdmin bool, opts ...StudyPageOption) *StudyPage {
	p := &StudyPage{
		client:         client,
		toasts:         toasts,
		logger:         zap.NewNop(),
		isAdmin:        isAdmin,
		videoThreshold: study.DefaultVideoThreshold,
		pushStep:       study.DefaultPushStep,
		current:        -1,
	}
	if p.toasts == nil {
		p.toasts = nopNotifier{}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load fetches the course detail and, for students, the enrollment progress
// in parallel. Either branch failing fails the load with a single toast.
func (p *StudyPage) Load(ctx context.Context, courseID string) error {
	var (
		detail   *models.CourseDetail
		progress *models.CourseProgress
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detail, err = p.client.Courses.Get(gctx, courseID)
		return err
	})
	if !p.isAdmin {
		g.Go(func() error {
			var err error
			progress, err = p.client.Progress.CourseProgress(gctx, courseID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		p.toasts.Error(errMessage(err, "Failed to load course"))
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.course = detail
	p.progress = progress
	p.lessons = study.SortLessons(detail.Lessons)
	p.states = study.LessonStates(p.lessons, progress, p.isAdmin)
	p.current = -1
	p.flow = nil
	p.tracker = nil
	return nil
}

// Course returns the loaded course detail.
func (p *StudyPage) Course() *models.CourseDetail {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.course
}

// Progress returns the loaded course progress (nil for admins).
func (p *StudyPage) Progress() *models.CourseProgress {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.progress
}

// Lessons returns the lessons in study order.
func (p *StudyPage) Lessons() []models.Lesson {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lessons
}

// States returns a snapshot of the lock state per lesson, aligned with
// Lessons.
func (p *StudyPage) States() []study.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]study.State, len(p.states))
	copy(out, p.states)
	return out
}

// Current returns the selected lesson index, -1 when none.
func (p *StudyPage) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Flow exposes the active lesson's completion machine.
func (p *StudyPage) Flow() *study.Flow {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flow
}

// Tracker exposes the active lesson's watch tracker, nil for lessons
// without video.
func (p *StudyPage) Tracker() *study.WatchTracker {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tracker
}

// Select makes lesson i the active one, building its completion flow and
// watch tracker. Locked lessons cannot be selected.
func (p *StudyPage) Select(ctx context.Context, i int) error {
	p.mu.Lock()
	if i < 0 || i >= len(p.lessons) {
		p.mu.Unlock()
		return apperrors.Clone(apperrors.ErrValidation, "no such lesson")
	}
	if !study.Navigable(p.states, i) {
		p.mu.Unlock()
		return ErrLessonLocked
	}
	lesson := p.lessons[i]
	completed := p.states[i] == study.StateCompleted
	seed := 0
	if lp := p.progress.Lesson(lesson.ID); lp != nil {
		seed = lp.WatchPercent
	}
	p.mu.Unlock()

	// The quiz requirement exists only when the lesson actually has
	// questions. A failed lookup degrades to "no quiz" rather than
	// blocking the lesson.
	questions, err := p.client.Quiz.ByLesson(ctx, lesson.ID)
	if err != nil && !apperrors.IsNotFound(err) {
		p.logger.Warn("quiz lookup failed", zap.String("lesson_id", lesson.ID), zap.Error(err))
	}

	req := study.Requirements{
		HasVideo: lesson.VideoURL != "",
		HasQuiz:  len(questions) > 0,
	}
	initial := study.StateUnlocked
	if completed {
		initial = study.StateCompleted
	}

	// Admins preview lessons; watching one must never record a completion
	// on their account.
	var complete study.CompleteFunc
	if !p.isAdmin {
		complete = p.completeFunc(lesson.ID)
	}

	flow := study.NewFlow(initial, req, complete,
		study.WithVideoThreshold(p.videoThreshold),
		study.WithFlowLogger(p.logger),
	)

	var tracker *study.WatchTracker
	if req.HasVideo {
		tracker = study.NewWatchTracker(lesson.ID, p.client.Progress,
			study.WithPushStep(p.pushStep),
			study.WithInitialPercent(seed),
			study.WithTrackerLogger(p.logger),
			study.WithOnPush(func(ctx context.Context, percent int) {
				if _, err := flow.ApplyVideoProgress(ctx, percent); err != nil {
					p.logger.Warn("auto-complete failed", zap.Error(err))
				}
			}),
		)
	}

	p.mu.Lock()
	p.current = i
	p.flow = flow
	p.tracker = tracker
	p.mu.Unlock()

	// Replay the seeded percentage so a lesson already watched past the
	// threshold counts toward completion on this visit too.
	if req.HasVideo && seed > 0 {
		if _, err := flow.ApplyVideoProgress(ctx, seed); err != nil {
			p.logger.Warn("auto-complete failed", zap.Error(err))
		}
	}

	if req.HasQuiz {
		if _, err := p.client.Quiz.Result(ctx, lesson.ID); err == nil {
			if _, err := flow.ApplyQuizResult(ctx); err != nil {
				p.logger.Warn("auto-complete failed", zap.Error(err))
			}
		}
	}
	return nil
}

// completeFunc marks the lesson complete server-side, refreshes progress,
// and toasts once.
func (p *StudyPage) completeFunc(lessonID string) study.CompleteFunc {
	return func(ctx context.Context) error {
		if _, err := p.client.Progress.CompleteLesson(ctx, lessonID); err != nil {
			return err
		}
		p.toasts.Success("Lesson completed")
		p.refreshProgress(ctx)
		return nil
	}
}

// Complete marks the current lesson complete manually.
func (p *StudyPage) Complete(ctx context.Context) error {
	lessonID, flow, err := p.selected()
	if err != nil {
		return err
	}
	if _, err := p.client.Progress.CompleteLesson(ctx, lessonID); err != nil {
		p.toasts.Error(errMessage(err, "Failed to complete lesson"))
		return err
	}
	flow.SyncCompleted(true)
	p.toasts.Success("Lesson completed")
	p.refreshProgress(ctx)
	return nil
}

// Uncomplete reverts the current lesson and suppresses auto-completion for
// the rest of this visit.
func (p *StudyPage) Uncomplete(ctx context.Context) error {
	lessonID, flow, err := p.selected()
	if err != nil {
		return err
	}
	if _, err := p.client.Progress.UncompleteLesson(ctx, lessonID); err != nil {
		p.toasts.Error(errMessage(err, "Failed to update lesson"))
		return err
	}
	flow.MarkIncomplete()
	p.toasts.Info("Lesson marked incomplete")
	p.refreshProgress(ctx)
	return nil
}

func (p *StudyPage) selected() (string, *study.Flow, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current < 0 {
		return "", nil, apperrors.Clone(apperrors.ErrValidation, "no lesson selected")
	}
	return p.lessons[p.current].ID, p.flow, nil
}

// Prev returns the previous navigable lesson index, -1 when none.
func (p *StudyPage) Prev() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return study.PrevIndex(p.states, p.current)
}

// Next returns the next navigable lesson index, -1 when none.
func (p *StudyPage) Next() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return study.NextIndex(p.states, p.current)
}

// refreshProgress refetches course progress and recomputes lock states.
// Completion already succeeded; a refresh failure only leaves the rail
// stale, so it logs instead of toasting.
func (p *StudyPage) refreshProgress(ctx context.Context) {
	p.mu.Lock()
	course := p.course
	p.mu.Unlock()
	if p.isAdmin || course == nil {
		return
	}
	progress, err := p.client.Progress.CourseProgress(ctx, course.ID)
	if err != nil {
		p.logger.Warn("progress refresh failed", zap.Error(err))
		return
	}
	p.mu.Lock()
	p.progress = progress
	p.states = study.LessonStates(p.lessons, progress, p.isAdmin)
	p.mu.Unlock()
}

// CompletedCount reports how many lessons the progress marks complete.
func (p *StudyPage) CompletedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.progress == nil {
		return 0
	}
	return p.progress.CompletedLessons
}
