package study

import (
	"sort"

	"github.com/PhucLe22/lms-client/internal/models"
)

// State is the gating state of one lesson for the current visitor.
type State int

const (
	// StateLocked lessons are inert: not navigable from the sidebar or the
	// prev/next controls.
	StateLocked State = iota
	// StateUnlocked lessons are navigable but not yet completed.
	StateUnlocked
	// StateCompleted lessons stay navigable.
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateUnlocked:
		return "unlocked"
	case StateCompleted:
		return "completed"
	default:
		return "locked"
	}
}

// SortLessons returns the lessons ordered by their order index.
func SortLessons(lessons []models.Lesson) []models.Lesson {
	sorted := make([]models.Lesson, len(lessons))
	copy(sorted, lessons)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].OrderIndex < sorted[j].OrderIndex
	})
	return sorted
}

// LessonStates computes the gating state for every lesson, in order-index
// order. Progression is strictly sequential: a lesson is unlocked iff it is
// the first one, already completed, or its immediate predecessor is
// completed. Administrators are exempt.
func LessonStates(lessons []models.Lesson, progress *models.CourseProgress, isAdmin bool) []State {
	sorted := SortLessons(lessons)
	states := make([]State, len(sorted))

	completed := func(i int) bool {
		lp := progress.Lesson(sorted[i].ID)
		return lp != nil && lp.IsCompleted
	}

	for i := range sorted {
		switch {
		case completed(i):
			states[i] = StateCompleted
		case isAdmin || i == 0 || completed(i-1):
			states[i] = StateUnlocked
		default:
			states[i] = StateLocked
		}
	}
	return states
}

// Navigable reports whether the lesson at index i may be visited.
func Navigable(states []State, i int) bool {
	return i >= 0 && i < len(states) && states[i] != StateLocked
}

// PrevIndex returns the index of the previous navigable lesson, or -1.
func PrevIndex(states []State, current int) int {
	if current-1 >= 0 && Navigable(states, current-1) {
		return current - 1
	}
	return -1
}

// NextIndex returns the index of the next navigable lesson, or -1.
func NextIndex(states []State, current int) int {
	if current+1 < len(states) && Navigable(states, current+1) {
		return current + 1
	}
	return -1
}
