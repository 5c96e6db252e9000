package forms

import (
	"context"
	"net/http"

	"github.com/PhucLe22/lms-client/internal/api"
	"github.com/PhucLe22/lms-client/internal/models"
	apperrors "github.com/PhucLe22/lms-client/pkg/errors"
)

// ErrReorderOutOfSync tells the caller the swap failed part-way and local
// state may no longer match the server; a full reload is required.
var ErrReorderOutOfSync = apperrors.New("REORDER_OUT_OF_SYNC", http.StatusConflict, "reorder failed, reload required")

type lessonUpdater interface {
	Update(ctx context.Context, id string, req api.LessonRequest) (*models.Lesson, error)
}

// tempIndexOffset keeps the parking index clear of any real order index.
const tempIndexOffset = 1000

// SwapLessons swaps the order indices of the lessons at positions i and j.
//
// Order indices are unique within a course, so a direct swap would collide.
// The swap runs in three steps: park the first lesson at a temporary
// out-of-range index, move the second into the vacated slot, then move the
// first into its final slot. A failure at any step returns
// ErrReorderOutOfSync, wrapping the cause; the caller reloads from the
// server rather than guessing which steps landed.
func SwapLessons(ctx context.Context, updater lessonUpdater, lessons []models.Lesson, i, j int) error {
	if i < 0 || j < 0 || i >= len(lessons) || j >= len(lessons) || i == j {
		return apperrors.Clone(apperrors.ErrValidation, "invalid swap positions")
	}

	first, second := lessons[i], lessons[j]
	tempIndex := len(lessons) + tempIndexOffset

	if _, err := updater.Update(ctx, first.ID, lessonRequest(first, tempIndex)); err != nil {
		return apperrors.Wrap(err, ErrReorderOutOfSync.Code, ErrReorderOutOfSync.Status, ErrReorderOutOfSync.Message)
	}
	if _, err := updater.Update(ctx, second.ID, lessonRequest(second, first.OrderIndex)); err != nil {
		return apperrors.Wrap(err, ErrReorderOutOfSync.Code, ErrReorderOutOfSync.Status, ErrReorderOutOfSync.Message)
	}
	if _, err := updater.Update(ctx, first.ID, lessonRequest(first, second.OrderIndex)); err != nil {
		return apperrors.Wrap(err, ErrReorderOutOfSync.Code, ErrReorderOutOfSync.Status, ErrReorderOutOfSync.Message)
	}
	return nil
}

// lessonRequest rebuilds the full update payload so a reorder does not wipe
// the other lesson fields.
func lessonRequest(lesson models.Lesson, orderIndex int) api.LessonRequest {
	return api.LessonRequest{
		Title:       lesson.Title,
		Content:     lesson.Content,
		OrderIndex:  orderIndex,
		VideoURL:    lesson.VideoURL,
		DocumentURL: lesson.DocumentURL,
	}
}
