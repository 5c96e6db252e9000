package forms

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PhucLe22/lms-client/internal/api"
	"github.com/PhucLe22/lms-client/internal/api/apitest"
	"github.com/PhucLe22/lms-client/internal/models"
)

func reorderFixture() *apitest.Server {
	server := apitest.New()
	server.Details["c1"] = models.CourseDetail{
		ID: "c1", Title: "Go Fundamentals",
		Lessons: []models.Lesson{
			{ID: "l1", Title: "Intro", Content: "...", OrderIndex: 1},
			{ID: "l2", Title: "Variables", Content: "...", OrderIndex: 2},
			{ID: "l3", Title: "Functions", Content: "...", OrderIndex: 3},
		},
	}
	return server
}

func TestSwapLessonsExchangesOrderIndices(t *testing.T) {
	server := reorderFixture()
	defer server.Close()
	client := api.New(server.URL(), api.NoToken{})

	lessons := server.Details["c1"].Lessons
	err := SwapLessons(context.Background(), client.Lessons, lessons, 0, 1)
	require.NoError(t, err)

	after, err := client.Lessons.ListByCourse(context.Background(), "c1")
	require.NoError(t, err)

	byID := map[string]int{}
	for _, l := range after {
		byID[l.ID] = l.OrderIndex
	}
	assert.Equal(t, 2, byID["l1"])
	assert.Equal(t, 1, byID["l2"])
	assert.Equal(t, 3, byID["l3"], "uninvolved lesson keeps its index")
}

// A direct swap would land on an occupied index; the fake enforces the same
// uniqueness rule as the real server, so passing here means the temporary
// parking index did its job.
func TestSwapLessonsAvoidsIndexCollision(t *testing.T) {
	server := reorderFixture()
	defer server.Close()
	client := api.New(server.URL(), api.NoToken{})

	lessons := server.Details["c1"].Lessons
	err := SwapLessons(context.Background(), client.Lessons, lessons, 1, 2)
	require.NoError(t, err)

	after, _ := client.Lessons.ListByCourse(context.Background(), "c1")
	byID := map[string]int{}
	for _, l := range after {
		byID[l.ID] = l.OrderIndex
	}
	assert.Equal(t, map[string]int{"l1": 1, "l2": 3, "l3": 2}, byID)
}

func TestSwapLessonsMidStepFailure(t *testing.T) {
	server := reorderFixture()
	defer server.Close()
	// First update (park l1) succeeds against /lessons/l1; fail the second
	// step by rejecting updates to l2.
	server.FailPaths["PUT /api/lessons/l2"] = http.StatusInternalServerError

	client := api.New(server.URL(), api.NoToken{})
	lessons := server.Details["c1"].Lessons

	err := SwapLessons(context.Background(), client.Lessons, lessons, 0, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReorderOutOfSync)

	// The server now holds l1 at the parking index; a reload reflects that
	// instead of the stale local ordering.
	after, reloadErr := client.Lessons.ListByCourse(context.Background(), "c1")
	require.NoError(t, reloadErr)
	for _, l := range after {
		if l.ID == "l1" {
			assert.Greater(t, l.OrderIndex, len(after), "l1 left parked out of range")
		}
	}
}

func TestSwapLessonsRejectsBadPositions(t *testing.T) {
	server := reorderFixture()
	defer server.Close()
	client := api.New(server.URL(), api.NoToken{})
	lessons := server.Details["c1"].Lessons

	assert.Error(t, SwapLessons(context.Background(), client.Lessons, lessons, 0, 0))
	assert.Error(t, SwapLessons(context.Background(), client.Lessons, lessons, -1, 1))
	assert.Error(t, SwapLessons(context.Background(), client.Lessons, lessons, 0, 9))
}
