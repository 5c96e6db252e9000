package pages

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PhucLe22/lms-client/internal/api"
	"github.com/PhucLe22/lms-client/internal/api/apitest"
	"github.com/PhucLe22/lms-client/internal/forms"
	"github.com/PhucLe22/lms-client/internal/models"
)

func adminFixture() *apitest.Server {
	server := apitest.New()
	server.Students = []models.StudentListItem{
		{ID: "s1", FullName: "Alice Nguyen", Email: "alice@example.com", Role: models.RoleStudent},
		{ID: "s2", FullName: "Bob Tran", Email: "bob@example.com", Role: models.RoleStudent},
	}
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

func TestAdminStudentsRoleChangePatchesRow(t *testing.T) {
	server := adminFixture()
	defer server.Close()
	client := api.New(server.URL(), api.NoToken{})

	page := NewAdminStudentsPage(client.Admin, 10, &toastRecorder{})
	ctx := context.Background()
	page.Load(ctx)
	require.Len(t, page.Items(), 2)

	require.NoError(t, page.SetRole(ctx, "s1", models.RoleAdmin))

	assert.Equal(t, models.RoleAdmin, page.Items()[0].Role)
	assert.Equal(t, models.RoleStudent, page.Items()[1].Role)
	assert.Equal(t, 1, server.CountRequests("GET", "/api/admin/students"), "no refetch after patch")
}

func TestAdminStudentsRoleChangeFailureLeavesRows(t *testing.T) {
	server := adminFixture()
	defer server.Close()
	server.FailPaths["PUT /api/admin/students/s1/role"] = http.StatusInternalServerError
	client := api.New(server.URL(), api.NoToken{})

	toasts := &toastRecorder{}
	page := NewAdminStudentsPage(client.Admin, 10, toasts)
	ctx := context.Background()
	page.Load(ctx)

	err := page.SetRole(ctx, "s1", models.RoleAdmin)
	require.Error(t, err)
	assert.Equal(t, models.RoleStudent, page.Items()[0].Role, "row untouched on failure")
	assert.Equal(t, 1, toasts.errorCount())
}

func TestAdminStudentsDeleteRemovesRow(t *testing.T) {
	server := adminFixture()
	defer server.Close()
	client := api.New(server.URL(), api.NoToken{})

	page := NewAdminStudentsPage(client.Admin, 10, &toastRecorder{})
	ctx := context.Background()
	page.Load(ctx)

	require.NoError(t, page.Delete(ctx, "s1"))
	require.Len(t, page.Items(), 1)
	assert.Equal(t, "s2", page.Items()[0].ID)
}

func TestAdminLessonsReorderSwapsAdjacent(t *testing.T) {
	server := adminFixture()
	defer server.Close()
	client := api.New(server.URL(), api.NoToken{})

	page := NewAdminLessonsPage(client, &toastRecorder{}, "c1")
	ctx := context.Background()
	require.NoError(t, page.Load(ctx))

	require.NoError(t, page.MoveDown(ctx, 0))

	lessons := page.Lessons()
	assert.Equal(t, []string{"l2", "l1", "l3"}, []string{lessons[0].ID, lessons[1].ID, lessons[2].ID})
	assert.Equal(t, 1, lessons[0].OrderIndex)
	assert.Equal(t, 2, lessons[1].OrderIndex)
	assert.Equal(t, 3, lessons[2].OrderIndex, "third lesson untouched")
}

func TestAdminLessonsReorderFailureReloads(t *testing.T) {
	server := adminFixture()
	defer server.Close()
	server.FailPaths["PUT /api/lessons/l2"] = http.StatusInternalServerError
	client := api.New(server.URL(), api.NoToken{})

	page := NewAdminLessonsPage(client, &toastRecorder{}, "c1")
	ctx := context.Background()
	require.NoError(t, page.Load(ctx))

	err := page.MoveDown(ctx, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, forms.ErrReorderOutOfSync)

	// The page discarded its stale view and reloaded server truth, where
	// l1 is still parked at the temporary index.
	lessons := page.Lessons()
	require.Len(t, lessons, 3)
	assert.Equal(t, "l1", lessons[2].ID, "parked lesson sorts last")
	assert.Greater(t, lessons[2].OrderIndex, 100)
}

func TestAdminLessonsCreateValidates(t *testing.T) {
	server := adminFixture()
	defer server.Close()
	client := api.New(server.URL(), api.NoToken{})

	page := NewAdminLessonsPage(client, &toastRecorder{}, "c1")
	ctx := context.Background()
	require.NoError(t, page.Load(ctx))

	_, err := page.Create(ctx, forms.LessonForm{Title: "x"})
	require.Error(t, err)
	assert.Equal(t, 0, server.CountRequests("POST", "/api/courses/c1/lessons"))

	lesson, err := page.Create(ctx, forms.LessonForm{Title: "Closures", Content: "...", OrderIndex: 4})
	require.NoError(t, err)
	assert.Equal(t, "Closures", lesson.Title)
	assert.Len(t, page.Lessons(), 4)
}

func TestAdminCoursesCreateAndDelete(t *testing.T) {
	server := adminFixture()
	defer server.Close()
	server.Courses = []models.Course{{ID: "c1", Title: "Go Fundamentals", Level: models.LevelBeginner}}
	client := api.New(server.URL(), api.NoToken{})

	toasts := &toastRecorder{}
	page := NewAdminCoursesPage(client.Courses, 10, toasts)
	ctx := context.Background()
	page.Load(ctx)
	require.Len(t, page.Items(), 1)

	_, err := page.Create(ctx, forms.CourseForm{Title: "Go", Level: models.LevelBeginner})
	require.Error(t, err, "short title rejected locally")

	_, err = page.Create(ctx, forms.CourseForm{Title: "Advanced Go", Level: models.LevelAdvanced})
	require.NoError(t, err)
	assert.Len(t, page.Items(), 2, "list reloaded after create")

	require.NoError(t, page.Delete(ctx, "c1"))
	require.Len(t, page.Items(), 1)
	assert.Equal(t, "Advanced Go", page.Items()[0].Title)
}

func TestAdminStudentsDetail(t *testing.T) {
	server := adminFixture()
	defer server.Close()
	client := api.New(server.URL(), api.NoToken{})

	page := NewAdminStudentsPage(client.Admin, 10, &toastRecorder{})
	ctx := context.Background()

	detail, err := page.Detail(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Alice Nguyen", detail.FullName)
	assert.Equal(t, models.RoleStudent, detail.Role)
}

func TestAdminStudentsDetailNotFound(t *testing.T) {
	server := adminFixture()
	defer server.Close()
	client := api.New(server.URL(), api.NoToken{})

	toasts := &toastRecorder{}
	page := NewAdminStudentsPage(client.Admin, 10, toasts)

	_, err := page.Detail(context.Background(), "nobody")
	require.Error(t, err)
	assert.Equal(t, 1, toasts.errorCount())
}

func TestAdminQuizCreateValidates(t *testing.T) {
	server := adminFixture()
	defer server.Close()
	client := api.New(server.URL(), api.NoToken{})

	page := NewAdminQuizPage(client.Quiz, &toastRecorder{}, "l1")
	ctx := context.Background()
	require.NoError(t, page.Load(ctx))
	require.Empty(t, page.Questions())

	_, err := page.Create(ctx, forms.QuizForm{Question: "?"})
	require.Error(t, err, "missing options rejected locally")
	assert.Equal(t, 0, server.CountRequests("POST", "/api/lessons/l1/quiz"))

	question, err := page.Create(ctx, forms.QuizForm{
		Question: "What declares a variable?",
		OptionA:  "var", OptionB: "def", OptionC: "let", OptionD: "dim",
		CorrectAnswer: "A",
	})
	require.NoError(t, err)
	assert.Equal(t, "A", question.CorrectAnswer)
	assert.Len(t, page.Questions(), 1)
	assert.Len(t, server.Quizzes["l1"], 1)
}

func TestAdminQuizUpdatePatchesRow(t *testing.T) {
	server := adminFixture()
	defer server.Close()
	server.Quizzes["l1"] = []models.QuizQuestion{
		{ID: "q1", LessonID: "l1", Question: "?", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectAnswer: "A"},
	}
	client := api.New(server.URL(), api.NoToken{})

	page := NewAdminQuizPage(client.Quiz, &toastRecorder{}, "l1")
	ctx := context.Background()
	require.NoError(t, page.Load(ctx))

	_, err := page.Update(ctx, "q1", forms.QuizForm{
		Question: "Which keyword declares a constant?",
		OptionA:  "const", OptionB: "var", OptionC: "final", OptionD: "static",
		CorrectAnswer: "A",
	})
	require.NoError(t, err)
	assert.Equal(t, "Which keyword declares a constant?", page.Questions()[0].Question)
	assert.Equal(t, 1, server.CountRequests("GET", "/api/lessons/l1/quiz/admin"), "no refetch after patch")
}

func TestAdminQuizDeleteRemovesRow(t *testing.T) {
	server := adminFixture()
	defer server.Close()
	server.Quizzes["l1"] = []models.QuizQuestion{
		{ID: "q1", LessonID: "l1", Question: "?", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectAnswer: "A"},
		{ID: "q2", LessonID: "l1", Question: "??", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectAnswer: "B"},
	}
	client := api.New(server.URL(), api.NoToken{})

	page := NewAdminQuizPage(client.Quiz, &toastRecorder{}, "l1")
	ctx := context.Background()
	require.NoError(t, page.Load(ctx))

	require.NoError(t, page.Delete(ctx, "q1"))
	require.Len(t, page.Questions(), 1)
	assert.Equal(t, "q2", page.Questions()[0].ID)
	assert.Len(t, server.Quizzes["l1"], 1)
}

func TestAdminQuizCreateFailureLeavesRows(t *testing.T) {
	server := adminFixture()
	defer server.Close()
	server.FailPaths["POST /api/lessons/l1/quiz"] = http.StatusInternalServerError
	client := api.New(server.URL(), api.NoToken{})

	toasts := &toastRecorder{}
	page := NewAdminQuizPage(client.Quiz, toasts, "l1")
	ctx := context.Background()
	require.NoError(t, page.Load(ctx))

	_, err := page.Create(ctx, forms.QuizForm{
		Question: "What declares a variable?",
		OptionA:  "var", OptionB: "def", OptionC: "let", OptionD: "dim",
		CorrectAnswer: "A",
	})
	require.Error(t, err)
	assert.Empty(t, page.Questions(), "rows untouched on failure")
	assert.Equal(t, 1, toasts.errorCount())
}

func TestAdminPracticeCreateValidates(t *testing.T) {
	server := adminFixture()
	defer server.Close()
	client := api.New(server.URL(), api.NoToken{})

	page := NewAdminPracticePage(client.Practice, &toastRecorder{}, "l1")
	ctx := context.Background()
	require.NoError(t, page.Load(ctx))

	_, err := page.Create(ctx, forms.PracticeForm{Title: "FizzBuzz"})
	require.Error(t, err, "missing description rejected locally")
	assert.Equal(t, 0, server.CountRequests("POST", "/api/lessons/l1/practice"))

	task, err := page.Create(ctx, forms.PracticeForm{
		Title:          "FizzBuzz",
		Description:    "Print 1..100 with the usual twist.",
		SubmissionType: models.SubmissionText,
	})
	require.NoError(t, err)
	assert.Equal(t, "FizzBuzz", task.Title)
	assert.Len(t, page.Tasks(), 1)
	assert.Len(t, server.Tasks["l1"], 1)
}

func TestAdminPracticeUpdateAndDelete(t *testing.T) {
	server := adminFixture()
	defer server.Close()
	server.Tasks["l1"] = []models.PracticeTask{
		{ID: "t1", LessonID: "l1", Title: "FizzBuzz", Description: "...", SubmissionType: models.SubmissionText},
		{ID: "t2", LessonID: "l1", Title: "CLI tool", Description: "...", SubmissionType: models.SubmissionGitURL},
	}
	client := api.New(server.URL(), api.NoToken{})

	page := NewAdminPracticePage(client.Practice, &toastRecorder{}, "l1")
	ctx := context.Background()
	require.NoError(t, page.Load(ctx))
	require.Len(t, page.Tasks(), 2)

	_, err := page.Update(ctx, "t1", forms.PracticeForm{
		Title:          "FizzBuzz Extended",
		Description:    "Now with configurable divisors.",
		SubmissionType: models.SubmissionGitURL,
	})
	require.NoError(t, err)
	assert.Equal(t, "FizzBuzz Extended", page.Tasks()[0].Title)
	assert.Equal(t, models.SubmissionGitURL, page.Tasks()[0].SubmissionType)

	require.NoError(t, page.Delete(ctx, "t2"))
	require.Len(t, page.Tasks(), 1)
	assert.Equal(t, "t1", page.Tasks()[0].ID)
}

func TestAdminPracticeSubmissionsNewestFirst(t *testing.T) {
	server := adminFixture()
	defer server.Close()
	server.Submissions["t1"] = []models.PracticeSubmission{
		{ID: "sub1", TaskID: "t1", StudentName: "Alice Nguyen", Content: "...", SubmittedAt: "2026-08-01T10:00:00Z"},
		{ID: "sub2", TaskID: "t1", StudentName: "Bob Tran", Content: "...", SubmittedAt: "2026-08-15T09:00:00Z"},
	}
	client := api.New(server.URL(), api.NoToken{})

	page := NewAdminPracticePage(client.Practice, &toastRecorder{}, "l1")

	subs, err := page.Submissions(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "sub2", subs[0].ID, "latest submission first")
	assert.Equal(t, "sub1", subs[1].ID)
}

func TestAdminCoursesUpdatePatchesRow(t *testing.T) {
	server := adminFixture()
	defer server.Close()
	server.Courses = []models.Course{{ID: "c1", Title: "Go Fundamentals", Level: models.LevelBeginner}}
	client := api.New(server.URL(), api.NoToken{})

	page := NewAdminCoursesPage(client.Courses, 10, &toastRecorder{})
	ctx := context.Background()
	page.Load(ctx)

	_, err := page.Update(ctx, "c1", forms.CourseForm{Title: "Go Fundamentals II", Level: models.LevelIntermediate})
	require.NoError(t, err)
	assert.Equal(t, "Go Fundamentals II", page.Items()[0].Title)
	assert.Equal(t, models.LevelIntermediate, page.Items()[0].Level)
	assert.Equal(t, 1, server.CountRequests("GET", "/api/courses"), "no refetch after patch")
}
