package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PhucLe22/lms-client/internal/models"
)

func TestCourseFormValid(t *testing.T) {
	v := NewValidator()
	err := v.Check(CourseForm{Title: "Go Fundamentals", Description: "Intro course", Level: models.LevelBeginner})
	assert.NoError(t, err)
}

func TestCourseFormErrors(t *testing.T) {
	v := NewValidator()
	err := v.Check(CourseForm{Title: "Go", Level: "Expert"})
	require.Error(t, err)

	fe, ok := err.(FieldErrors)
	require.True(t, ok)
	assert.Contains(t, fe["Title"], "at least 3")
	assert.Contains(t, fe["Level"], "one of")
}

func TestLessonFormURLValidation(t *testing.T) {
	v := NewValidator()

	err := v.Check(LessonForm{Title: "Variables", Content: "...", OrderIndex: 1, VideoURL: "not a url"})
	require.Error(t, err)
	fe := err.(FieldErrors)
	assert.Contains(t, fe["VideoURL"], "valid URL")

	err = v.Check(LessonForm{Title: "Variables", Content: "...", OrderIndex: 1, VideoURL: "https://cdn.example.com/v1.mp4"})
	assert.NoError(t, err)
}

func TestQuizFormCorrectAnswer(t *testing.T) {
	v := NewValidator()
	form := QuizForm{
		Question: "What is a goroutine?", OptionA: "a", OptionB: "b",
		OptionC: "c", OptionD: "d", CorrectAnswer: "E",
	}
	err := v.Check(form)
	require.Error(t, err)
	assert.Contains(t, err.(FieldErrors)["CorrectAnswer"], "A B C D")

	form.CorrectAnswer = "B"
	assert.NoError(t, v.Check(form))
}

func TestRegisterFormEmail(t *testing.T) {
	v := NewValidator()
	err := v.Check(RegisterForm{FullName: "Alice", Email: "not-an-email", Password: "hunter22"})
	require.Error(t, err)
	assert.Contains(t, err.(FieldErrors)["Email"], "valid email")
}

func TestSubmissionFormGitURL(t *testing.T) {
	v := NewValidator()

	err := v.Check(SubmissionForm{Content: "my answer text", Type: models.SubmissionText})
	assert.NoError(t, err)

	err = v.Check(SubmissionForm{Content: "not a repo", Type: models.SubmissionGitURL})
	require.Error(t, err)
	assert.Contains(t, err.(FieldErrors)["Content"], "repository URL")

	err = v.Check(SubmissionForm{Content: "https://github.com/alice/solution", Type: models.SubmissionGitURL})
	assert.NoError(t, err)

	err = v.Check(SubmissionForm{Content: "   ", Type: models.SubmissionText})
	require.Error(t, err)
	assert.Equal(t, "is required", err.(FieldErrors)["Content"])
}
