package forms

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/PhucLe22/lms-client/internal/models"
	apperrors "github.com/PhucLe22/lms-client/pkg/errors"
)

// Validator validates admin and auth form payloads before they reach the
// server. Server-side validation remains authoritative; this only catches
// obvious mistakes early.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a form validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// FieldErrors maps field names to human-readable messages.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(parts, "; ")
}

// CourseForm backs the admin course create/edit screen.
type CourseForm struct {
	Title       string       `validate:"required,min=3,max=200"`
	Description string       `validate:"max=2000"`
	Level       models.Level `validate:"required,oneof=Beginner Intermediate Advanced"`
}

// LessonForm backs the admin lesson create/edit screen.
type LessonForm struct {
	Title       string `validate:"required,min=3,max=200"`
	Content     string `validate:"required"`
	OrderIndex  int    `validate:"gte=0"`
	VideoURL    string `validate:"omitempty,url"`
	DocumentURL string `validate:"omitempty,url"`
}

// QuizForm backs the admin quiz question editor.
type QuizForm struct {
	Question      string `validate:"required,min=3"`
	OptionA       string `validate:"required"`
	OptionB       string `validate:"required"`
	OptionC       string `validate:"required"`
	OptionD       string `validate:"required"`
	CorrectAnswer string `validate:"required,oneof=A B C D"`
}

// PracticeForm backs the admin practice task editor.
type PracticeForm struct {
	Title          string                `validate:"required,min=3,max=200"`
	Description    string                `validate:"required"`
	SubmissionType models.SubmissionType `validate:"required,oneof=Text GitUrl"`
}

// RegisterForm backs the registration screen.
type RegisterForm struct {
	FullName string `validate:"required,min=2,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// ResetPasswordForm backs the password reset screen.
type ResetPasswordForm struct {
	Token       string `validate:"required"`
	NewPassword string `validate:"required,min=6"`
}

// SubmissionForm backs the practice submission box. GitUrl tasks require a
// well-formed URL.
type SubmissionForm struct {
	Content string
	Type    models.SubmissionType
}

// Check validates any of the form structs, returning field-keyed messages.
func (v *Validator) Check(form any) error {
	if sub, ok := form.(SubmissionForm); ok {
		return v.checkSubmission(sub)
	}
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !asValidationErrors(err, &verrs) {
		return apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "invalid form")
	}
	fe := FieldErrors{}
	for _, f := range verrs {
		fe[f.Field()] = messageFor(f)
	}
	return fe
}

func (v *Validator) checkSubmission(sub SubmissionForm) error {
	fe := FieldErrors{}
	if strings.TrimSpace(sub.Content) == "" {
		fe["Content"] = "is required"
	} else if sub.Type == models.SubmissionGitURL {
		if err := v.validate.Var(sub.Content, "url"); err != nil {
			fe["Content"] = "must be a valid repository URL"
		}
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}

func messageFor(f validator.FieldError) string {
	switch f.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", f.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", f.Param())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", f.Param())
	case "gte":
		return fmt.Sprintf("must be %s or greater", f.Param())
	default:
		return "is invalid"
	}
}
