package models

import "time"

// Role identifies what a signed-in user may do. Authorization is enforced
// server-side; the client only uses the role for view gating.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleStudent Role = "Student"
)

// Level classifies course difficulty.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// EnrollmentStatus tracks a student's standing in a course.
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "Active"
	EnrollmentCompleted EnrollmentStatus = "Completed"
)

// SubmissionType restricts what a practice task accepts.
type SubmissionType string

const (
	SubmissionText   SubmissionType = "Text"
	SubmissionGitURL SubmissionType = "GitUrl"
)

// User is the client view of an account.
type User struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// AuthResponse is returned by login and register. The user id is not part
// of the payload.
type AuthResponse struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
}

// Course is the catalog list item.
type Course struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Level           Level  `json:"level"`
	CreatorName     string `json:"creatorName"`
	CreatedAt       string `json:"createdAt"`
	LessonCount     int    `json:"lessonCount"`
	EnrollmentCount int    `json:"enrollmentCount"`
}

// CourseDetail carries the course together with its lessons.
type CourseDetail struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Level       Level    `json:"level"`
	CreatorName string   `json:"creatorName"`
	CreatedAt   string   `json:"createdAt"`
	Lessons     []Lesson `json:"lessons"`
}

// Lesson belongs to a course. OrderIndex is unique within a course.
type Lesson struct {
	ID          string `json:"id"`
	CourseID    string `json:"courseId,omitempty"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	OrderIndex  int    `json:"orderIndex"`
	VideoURL    string `json:"videoUrl,omitempty"`
	DocumentURL string `json:"documentUrl,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

// Enrollment links the current student to a course.
type Enrollment struct {
	ID          string           `json:"id"`
	CourseID    string           `json:"courseId"`
	CourseTitle string           `json:"courseTitle"`
	EnrolledAt  string           `json:"enrolledAt"`
	Status      EnrollmentStatus `json:"status"`
}

// LessonProgress is the per-student completion record for one lesson.
type LessonProgress struct {
	LessonID     string  `json:"lessonId"`
	LessonTitle  string  `json:"lessonTitle"`
	OrderIndex   int     `json:"orderIndex"`
	IsCompleted  bool    `json:"isCompleted"`
	CompletedAt  *string `json:"completedAt"`
	WatchPercent int     `json:"watchPercent"`
}

// CourseProgress aggregates lesson progress for one course.
type CourseProgress struct {
	CourseID         string           `json:"courseId"`
	CourseTitle      string           `json:"courseTitle"`
	TotalLessons     int              `json:"totalLessons"`
	CompletedLessons int              `json:"completedLessons"`
	ProgressPercent  float64          `json:"progressPercent"`
	Lessons          []LessonProgress `json:"lessons"`
}

// Lesson returns the progress record for a lesson id, or nil.
func (p *CourseProgress) Lesson(lessonID string) *LessonProgress {
	if p == nil {
		return nil
	}
	for i := range p.Lessons {
		if p.Lessons[i].LessonID == lessonID {
			return &p.Lessons[i]
		}
	}
	return nil
}

// QuizQuestion has four options. CorrectAnswer is only populated on admin
// reads; student reads omit it.
type QuizQuestion struct {
	ID            string `json:"id"`
	LessonID      string `json:"lessonId,omitempty"`
	Question      string `json:"question"`
	OptionA       string `json:"optionA"`
	OptionB       string `json:"optionB"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectAnswer string `json:"correctAnswer,omitempty"`
}

// QuizAnswerDetail pairs a selected answer with the correct one.
type QuizAnswerDetail struct {
	QuestionID     string `json:"questionId"`
	Question       string `json:"question"`
	SelectedAnswer string `json:"selectedAnswer"`
	CorrectAnswer  string `json:"correctAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
}

// QuizResult is the per-student score for a lesson quiz. Its existence
// implies the quiz was completed.
type QuizResult struct {
	LessonID       string             `json:"lessonId"`
	Score          float64            `json:"score"`
	CorrectCount   int                `json:"correctCount"`
	TotalQuestions int                `json:"totalQuestions"`
	SubmittedAt    string             `json:"submittedAt"`
	Answers        []QuizAnswerDetail `json:"answers"`
}

// PracticeTask belongs to a lesson.
type PracticeTask struct {
	ID             string         `json:"id"`
	LessonID       string         `json:"lessonId,omitempty"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	SubmissionType SubmissionType `json:"submissionType"`
	CreatedAt      string         `json:"createdAt"`
}

// PracticeSubmission is one entry in a task's append-only history.
type PracticeSubmission struct {
	ID          string `json:"id"`
	TaskID      string `json:"taskId,omitempty"`
	StudentName string `json:"studentName,omitempty"`
	Content     string `json:"content"`
	SubmittedAt string `json:"submittedAt"`
}

// StudentListItem is the admin students table row.
type StudentListItem struct {
	ID              string `json:"id"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Role            Role   `json:"role"`
	CreatedAt       string `json:"createdAt"`
	EnrolledCourses int    `json:"enrolledCourses"`
}

// StudentEnrollment is one course row in the admin student detail view.
type StudentEnrollment struct {
	CourseID         string           `json:"courseId"`
	CourseTitle      string           `json:"courseTitle"`
	EnrolledAt       string           `json:"enrolledAt"`
	Status           EnrollmentStatus `json:"status"`
	CompletedLessons int              `json:"completedLessons"`
	TotalLessons     int              `json:"totalLessons"`
	ProgressPercent  float64          `json:"progressPercent"`
}

// StudentDetail is the admin view of a single student.
type StudentDetail struct {
	ID          string              `json:"id"`
	FullName    string              `json:"fullName"`
	Email       string              `json:"email"`
	Role        Role                `json:"role"`
	CreatedAt   string              `json:"createdAt"`
	Enrollments []StudentEnrollment `json:"enrollments"`
}

// DashboardStats is the aggregate dashboard payload.
type DashboardStats struct {
	TotalCourses      int     `json:"totalCourses"`
	EnrolledCourses   int     `json:"enrolledCourses"`
	CompletedCourses  int     `json:"completedCourses"`
	CompletedLessons  int     `json:"completedLessons"`
	AverageProgress   float64 `json:"averageProgress"`
	TotalStudents     int     `json:"totalStudents"`
	TotalEnrollments  int     `json:"totalEnrollments"`
	ActiveEnrollments int     `json:"activeEnrollments"`
}

// HealthEntry is a single dependency check inside a health report.
type HealthEntry struct {
	Status      string         `json:"status"`
	Description string         `json:"description,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
}

// HealthReport mirrors the health endpoint payload.
type HealthReport struct {
	Status        string                 `json:"status"`
	TotalDuration string                 `json:"totalDuration"`
	Entries       map[string]HealthEntry `json:"entries"`
}

// Paginated is the server's pagination envelope.
type Paginated[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

// Timestamp parses the wire time format used across payloads.
func Timestamp(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}
