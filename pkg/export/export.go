// Package export renders progress and roster reports as CSV or PDF for the
// CLI's export command.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/PhucLe22/lms-client/internal/models"
)

// Report is a titled table plus optional summary lines rendered under it.
type Report struct {
	Title   string
	Headers []string
	Rows    [][]string
	Summary []string
}

// CourseProgressReport tabulates one course's per-lesson completion.
func CourseProgressReport(progress *models.CourseProgress) Report {
	r := Report{
		Title:   "Course Progress: " + progress.CourseTitle,
		Headers: []string{"#", "Lesson", "Completed", "Watched"},
	}
	for _, lp := range progress.Lessons {
		completed := "no"
		if lp.IsCompleted {
			completed = "yes"
		}
		r.Rows = append(r.Rows, []string{
			strconv.Itoa(lp.OrderIndex),
			lp.LessonTitle,
			completed,
			strconv.Itoa(lp.WatchPercent) + "%",
		})
	}
	r.Summary = []string{
		fmt.Sprintf("Completed %d of %d lessons (%.0f%%)",
			progress.CompletedLessons, progress.TotalLessons, progress.ProgressPercent),
	}
	return r
}

// StudentRosterReport tabulates the admin student list.
func StudentRosterReport(students []models.StudentListItem) Report {
	r := Report{
		Title:   "Student Roster",
		Headers: []string{"Name", "Email", "Role", "Enrollments"},
	}
	for _, s := range students {
		r.Rows = append(r.Rows, []string{
			s.FullName, s.Email, string(s.Role), strconv.Itoa(s.EnrolledCourses),
		})
	}
	r.Summary = []string{fmt.Sprintf("%d students", len(students))}
	return r
}

// EnrollmentReport tabulates a student's own enrollments.
func EnrollmentReport(enrollments []models.Enrollment) Report {
	r := Report{
		Title:   "My Courses",
		Headers: []string{"Course", "Status", "Enrolled"},
	}
	for _, e := range enrollments {
		r.Rows = append(r.Rows, []string{e.CourseTitle, string(e.Status), e.EnrolledAt})
	}
	return r
}

// CSV renders the report as RFC 4180 CSV. Summary lines are omitted; CSV
// consumers want clean columns.
func CSV(r Report) ([]byte, error) {
	if len(r.Headers) == 0 {
		return nil, fmt.Errorf("report has no columns")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(r.Headers); err != nil {
		return nil, fmt.Errorf("write headers: %w", err)
	}
	for _, row := range r.Rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
