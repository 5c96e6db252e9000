package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/PhucLe22/lms-client/internal/api"
	"github.com/PhucLe22/lms-client/internal/forms"
	"github.com/PhucLe22/lms-client/internal/guard"
	"github.com/PhucLe22/lms-client/internal/models"
	"github.com/PhucLe22/lms-client/internal/notify"
	"github.com/PhucLe22/lms-client/internal/pages"
	"github.com/PhucLe22/lms-client/internal/session"
	"github.com/PhucLe22/lms-client/pkg/config"
	"github.com/PhucLe22/lms-client/pkg/export"
)

type app struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *session.Store
	client *api.Client
	toasts *notify.Center
	guard  *guard.Guard
}

func (a *app) table() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("both -email and -password are required")
	}

	auth, err := a.client.Auth.Login(ctx, api.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	if err := a.store.Login(auth); err != nil {
		return err
	}
	fmt.Printf("Signed in as %s (%s)\n", auth.FullName, auth.Role)
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := newFlagSet("register")
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := forms.RegisterForm{FullName: *name, Email: *email, Password: *password}
	if err := forms.NewValidator().Check(form); err != nil {
		return err
	}
	auth, err := a.client.Auth.Register(ctx, api.RegisterRequest{
		FullName: *name, Email: *email, Password: *password,
	})
	if err != nil {
		return err
	}
	if err := a.store.Login(auth); err != nil {
		return err
	}
	fmt.Printf("Welcome, %s. You are signed in.\n", auth.FullName)
	return nil
}

func (a *app) forgotPassword(ctx context.Context, args []string) error {
	fs := newFlagSet("forgot-password")
	email := fs.String("email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return fmt.Errorf("-email is required")
	}
	if err := a.client.Auth.ForgotPassword(ctx, *email); err != nil {
		return err
	}
	fmt.Println("If that account exists, a reset email is on its way.")
	return nil
}

func (a *app) resetPassword(ctx context.Context, args []string) error {
	fs := newFlagSet("reset-password")
	token := fs.String("token", "", "reset token from the email")
	password := fs.String("password", "", "new password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := forms.ResetPasswordForm{Token: *token, NewPassword: *password}
	if err := forms.NewValidator().Check(form); err != nil {
		return err
	}
	if err := a.client.Auth.ResetPassword(ctx, *token, *password); err != nil {
		return err
	}
	fmt.Println("Password updated. Sign in with `lms login`.")
	return nil
}

func (a *app) logout([]string) error {
	a.store.Logout()
	fmt.Println("Signed out.")
	return nil
}

func (a *app) whoami(ctx context.Context, _ []string) error {
	return a.guard.RequireAuth(ctx, func(context.Context) error {
		user := a.store.User()
		fmt.Printf("%s <%s> (%s)\n", user.FullName, user.Email, user.Role)
		if expiry, ok := a.store.TokenExpiry(); ok {
			fmt.Printf("Session valid until %s\n", expiry.Local().Format("2006-01-02 15:04"))
		}
		return nil
	})
}

func (a *app) courses(ctx context.Context, args []string) error {
	fs := newFlagSet("courses")
	search := fs.String("search", "", "title search")
	level := fs.String("level", "", "Beginner, Intermediate or Advanced")
	pageNum := fs.Int("page", 1, "page number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	catalog := pages.NewCatalogPage(a.client.Courses, a.cfg.Search.PageSize, a.toasts)
	defer catalog.Stop()
	if *level != "" {
		catalog.SetLevel(ctx, models.Level(*level))
	}
	if *search != "" {
		// One query regardless of how the search term got here.
		catalog.SetSearch(ctx, *search)
	}
	catalog.SetPage(ctx, *pageNum)

	w := a.table()
	fmt.Fprintln(w, "ID\tTITLE\tLEVEL\tLESSONS")
	for _, course := range catalog.Items() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", course.ID, course.Title, course.Level, course.LessonCount)
	}
	w.Flush()
	fmt.Printf("Page %d of %d (%d courses)\n", catalog.Page(), catalog.TotalPages(), catalog.TotalCount())
	return nil
}

func (a *app) course(ctx context.Context, args []string) error {
	fs := newFlagSet("course")
	id := fs.String("id", "", "course id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	page := a.studyPage()
	if err := page.Load(ctx, *id); err != nil {
		return err
	}

	detail := page.Course()
	fmt.Printf("%s [%s]\n%s\n\n", detail.Title, detail.Level, detail.Description)

	w := a.table()
	fmt.Fprintln(w, "#\tLESSON\tSTATE")
	for i, lesson := range page.Lessons() {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, lesson.Title, page.States()[i])
	}
	w.Flush()
	if progress := page.Progress(); progress != nil {
		fmt.Printf("\nProgress: %d/%d lessons (%.0f%%)\n",
			progress.CompletedLessons, progress.TotalLessons, progress.ProgressPercent)
	}
	return nil
}

func (a *app) enroll(ctx context.Context, args []string) error {
	fs := newFlagSet("enroll")
	courseID := fs.String("course", "", "course id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *courseID == "" {
		return fmt.Errorf("-course is required")
	}
	return a.guard.RequireAuth(ctx, func(ctx context.Context) error {
		return pages.NewMyCoursesPage(a.client, a.toasts).Enroll(ctx, *courseID)
	})
}

func (a *app) unenroll(ctx context.Context, args []string) error {
	fs := newFlagSet("unenroll")
	courseID := fs.String("course", "", "course id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *courseID == "" {
		return fmt.Errorf("-course is required")
	}
	return a.guard.RequireAuth(ctx, func(ctx context.Context) error {
		return pages.NewMyCoursesPage(a.client, a.toasts).Unenroll(ctx, *courseID)
	})
}

func (a *app) myCourses(ctx context.Context, _ []string) error {
	return a.guard.RequireAuth(ctx, func(ctx context.Context) error {
		page := pages.NewMyCoursesPage(a.client, a.toasts)
		if err := page.Load(ctx); err != nil {
			return err
		}
		if len(page.Enrollments()) == 0 {
			fmt.Println("You are not enrolled in any courses yet.")
			return nil
		}
		w := a.table()
		fmt.Fprintln(w, "COURSE\tTITLE\tSTATUS\tENROLLED")
		for _, e := range page.Enrollments() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.CourseID, e.CourseTitle, e.Status, e.EnrolledAt)
		}
		w.Flush()
		return nil
	})
}

func (a *app) study(ctx context.Context, args []string) error {
	fs := newFlagSet("study")
	courseID := fs.String("course", "", "course id")
	lessonNum := fs.Int("lesson", 1, "lesson number (1-based)")
	watched := fs.Int("watched", -1, "report video position as a percentage")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *courseID == "" {
		return fmt.Errorf("-course is required")
	}

	return a.guard.RequireAuth(ctx, func(ctx context.Context) error {
		page := a.studyPage()
		if err := page.Load(ctx, *courseID); err != nil {
			return err
		}
		if err := page.Select(ctx, *lessonNum-1); err != nil {
			return err
		}

		lesson := page.Lessons()[page.Current()]
		fmt.Printf("Lesson %d: %s\n\n%s\n", *lessonNum, lesson.Title, lesson.Content)
		if lesson.VideoURL != "" {
			fmt.Printf("\nVideo: %s\n", lesson.VideoURL)
		}
		if lesson.DocumentURL != "" {
			fmt.Printf("Document: %s\n", lesson.DocumentURL)
		}

		if *watched >= 0 {
			if tracker := page.Tracker(); tracker != nil {
				tracker.Observe(ctx, *watched)
				fmt.Printf("\nWatched: %d%%\n", tracker.Percent())
			}
		}

		if next := page.Next(); next >= 0 {
			fmt.Printf("\nNext: lesson %d (%s)\n", next+1, page.Lessons()[next].Title)
		}
		return nil
	})
}

func (a *app) completeLesson(ctx context.Context, args []string) error {
	return a.lessonAction(ctx, args, "complete", (*pages.StudyPage).Complete)
}

func (a *app) uncompleteLesson(ctx context.Context, args []string) error {
	return a.lessonAction(ctx, args, "uncomplete", (*pages.StudyPage).Uncomplete)
}

func (a *app) lessonAction(ctx context.Context, args []string, name string, action func(*pages.StudyPage, context.Context) error) error {
	fs := newFlagSet(name)
	courseID := fs.String("course", "", "course id")
	lessonNum := fs.Int("lesson", 0, "lesson number (1-based)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *courseID == "" || *lessonNum < 1 {
		return fmt.Errorf("-course and -lesson are required")
	}
	return a.guard.RequireAuth(ctx, func(ctx context.Context) error {
		page := a.studyPage()
		if err := page.Load(ctx, *courseID); err != nil {
			return err
		}
		if err := page.Select(ctx, *lessonNum-1); err != nil {
			return err
		}
		return action(page, ctx)
	})
}

func (a *app) quiz(ctx context.Context, args []string) error {
	fs := newFlagSet("quiz")
	lessonID := fs.String("lesson", "", "lesson id")
	answers := fs.String("answers", "", "comma-separated answers in question order, e.g. A,C,B")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *lessonID == "" {
		return fmt.Errorf("-lesson is required")
	}

	return a.guard.RequireAuth(ctx, func(ctx context.Context) error {
		page := pages.NewQuizPage(a.client, a.toasts, *lessonID)
		if err := page.Load(ctx); err != nil {
			return err
		}
		if page.Taken() && *answers == "" {
			printResult(page.Result())
			return nil
		}
		questions := page.Questions()
		if len(questions) == 0 {
			fmt.Println("This lesson has no quiz.")
			return nil
		}

		if *answers == "" {
			for i, q := range questions {
				fmt.Printf("%d. %s\n   A) %s  B) %s  C) %s  D) %s\n",
					i+1, q.Question, q.OptionA, q.OptionB, q.OptionC, q.OptionD)
			}
			fmt.Println("\nSubmit with -answers A,B,... (one letter per question).")
			return nil
		}

		picks := strings.Split(*answers, ",")
		if len(picks) != len(questions) {
			return fmt.Errorf("expected %d answers, got %d", len(questions), len(picks))
		}
		for i, q := range questions {
			page.Answer(q.ID, strings.ToUpper(strings.TrimSpace(picks[i])))
		}
		result, err := page.Submit(ctx)
		if err != nil {
			return err
		}
		printResult(result)
		return nil
	})
}

func printResult(result *models.QuizResult) {
	fmt.Printf("Score: %.0f%% (%d/%d correct)\n", result.Score, result.CorrectCount, result.TotalQuestions)
}

func (a *app) practice(ctx context.Context, args []string) error {
	fs := newFlagSet("practice")
	lessonID := fs.String("lesson", "", "lesson id")
	taskID := fs.String("task", "", "task id to submit against")
	content := fs.String("content", "", "submission text or repository URL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *lessonID == "" {
		return fmt.Errorf("-lesson is required")
	}

	return a.guard.RequireAuth(ctx, func(ctx context.Context) error {
		page := pages.NewPracticePage(a.client, a.toasts, *lessonID)
		if err := page.Load(ctx); err != nil {
			return err
		}

		if *taskID != "" && *content != "" {
			_, err := page.Submit(ctx, *taskID, *content)
			return err
		}

		for _, task := range page.Tasks() {
			fmt.Printf("%s  %s [%s]\n  %s\n", task.ID, task.Title, task.SubmissionType, task.Description)
			for _, sub := range page.Submissions(task.ID) {
				fmt.Printf("  - %s  %s\n", sub.SubmittedAt, sub.Content)
			}
		}
		return nil
	})
}

func (a *app) manageQuiz(ctx context.Context, args []string) error {
	fs := newFlagSet("manage-quiz")
	lessonID := fs.String("lesson", "", "lesson id")
	add := fs.Bool("add", false, "create a question from the option flags")
	update := fs.String("update", "", "question id to update from the option flags")
	remove := fs.String("delete", "", "question id to delete")
	question := fs.String("question", "", "question text")
	optA := fs.String("a", "", "option A")
	optB := fs.String("b", "", "option B")
	optC := fs.String("c", "", "option C")
	optD := fs.String("d", "", "option D")
	answer := fs.String("answer", "", "correct option letter")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *lessonID == "" {
		return fmt.Errorf("-lesson is required")
	}

	return a.guard.RequireRole(ctx, models.RoleAdmin, func(ctx context.Context) error {
		page := pages.NewAdminQuizPage(a.client.Quiz, a.toasts, *lessonID)
		if err := page.Load(ctx); err != nil {
			return err
		}

		form := forms.QuizForm{
			Question: *question,
			OptionA:  *optA, OptionB: *optB, OptionC: *optC, OptionD: *optD,
			CorrectAnswer: strings.ToUpper(*answer),
		}
		switch {
		case *add:
			_, err := page.Create(ctx, form)
			return err
		case *update != "":
			_, err := page.Update(ctx, *update, form)
			return err
		case *remove != "":
			return page.Delete(ctx, *remove)
		}

		for i, q := range page.Questions() {
			fmt.Printf("%d. [%s] %s\n   A) %s  B) %s  C) %s  D) %s  correct: %s\n",
				i+1, q.ID, q.Question, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectAnswer)
		}
		return nil
	})
}

func (a *app) managePractice(ctx context.Context, args []string) error {
	fs := newFlagSet("manage-practice")
	lessonID := fs.String("lesson", "", "lesson id")
	add := fs.Bool("add", false, "create a task from the title flags")
	update := fs.String("update", "", "task id to update from the title flags")
	remove := fs.String("delete", "", "task id to delete")
	title := fs.String("title", "", "task title")
	desc := fs.String("desc", "", "task description")
	subType := fs.String("type", string(models.SubmissionText), "submission type (Text or GitUrl)")
	submissions := fs.String("submissions", "", "task id to list student submissions for")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *lessonID == "" {
		return fmt.Errorf("-lesson is required")
	}

	return a.guard.RequireRole(ctx, models.RoleAdmin, func(ctx context.Context) error {
		page := pages.NewAdminPracticePage(a.client.Practice, a.toasts, *lessonID)

		if *submissions != "" {
			subs, err := page.Submissions(ctx, *submissions)
			if err != nil {
				return err
			}
			w := a.table()
			fmt.Fprintln(w, "SUBMITTED\tSTUDENT\tCONTENT")
			for _, s := range subs {
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.SubmittedAt, s.StudentName, s.Content)
			}
			return w.Flush()
		}

		if err := page.Load(ctx); err != nil {
			return err
		}

		form := forms.PracticeForm{
			Title:          *title,
			Description:    *desc,
			SubmissionType: models.SubmissionType(*subType),
		}
		switch {
		case *add:
			_, err := page.Create(ctx, form)
			return err
		case *update != "":
			_, err := page.Update(ctx, *update, form)
			return err
		case *remove != "":
			return page.Delete(ctx, *remove)
		}

		for _, task := range page.Tasks() {
			fmt.Printf("%s  %s [%s]\n  %s\n", task.ID, task.Title, task.SubmissionType, task.Description)
		}
		return nil
	})
}

func (a *app) students(ctx context.Context, args []string) error {
	fs := newFlagSet("students")
	search := fs.String("search", "", "name or email search")
	role := fs.String("role", "", "filter by role")
	setRole := fs.String("set-role", "", "id=Role to change a student's role")
	remove := fs.String("delete", "", "student id to delete")
	detail := fs.String("detail", "", "student id to inspect")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return a.guard.RequireRole(ctx, models.RoleAdmin, func(ctx context.Context) error {
		page := pages.NewAdminStudentsPage(a.client.Admin, a.cfg.Search.PageSize, a.toasts)
		defer page.Stop()

		if *detail != "" {
			student, err := page.Detail(ctx, *detail)
			if err != nil {
				return err
			}
			fmt.Printf("%s <%s>  %s  joined %s\n", student.FullName, student.Email, student.Role, student.CreatedAt)
			w := a.table()
			fmt.Fprintln(w, "COURSE\tSTATUS\tPROGRESS")
			for _, e := range student.Enrollments {
				fmt.Fprintf(w, "%s\t%s\t%d/%d (%.0f%%)\n",
					e.CourseTitle, e.Status, e.CompletedLessons, e.TotalLessons, e.ProgressPercent)
			}
			return w.Flush()
		}
		if *setRole != "" {
			id, roleName, ok := strings.Cut(*setRole, "=")
			if !ok {
				return fmt.Errorf("-set-role expects id=Role")
			}
			page.Load(ctx)
			return page.SetRole(ctx, id, models.Role(roleName))
		}
		if *remove != "" {
			page.Load(ctx)
			return page.Delete(ctx, *remove)
		}

		if *role != "" {
			page.SetRoleFilter(ctx, models.Role(*role))
		}
		if *search != "" {
			page.SetSearch(ctx, *search)
		}
		page.Load(ctx)

		w := a.table()
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tCOURSES")
		for _, s := range page.Items() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", s.ID, s.FullName, s.Email, s.Role, s.EnrolledCourses)
		}
		w.Flush()
		fmt.Printf("Page %d of %d (%d students)\n", page.Page(), page.TotalPages(), page.TotalCount())
		return nil
	})
}

func (a *app) upload(ctx context.Context, args []string) error {
	fs := newFlagSet("upload")
	lessonID := fs.String("lesson", "", "lesson id")
	file := fs.String("file", "", "document to attach")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *lessonID == "" || *file == "" {
		return fmt.Errorf("-lesson and -file are required")
	}

	return a.guard.RequireRole(ctx, models.RoleAdmin, func(ctx context.Context) error {
		f, err := os.Open(*file)
		if err != nil {
			return err
		}
		defer f.Close()

		lesson, err := a.client.Lessons.UploadDocument(ctx, *lessonID, *file, f, func(sent, total int64) {
			fmt.Fprintf(os.Stderr, "\rUploading... %d%%", sent*100/total)
		})
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return err
		}
		fmt.Printf("Attached %s\n", lesson.DocumentURL)
		return nil
	})
}

func (a *app) dashboard(ctx context.Context, _ []string) error {
	return a.guard.RequireRole(ctx, models.RoleAdmin, func(ctx context.Context) error {
		page := pages.NewDashboardPage(a.client, a.toasts)
		if err := page.Load(ctx); err != nil {
			return err
		}
		stats := page.Stats()
		w := a.table()
		fmt.Fprintf(w, "Students\t%d\n", stats.TotalStudents)
		fmt.Fprintf(w, "Courses\t%d\n", stats.TotalCourses)
		fmt.Fprintf(w, "Enrollments\t%d (%d active)\n", stats.TotalEnrollments, stats.ActiveEnrollments)
		fmt.Fprintf(w, "Average progress\t%.0f%%\n", stats.AverageProgress)
		w.Flush()
		return nil
	})
}

func (a *app) health(ctx context.Context, _ []string) error {
	report, err := a.client.Health.Health(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Status: %s\n", report.Status)
	for name, entry := range report.Entries {
		fmt.Printf("  %s: %s\n", name, entry.Status)
	}
	return nil
}

func (a *app) export(ctx context.Context, args []string) error {
	fs := newFlagSet("export")
	kind := fs.String("report", "progress", "progress, students or my-courses")
	courseID := fs.String("course", "", "course id (progress report)")
	format := fs.String("format", "csv", "csv or pdf")
	out := fs.String("out", "", "output file (default report.<format>)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return a.guard.RequireAuth(ctx, func(ctx context.Context) error {
		var (
			report export.Report
			err    error
		)
		switch *kind {
		case "progress":
			if *courseID == "" {
				return fmt.Errorf("-course is required for a progress report")
			}
			var progress *models.CourseProgress
			progress, err = a.client.Progress.CourseProgress(ctx, *courseID)
			if err == nil {
				report = export.CourseProgressReport(progress)
			}
		case "students":
			err = a.guard.RequireRole(ctx, models.RoleAdmin, func(ctx context.Context) error {
				listed, listErr := a.client.Admin.Students(ctx, api.StudentListOptions{Page: 1, PageSize: 1000})
				if listErr != nil {
					return listErr
				}
				report = export.StudentRosterReport(listed.Items)
				return nil
			})
		case "my-courses":
			var enrollments []models.Enrollment
			enrollments, err = a.client.Enrollments.MyCourses(ctx)
			if err == nil {
				report = export.EnrollmentReport(enrollments)
			}
		default:
			return fmt.Errorf("unknown report %q", *kind)
		}
		if err != nil {
			return err
		}

		var payload []byte
		switch *format {
		case "csv":
			payload, err = export.CSV(report)
		case "pdf":
			payload, err = export.PDF(report)
		default:
			return fmt.Errorf("unknown format %q", *format)
		}
		if err != nil {
			return err
		}

		path := *out
		if path == "" {
			path = "report." + *format
		}
		if err := os.WriteFile(path, payload, 0o644); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%d bytes)\n", path, len(payload))
		return nil
	})
}

func (a *app) studyPage() *pages.StudyPage {
	return pages.NewStudyPage(a.client, a.toasts, a.store.IsAdmin(),
		pages.WithStudyLogger(a.logger),
		pages.WithStudyThresholds(a.cfg.Study.VideoThreshold, a.cfg.Study.PushStep),
	)
}
