// Command lms is a terminal client for the LMS API: browse the catalog,
// study lessons, take quizzes, and run the admin screens, with the same
// behavior as the web front end.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/PhucLe22/lms-client/internal/api"
	"github.com/PhucLe22/lms-client/internal/guard"
	"github.com/PhucLe22/lms-client/internal/notify"
	"github.com/PhucLe22/lms-client/internal/session"
	"github.com/PhucLe22/lms-client/pkg/config"
	"github.com/PhucLe22/lms-client/pkg/logger"
)

const usage = `Usage: lms <command> [flags]

Account:
  login        Sign in and store the session token
  register     Create an account
  forgot-password  Request a password reset email
  reset-password   Set a new password with a reset token
  logout       Drop the stored session
  whoami       Show the signed-in user

Learning:
  courses      Browse the course catalog
  course       Show one course with its lessons
  enroll       Join a course
  unenroll     Leave a course
  my-courses   List your enrollments
  study        Study a lesson (marks video progress)
  complete     Mark a lesson complete
  uncomplete   Mark a lesson incomplete
  quiz         Take or review a lesson quiz
  practice     View and submit practice tasks

Admin:
  students     Manage students (-detail shows one profile)
  manage-quiz      Edit a lesson's quiz questions
  manage-practice  Edit practice tasks and review submissions
  upload       Attach a document to a lesson
  dashboard    Show platform stats

Other:
  health       Check API health
  export       Export reports (csv or pdf)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	storage, err := session.NewFileTokenStorage(cfg.Auth.TokenFile)
	if err != nil {
		log.Fatalf("failed to open token storage: %v", err)
	}

	toasts := notify.NewCenter()
	store := session.NewStore(storage, logr)
	client := api.New(cfg.API.BaseURL, store,
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetry(cfg.API.MaxRetries, cfg.API.RetryBase),
		api.WithEvents(toasts),
		api.WithLogger(logr),
	)

	toasts.SetSessionExpiredHandler(func() {
		fmt.Fprintln(os.Stderr, "Session expired, please run `lms login` again.")
	})
	done := make(chan struct{})
	go printToasts(toasts, done)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go store.Hydrate(ctx, client.Auth)

	app := &app{
		cfg:    cfg,
		logger: logr,
		store:  store,
		client: client,
		toasts: toasts,
		guard:  guard.New(store),
	}

	err = app.run(ctx, os.Args[1], os.Args[2:])
	close(done)
	// let queued toasts reach stderr before we exit
	time.Sleep(20 * time.Millisecond)
	if err != nil {
		logr.Debug("command failed", zap.String("command", os.Args[1]), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printToasts(center *notify.Center, done <-chan struct{}) {
	ch := center.Subscribe()
	for {
		select {
		case toast := <-ch:
			fmt.Fprintf(os.Stderr, "[%s] %s\n", toast.Variant, toast.Message)
		case <-done:
			return
		}
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "register":
		return a.register(ctx, args)
	case "forgot-password":
		return a.forgotPassword(ctx, args)
	case "reset-password":
		return a.resetPassword(ctx, args)
	case "logout":
		return a.logout(args)
	case "whoami":
		return a.whoami(ctx, args)
	case "courses":
		return a.courses(ctx, args)
	case "course":
		return a.course(ctx, args)
	case "enroll":
		return a.enroll(ctx, args)
	case "unenroll":
		return a.unenroll(ctx, args)
	case "my-courses":
		return a.myCourses(ctx, args)
	case "study":
		return a.study(ctx, args)
	case "complete":
		return a.completeLesson(ctx, args)
	case "uncomplete":
		return a.uncompleteLesson(ctx, args)
	case "quiz":
		return a.quiz(ctx, args)
	case "practice":
		return a.practice(ctx, args)
	case "students":
		return a.students(ctx, args)
	case "manage-quiz":
		return a.manageQuiz(ctx, args)
	case "manage-practice":
		return a.managePractice(ctx, args)
	case "upload":
		return a.upload(ctx, args)
	case "dashboard":
		return a.dashboard(ctx, args)
	case "health":
		return a.health(ctx, args)
	case "export":
		return a.export(ctx, args)
	case "help", "-h", "--help":
		fmt.Fprint(os.Stderr, usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}
