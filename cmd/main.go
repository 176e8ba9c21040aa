package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/okian/k12lms/internal/adapters/console"
	"github.com/okian/k12lms/internal/adapters/repository"
	"github.com/okian/k12lms/internal/adapters/roster"
	app "github.com/okian/k12lms/internal/app"
	"github.com/okian/k12lms/internal/config"
	"github.com/okian/k12lms/internal/domain/model"
	"github.com/okian/k12lms/internal/domain/types"
	"github.com/okian/k12lms/pkg/logger"
	"github.com/okian/k12lms/pkg/metrics"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usage = `usage: k12lms <command> [arguments]

commands:
  users                                   list everyone who can log in
  dashboard <user>                        show a teacher or student dashboard
  grade <teacher> [student/assignment]    auto-grade one or all pending submissions
  submit <student> <assignment> <text>    hand in work
  assign <teacher> [flags]                create an assignment (see assign -h)
  analytics <teacher> [course]            grade summary for one or all courses
  stats                                   collection counts
  roster                                  print the loaded roster as YAML
  demo                                    walk through a teacher and a student session
  help                                    show this message

Data is seeded from the roster on every run and is not persisted.
`

var errUsage = errors.New("usage")

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprint(stdout, usage)
		return exitOK
	}

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use fmt for initialization errors since logger isn't available yet
		fmt.Fprintln(stderr, "failed to load config: "+err.Error())
		return exitError
	}

	// Logs go to stderr so dashboards on stdout stay clean.
	if err := logger.Init(
		logger.WithWriter(stderr),
		logger.WithRotatingFile(cfg.LogFile, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays),
	); err != nil {
		fmt.Fprintln(stderr, "failed to initialize logging: "+err.Error())
		return exitError
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			fmt.Fprintln(stderr, "failed to close log file: "+err.Error())
		}
	}()
	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	r, err := loadRoster(cfg.RosterPath)
	if err != nil {
		loggerInstance.Error(ctx, "roster unavailable", logger.String("path", cfg.RosterPath), logger.Error(err))
		return exitError
	}
	store := repository.NewMemoryStore()
	if err := r.Seed(ctx, store, time.Now()); err != nil {
		loggerInstance.Error(ctx, "roster rejected", logger.Error(err))
		return exitError
	}

	svc := app.New(
		app.WithLogger(loggerInstance.Named("service")),
		app.WithStore(store),
		app.WithGradingWorkers(cfg.GradingWorkers),
		app.WithQueueSize(cfg.GradingQueueSize),
		app.WithRecordHistory(cfg.RecordGradeHistory),
		app.WithDueSoonDays(cfg.DueSoonDays),
	)

	cli := &cli{svc: svc, roster: r, out: console.New(stdout), stdout: stdout, stderr: stderr}
	err = cli.dispatch(ctx, args[0], args[1:])

	if cfg.MetricsTextfile != "" {
		if werr := metrics.WriteTextfile(cfg.MetricsTextfile); werr != nil {
			loggerInstance.Warn(ctx, "metrics snapshot not written", logger.String("path", cfg.MetricsTextfile), logger.Error(werr))
		}
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, err.Error())
		fmt.Fprint(stderr, usage)
		return exitUsage
	case errors.Is(err, flag.ErrHelp):
		return exitUsage
	default:
		fmt.Fprintln(stderr, "error: "+err.Error())
		return exitError
	}
}

func loadRoster(path string) (*roster.Roster, error) {
	if path == "" {
		return roster.Sample(), nil
	}
	return roster.Load(path)
}

type cli struct {
	svc    *app.Service
	roster *roster.Roster
	out    *console.Renderer
	stdout io.Writer
	stderr io.Writer
}

func (c *cli) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "users":
		return c.out.Directory(c.svc.Directory(ctx))
	case "dashboard":
		if len(args) != 1 {
			return fmt.Errorf("%w: dashboard <user>", errUsage)
		}
		return c.dashboard(ctx, args[0])
	case "grade":
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("%w: grade <teacher> [student/assignment]", errUsage)
		}
		return c.grade(ctx, args[0], args[1:])
	case "submit":
		if len(args) < 3 {
			return fmt.Errorf("%w: submit <student> <assignment> <text>", errUsage)
		}
		sub, err := c.svc.Submit(ctx, args[0], args[1], strings.Join(args[2:], " "))
		if err != nil {
			return err
		}
		return c.out.Submission(sub)
	case "assign":
		return c.assign(ctx, args)
	case "analytics":
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("%w: analytics <teacher> [course]", errUsage)
		}
		course := app.AllCourses
		if len(args) == 2 {
			course = args[1]
		}
		a, err := c.svc.Analytics(ctx, args[0], course)
		if err != nil {
			return err
		}
		return c.out.Analytics(a)
	case "stats":
		return c.out.Stats(c.svc.Stats(ctx))
	case "roster":
		return c.roster.Write(c.stdout)
	case "demo":
		return c.demo(ctx)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func (c *cli) dashboard(ctx context.Context, userID string) error {
	u, err := c.svc.Login(ctx, userID)
	if err != nil {
		return err
	}
	if u.IsTeacher() {
		d, err := console.LoadTeacherDashboard(ctx, c.svc, userID)
		if err != nil {
			return err
		}
		return c.out.TeacherDashboard(d)
	}
	d, err := console.LoadStudentDashboard(ctx, c.svc, userID)
	if err != nil {
		return err
	}
	return c.out.StudentDashboard(d)
}

func (c *cli) grade(ctx context.Context, teacherID string, keys []string) error {
	if len(keys) == 0 {
		graded, err := c.svc.GradePending(ctx, teacherID)
		if err != nil {
			return err
		}
		return c.out.Graded(graded)
	}
	student, assignment, ok := strings.Cut(keys[0], "/")
	if !ok || student == "" || assignment == "" {
		return fmt.Errorf("%w: submission must be student/assignment, got %q", errUsage, keys[0])
	}
	g, err := c.svc.GradeSubmission(ctx, teacherID, model.SubmissionKey{StudentID: student, AssignmentID: assignment})
	if err != nil {
		return err
	}
	return c.out.Graded([]types.GradedSubmission{g})
}

func (c *cli) assign(ctx context.Context, args []string) error {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		return fmt.Errorf("%w: assign <teacher> [flags]", errUsage)
	}
	fs := flag.NewFlagSet("assign", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	var in types.NewAssignment
	difficulty := fs.String("difficulty", string(model.DifficultyMedium), "easy, medium or hard")
	fs.StringVar(&in.CourseID, "course", "", "course ID (required)")
	fs.StringVar(&in.Title, "title", "", "assignment title (required)")
	fs.StringVar(&in.Description, "desc", "", "assignment description")
	fs.IntVar(&in.Points, "points", 100, "maximum points")
	fs.IntVar(&in.DueInDays, "due", 7, "days until due")
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	in.Difficulty = model.Difficulty(strings.ToLower(*difficulty))

	a, err := c.svc.CreateAssignment(ctx, args[0], in)
	if err != nil {
		return err
	}
	return c.out.Assignment(a)
}

// demo replays a short session: a teacher reviews and grades, a student
// hands in work and checks their dashboard.
func (c *cli) demo(ctx context.Context) error {
	const (
		teacher = "teacher1"
		student = "student3"
	)
	steps := []struct {
		title string
		run   func() error
	}{
		{"Login", func() error { return c.out.Directory(c.svc.Directory(ctx)) }},
		{"Teacher dashboard", func() error { return c.dashboard(ctx, teacher) }},
		{"New assignment", func() error {
			a, err := c.svc.CreateAssignment(ctx, teacher, types.NewAssignment{
				CourseID:    "math7",
				Title:       "Decimals Practice",
				Description: "Convert fractions to decimals",
				Points:      50,
				Difficulty:  model.DifficultyEasy,
				DueInDays:   4,
			})
			if err != nil {
				return err
			}
			return c.out.Assignment(a)
		}},
		{"Student submits", func() error {
			sub, err := c.svc.Submit(ctx, student, "a1",
				"Simplified all twenty fractions and checked each answer by cross multiplying.")
			if err != nil {
				return err
			}
			return c.out.Submission(sub)
		}},
		{"Batch grading", func() error { return c.grade(ctx, teacher, nil) }},
		{"Student dashboard", func() error { return c.dashboard(ctx, student) }},
		{"Class analytics", func() error {
			a, err := c.svc.Analytics(ctx, teacher, app.AllCourses)
			if err != nil {
				return err
			}
			return c.out.Analytics(a)
		}},
	}
	for i, s := range steps {
		if _, err := fmt.Fprintf(c.stdout, "\n--- %d. %s ---\n", i+1, s.title); err != nil {
			return err
		}
		if err := s.run(); err != nil {
			return fmt.Errorf("demo step %q: %w", s.title, err)
		}
	}
	return nil
}
