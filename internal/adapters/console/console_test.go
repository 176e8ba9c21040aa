package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/okian/k12lms/internal/adapters/console"
	"github.com/okian/k12lms/internal/adapters/repository"
	"github.com/okian/k12lms/internal/adapters/roster"
	service "github.com/okian/k12lms/internal/app"
	"github.com/okian/k12lms/internal/domain/model"
	"github.com/okian/k12lms/internal/domain/types"
	"github.com/okian/k12lms/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	_ = logger.SetLevelString("error")
}

var seededAt = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T) *service.Service {
	t.Helper()
	store := repository.NewMemoryStore()
	if err := roster.Sample().Seed(context.Background(), store, seededAt); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return service.New(
		service.WithStore(store),
		service.WithClock(func() time.Time { return seededAt }),
	)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestRenderer_Directory(t *testing.T) {
	Convey("Given the sample directory", t, func() {
		var buf bytes.Buffer
		r := console.New(&buf)
		svc := newService(t)

		So(r.Directory(svc.Directory(context.Background())), ShouldBeNil)

		Convey("Then teachers and students are listed", func() {
			out := buf.String()
			So(out, ShouldContainSubstring, "Teachers")
			So(out, ShouldContainSubstring, "teacher2  Mr. Davis")
			So(out, ShouldContainSubstring, "Sophia Anderson")
			So(strings.Index(out, "Ms. Johnson"), ShouldBeLessThan, strings.Index(out, "Emma Wilson"))
		})
	})

	Convey("Given a writer that fails", t, func() {
		r := console.New(failingWriter{})
		So(r.Directory(types.Directory{}), ShouldNotBeNil)
	})
}

func TestRenderer_TeacherDashboard(t *testing.T) {
	Convey("Given a teacher with pending work", t, func() {
		ctx := context.Background()
		svc := newService(t)
		var buf bytes.Buffer
		r := console.New(&buf, console.WithBarWidth(4))

		d, err := console.LoadTeacherDashboard(ctx, svc, "teacher1")
		So(err, ShouldBeNil)
		So(r.TeacherDashboard(d), ShouldBeNil)

		Convey("Then every section is rendered", func() {
			out := buf.String()
			So(out, ShouldContainSubstring, "Welcome, Ms. Johnson")
			So(out, ShouldContainSubstring, "Grade 7 Mathematics")
			So(out, ShouldContainSubstring, "student1/a3")
			So(out, ShouldContainSubstring, "Analytics: All Courses")
			So(out, ShouldContainSubstring, "Average: 88.5")
		})

		Convey("Then distribution bars scale to the widest range", func() {
			lines := strings.Split(buf.String(), "\n")
			var bars []string
			for _, l := range lines {
				if strings.HasPrefix(l, "80-90") || strings.HasPrefix(l, "90-100") || strings.HasPrefix(l, "0-60") {
					bars = append(bars, strings.TrimSpace(l))
				}
			}
			So(bars, ShouldHaveLength, 3)
			So(bars[0], ShouldEndWith, "0")
			So(bars[1], ShouldEndWith, "####")
			So(bars[2], ShouldEndWith, "####")
		})
	})

	Convey("Given a teacher with nothing to grade", t, func() {
		ctx := context.Background()
		svc := newService(t)
		var buf bytes.Buffer

		d, err := console.LoadTeacherDashboard(ctx, svc, "teacher2")
		So(err, ShouldBeNil)
		So(console.New(&buf).TeacherDashboard(d), ShouldBeNil)

		So(buf.String(), ShouldContainSubstring, "Nothing to grade.")
		So(buf.String(), ShouldContainSubstring, "No graded submissions yet.")
	})

	Convey("Given a student ID", t, func() {
		_, err := console.LoadTeacherDashboard(context.Background(), newService(t), "student1")
		So(errors.Is(err, service.ErrNotTeacher), ShouldBeTrue)
	})
}

func TestRenderer_StudentDashboard(t *testing.T) {
	Convey("Given a student with graded and pending work", t, func() {
		ctx := context.Background()
		svc := newService(t)
		var buf bytes.Buffer

		d, err := console.LoadStudentDashboard(ctx, svc, "student1")
		So(err, ShouldBeNil)
		So(console.New(&buf).StudentDashboard(d), ShouldBeNil)

		Convey("Then every section is rendered", func() {
			out := buf.String()
			So(out, ShouldContainSubstring, "Welcome, Emma Wilson (grade 7)")
			So(out, ShouldContainSubstring, "graded 95/100")
			So(out, ShouldContainSubstring, "submitted, awaiting grade")
			So(out, ShouldContainSubstring, "Overall average: 95.0 over 1 grades")
			So(out, ShouldContainSubstring, "Writing Skills Lab")
			So(out, ShouldContainSubstring, "Grade 7 Science: Ecosystems Study, Physics Principles, Cell Biology")
			So(out, ShouldContainSubstring, "in 7 days")
			So(out, ShouldContainSubstring, "Predicted score: 85.0% (Performance trend: declining)")
		})
	})

	Convey("Given a student with nothing graded", t, func() {
		ctx := context.Background()
		var buf bytes.Buffer

		d, err := console.LoadStudentDashboard(ctx, newService(t), "student4")
		So(err, ShouldBeNil)
		So(console.New(&buf).StudentDashboard(d), ShouldBeNil)

		So(buf.String(), ShouldContainSubstring, "No grades yet.")
		So(buf.String(), ShouldContainSubstring, "due in 2 days")
	})
}

func TestRenderer_Results(t *testing.T) {
	Convey("Given a batch of graded submissions", t, func() {
		ctx := context.Background()
		svc := newService(t)
		var buf bytes.Buffer
		r := console.New(&buf)

		graded, err := svc.GradePending(ctx, "teacher1")
		So(err, ShouldBeNil)
		So(r.Graded(graded), ShouldBeNil)

		Convey("Then grades and feedback are printed", func() {
			So(buf.String(), ShouldContainSubstring, "Emma Wilson")
			So(buf.String(), ShouldContainSubstring, "needs_improvement")
			So(buf.String(), ShouldContainSubstring, "Suggestions: Schedule one-on-one tutoring session.")
		})

		Convey("And an empty batch says so", func() {
			buf.Reset()
			So(r.Graded(nil), ShouldBeNil)
			So(buf.String(), ShouldEqual, "No pending submissions.\n")
		})
	})

	Convey("Given a new assignment and submission", t, func() {
		var buf bytes.Buffer
		r := console.New(&buf)
		due := seededAt.Add(72 * time.Hour)

		So(r.Assignment(model.Assignment{ID: "a6", CourseID: "math7", Title: "Decimals", Points: 50, Difficulty: model.DifficultyEasy, DueDate: due}), ShouldBeNil)
		So(r.Submission(model.Submission{ID: "s-1", StudentID: "student3", AssignmentID: "a6", SubmittedAt: seededAt}), ShouldBeNil)
		So(r.Stats(types.Stats{Teachers: 2, Pending: 1}), ShouldBeNil)

		out := buf.String()
		So(out, ShouldContainSubstring, `Created a6 "Decimals" in math7 (easy, 50 points), due 2026-10-19`)
		So(out, ShouldContainSubstring, "Submitted student3 for a6 at 2026-10-16 09:00 (id s-1)")
		So(out, ShouldContainSubstring, "TEACHERS")
	})
}
