package console

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/okian/k12lms/internal/domain/model"
	"github.com/okian/k12lms/internal/domain/types"
)

// TeacherViews is what the teacher dashboard reads.
type TeacherViews interface {
	Login(ctx context.Context, userID string) (model.User, error)
	TeacherCourses(ctx context.Context, teacherID string) ([]types.CourseSummary, error)
	PendingSubmissions(ctx context.Context, teacherID string) ([]types.PendingSubmission, error)
	Analytics(ctx context.Context, teacherID, courseID string) (types.Analytics, error)
}

// StudentViews is what the student dashboard reads.
type StudentViews interface {
	Login(ctx context.Context, userID string) (model.User, error)
	StudentCourses(ctx context.Context, studentID string) ([]types.StudentCourse, error)
	Progress(ctx context.Context, studentID string) (types.Progress, error)
	Recommendations(ctx context.Context, studentID string) (types.Recommendations, error)
	Upcoming(ctx context.Context, studentID string) ([]types.UpcomingAssignment, error)
}

// TeacherDashboard is everything shown to a teacher on login.
type TeacherDashboard struct {
	Teacher   model.User
	Courses   []types.CourseSummary
	Pending   []types.PendingSubmission
	Analytics types.Analytics
}

// StudentDashboard is everything shown to a student on login.
type StudentDashboard struct {
	Student         model.User
	Courses         []types.StudentCourse
	Progress        types.Progress
	Recommendations types.Recommendations
	Upcoming        []types.UpcomingAssignment
}

// LoadTeacherDashboard gathers a teacher's dashboard. Analytics covers all
// of the teacher's courses.
func LoadTeacherDashboard(ctx context.Context, v TeacherViews, teacherID string) (TeacherDashboard, error) {
	var (
		d   TeacherDashboard
		err error
	)
	if d.Teacher, err = v.Login(ctx, teacherID); err != nil {
		return d, err
	}
	if d.Courses, err = v.TeacherCourses(ctx, teacherID); err != nil {
		return d, err
	}
	if d.Pending, err = v.PendingSubmissions(ctx, teacherID); err != nil {
		return d, err
	}
	if d.Analytics, err = v.Analytics(ctx, teacherID, ""); err != nil {
		return d, err
	}
	return d, nil
}

// LoadStudentDashboard gathers a student's dashboard.
func LoadStudentDashboard(ctx context.Context, v StudentViews, studentID string) (StudentDashboard, error) {
	var (
		d   StudentDashboard
		err error
	)
	if d.Student, err = v.Login(ctx, studentID); err != nil {
		return d, err
	}
	if d.Courses, err = v.StudentCourses(ctx, studentID); err != nil {
		return d, err
	}
	if d.Progress, err = v.Progress(ctx, studentID); err != nil {
		return d, err
	}
	if d.Recommendations, err = v.Recommendations(ctx, studentID); err != nil {
		return d, err
	}
	if d.Upcoming, err = v.Upcoming(ctx, studentID); err != nil {
		return d, err
	}
	return d, nil
}

// TeacherDashboard renders courses, the pending queue and analytics.
func (r *Renderer) TeacherDashboard(d TeacherDashboard) error {
	p := &printer{w: r.out}
	p.printf("Welcome, %s\n", d.Teacher.Name)

	heading(p, "My Courses")
	r.table(p, "ID\tCOURSE\tSUBJECT\tGRADE\tSTUDENTS\tASSIGNMENTS", func(tw *tabwriter.Writer) {
		for _, c := range d.Courses {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n",
				c.CourseID, c.Name, c.Subject, c.GradeLevel, c.StudentCount, c.AssignmentCount)
		}
	})

	heading(p, "Pending Submissions")
	if len(d.Pending) == 0 {
		p.printf("Nothing to grade.\n")
	} else {
		r.table(p, "STUDENT\tASSIGNMENT\tSUBMITTED\tKEY", func(tw *tabwriter.Writer) {
			for _, s := range d.Pending {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					s.StudentName, s.Assignment.Title, s.Submission.SubmittedAt.Format(timeLayout), s.Submission.Key())
			}
		})
	}

	r.analytics(p, d.Analytics)
	return p.err
}

// StudentDashboard renders courses with statuses, progress,
// recommendations and upcoming work.
func (r *Renderer) StudentDashboard(d StudentDashboard) error {
	p := &printer{w: r.out}
	p.printf("Welcome, %s (grade %d)\n", d.Student.Name, d.Student.GradeLevel)

	heading(p, "My Courses")
	for _, c := range d.Courses {
		p.printf("\n%s (%s)\n", c.Course.Name, c.Course.Subject)
		r.table(p, "  ID\tASSIGNMENT\tDUE\tSTATUS", func(tw *tabwriter.Writer) {
			for _, a := range c.Assignments {
				fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n",
					a.Assignment.ID, a.Assignment.Title, a.Assignment.DueDate.Format(dateLayout), statusText(a))
			}
		})
	}

	heading(p, "Progress")
	if len(d.Progress.Scores) == 0 {
		p.printf("No grades yet.\n")
	} else {
		p.printf("Overall average: %.1f over %d grades\n", d.Progress.Average, len(d.Progress.Scores))
		r.table(p, "COURSE\tAVERAGE\tGRADES", func(tw *tabwriter.Writer) {
			for _, c := range d.Progress.Courses {
				fmt.Fprintf(tw, "%s\t%.1f\t%d\n", c.CourseName, c.Average, c.Count)
			}
		})
	}

	heading(p, "Recommended For You")
	r.table(p, "PRIORITY\tTYPE\tTITLE\tDESCRIPTION", func(tw *tabwriter.Writer) {
		for _, rec := range d.Recommendations.Path {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", rec.Priority, rec.Type, rec.Title, rec.Description)
		}
	})
	for _, c := range d.Recommendations.Content {
		p.printf("%s: %s\n", c.CourseName, strings.Join(c.Materials, ", "))
	}

	heading(p, "Upcoming")
	if len(d.Upcoming) == 0 {
		p.printf("All caught up.\n")
	} else {
		r.table(p, "ASSIGNMENT\tCOURSE\tDUE\tPREDICTION", func(tw *tabwriter.Writer) {
			for _, u := range d.Upcoming {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					u.Assignment.Title, u.CourseName, dueText(u.DaysLeft), u.Prediction.Explanation)
			}
		})
	}
	return p.err
}

func statusText(v types.AssignmentView) string {
	switch v.Status {
	case types.StatusGraded:
		return fmt.Sprintf("graded %s/%d", gradeText(*v.Submission), v.Assignment.Points)
	case types.StatusSubmitted:
		return "submitted, awaiting grade"
	case types.StatusOverdue:
		return "overdue"
	case types.StatusDueSoon:
		return "due " + dueText(v.DaysLeft)
	default:
		return "open"
	}
}

func dueText(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("overdue by %d day(s)", -days)
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}
