// Package console renders the dashboards as plain text tables.
package console

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/okian/k12lms/internal/domain/model"
	"github.com/okian/k12lms/internal/domain/types"
)

const (
	defaultBarWidth = 20
	barRune         = "#"
)

// Renderer writes dashboards to an output stream.
type Renderer struct {
	out      io.Writer
	barWidth int
}

// New creates a Renderer writing to out.
func New(out io.Writer, opts ...Option) *Renderer {
	r := &Renderer{out: out, barWidth: defaultBarWidth}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// printer accumulates the first write error so render code stays linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (r *Renderer) table(p *printer, header string, rows func(tw *tabwriter.Writer)) {
	if p.err != nil {
		return
	}
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	_, p.err = fmt.Fprintln(tw, header)
	if p.err != nil {
		return
	}
	rows(tw)
	if err := tw.Flush(); err != nil && p.err == nil {
		p.err = err
	}
}

func heading(p *printer, title string) {
	p.printf("\n%s\n%s\n", title, strings.Repeat("=", len(title)))
}

// Directory lists everyone who can log in.
func (r *Renderer) Directory(d types.Directory) error {
	p := &printer{w: r.out}
	heading(p, "Teachers")
	r.table(p, "ID\tNAME", func(tw *tabwriter.Writer) {
		for _, u := range d.Teachers {
			fmt.Fprintf(tw, "%s\t%s\n", u.ID, u.Name)
		}
	})
	heading(p, "Students")
	r.table(p, "ID\tNAME\tGRADE", func(tw *tabwriter.Writer) {
		for _, u := range d.Students {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", u.ID, u.Name, u.GradeLevel)
		}
	})
	return p.err
}

// Analytics prints the grade summary with one bar per distribution range.
func (r *Renderer) Analytics(a types.Analytics) error {
	p := &printer{w: r.out}
	r.analytics(p, a)
	return p.err
}

func (r *Renderer) analytics(p *printer, a types.Analytics) {
	heading(p, "Analytics: "+a.Label)
	if a.Empty() {
		p.printf("No graded submissions yet.\n")
		return
	}
	p.printf("Graded: %d  Average: %.1f  Highest: %d  Lowest: %d\n", a.Count, a.Average, a.Highest, a.Lowest)
	counts := a.Distribution.Counts()
	peak := 0
	for _, c := range counts {
		peak = max(peak, c)
	}
	r.table(p, "RANGE\tCOUNT\t", func(tw *tabwriter.Writer) {
		for i, c := range counts {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", types.Labels[i], c, r.bar(c, peak))
		}
	})
}

// bar scales count against peak; any non-zero count gets at least one mark.
func (r *Renderer) bar(count, peak int) string {
	if count <= 0 || peak <= 0 {
		return ""
	}
	n := max(1, count*r.barWidth/peak)
	return strings.Repeat(barRune, n)
}

// Graded prints the outcome of one or more automatic gradings.
func (r *Renderer) Graded(graded []types.GradedSubmission) error {
	p := &printer{w: r.out}
	if len(graded) == 0 {
		p.printf("No pending submissions.\n")
		return p.err
	}
	r.table(p, "STUDENT\tASSIGNMENT\tGRADE\tBAND", func(tw *tabwriter.Writer) {
		for _, g := range graded {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", g.StudentName, g.Assignment.Title, gradeText(g.Submission), g.Result.Band)
		}
	})
	for _, g := range graded {
		p.printf("\n%s / %s\n  %s\n", g.StudentName, g.Assignment.Title, g.Submission.Feedback)
	}
	return p.err
}

// Assignment confirms a newly created assignment.
func (r *Renderer) Assignment(a model.Assignment) error {
	p := &printer{w: r.out}
	p.printf("Created %s %q in %s (%s, %d points), due %s\n",
		a.ID, a.Title, a.CourseID, a.Difficulty, a.Points, a.DueDate.Format(dateLayout))
	return p.err
}

// Submission confirms a stored submission.
func (r *Renderer) Submission(s model.Submission) error {
	p := &printer{w: r.out}
	p.printf("Submitted %s for %s at %s (id %s)\n",
		s.StudentID, s.AssignmentID, s.SubmittedAt.Format(timeLayout), s.ID)
	return p.err
}

// Stats prints the collection counts.
func (r *Renderer) Stats(s types.Stats) error {
	p := &printer{w: r.out}
	heading(p, "Stats")
	r.table(p, "TEACHERS\tSTUDENTS\tCOURSES\tASSIGNMENTS\tSUBMISSIONS\tGRADED\tPENDING", func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			s.Teachers, s.Students, s.Courses, s.Assignments, s.Submissions, s.Graded, s.Pending)
	})
	return p.err
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "2006-01-02 15:04"
)

func gradeText(s model.Submission) string {
	if s.Grade == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *s.Grade)
}
