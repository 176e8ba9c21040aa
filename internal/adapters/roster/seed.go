package roster

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/k12lms/internal/adapters/repository"
	"github.com/okian/k12lms/internal/domain/model"
)

// Seed validates the roster and loads it into store. Relative due and
// submission times are resolved against now. Seeding stops at the first
// invalid entry; whatever was stored before it stays.
func (r *Roster) Seed(ctx context.Context, store repository.Store, now time.Time) error {
	if err := r.seedUsers(ctx, store); err != nil {
		return err
	}
	if err := r.seedCourses(ctx, store); err != nil {
		return err
	}
	if err := r.seedAssignments(ctx, store, now); err != nil {
		return err
	}
	if err := r.seedSubmissions(ctx, store, now); err != nil {
		return err
	}
	return r.seedPerformance(ctx, store)
}

func (r *Roster) seedUsers(ctx context.Context, store repository.Store) error {
	for _, u := range r.Users {
		role, err := model.ParseRole(u.Role)
		if err != nil {
			return fmt.Errorf("%w: user %q: %w", ErrInvalidRoster, u.ID, err)
		}
		user := model.User{ID: u.ID, Name: u.Name, Role: role, GradeLevel: u.GradeLevel}
		if err := model.Validate(user); err != nil {
			return fmt.Errorf("%w: user %q: %w", ErrInvalidRoster, u.ID, err)
		}
		if err := store.PutUser(ctx, user); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRoster, err)
		}
	}
	return nil
}

func (r *Roster) seedCourses(ctx context.Context, store repository.Store) error {
	for _, c := range r.Courses {
		teacher, err := store.User(ctx, c.Teacher)
		if err != nil {
			return fmt.Errorf("%w: course %q teacher: %w", ErrInvalidRoster, c.ID, err)
		}
		if !teacher.IsTeacher() {
			return fmt.Errorf("%w: course %q: %q is not a teacher", ErrInvalidRoster, c.ID, c.Teacher)
		}
		course := model.Course{
			ID:         c.ID,
			Name:       c.Name,
			TeacherID:  c.Teacher,
			GradeLevel: c.GradeLevel,
			Subject:    c.Subject,
		}
		if err := model.Validate(course); err != nil {
			return fmt.Errorf("%w: course %q: %w", ErrInvalidRoster, c.ID, err)
		}
		if err := store.PutCourse(ctx, course); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRoster, err)
		}
		for _, sid := range c.Students {
			student, err := store.User(ctx, sid)
			if err != nil {
				return fmt.Errorf("%w: course %q: %w", ErrInvalidRoster, c.ID, err)
			}
			if !student.IsStudent() {
				return fmt.Errorf("%w: course %q: %q is not a student", ErrInvalidRoster, c.ID, sid)
			}
			if err := store.Enroll(ctx, c.ID, sid); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidRoster, err)
			}
		}
	}
	return nil
}

func (r *Roster) seedAssignments(ctx context.Context, store repository.Store, now time.Time) error {
	for _, a := range r.Assignments {
		assignment := model.Assignment{
			ID:          a.ID,
			CourseID:    a.Course,
			Title:       a.Title,
			Description: a.Description,
			DueDate:     now.Add(a.DueIn),
			Points:      a.Points,
			Difficulty:  model.Difficulty(a.Difficulty),
		}
		if err := model.Validate(assignment); err != nil {
			return fmt.Errorf("%w: assignment %q: %w", ErrInvalidRoster, a.Title, err)
		}
		if _, err := store.AddAssignment(ctx, assignment); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRoster, err)
		}
	}
	return nil
}

func (r *Roster) seedSubmissions(ctx context.Context, store repository.Store, now time.Time) error {
	for _, s := range r.Submissions {
		if err := checkEnrolled(ctx, store, s.Student, s.Assignment); err != nil {
			return err
		}
		sub, err := store.PutSubmission(ctx, model.Submission{
			ID:           s.ID,
			StudentID:    s.Student,
			AssignmentID: s.Assignment,
			Content:      s.Content,
			SubmittedAt:  now.Add(-s.SubmittedAgo),
		})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRoster, err)
		}
		if s.Grade == nil {
			continue
		}
		if *s.Grade < 0 || *s.Grade > 100 {
			return fmt.Errorf("%w: submission %s: grade %d out of range", ErrInvalidRoster, sub.Key(), *s.Grade)
		}
		if _, err := store.RecordGrade(ctx, sub.Key(), repository.GradeUpdate{Grade: *s.Grade, Feedback: s.Feedback}); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRoster, err)
		}
	}
	return nil
}

func checkEnrolled(ctx context.Context, store repository.Store, studentID, assignmentID string) error {
	a, err := store.Assignment(ctx, assignmentID)
	if err != nil {
		return fmt.Errorf("%w: submission %s/%s: %w", ErrInvalidRoster, studentID, assignmentID, err)
	}
	c, err := store.Course(ctx, a.CourseID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRoster, err)
	}
	if !c.HasStudent(studentID) {
		return fmt.Errorf("%w: submission %s/%s: student not enrolled in %q", ErrInvalidRoster, studentID, assignmentID, c.ID)
	}
	return nil
}

func (r *Roster) seedPerformance(ctx context.Context, store repository.Store) error {
	for _, p := range r.Performance {
		student, err := store.User(ctx, p.Student)
		if err != nil {
			return fmt.Errorf("%w: performance: %w", ErrInvalidRoster, err)
		}
		if !student.IsStudent() {
			return fmt.Errorf("%w: performance: %q is not a student", ErrInvalidRoster, p.Student)
		}
		rec := model.NewPerformanceRecord(p.Strength, p.Weakness)
		for _, s := range p.Scores {
			if err := rec.AddScores(s.Subject, s.Values...); err != nil {
				return fmt.Errorf("%w: performance %q: %w", ErrInvalidRoster, p.Student, err)
			}
		}
		if err := store.SetPerformance(ctx, p.Student, rec); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRoster, err)
		}
	}
	return nil
}
