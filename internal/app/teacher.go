package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/okian/k12lms/internal/adapters/repository"
	"github.com/okian/k12lms/internal/domain/model"
	"github.com/okian/k12lms/internal/domain/types"
	"github.com/okian/k12lms/pkg/logger"
	"github.com/okian/k12lms/pkg/metrics"
)

// AllCourses selects every course a teacher owns in Analytics.
const AllCourses = "all"

func (s *Service) teacherCourses(ctx context.Context, teacherID string) []model.Course {
	var out []model.Course
	for _, c := range s.store.Courses(ctx) {
		if c.TeacherID == teacherID {
			out = append(out, c)
		}
	}
	return out
}

func (s *Service) ownedCourse(ctx context.Context, teacherID, courseID string) (model.Course, error) {
	c, err := s.store.Course(ctx, courseID)
	if err != nil {
		return model.Course{}, err
	}
	if c.TeacherID != teacherID {
		return model.Course{}, fmt.Errorf("%w: %q", ErrCourseNotOwned, courseID)
	}
	return c, nil
}

// TeacherCourses summarises the courses a teacher runs.
func (s *Service) TeacherCourses(ctx context.Context, teacherID string) ([]types.CourseSummary, error) {
	if _, err := s.requireRole(ctx, teacherID, model.RoleTeacher); err != nil {
		return nil, err
	}
	courses := s.teacherCourses(ctx, teacherID)
	out := make([]types.CourseSummary, 0, len(courses))
	for _, c := range courses {
		out = append(out, types.CourseSummary{
			CourseID:        c.ID,
			Name:            c.Name,
			Subject:         c.Subject,
			GradeLevel:      c.GradeLevel,
			StudentCount:    len(c.Students),
			AssignmentCount: len(c.Assignments),
		})
	}
	return out, nil
}

// PendingSubmissions lists ungraded work on the teacher's courses, ordered
// by course, then assignment, then submission time of arrival.
func (s *Service) PendingSubmissions(ctx context.Context, teacherID string) ([]types.PendingSubmission, error) {
	if _, err := s.requireRole(ctx, teacherID, model.RoleTeacher); err != nil {
		return nil, err
	}
	return s.pending(ctx, teacherID), nil
}

func (s *Service) pending(ctx context.Context, teacherID string) []types.PendingSubmission {
	subs := s.store.Submissions(ctx)
	var out []types.PendingSubmission
	for _, c := range s.teacherCourses(ctx, teacherID) {
		for _, aid := range c.Assignments {
			a, err := s.store.Assignment(ctx, aid)
			if err != nil {
				continue
			}
			for _, sub := range subs {
				if sub.AssignmentID != aid || sub.IsGraded() {
					continue
				}
				out = append(out, types.PendingSubmission{
					Assignment:  a,
					Submission:  sub,
					StudentName: s.studentName(ctx, sub.StudentID),
				})
			}
		}
	}
	return out
}

// CreateAssignment adds an assignment to one of the teacher's courses,
// due DueInDays from now.
func (s *Service) CreateAssignment(ctx context.Context, teacherID string, in types.NewAssignment) (model.Assignment, error) {
	if _, err := s.requireRole(ctx, teacherID, model.RoleTeacher); err != nil {
		return model.Assignment{}, err
	}
	if err := model.Validate(in); err != nil {
		return model.Assignment{}, err
	}
	course, err := s.ownedCourse(ctx, teacherID, in.CourseID)
	if err != nil {
		return model.Assignment{}, err
	}

	a, err := s.store.AddAssignment(ctx, model.Assignment{
		CourseID:    course.ID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     s.clock().Add(time.Duration(in.DueInDays) * 24 * time.Hour),
		Points:      in.Points,
		Difficulty:  in.Difficulty,
	})
	if err != nil {
		return model.Assignment{}, fmt.Errorf("create assignment: %w", err)
	}

	metrics.RecordAssignmentCreated()
	s.logger.Info(ctx, "assignment created",
		logger.String("assignment", a.ID),
		logger.String("course", course.ID),
		logger.String("difficulty", string(a.Difficulty)),
	)
	return a, nil
}

// Analytics summarises graded submissions on one owned course, or on all
// of them when courseID is AllCourses or empty.
func (s *Service) Analytics(ctx context.Context, teacherID, courseID string) (types.Analytics, error) {
	if _, err := s.requireRole(ctx, teacherID, model.RoleTeacher); err != nil {
		return types.Analytics{}, err
	}

	var courseIDs []string
	label := "All Courses"
	if courseID == "" || courseID == AllCourses {
		for _, c := range s.teacherCourses(ctx, teacherID) {
			courseIDs = append(courseIDs, c.ID)
		}
	} else {
		c, err := s.ownedCourse(ctx, teacherID, courseID)
		if err != nil {
			return types.Analytics{}, err
		}
		courseIDs = []string{c.ID}
		label = c.Name
	}

	var scores []int
	for _, sub := range s.store.Submissions(ctx) {
		if !sub.IsGraded() {
			continue
		}
		a, err := s.store.Assignment(ctx, sub.AssignmentID)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return types.Analytics{}, err
		}
		if slices.Contains(courseIDs, a.CourseID) {
			scores = append(scores, *sub.Grade)
		}
	}

	out := types.Analytics{Label: label, Count: len(scores)}
	if len(scores) == 0 {
		return out, nil
	}
	out.Average = average(scores)
	out.Highest = slices.Max(scores)
	out.Lowest = slices.Min(scores)
	out.Distribution = types.NewDistribution(scores)
	return out, nil
}
