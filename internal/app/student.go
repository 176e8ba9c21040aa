package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/okian/k12lms/internal/adapters/repository"
	"github.com/okian/k12lms/internal/domain/model"
	"github.com/okian/k12lms/internal/domain/types"
	"github.com/okian/k12lms/pkg/logger"
	"github.com/okian/k12lms/pkg/metrics"
)

func (s *Service) enrolledCourses(ctx context.Context, studentID string) []model.Course {
	var out []model.Course
	for _, c := range s.store.Courses(ctx) {
		if c.HasStudent(studentID) {
			out = append(out, c)
		}
	}
	return out
}

func (s *Service) submissionOf(ctx context.Context, key model.SubmissionKey) (*model.Submission, error) {
	sub, err := s.store.Submission(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// StudentCourses lists enrolled courses with the student's standing on
// every assignment.
func (s *Service) StudentCourses(ctx context.Context, studentID string) ([]types.StudentCourse, error) {
	if _, err := s.requireRole(ctx, studentID, model.RoleStudent); err != nil {
		return nil, err
	}
	now := s.clock()

	courses := s.enrolledCourses(ctx, studentID)
	out := make([]types.StudentCourse, 0, len(courses))
	for _, c := range courses {
		sc := types.StudentCourse{Course: c}
		for _, aid := range c.Assignments {
			a, err := s.store.Assignment(ctx, aid)
			if err != nil {
				continue
			}
			sub, err := s.submissionOf(ctx, model.SubmissionKey{StudentID: studentID, AssignmentID: aid})
			if err != nil {
				return nil, err
			}
			view := types.AssignmentView{
				Assignment: a,
				DaysLeft:   daysUntil(a.DueDate, now),
				Submission: sub,
			}
			view.Status = s.status(sub, view.DaysLeft)
			sc.Assignments = append(sc.Assignments, view)
		}
		out = append(out, sc)
	}
	return out, nil
}

func (s *Service) status(sub *model.Submission, daysLeft int) types.AssignmentStatus {
	switch {
	case sub != nil && sub.IsGraded():
		return types.StatusGraded
	case sub != nil:
		return types.StatusSubmitted
	case daysLeft < 0:
		return types.StatusOverdue
	case daysLeft <= s.dueSoonDays:
		return types.StatusDueSoon
	default:
		return types.StatusOpen
	}
}

// Submit stores a student's work on an assignment. Late work is accepted.
func (s *Service) Submit(ctx context.Context, studentID, assignmentID, content string) (model.Submission, error) {
	if _, err := s.requireRole(ctx, studentID, model.RoleStudent); err != nil {
		return model.Submission{}, err
	}
	if strings.TrimSpace(content) == "" {
		return model.Submission{}, ErrEmptySubmission
	}
	a, err := s.store.Assignment(ctx, assignmentID)
	if err != nil {
		return model.Submission{}, err
	}
	c, err := s.store.Course(ctx, a.CourseID)
	if err != nil {
		return model.Submission{}, err
	}
	if !c.HasStudent(studentID) {
		return model.Submission{}, fmt.Errorf("%w: %q in %q", ErrNotEnrolled, studentID, c.ID)
	}

	sub, err := s.store.PutSubmission(ctx, model.Submission{
		StudentID:    studentID,
		AssignmentID: assignmentID,
		Content:      content,
		SubmittedAt:  s.clock(),
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return model.Submission{}, fmt.Errorf("%w: %s/%s", ErrAlreadySubmitted, studentID, assignmentID)
	}
	if err != nil {
		return model.Submission{}, err
	}

	metrics.RecordSubmission()
	s.logger.Info(ctx, "submission received",
		logger.String("submission", sub.ID),
		logger.String("student", studentID),
		logger.String("assignment", assignmentID),
	)
	return sub, nil
}

// Progress collects the student's graded scores in submission order with
// overall and per-course averages.
func (s *Service) Progress(ctx context.Context, studentID string) (types.Progress, error) {
	if _, err := s.requireRole(ctx, studentID, model.RoleStudent); err != nil {
		return types.Progress{}, err
	}

	var p types.Progress
	perCourse := map[string][]int{}
	var courseOrder []string
	for _, sub := range s.store.Submissions(ctx) {
		if sub.StudentID != studentID || !sub.IsGraded() {
			continue
		}
		a, err := s.store.Assignment(ctx, sub.AssignmentID)
		if err != nil {
			continue
		}
		c, err := s.store.Course(ctx, a.CourseID)
		if err != nil {
			continue
		}
		p.Scores = append(p.Scores, *sub.Grade)
		if _, seen := perCourse[c.Name]; !seen {
			courseOrder = append(courseOrder, c.Name)
		}
		perCourse[c.Name] = append(perCourse[c.Name], *sub.Grade)
	}

	p.Average = average(p.Scores)
	for _, name := range courseOrder {
		scores := perCourse[name]
		p.Courses = append(p.Courses, types.CourseAverage{
			CourseName: name,
			Average:    average(scores),
			Count:      len(scores),
		})
	}
	return p, nil
}

// Recommendations builds the learning path and per-course study materials.
func (s *Service) Recommendations(ctx context.Context, studentID string) (types.Recommendations, error) {
	if _, err := s.requireRole(ctx, studentID, model.RoleStudent); err != nil {
		return types.Recommendations{}, err
	}
	book := s.store.PerformanceBook(ctx)

	out := types.Recommendations{Path: s.assistant.RecommendPath(studentID, book)}
	materials := 0
	for _, c := range s.enrolledCourses(ctx, studentID) {
		m := s.assistant.RecommendContent(studentID, c.Subject, book)
		materials += len(m)
		out.Content = append(out.Content, types.CourseMaterials{
			CourseName: c.Name,
			Subject:    c.Subject,
			Materials:  m,
		})
	}

	metrics.RecordRecommendations("path", len(out.Path))
	metrics.RecordRecommendations("content", materials)
	return out, nil
}

// Upcoming lists unsubmitted assignments, soonest first, each with a score
// prediction. Overdue work sorts ahead of everything else.
func (s *Service) Upcoming(ctx context.Context, studentID string) ([]types.UpcomingAssignment, error) {
	if _, err := s.requireRole(ctx, studentID, model.RoleStudent); err != nil {
		return nil, err
	}
	now := s.clock()
	book := s.store.PerformanceBook(ctx)

	var out []types.UpcomingAssignment
	for _, c := range s.enrolledCourses(ctx, studentID) {
		for _, aid := range c.Assignments {
			sub, err := s.submissionOf(ctx, model.SubmissionKey{StudentID: studentID, AssignmentID: aid})
			if err != nil {
				return nil, err
			}
			if sub != nil {
				continue
			}
			a, err := s.store.Assignment(ctx, aid)
			if err != nil {
				continue
			}
			out = append(out, types.UpcomingAssignment{
				Assignment: a,
				CourseName: c.Name,
				DueDate:    a.DueDate,
				DaysLeft:   daysUntil(a.DueDate, now),
			})
		}
	}

	slices.SortStableFunc(out, func(a, b types.UpcomingAssignment) int {
		return a.DaysLeft - b.DaysLeft
	})
	for i := range out {
		out[i].Prediction = s.assistant.Predict(studentID, out[i].Assignment.Difficulty, book)
		metrics.RecordPrediction(string(out[i].Prediction.Trend))
	}
	return out, nil
}
