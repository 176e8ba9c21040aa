package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/okian/k12lms/internal/adapters/mq/queue"
	"github.com/okian/k12lms/internal/adapters/mq/worker"
	"github.com/okian/k12lms/internal/adapters/repository"
	"github.com/okian/k12lms/internal/domain/model"
	"github.com/okian/k12lms/internal/domain/scoring"
	"github.com/okian/k12lms/internal/domain/types"
	"github.com/okian/k12lms/pkg/logger"
	"github.com/okian/k12lms/pkg/metrics"
)

// collector is the worker sink for one grading batch.
type collector struct {
	mu       sync.Mutex
	outcomes map[model.SubmissionKey]worker.Outcome
}

func newCollector() *collector {
	return &collector{outcomes: make(map[model.SubmissionKey]worker.Outcome)}
}

func (c *collector) Deliver(_ context.Context, o worker.Outcome) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outcomes[o.Job.Key] = o
	return nil
}

func (c *collector) get(key model.SubmissionKey) (worker.Outcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	o, ok := c.outcomes[key]
	return o, ok
}

// GradeSubmission auto-grades one submission on a course the teacher owns
// and writes the rounded score and feedback back onto it.
func (s *Service) GradeSubmission(ctx context.Context, teacherID string, key model.SubmissionKey) (types.GradedSubmission, error) {
	if _, err := s.requireRole(ctx, teacherID, model.RoleTeacher); err != nil {
		return types.GradedSubmission{}, err
	}

	s.gradeMu.Lock()
	defer s.gradeMu.Unlock()

	sub, err := s.store.Submission(ctx, key)
	if err != nil {
		return types.GradedSubmission{}, err
	}
	if sub.IsGraded() {
		return types.GradedSubmission{}, fmt.Errorf("%w: %s", ErrAlreadyGraded, key)
	}
	a, err := s.store.Assignment(ctx, key.AssignmentID)
	if err != nil {
		return types.GradedSubmission{}, err
	}
	course, err := s.ownedCourse(ctx, teacherID, a.CourseID)
	if err != nil {
		return types.GradedSubmission{}, err
	}

	result := s.assistant.AutoGrade(sub.Content, a.Difficulty, s.store.Performance(ctx, key.StudentID))
	return s.applyGrade(ctx, course, a, key, result)
}

// GradePending auto-grades every pending submission on the teacher's
// courses through the grading queue. Every job sees the performance records
// as they stood before the batch; results are written back in pending
// order, so the outcome does not depend on worker scheduling.
func (s *Service) GradePending(ctx context.Context, teacherID string) ([]types.GradedSubmission, error) {
	if _, err := s.requireRole(ctx, teacherID, model.RoleTeacher); err != nil {
		return nil, err
	}

	s.gradeMu.Lock()
	defer s.gradeMu.Unlock()

	pending := s.pending(ctx, teacherID)
	if len(pending) == 0 {
		return nil, nil
	}
	book := s.store.PerformanceBook(ctx)

	results := newCollector()
	for start := 0; start < len(pending); start += s.queueSize {
		end := min(start+s.queueSize, len(pending))
		if err := s.runBatch(ctx, pending[start:end], book, results); err != nil {
			return nil, err
		}
	}

	courses := make(map[string]model.Course)
	for _, c := range s.teacherCourses(ctx, teacherID) {
		courses[c.ID] = c
	}
	out := make([]types.GradedSubmission, 0, len(pending))
	for _, p := range pending {
		key := p.Submission.Key()
		o, ok := results.get(key)
		if !ok {
			return out, fmt.Errorf("grading %s: no result", key)
		}
		g, err := s.applyGrade(ctx, courses[p.Assignment.CourseID], p.Assignment, key, o.Result)
		if err != nil {
			return out, err
		}
		out = append(out, g)
	}

	s.logger.Info(ctx, "batch graded",
		logger.String("teacher", teacherID),
		logger.Int("submissions", len(out)),
	)
	return out, nil
}

func (s *Service) runBatch(ctx context.Context, batch []types.PendingSubmission, book model.PerformanceBook, sink worker.Sink) error {
	q := queue.NewInMemoryQueue(queue.WithCapacity(len(batch)))
	pool := worker.NewPool(min(s.gradingWorkers, len(batch)), q, s.assistant, sink,
		worker.WithLogger(s.logger.Named("grading")),
	)
	pool.Start(ctx)

	for _, p := range batch {
		job := model.GradeJob{
			Key:        p.Submission.Key(),
			Content:    p.Submission.Content,
			Difficulty: p.Assignment.Difficulty,
			History:    book.Lookup(p.Submission.StudentID),
		}
		if !q.Enqueue(ctx, job) {
			_ = pool.Drain(ctx)
			metrics.RecordErrorByComponent("service", "backpressure")
			return fmt.Errorf("%w: %s", ErrBackpressure, job.Key)
		}
	}
	return pool.Drain(ctx)
}

// applyGrade writes a grade result back. Grade and assistant score are the
// score rounded half to even; suggestions are appended to the feedback.
func (s *Service) applyGrade(ctx context.Context, course model.Course, a model.Assignment, key model.SubmissionKey, result scoring.GradeResult) (types.GradedSubmission, error) {
	grade := int(math.RoundToEven(result.Score))
	sub, err := s.store.RecordGrade(ctx, key, repository.GradeUpdate{
		Grade:    grade,
		AIScore:  &grade,
		Feedback: composeFeedback(result),
	})
	if err != nil {
		return types.GradedSubmission{}, err
	}

	if s.recordHistory {
		subject := strings.ToLower(course.Subject)
		if err := s.store.AppendScore(ctx, key.StudentID, subject, float64(grade)); err != nil {
			s.logger.Warn(ctx, "grade not added to history",
				logger.String("submission", key.String()),
				logger.Error(err),
			)
		}
	}

	metrics.RecordGrade(difficultyLabel(a.Difficulty), string(result.Band), result.Score)
	s.logger.Info(ctx, "submission graded",
		logger.String("submission", key.String()),
		logger.Int("grade", grade),
		logger.String("band", string(result.Band)),
	)
	return types.GradedSubmission{
		Assignment:  a,
		Submission:  sub,
		StudentName: s.studentName(ctx, key.StudentID),
		Result:      result,
	}, nil
}

func composeFeedback(r scoring.GradeResult) string {
	return r.Feedback + " Suggestions: " + strings.Join(r.Suggestions, "; ")
}

func difficultyLabel(d model.Difficulty) string {
	if d.Known() {
		return string(d)
	}
	return "other"
}
