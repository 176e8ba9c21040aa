package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/k12lms/internal/domain/model"
	"github.com/okian/k12lms/pkg/metrics"
)

// Entity labels for the store record gauges.
const (
	entityUsers       = "users"
	entityCourses     = "courses"
	entityAssignments = "assignments"
	entitySubmissions = "submissions"
	entityPerformance = "performance"
)

// MemoryStore is a mutex-guarded, insertion-ordered in-memory Store.
type MemoryStore struct {
	mu    sync.RWMutex
	newID func() string

	users     map[string]model.User
	userOrder []string

	courses     map[string]model.Course
	courseOrder []string

	assignments     map[string]model.Assignment
	assignmentOrder []string

	submissions     map[model.SubmissionKey]model.Submission
	submissionOrder []model.SubmissionKey

	performance model.PerformanceBook
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		newID:       uuid.NewString,
		users:       make(map[string]model.User),
		courses:     make(map[string]model.Course),
		assignments: make(map[string]model.Assignment),
		submissions: make(map[model.SubmissionKey]model.Submission),
		performance: make(model.PerformanceBook),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.updateMetrics()
	return s
}

func notFound(kind, id string) error {
	metrics.RecordErrorByComponent("repository", "not_found")
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

func duplicate(kind, id string) error {
	metrics.RecordErrorByComponent("repository", "duplicate")
	return fmt.Errorf("%s %q: %w", kind, id, ErrDuplicate)
}

// PutUser implements Store.
func (s *MemoryStore) PutUser(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; ok {
		return duplicate("user", u.ID)
	}
	s.users[u.ID] = u
	s.userOrder = append(s.userOrder, u.ID)
	metrics.UpdateStoreRecords(entityUsers, len(s.users))
	return nil
}

// User implements Store.
func (s *MemoryStore) User(_ context.Context, id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, notFound("user", id)
	}
	return u, nil
}

// Users implements Store.
func (s *MemoryStore) Users(_ context.Context) []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		out = append(out, s.users[id])
	}
	return out
}

// PutCourse implements Store.
func (s *MemoryStore) PutCourse(_ context.Context, c model.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[c.ID]; ok {
		return duplicate("course", c.ID)
	}
	s.courses[c.ID] = c.Clone()
	s.courseOrder = append(s.courseOrder, c.ID)
	metrics.UpdateStoreRecords(entityCourses, len(s.courses))
	return nil
}

// Course implements Store.
func (s *MemoryStore) Course(_ context.Context, id string) (model.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.courses[id]
	if !ok {
		return model.Course{}, notFound("course", id)
	}
	return c.Clone(), nil
}

// Courses implements Store.
func (s *MemoryStore) Courses(_ context.Context) []model.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Course, 0, len(s.courseOrder))
	for _, id := range s.courseOrder {
		out = append(out, s.courses[id].Clone())
	}
	return out
}

// Enroll implements Store.
func (s *MemoryStore) Enroll(_ context.Context, courseID, studentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courses[courseID]
	if !ok {
		return notFound("course", courseID)
	}
	if _, ok := s.users[studentID]; !ok {
		return notFound("user", studentID)
	}
	if c.HasStudent(studentID) {
		return duplicate("enrollment", courseID+"/"+studentID)
	}
	c.Students = append(c.Students, studentID)
	s.courses[courseID] = c
	return nil
}

// AddAssignment implements Store.
func (s *MemoryStore) AddAssignment(_ context.Context, a model.Assignment) (model.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courses[a.CourseID]
	if !ok {
		return model.Assignment{}, notFound("course", a.CourseID)
	}
	if a.ID == "" {
		a.ID = s.nextAssignmentIDLocked()
	}
	if _, ok := s.assignments[a.ID]; ok {
		return model.Assignment{}, duplicate("assignment", a.ID)
	}
	s.assignments[a.ID] = a
	s.assignmentOrder = append(s.assignmentOrder, a.ID)
	c.Assignments = append(c.Assignments, a.ID)
	s.courses[c.ID] = c
	metrics.UpdateStoreRecords(entityAssignments, len(s.assignments))
	return a, nil
}

// nextAssignmentIDLocked returns "a{n+1}", stepping past IDs a roster
// may already have claimed.
func (s *MemoryStore) nextAssignmentIDLocked() string {
	for n := len(s.assignments) + 1; ; n++ {
		id := fmt.Sprintf("a%d", n)
		if _, taken := s.assignments[id]; !taken {
			return id
		}
	}
}

// Assignment implements Store.
func (s *MemoryStore) Assignment(_ context.Context, id string) (model.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assignments[id]
	if !ok {
		return model.Assignment{}, notFound("assignment", id)
	}
	return a, nil
}

// Assignments implements Store.
func (s *MemoryStore) Assignments(_ context.Context) []model.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Assignment, 0, len(s.assignmentOrder))
	for _, id := range s.assignmentOrder {
		out = append(out, s.assignments[id])
	}
	return out
}

// PutSubmission implements Store.
func (s *MemoryStore) PutSubmission(_ context.Context, sub model.Submission) (model.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assignments[sub.AssignmentID]; !ok {
		return model.Submission{}, notFound("assignment", sub.AssignmentID)
	}
	key := sub.Key()
	if _, ok := s.submissions[key]; ok {
		return model.Submission{}, duplicate("submission", key.String())
	}
	if sub.ID == "" {
		sub.ID = s.newID()
	}
	sub = sub.Clone()
	s.submissions[key] = sub
	s.submissionOrder = append(s.submissionOrder, key)
	metrics.UpdateStoreRecords(entitySubmissions, len(s.submissions))
	return sub.Clone(), nil
}

// Submission implements Store.
func (s *MemoryStore) Submission(_ context.Context, key model.SubmissionKey) (model.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.submissions[key]
	if !ok {
		return model.Submission{}, notFound("submission", key.String())
	}
	return sub.Clone(), nil
}

// Submissions implements Store.
func (s *MemoryStore) Submissions(_ context.Context) []model.Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Submission, 0, len(s.submissionOrder))
	for _, key := range s.submissionOrder {
		out = append(out, s.submissions[key].Clone())
	}
	return out
}

// RecordGrade implements Store.
func (s *MemoryStore) RecordGrade(_ context.Context, key model.SubmissionKey, g GradeUpdate) (model.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.submissions[key]
	if !ok {
		return model.Submission{}, notFound("submission", key.String())
	}
	grade := g.Grade
	sub.Grade = &grade
	sub.AIScore = nil
	if g.AIScore != nil {
		ai := *g.AIScore
		sub.AIScore = &ai
	}
	sub.Feedback = g.Feedback
	s.submissions[key] = sub
	return sub.Clone(), nil
}

// Performance implements Store.
func (s *MemoryStore) Performance(_ context.Context, studentID string) *model.PerformanceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.performance.Lookup(studentID).Clone()
}

// PerformanceBook implements Store.
func (s *MemoryStore) PerformanceBook(_ context.Context) model.PerformanceBook {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.performance.Clone()
}

// SetPerformance implements Store.
func (s *MemoryStore) SetPerformance(_ context.Context, studentID string, rec *model.PerformanceRecord) error {
	if rec == nil {
		return fmt.Errorf("performance for %q: %w", studentID, model.ErrInvalidEntity)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.performance[studentID] = rec.Clone()
	metrics.UpdateStoreRecords(entityPerformance, len(s.performance))
	return nil
}

// AppendScore implements Store.
func (s *MemoryStore) AppendScore(_ context.Context, studentID, subject string, score float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.performance[studentID]
	if rec == nil {
		rec = model.NewPerformanceRecord("", "")
	}
	if err := rec.AddScores(subject, score); err != nil {
		return fmt.Errorf("append score for %q: %w", studentID, err)
	}
	s.performance[studentID] = rec
	metrics.UpdateStoreRecords(entityPerformance, len(s.performance))
	return nil
}

func (s *MemoryStore) updateMetrics() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	metrics.UpdateStoreRecords(entityUsers, len(s.users))
	metrics.UpdateStoreRecords(entityCourses, len(s.courses))
	metrics.UpdateStoreRecords(entityAssignments, len(s.assignments))
	metrics.UpdateStoreRecords(entitySubmissions, len(s.submissions))
	metrics.UpdateStoreRecords(entityPerformance, len(s.performance))
}
