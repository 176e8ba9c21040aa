// Package service implements the teacher and student dashboards on top of
// the store and the scoring engine.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/okian/k12lms/internal/adapters/repository"
	"github.com/okian/k12lms/internal/domain/model"
	"github.com/okian/k12lms/internal/domain/scoring"
	"github.com/okian/k12lms/internal/domain/types"
	"github.com/okian/k12lms/pkg/logger"
)

// Service owns the LMS collections and runs the dashboard workflows.
type Service struct {
	store     repository.Store
	assistant scoring.Assistant
	clock     func() time.Time

	// Configuration
	gradingWorkers int
	queueSize      int
	recordHistory  bool
	dueSoonDays    int

	// gradeMu serializes grade write-back so a submission is graded once.
	gradeMu sync.Mutex

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the backing store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithAssistant replaces the rule-based scoring assistant.
func WithAssistant(a scoring.Assistant) Option {
	return func(s *Service) {
		if a != nil {
			s.assistant = a
		}
	}
}

// WithClock sets the time source used for due dates and submissions.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithGradingWorkers sets the number of batch grading workers.
func WithGradingWorkers(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.gradingWorkers = count
		}
	}
}

// WithQueueSize sets the grading queue capacity.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithRecordHistory controls whether issued grades extend the student's
// performance record.
func WithRecordHistory(enabled bool) Option {
	return func(s *Service) {
		s.recordHistory = enabled
	}
}

// WithDueSoonDays sets how many days ahead an open assignment counts as
// due soon.
func WithDueSoonDays(days int) Option {
	return func(s *Service) {
		if days >= 0 {
			s.dueSoonDays = days
		}
	}
}

// New constructs a Service. Without WithStore it starts from an empty
// in-memory store.
func New(opts ...Option) *Service {
	s := &Service{
		clock:          time.Now,
		gradingWorkers: runtime.NumCPU(),
		queueSize:      1000,
		recordHistory:  true,
		dueSoonDays:    2,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	if s.assistant == nil {
		s.assistant = scoring.NewRuleBased()
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	return s
}

// Store exposes the backing store, e.g. for seeding.
func (s *Service) Store() repository.Store { return s.store }

// Now returns the service clock's current time.
func (s *Service) Now() time.Time { return s.clock() }

// Login resolves a user by ID.
func (s *Service) Login(ctx context.Context, userID string) (model.User, error) {
	u, err := s.store.User(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.User{}, fmt.Errorf("%w: %q", ErrUserNotFound, userID)
	}
	if err != nil {
		return model.User{}, err
	}
	s.logger.Info(ctx, "user logged in",
		logger.String("user", u.ID),
		logger.String("role", string(u.Role)),
	)
	return u, nil
}

// Directory lists every user, teachers first, each group in insertion order.
func (s *Service) Directory(ctx context.Context) types.Directory {
	var d types.Directory
	for _, u := range s.store.Users(ctx) {
		switch u.Role {
		case model.RoleTeacher:
			d.Teachers = append(d.Teachers, u)
		case model.RoleStudent:
			d.Students = append(d.Students, u)
		}
	}
	return d
}

// Stats counts the collections for monitoring.
func (s *Service) Stats(ctx context.Context) types.Stats {
	var st types.Stats
	for _, u := range s.store.Users(ctx) {
		if u.IsTeacher() {
			st.Teachers++
		} else if u.IsStudent() {
			st.Students++
		}
	}
	st.Courses = len(s.store.Courses(ctx))
	st.Assignments = len(s.store.Assignments(ctx))
	for _, sub := range s.store.Submissions(ctx) {
		st.Submissions++
		if sub.IsGraded() {
			st.Graded++
		} else {
			st.Pending++
		}
	}
	st.TrackedStudents = len(s.store.PerformanceBook(ctx))
	return st
}

func (s *Service) requireRole(ctx context.Context, userID string, role model.Role) (model.User, error) {
	u, err := s.store.User(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.User{}, fmt.Errorf("%w: %q", ErrUserNotFound, userID)
	}
	if err != nil {
		return model.User{}, err
	}
	if u.Role != role {
		if role == model.RoleTeacher {
			return model.User{}, fmt.Errorf("%w: %q", ErrNotTeacher, userID)
		}
		return model.User{}, fmt.Errorf("%w: %q", ErrNotStudent, userID)
	}
	return u, nil
}

func (s *Service) studentName(ctx context.Context, id string) string {
	if u, err := s.store.User(ctx, id); err == nil {
		return u.Name
	}
	return id
}

// daysUntil counts whole days from now to due, rounding toward the past,
// so anything due earlier today is -1.
func daysUntil(due, now time.Time) int {
	return int(math.Floor(due.Sub(now).Hours() / 24))
}

func average(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, v := range scores {
		sum += v
	}
	return float64(sum) / float64(len(scores))
}
