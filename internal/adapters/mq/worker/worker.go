// Package worker runs grading jobs off the queue and hands results to a sink.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/k12lms/internal/adapters/mq/queue"
	"github.com/okian/k12lms/internal/domain/model"
	"github.com/okian/k12lms/internal/domain/scoring"
	"github.com/okian/k12lms/pkg/logger"
	"github.com/okian/k12lms/pkg/metrics"
)

// Job abstracts what workers read off the queue.
type Job = queue.Job

// Grader scores submission content.
type Grader interface {
	AutoGrade(content string, difficulty model.Difficulty, perf *model.PerformanceRecord) scoring.GradeResult
}

// Outcome is one graded job.
type Outcome struct {
	Job     Job
	Result  scoring.GradeResult
	Worker  string
	Latency time.Duration
}

// Sink receives outcomes. Deliver may be called from several workers at once.
type Sink interface {
	Deliver(ctx context.Context, o Outcome) error
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes jobs until the queue is drained.
type Worker interface {
	// Run starts the worker loop until the queue closes or ctx is canceled.
	Run(ctx context.Context)
	// Shutdown stops the worker without draining.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue  Queue
	grader Grader
	sink   Sink
	name   string

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

var _ Worker = (*InMemoryWorker)(nil)

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, grader Grader, sink Sink, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		grader:   grader,
		sink:     sink,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named("grading")
	}
	w.logger = w.logger.Named(w.name)
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, j); err != nil {
				w.logger.Error(ctx, "error processing grading job", logger.Error(err))
			}
		}
	}
}

// Shutdown stops the worker and waits for it to exit.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.stop()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (w *InMemoryWorker) stop() {
	w.shutdownOnce.Do(func() { close(w.shutdown) })
}

// Done is closed when Run returns.
func (w *InMemoryWorker) Done() <-chan struct{} { return w.done }

func (w *InMemoryWorker) process(ctx context.Context, j Job) error { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	start := time.Now()
	result := w.grader.AutoGrade(j.Content, j.Difficulty, j.History)
	latency := time.Since(start)
	metrics.RecordGradingLatency(float64(latency.Microseconds()) / 1000)

	w.logger.Debug(ctx, "graded submission",
		logger.String("submission", j.Key.String()),
		logger.Float64("score", result.Score),
		logger.String("band", string(result.Band)),
	)

	out := Outcome{Job: j, Result: result, Worker: w.name, Latency: latency}
	if err := w.sink.Deliver(ctx, out); err != nil {
		metrics.RecordErrorByComponent("worker", "deliver_error")
		return fmt.Errorf("deliver %s: %w", j.Key, err)
	}
	return nil
}

// Pool manages multiple workers sharing one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	logger  logger.Logger
}

// NewPool creates a new worker pool. A non-positive count uses one worker
// per CPU.
func NewPool(workerCount int, q Queue, grader Grader, sink Sink, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}
	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
	}
	for i := 0; i < workerCount; i++ {
		workerOpts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		p.workers[i] = NewInMemoryWorker(q, grader, sink, workerOpts...)
	}
	p.logger = poolLogger(opts).Named("pool")

	metrics.UpdateGradingWorkers(workerCount)
	return p
}

func poolLogger(opts []Option) logger.Logger {
	probe := &InMemoryWorker{}
	for _, opt := range opts {
		opt(probe)
	}
	if probe.logger == nil {
		return logger.Get().Named("grading")
	}
	return probe.logger
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Drain closes the queue and waits until every queued job has been
// processed or ctx ends.
func (p *Pool) Drain(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-ctx.Done():
			for _, rest := range p.workers {
				rest.stop()
			}
			return fmt.Errorf("drain interrupted: %w", ctx.Err())
		}
	}
	metrics.UpdateGradingWorkers(0)
	return nil
}
