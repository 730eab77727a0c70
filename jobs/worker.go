package jobs

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Handler executes one job. Failures are logged and the job is
// dropped; there are no retries.
type Handler func(args ...string) error

// Worker polls the queue and dispatches jobs to registered handlers
// by name.
type Worker struct {
	queue    *Queue
	handlers map[string]Handler
	poll     time.Duration
}

func NewWorker(queue *Queue) *Worker {
	return &Worker{
		queue:    queue,
		handlers: map[string]Handler{},
		poll:     time.Second,
	}
}

func (w *Worker) Register(name string, h Handler) {
	w.handlers[name] = h
}

// Run processes jobs until ctx is cancelled, sleeping between polls
// when the queue is empty.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		processed, err := w.ProcessOne()
		if err != nil {
			zap.S().Errorf("Error processing job: %v", err)
		}
		if !processed {
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.poll):
			}
		}
	}
}

// ProcessOne pops and runs a single job. It reports whether a job was
// available; handler and dequeue failures come back as the error.
func (w *Worker) ProcessOne() (bool, error) {
	job, ok, err := w.queue.Dequeue()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	handler, registered := w.handlers[job.Name]
	if !registered {
		return true, fmt.Errorf("no handler registered for job %q", job.Name)
	}
	zap.S().Infof("Running job %s enqueued at %s", job.Name, job.EnqueuedAt)
	if err := handler(job.Args...); err != nil {
		return true, fmt.Errorf("job %s failed: %w", job.Name, err)
	}
	return true, nil
}
