// Package jobs is the background job layer: a persistent on-disk
// queue, a polling worker, and the notification job the request
// actions enqueue. Enqueueing is fire-and-forget; execution happens
// later in the worker process.
package jobs

import (
	"encoding/json"
	"time"

	"github.com/beeker1121/goque"
)

// Job is the descriptor that travels through the queue.
type Job struct {
	Name       string    `json:"name"`
	Args       []string  `json:"args"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// Enqueuer is what the action layer sees: hand over a job descriptor
// and return once it is durably queued.
type Enqueuer interface {
	Enqueue(name string, args ...string) error
}

const defaultPriority = 5

// Queue wraps a goque priority queue holding JSON-encoded job
// descriptors.
type Queue struct {
	pq *goque.PriorityQueue
}

var _ Enqueuer = (*Queue)(nil)

func OpenQueue(dir string) (*Queue, error) {
	pq, err := goque.OpenPriorityQueue(dir, goque.ASC)
	if err != nil {
		return nil, err
	}
	return &Queue{pq: pq}, nil
}

func (q *Queue) Close() error {
	return q.pq.Close()
}

func (q *Queue) Enqueue(name string, args ...string) error {
	job := Job{Name: name, Args: args, EnqueuedAt: time.Now().UTC()}
	bytes, err := json.Marshal(job)
	if err != nil {
		return err
	}
	_, err = q.pq.Enqueue(defaultPriority, bytes)
	return err
}

// Dequeue pops the next job, or ok=false when the queue is empty.
func (q *Queue) Dequeue() (job Job, ok bool, err error) {
	item, err := q.pq.Dequeue()
	if err == goque.ErrEmpty {
		return Job{}, false, nil
	}
	if err != nil {
		return Job{}, false, err
	}
	if err := json.Unmarshal(item.Value, &job); err != nil {
		return Job{}, false, err
	}
	return job, true, nil
}

// Length reports the number of queued jobs.
func (q *Queue) Length() uint64 {
	return q.pq.Length()
}
