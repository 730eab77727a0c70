package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestQueue(t *testing.T) *Queue {
	t.Helper()
	queue, err := OpenQueue(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { queue.Close() })
	return queue
}

func TestQueueRoundtrip(t *testing.T) {
	queue := openTestQueue(t)

	require.NoError(t, queue.Enqueue("notify", "activity-1"))
	require.NoError(t, queue.Enqueue("notify", "activity-2"))
	assert.EqualValues(t, 2, queue.Length())

	job, ok, err := queue.Dequeue()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "notify", job.Name)
	assert.Equal(t, []string{"activity-1"}, job.Args)
	assert.False(t, job.EnqueuedAt.IsZero())

	_, ok, err = queue.Dequeue()
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = queue.Dequeue()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWorkerProcessOne(t *testing.T) {
	queue := openTestQueue(t)
	worker := NewWorker(queue)

	var got []string
	worker.Register("notify", func(args ...string) error {
		got = append(got, args...)
		return nil
	})

	require.NoError(t, queue.Enqueue("notify", "activity-1"))

	processed, err := worker.ProcessOne()
	require.NoError(t, err)
	assert.True(t, processed)
	assert.Equal(t, []string{"activity-1"}, got)

	processed, err = worker.ProcessOne()
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestWorkerUnknownJob(t *testing.T) {
	queue := openTestQueue(t)
	worker := NewWorker(queue)

	require.NoError(t, queue.Enqueue("mystery"))

	processed, err := worker.ProcessOne()
	assert.True(t, processed)
	require.Error(t, err)
	// the job is dropped, not requeued
	assert.EqualValues(t, 0, queue.Length())
}

func TestWorkerRunStopsOnCancel(t *testing.T) {
	queue := openTestQueue(t)
	worker := NewWorker(queue)
	worker.poll = 10 * time.Millisecond

	done := make(chan struct{})
	handled := make(chan struct{}, 1)
	worker.Register("notify", func(args ...string) error {
		handled <- struct{}{}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		worker.Run(ctx)
		close(done)
	}()

	require.NoError(t, queue.Enqueue("notify", "activity-1"))
	select {
	case <-handled:
	case <-time.After(2 * time.Second):
		t.Fatal("job was never handled")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}
