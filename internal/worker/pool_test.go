package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testJob struct {
	executed *int32
}

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return nil
}

func TestPool(t *testing.T) {
	var executed int32
	pool := NewPool(TestWorkerCount, TestQueueSize)
	pool.Start(context.Background())

	job := &testJob{executed: &executed}
	pool.Enqueue(job)
	pool.Enqueue(job)

	// Wait a bit for workers to process
	time.Sleep(TestWorkerProcessWaitTime * time.Millisecond)

	pool.Stop()

	if atomic.LoadInt32(&executed) != TestExpectedJobCount {
		t.Errorf("Expected %d jobs executed, got %d", TestExpectedJobCount, executed)
	}
}

func TestPool_FailingJobDoesNotStopWorker(t *testing.T) {
	var executed int32
	pool := NewPool(1, TestQueueSize)
	pool.Start(context.Background())
	defer pool.Stop()

	done := make(chan struct{})
	pool.Enqueue(JobFunc(func(ctx context.Context) error {
		return errors.New("boom")
	}))
	pool.Enqueue(JobFunc(func(ctx context.Context) error {
		atomic.AddInt32(&executed, 1)
		close(done)
		return nil
	}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second job never ran")
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&executed))
}

func TestPool_EnqueueAfterStop(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start(context.Background())
	pool.Stop()
	pool.Stop()

	ok := pool.Enqueue(JobFunc(func(ctx context.Context) error { return nil }))
	assert.False(t, ok)
}

func TestPool_StopRunsQueuedJobsWithCancelledContext(t *testing.T) {
	pool := NewPool(1, TestQueueSize)

	var cancelled int32
	job := JobFunc(func(ctx context.Context) error {
		if ctx.Err() != nil {
			atomic.AddInt32(&cancelled, 1)
		}
		return nil
	})
	assert.True(t, pool.Enqueue(job))
	assert.True(t, pool.Enqueue(job))

	pool.Stop()
	assert.Equal(t, int32(2), atomic.LoadInt32(&cancelled))
}
