package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type mockResult struct {
	id  int
	err error
}

func (r *mockResult) GetError() error {
	return r.err
}

type mockJob struct {
	id       int
	err      error
	delay    time.Duration
	executed *atomic.Int32
}

func (j *mockJob) Execute(ctx context.Context) Result {
	if j.delay > 0 {
		select {
		case <-time.After(j.delay):
		case <-ctx.Done():
			return &mockResult{id: j.id, err: ctx.Err()}
		}
	}
	if j.executed != nil {
		j.executed.Add(1)
	}
	return &mockResult{id: j.id, err: j.err}
}

func TestPool_ExecutesAllJobs(t *testing.T) {
	pool := NewPool(3)
	pool.Start()

	var executed atomic.Int32
	for i := 0; i < 10; i++ {
		pool.Submit(&mockJob{id: i, executed: &executed})
	}

	results := pool.Wait()
	if len(results) != 10 {
		t.Errorf("Expected 10 results, got %d", len(results))
	}
	if executed.Load() != 10 {
		t.Errorf("Expected 10 executions, got %d", executed.Load())
	}
}

func TestPool_CollectsErrors(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	pool.Submit(&mockJob{id: 0})
	pool.Submit(&mockJob{id: 1, err: errors.New("boom")})
	pool.Submit(&mockJob{id: 2})

	results := pool.Wait()
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	failures := 0
	for _, result := range results {
		if result.GetError() != nil {
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("Expected 1 failure, got %d", failures)
	}
}

func TestPool_ZeroWorkersDefaultsToOne(t *testing.T) {
	pool := NewPool(0)
	pool.Start()

	pool.Submit(&mockJob{id: 0})
	results := pool.Wait()
	if len(results) != 1 {
		t.Errorf("Expected 1 result, got %d", len(results))
	}
}

func TestPool_SubmitAllBeforeWait(t *testing.T) {
	// A batch submits every job up front and only then collects. With one
	// worker and far more jobs than any internal buffer, neither Submit nor
	// Wait may block indefinitely.
	pool := NewPool(1)
	pool.Start()

	const jobs = 100
	var executed atomic.Int32

	done := make(chan []Result, 1)
	go func() {
		for i := 0; i < jobs; i++ {
			pool.Submit(&mockJob{id: i, executed: &executed})
		}
		done <- pool.Wait()
	}()

	select {
	case results := <-done:
		if len(results) != jobs {
			t.Errorf("Expected %d results, got %d", jobs, len(results))
		}
		if executed.Load() != jobs {
			t.Errorf("Expected %d executions, got %d", jobs, executed.Load())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Submitting all jobs before Wait deadlocked")
	}
}

func TestPool_EmptyWait(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	results := pool.Wait()
	if len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}

func TestPool_Shutdown(t *testing.T) {
	pool := NewPool(1)
	pool.Start()

	pool.Submit(&mockJob{id: 0, delay: 50 * time.Millisecond})
	pool.Shutdown()

	// After shutdown, submissions are dropped rather than blocking.
	done := make(chan struct{})
	go func() {
		pool.Submit(&mockJob{id: 1})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit blocked after shutdown")
	}
}
