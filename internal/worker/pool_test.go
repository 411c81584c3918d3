package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type testJob struct {
	id      int
	fail    bool
	counter *int64
}

type testResult struct {
	id  int
	err error
}

func (r testResult) GetError() error { return r.err }

func (j testJob) Execute(ctx context.Context) Result {
	atomic.AddInt64(j.counter, 1)
	if j.fail {
		return testResult{id: j.id, err: errors.New("job failed")}
	}
	return testResult{id: j.id}
}

func TestPool_ExecutesAllJobs(t *testing.T) {
	pool := NewPool(4)
	pool.Start()

	var counter int64
	for i := 0; i < 10; i++ {
		pool.Submit(testJob{id: i, counter: &counter})
	}

	results := pool.Wait()
	if len(results) != 10 {
		t.Errorf("Expected 10 results, got %d", len(results))
	}
	if atomic.LoadInt64(&counter) != 10 {
		t.Errorf("Expected 10 executions, got %d", counter)
	}
}

func TestPool_LargeBatchWithConcurrentSubmitter(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	// Far more jobs than the internal channel buffers hold; submission must
	// overlap with collection.
	const jobs = 200
	var counter int64
	go func() {
		for i := 0; i < jobs; i++ {
			pool.Submit(testJob{id: i, counter: &counter})
		}
		pool.Close()
	}()

	results := pool.Collect()
	if len(results) != jobs {
		t.Errorf("Expected %d results, got %d", jobs, len(results))
	}
}

func TestPool_FailedJobsReportErrors(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	var counter int64
	pool.Submit(testJob{id: 1, counter: &counter})
	pool.Submit(testJob{id: 2, fail: true, counter: &counter})

	failures := 0
	for _, r := range pool.Wait() {
		if r.GetError() != nil {
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

	var counter int64
	pool.Submit(testJob{id: 1, counter: &counter})

	if results := pool.Wait(); len(results) != 1 {
		t.Errorf("Expected 1 result, got %d", len(results))
	}
}
