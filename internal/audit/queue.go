package audit

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ppiankov/credence/internal/model"
)

// Queue decouples audit persistence from the response path: records are
// enqueued without blocking and delivered by a background worker with
// bounded retries. A record that still fails after the last retry is logged
// to stderr and dropped; audit durability is best-effort here.
type Queue struct {
	sink       Sink
	records    chan model.AuditRecord
	maxRetries int
	retryDelay time.Duration

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
	stopped   chan struct{}
}

// NewQueue creates a queue in front of sink. Size bounds how many records
// may be pending before new ones are dropped.
func NewQueue(sink Sink, size, maxRetries int) *Queue {
	if size <= 0 {
		size = 64
	}
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &Queue{
		sink:       sink,
		records:    make(chan model.AuditRecord, size),
		maxRetries: maxRetries,
		retryDelay: 250 * time.Millisecond,
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

// Start launches the delivery worker.
func (q *Queue) Start() {
	q.startOnce.Do(func() {
		go q.run()
	})
}

// Stop drains pending records and stops the worker.
func (q *Queue) Stop() {
	q.stopOnce.Do(func() {
		close(q.done)
		<-q.stopped
	})
}

// Enqueue hands a record to the queue without blocking. When the queue is
// full the record is dropped and the drop is logged.
func (q *Queue) Enqueue(record model.AuditRecord) {
	select {
	case q.records <- record:
	default:
		fmt.Fprintf(os.Stderr, "audit queue full, dropping record for response %s\n", record.ResponseID)
	}
}

func (q *Queue) run() {
	defer close(q.stopped)
	for {
		select {
		case record := <-q.records:
			q.deliver(record)
		case <-q.done:
			// Drain whatever is already queued before exiting.
			for {
				select {
				case record := <-q.records:
					q.deliver(record)
				default:
					return
				}
			}
		}
	}
}

func (q *Queue) deliver(record model.AuditRecord) {
	var err error
	for attempt := 1; attempt <= q.maxRetries; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = q.sink.Append(ctx, record)
		cancel()
		if err == nil {
			return
		}
		if attempt < q.maxRetries {
			time.Sleep(q.retryDelay * time.Duration(attempt))
		}
	}
	fmt.Fprintf(os.Stderr, "audit append failed after %d attempts for response %s: %v\n",
		q.maxRetries, record.ResponseID, err)
}
