package domain

import (
	"context"
	"errors"
	"sync"
	"time"

	m "warden.dev/pkg/warden/internal/model"
)

// ErrQueueClosed is returned by DrainBatch once the queue has been closed.
var ErrQueueClosed = errors.New("change queue closed")

// ChangeQueue is an unbounded, order-preserving queue of changed paths with a
// coalescing read.
type ChangeQueue interface {
	// Enqueue appends path. It never blocks and never rejects.
	Enqueue(path m.Path)

	// DrainBatch blocks until at least one path is queued, then takes every
	// queued path as one batch. Duplicates within the batch collapse to their
	// first occurrence. Paths enqueued after the read wait for the next call.
	DrainBatch(ctx context.Context) ([]m.Path, error)

	// Len reports the number of queued paths, duplicates included.
	Len() int

	// Close wakes blocked drains with ErrQueueClosed.
	Close()
}

// QueueOption configures a ChangeQueue.
type QueueOption func(*changeQueue)

// WithMaxBatchSize caps the number of unique paths per batch. Paths beyond
// the cap stay queued in arrival order. Zero or less disables the cap.
func WithMaxBatchSize(n int) QueueOption {
	return func(q *changeQueue) {
		q.maxBatch = n
	}
}

// WithSettleDelay makes DrainBatch wait d after the first path shows up so
// the rest of a burst lands in the same batch.
func WithSettleDelay(d time.Duration) QueueOption {
	return func(q *changeQueue) {
		q.settle = d
	}
}

type changeQueue struct {
	mu       sync.Mutex
	items    []m.Path
	notify   chan struct{}
	closed   chan struct{}
	once     sync.Once
	maxBatch int
	settle   time.Duration
}

// NewChangeQueue creates an empty queue.
func NewChangeQueue(opts ...QueueOption) ChangeQueue {
	q := &changeQueue{
		notify: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(q)
	}

	return q
}

func (q *changeQueue) Enqueue(path m.Path) {
	q.mu.Lock()
	q.items = append(q.items, path)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

func (q *changeQueue) DrainBatch(ctx context.Context) ([]m.Path, error) {
	for {
		if q.isClosed() {
			return nil, ErrQueueClosed
		}

		if q.Len() > 0 {
			if err := q.waitSettle(ctx); err != nil {
				return nil, err
			}

			if batch := q.take(); len(batch) > 0 {
				return batch, nil
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.closed:
			return nil, ErrQueueClosed
		case <-q.notify:
		}
	}
}

func (q *changeQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}

func (q *changeQueue) Close() {
	q.once.Do(func() {
		close(q.closed)
	})
}

func (q *changeQueue) isClosed() bool {
	select {
	case <-q.closed:
		return true
	default:
		return false
	}
}

func (q *changeQueue) waitSettle(ctx context.Context) error {
	if q.settle <= 0 {
		return nil
	}

	timer := time.NewTimer(q.settle)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-q.closed:
		return ErrQueueClosed
	case <-timer.C:
		return nil
	}
}

// take removes the next batch from the queue.
func (q *changeQueue) take() []m.Path {
	q.mu.Lock()
	defer q.mu.Unlock()

	seen := make(map[m.Path]bool, len(q.items))
	batch := make([]m.Path, 0, len(q.items))
	consumed := 0

	for _, path := range q.items {
		if seen[path] {
			consumed++
			continue
		}

		if q.maxBatch > 0 && len(batch) == q.maxBatch {
			break
		}

		seen[path] = true
		batch = append(batch, path)
		consumed++
	}

	remaining := copy(q.items, q.items[consumed:])
	clear(q.items[remaining:])
	q.items = q.items[:remaining]

	return batch
}
