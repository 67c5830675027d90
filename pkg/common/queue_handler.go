package common

import (
	"context"
	"sync"
	"time"
)

// QueueProcessor is a function that processes a batch of items from the queue.
type QueueProcessor[V any] func(items []V)

// QueueHandler collects items and hands them to the processor in batches,
// at most once per interval.
type QueueHandler[V any] struct {
	mu        sync.Mutex
	queue     []V
	processor QueueProcessor[V]
	chunkSize int
	interval  time.Duration
	wake      chan struct{}
}

// NewQueueHandler starts the background processing loop, it stops when ctx is done.
func NewQueueHandler[V any](ctx context.Context, processor QueueProcessor[V], chunkSize int, interval time.Duration) *QueueHandler[V] {
	if interval <= 0 {
		interval = time.Second
	}
	q := &QueueHandler[V]{
		queue:     make([]V, 0),
		processor: processor,
		chunkSize: chunkSize,
		interval:  interval,
		wake:      make(chan struct{}, 1),
	}
	go q.processQueue(ctx)
	return q
}

// Add adds items to the queue.
func (h *QueueHandler[V]) Add(item ...V) {
	h.mu.Lock()
	h.queue = append(h.queue, item...)
	h.mu.Unlock()
	select {
	case h.wake <- struct{}{}:
	default:
	}
}

func (h *QueueHandler[V]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.queue)
}

func (h *QueueHandler[V]) next() []V {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.queue) == 0 {
		return nil
	}
	size := len(h.queue)
	if h.chunkSize > 0 {
		size = min(h.chunkSize, size)
	}
	items := h.queue[:size:size]
	h.queue = h.queue[size:]
	return items
}

func (h *QueueHandler[V]) processQueue(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-h.wake:
		}
		// let a burst settle before processing it
		select {
		case <-ctx.Done():
			return
		case <-time.After(h.interval):
		}
		for items := h.next(); items != nil; items = h.next() {
			h.processor(items)
		}
	}
}
