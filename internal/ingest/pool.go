package ingest

import (
	"context"
	"hash/fnv"
	"sync"
)

// Pool is a fixed-size goroutine pool with bounded input queues. Items that
// share a key always land on the same worker, so they are handled one at a
// time and in submission order.
type Pool[T any] struct {
	queues  []chan T
	process func(ctx context.Context, item T)
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewPool starts n workers. capacity is the total queue size shared evenly
// across workers.
func NewPool[T any](ctx context.Context, n, capacity int, fn func(context.Context, T)) *Pool[T] {
	if n <= 0 {
		n = 1
	}
	perWorker := (capacity + n - 1) / n
	if perWorker <= 0 {
		perWorker = 1
	}

	p := &Pool[T]{
		queues:  make([]chan T, n),
		process: fn,
	}
	for i := range p.queues {
		q := make(chan T, perWorker)
		p.queues[i] = q
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.run(ctx, q)
		}()
	}
	return p
}

func (p *Pool[T]) run(ctx context.Context, queue <-chan T) {
	for {
		select {
		case item, ok := <-queue:
			if !ok {
				return
			}
			p.process(ctx, item)
		case <-ctx.Done():
			return
		}
	}
}

// Submit enqueues an item without blocking. It returns false when the
// worker queue for key is full or the pool is drained.
func (p *Pool[T]) Submit(key string, item T) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.queues[p.shard(key)] <- item:
		return true
	default:
		return false
	}
}

// Drain stops accepting items and waits for queued ones to finish.
func (p *Pool[T]) Drain() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		for _, q := range p.queues {
			close(q)
		}
	}
	p.mu.Unlock()
	p.wg.Wait()
}

// QueueLen returns how many items are currently queued.
func (p *Pool[T]) QueueLen() int {
	n := 0
	for _, q := range p.queues {
		n += len(q)
	}
	return n
}

// QueueCap returns the total queue capacity.
func (p *Pool[T]) QueueCap() int {
	n := 0
	for _, q := range p.queues {
		n += cap(q)
	}
	return n
}

func (p *Pool[T]) shard(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(p.queues)))
}
