package ingest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_ProcessesEverySubmittedItem(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []int
	)
	p := NewPool(context.Background(), 4, 64, func(_ context.Context, n int) {
		mu.Lock()
		seen = append(seen, n)
		mu.Unlock()
	})

	for i := 0; i < 50; i++ {
		require.True(t, p.Submit(fmt.Sprintf("key-%d", i), i))
	}
	p.Drain()

	assert.Len(t, seen, 50)
	assert.Equal(t, 0, p.QueueLen())
}

func TestPool_SameKeyKeepsOrder(t *testing.T) {
	var (
		mu    sync.Mutex
		order = map[string][]int{}
	)
	p := NewPool(context.Background(), 4, 256, func(_ context.Context, item [2]int) {
		key := fmt.Sprintf("tx-%d", item[0])
		mu.Lock()
		order[key] = append(order[key], item[1])
		mu.Unlock()
	})

	for seq := 0; seq < 20; seq++ {
		for tx := 0; tx < 5; tx++ {
			require.True(t, p.Submit(fmt.Sprintf("tx-%d", tx), [2]int{tx, seq}))
		}
	}
	p.Drain()

	for tx := 0; tx < 5; tx++ {
		got := order[fmt.Sprintf("tx-%d", tx)]
		require.Len(t, got, 20)
		for i, seq := range got {
			assert.Equal(t, i, seq)
		}
	}
}

func TestPool_SubmitRejectsWhenFull(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	p := NewPool(context.Background(), 1, 1, func(_ context.Context, n int) {
		if n == 1 {
			close(started)
			<-release
		}
	})

	require.True(t, p.Submit("a", 1))
	<-started
	assert.True(t, p.Submit("a", 2))
	assert.False(t, p.Submit("a", 3))
	assert.Equal(t, 1, p.QueueLen())
	assert.Equal(t, 1, p.QueueCap())

	close(release)
	p.Drain()
}

func TestPool_SubmitAfterDrain(t *testing.T) {
	p := NewPool(context.Background(), 2, 2, func(context.Context, int) {})
	p.Drain()
	p.Drain()

	assert.False(t, p.Submit("a", 1))
}

func TestPool_CapacitySplitAcrossWorkers(t *testing.T) {
	p := NewPool(context.Background(), 3, 10, func(context.Context, int) {})
	defer p.Drain()

	assert.Equal(t, 12, p.QueueCap())
}
