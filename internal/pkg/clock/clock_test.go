package clock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_ReturnsUTC(t *testing.T) {
	c := NewRealClock()
	now := c.Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.GreaterOrEqual(t, c.Since(now), time.Duration(0))
}

func TestMockClock(t *testing.T) {
	start := time.Date(2020, time.January, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	c := NewMockClock(start)

	assert.True(t, c.Now().Equal(start))
	assert.Equal(t, time.UTC, c.Now().Location())

	c.Advance(90 * time.Second)
	assert.Equal(t, 90*time.Second, c.Since(start))

	later := start.Add(time.Hour)
	c.Set(later)
	assert.True(t, c.Now().Equal(later))
}

func TestMockClock_ConcurrentAdvance(t *testing.T) {
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	c := NewMockClock(start)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Advance(time.Millisecond)
			_ = c.Now()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50*time.Millisecond, c.Since(start))
}
