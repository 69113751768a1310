package memo

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIDGenerator_FollowsClock(t *testing.T) {
	var g IDGenerator
	now := time.UnixMilli(1_700_000_000_000)

	assert.Equal(t, int64(1_700_000_000_000), g.Next(now))
	assert.Equal(t, int64(1_700_000_000_005), g.Next(now.Add(5*time.Millisecond)))
}

func TestIDGenerator_StrictlyIncreasing(t *testing.T) {
	var g IDGenerator
	now := time.UnixMilli(1_700_000_000_000)

	first := g.Next(now)
	second := g.Next(now)
	third := g.Next(now.Add(-time.Hour)) // clock stepped back

	assert.Equal(t, first+1, second)
	assert.Equal(t, second+1, third)
	assert.Equal(t, third, g.Last())
}

func TestIDGenerator_Seed(t *testing.T) {
	var g IDGenerator
	g.Seed(500)
	g.Seed(100) // lower seeds are ignored

	assert.Equal(t, int64(500), g.Last())
	assert.Equal(t, int64(501), g.Next(time.UnixMilli(1)))
}

func TestIDGenerator_Concurrent(t *testing.T) {
	var g IDGenerator
	now := time.UnixMilli(1_700_000_000_000)

	const workers, perWorker = 8, 100
	ids := make(chan int64, workers*perWorker)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				ids <- g.Next(now)
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers*perWorker)
}
