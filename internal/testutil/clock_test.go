package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterministicClock_Sequence(t *testing.T) {
	c := NewDeterministicClock()
	assert.Equal(t, int64(1), c.Next())
	assert.Equal(t, int64(2), c.Next())
	assert.Equal(t, int64(2), c.Current())

	c.Reset()
	assert.Equal(t, int64(0), c.Current())
	assert.Equal(t, int64(1), c.Next())
}

func TestDeterministicClock_Concurrent(t *testing.T) {
	c := NewDeterministicClock()
	var wg sync.WaitGroup
	seen := make(chan int64, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- c.Next()
		}()
	}
	wg.Wait()
	close(seen)

	unique := map[int64]struct{}{}
	for v := range seen {
		unique[v] = struct{}{}
	}
	assert.Len(t, unique, 100)
	assert.Equal(t, int64(100), c.Current())
}

func TestOrderIDGenerator(t *testing.T) {
	g := NewOrderIDGenerator("")
	assert.Equal(t, "ORD-0001", g.Next())
	assert.Equal(t, "ORD-0002", g.Next())

	g.Reset()
	assert.Equal(t, "ORD-0001", g.Next())

	custom := NewOrderIDGenerator("TST")
	assert.Equal(t, "TST-0001", custom.Next())
}
