package testutil

import (
	"fmt"
	"sync"
)

// OrderIDGenerator hands out sequential order ids ("ORD-0001",
// "ORD-0002", ...) so scenario traces stay byte-for-byte reproducible
// where production code would mint UUIDs.
type OrderIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewOrderIDGenerator creates a generator with the given prefix.
// An empty prefix defaults to "ORD".
func NewOrderIDGenerator(prefix string) *OrderIDGenerator {
	if prefix == "" {
		prefix = "ORD"
	}
	return &OrderIDGenerator{prefix: prefix}
}

// Next returns the next sequential order id.
func (g *OrderIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}

// Reset rewinds the generator so Next() returns "<prefix>-0001" again.
func (g *OrderIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n = 0
}
