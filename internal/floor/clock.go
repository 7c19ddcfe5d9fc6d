package floor

import "sync/atomic"

// Sequencer issues the sequence numbers that break ties between equal
// priority scores. Implementations must return strictly increasing
// values across calls.
type Sequencer interface {
	Next() int64
}

// SequenceClock issues the monotonic sequence numbers that break ties
// between equal priority scores.
//
// Priority scores come from a small discrete set, so admission order is
// the only thing guaranteeing FIFO among equals. Sequence numbers are
// strictly increasing for the life of the process and never repeat or go
// backward.
//
// Thread-safety: safe for concurrent use (atomic operations), though the
// scheduler's single-writer design means one goroutine typically calls
// Next().
type SequenceClock struct {
	seq atomic.Int64
}

// NewSequenceClock creates a clock starting at 0.
func NewSequenceClock() *SequenceClock {
	return &SequenceClock{}
}

// Next returns the next sequence number and advances the clock.
// Each call returns a unique, strictly increasing value.
func (c *SequenceClock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without advancing.
func (c *SequenceClock) Current() int64 {
	return c.seq.Load()
}
