package floor

import (
	"log/slog"
	"sync"

	"github.com/warefloor/pirs/internal/ident"
)

// BlockedEntry is an order held back from the shipping queue, pending
// manual resolution.
type BlockedEntry struct {
	Order  Order
	Reason BlockReason
}

// BlockedOrderRegistry holds orders rejected by the safety gate or stock
// checks. Entries leave only through explicit resolution.
//
// Block never silently dedups: a second block for the same order id is a
// log-worthy event and produces a second entry. Callers are responsible
// for idempotent admission so only one live record exists per order id.
type BlockedOrderRegistry struct {
	mu      sync.RWMutex
	entries []BlockedEntry
}

// NewBlockedOrderRegistry creates an empty registry.
func NewBlockedOrderRegistry() *BlockedOrderRegistry {
	return &BlockedOrderRegistry{}
}

// Block records an order as blocked with the given reason. The stored
// snapshot carries StatusBlocked regardless of the input status.
func (r *BlockedOrderRegistry) Block(o Order, reason BlockReason) {
	o.Canonicalize()
	o.Status = StatusBlocked

	r.mu.Lock()
	duplicate := r.indexOf(o.ID) >= 0
	r.entries = append(r.entries, BlockedEntry{Order: o, Reason: reason})
	r.mu.Unlock()

	if duplicate {
		slog.Warn("order blocked again", "order_id", o.ID, "reason", string(reason))
		return
	}
	slog.Info("order blocked", "order_id", o.ID, "reason", string(reason))
}

// List returns a snapshot of all blocked entries in block order.
func (r *BlockedOrderRegistry) List() []BlockedEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]BlockedEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Resolve removes and returns the blocked entry for an order id.
// Returns a not-found error if no entry exists. If duplicate entries
// exist for the id, all of them are removed and the first is returned.
func (r *BlockedOrderRegistry) Resolve(orderID string) (BlockedEntry, error) {
	orderID = ident.Canonical(orderID)

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(orderID)
	if idx < 0 {
		return BlockedEntry{}, NewNotFoundError(orderID)
	}

	entry := r.entries[idx]
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.Order.ID != orderID {
			kept = append(kept, e)
		}
	}
	r.entries = kept

	slog.Info("blocked order resolved", "order_id", orderID, "reason", string(entry.Reason))
	return entry, nil
}

// Len returns the number of blocked entries.
func (r *BlockedOrderRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// indexOf returns the index of the first entry for orderID, or -1.
// Caller must hold at least a read lock.
func (r *BlockedOrderRegistry) indexOf(orderID string) int {
	for i, e := range r.entries {
		if e.Order.ID == orderID {
			return i
		}
	}
	return -1
}
