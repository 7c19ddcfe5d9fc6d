package floor

import (
	"container/heap"
	"log/slog"
	"sort"
	"sync"

	"github.com/warefloor/pirs/internal/config"
	"github.com/warefloor/pirs/internal/ident"
)

// ScoredOrder is an order annotated with its computed priority.
type ScoredOrder struct {
	Order

	Score  int
	Reason PriorityReason

	// seq breaks ties between equal scores: lower seq (earlier admission)
	// wins. Never exposed; callers must not depend on heap positions.
	seq int64
}

// Scheduler is the central shipment priority queue.
//
// Scoring policy, in order of dominance:
//  1. Expiring goods (FEFO): days remaining inside the critical window
//     adds a boost that outweighs every other factor.
//  2. Customer tier: premium, then VIP.
//  3. Urgency fine-tune: fewer days remaining scores higher, with the
//     contribution clamped so long-lived stock never goes negative.
//
// Among equal scores, admission order is preserved (FIFO) via the
// monotonic sequence clock.
//
// Thread-safety: mutations (Enqueue, Dispatch, RemoveAll) serialize on an
// exclusive lock; PeekOrdered, PickList, LiveIDs and Len read a snapshot
// under a shared lock and never mutate the heap.
type Scheduler struct {
	mu      sync.RWMutex
	entries entryHeap
	clock   Sequencer
	cfg     config.Config
}

// NewScheduler creates an empty scheduler using the given thresholds.
func NewScheduler(cfg config.Config) *Scheduler {
	return NewSchedulerWithSequencer(cfg, NewSequenceClock())
}

// NewSchedulerWithSequencer creates an empty scheduler drawing tie-break
// sequence numbers from seq. Tests inject a resettable sequencer to
// replay admissions with identical ordering.
func NewSchedulerWithSequencer(cfg config.Config, seq Sequencer) *Scheduler {
	return &Scheduler{
		entries: make(entryHeap, 0, 64),
		clock:   seq,
		cfg:     cfg,
	}
}

// Score computes the deterministic priority score and its reason for an
// order. Pure function of the order and the configured weights.
func (s *Scheduler) Score(o Order) (int, PriorityReason) {
	score := 0
	reason := ReasonStandard

	// FEFO dominates all other factors.
	if o.DaysRemaining < s.cfg.CriticalDays {
		score += s.cfg.ExpiringBoost
		reason = ReasonExpiringSoon
	}

	switch o.Tier {
	case TierPremium:
		score += s.cfg.PremiumBonus
		if reason == ReasonStandard {
			reason = ReasonPremium
		}
	case TierVIP:
		score += s.cfg.VIPBonus
		if reason == ReasonStandard {
			reason = ReasonVIP
		}
	}

	// Urgency fine-tune. Clamp so very long-lived stock contributes zero
	// rather than an unbounded negative term.
	days := o.DaysRemaining
	if days < 0 {
		days = 0
	}
	if days > s.cfg.UrgencyCeiling {
		days = s.cfg.UrgencyCeiling
	}
	score += s.cfg.UrgencyCeiling - days

	return score, reason
}

// Admit validates an order, computes its priority and enqueues it.
// Admission never fails for a well-formed PENDING order; safety and stock
// rejections are decided upstream, before Admit is called.
func (s *Scheduler) Admit(o Order) (ScoredOrder, error) {
	o.Canonicalize()
	if err := o.Validate(); err != nil {
		return ScoredOrder{}, err
	}

	o.Status = StatusPending
	score, reason := s.Score(o)
	scored := s.Enqueue(o, score, reason)

	slog.Info("order admitted",
		"order_id", o.ID,
		"sku", o.SKU,
		"score", score,
		"reason", string(reason),
	)
	return scored, nil
}

// Enqueue pushes an already-scored order onto the queue, stamping it with
// the next sequence number.
func (s *Scheduler) Enqueue(o Order, score int, reason PriorityReason) ScoredOrder {
	scored := ScoredOrder{
		Order:  o,
		Score:  score,
		Reason: reason,
		seq:    s.clock.Next(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	heap.Push(&s.entries, scored)
	return scored
}

// PeekOrdered returns all live entries sorted by descending priority
// without mutating the heap. Called far more often than dispatch, so it
// sorts a snapshot rather than popping destructively.
func (s *Scheduler) PeekOrdered() []ScoredOrder {
	s.mu.RLock()
	snapshot := make([]ScoredOrder, len(s.entries))
	copy(snapshot, s.entries)
	s.mu.RUnlock()

	sort.Slice(snapshot, func(i, j int) bool {
		return entryLess(snapshot[i], snapshot[j])
	})
	return snapshot
}

// Dispatch removes the entry for orderID from the queue.
//
// The heap offers no O(log n) arbitrary-key deletion, so removal filters
// and re-heapifies in O(n). Dispatch volume is low relative to reads;
// correctness (no stale entry survives) is the binding constraint.
// Dispatching an unknown id returns a not-found error and leaves the
// queue unchanged.
func (s *Scheduler) Dispatch(orderID string) error {
	orderID = ident.Canonical(orderID)

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	found := false
	for _, e := range s.entries {
		if e.ID == orderID {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return NewNotFoundError(orderID)
	}

	s.entries = kept
	heap.Init(&s.entries)

	slog.Info("order dispatched from queue", "order_id", orderID)
	return nil
}

// RemoveAll removes every entry whose id appears in ids and returns the
// ids actually removed, in no particular order. Used by reconciliation.
func (s *Scheduler) RemoveAll(ids map[string]struct{}) []string {
	if len(ids) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []string
	kept := s.entries[:0]
	for _, e := range s.entries {
		if _, drop := ids[e.ID]; drop {
			removed = append(removed, e.ID)
			continue
		}
		kept = append(kept, e)
	}
	if len(removed) == 0 {
		return nil
	}

	s.entries = kept
	heap.Init(&s.entries)
	return removed
}

// LiveIDs returns the order ids currently in the queue.
func (s *Scheduler) LiveIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, len(s.entries))
	for i, e := range s.entries {
		ids[i] = e.ID
	}
	return ids
}

// Len returns the number of queued entries.
func (s *Scheduler) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// PickItem is one line of the aggregated pick list.
type PickItem struct {
	SKU      string
	Name     string
	Quantity int // aggregate quantity across orders
	Orders   int // number of orders contributing
}

// PickList aggregates all live entries into a single pick list in one
// O(n) pass, grouped by SKU and sorted by descending aggregate quantity.
// Ties break on lexicographic SKU order for determinism.
func (s *Scheduler) PickList() []PickItem {
	s.mu.RLock()
	bySKU := make(map[string]*PickItem)
	for _, e := range s.entries {
		item, ok := bySKU[e.SKU]
		if !ok {
			item = &PickItem{SKU: e.SKU, Name: e.ProductName}
			bySKU[e.SKU] = item
		}
		item.Quantity += e.Quantity
		item.Orders++
	}
	s.mu.RUnlock()

	list := make([]PickItem, 0, len(bySKU))
	for _, item := range bySKU {
		list = append(list, *item)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Quantity != list[j].Quantity {
			return list[i].Quantity > list[j].Quantity
		}
		return list[i].SKU < list[j].SKU
	})
	return list
}

// entryLess orders entries by descending score, then ascending sequence
// number (FIFO among equal scores). Shared by the heap and PeekOrdered so
// the two can never disagree.
func entryLess(a, b ScoredOrder) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.seq < b.seq
}

// entryHeap is a max-heap over priority scores built on container/heap's
// min-heap primitive by inverting the comparison.
type entryHeap []ScoredOrder

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return entryLess(h[i], h[j]) }
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x any)         { *h = append(*h, x.(ScoredOrder)) }
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
