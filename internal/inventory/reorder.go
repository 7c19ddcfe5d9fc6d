package inventory

import "container/heap"

// UrgencyRecord pairs a SKU with its forecasted days remaining. The
// invariant DaysRemaining >= 0 holds throughout: zero-demand SKUs arrive
// carrying the finite sentinel, never a negative or infinite value.
type UrgencyRecord struct {
	SKU           string
	DaysRemaining float64
}

// Ranker is a min-heap over (days remaining, SKU) that surfaces the most
// urgent replenishment needs. It is rebuilt from scratch each reporting
// cycle; forecasts are cheap to recompute and staleness must never
// silently persist.
//
// Ties on equal days remaining break on lexicographic SKU order, so the
// pop sequence is fully deterministic.
type Ranker struct {
	h urgencyHeap
}

// BuildRanker constructs the heap in O(n) from the given records.
func BuildRanker(records []UrgencyRecord) *Ranker {
	h := make(urgencyHeap, len(records))
	copy(h, records)
	heap.Init(&h)
	return &Ranker{h: h}
}

// PeekMostUrgent returns the smallest-days record without removing it.
// The second result is false when the ranker is empty.
func (r *Ranker) PeekMostUrgent() (UrgencyRecord, bool) {
	if len(r.h) == 0 {
		return UrgencyRecord{}, false
	}
	return r.h[0], true
}

// PopMostUrgent removes and returns the smallest-days record.
func (r *Ranker) PopMostUrgent() (UrgencyRecord, bool) {
	if len(r.h) == 0 {
		return UrgencyRecord{}, false
	}
	return heap.Pop(&r.h).(UrgencyRecord), true
}

// TopK pops up to k records in urgency order. Consumes the ranker, which
// is rebuilt per cycle anyway.
func (r *Ranker) TopK(k int) []UrgencyRecord {
	if k > len(r.h) {
		k = len(r.h)
	}
	out := make([]UrgencyRecord, 0, k)
	for i := 0; i < k; i++ {
		rec, _ := r.PopMostUrgent()
		out = append(out, rec)
	}
	return out
}

// Len returns the number of records still in the ranker.
func (r *Ranker) Len() int {
	return len(r.h)
}

type urgencyHeap []UrgencyRecord

func (h urgencyHeap) Len() int { return len(h) }

func (h urgencyHeap) Less(i, j int) bool {
	if h[i].DaysRemaining != h[j].DaysRemaining {
		return h[i].DaysRemaining < h[j].DaysRemaining
	}
	return h[i].SKU < h[j].SKU
}

func (h urgencyHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *urgencyHeap) Push(x any) { *h = append(*h, x.(UrgencyRecord)) }

func (h *urgencyHeap) Pop() any {
	old := *h
	n := len(old)
	rec := old[n-1]
	*h = old[:n-1]
	return rec
}
