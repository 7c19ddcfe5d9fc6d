// Package floor implements the shipping path of the fulfillment desk:
// the priority scheduler that orders outbound shipments, the safety gate
// that holds back recalled lots, the registry of blocked orders, and the
// reconciliation pass that keeps the in-memory queue consistent with the
// authoritative order ledger.
//
// The package follows a single-writer, many-reader model. Heap mutations
// (enqueue, dispatch, reconciliation removal) serialize on one lock;
// every read-side accessor works on a snapshot taken under that lock, so
// readers never observe a half-mutated heap.
package floor
