package floor

import (
	"context"
	"log/slog"
)

// ShippedChecker answers the single ledger question reconciliation needs:
// of these order ids, which are already SHIPPED?
//
// Implemented by ledger.Store (production) and test stubs.
type ShippedChecker interface {
	ShippedSubset(ctx context.Context, orderIDs []string) ([]string, error)
}

// Reconciler corrects drift between the in-memory scheduler and the
// authoritative ledger. An order can be marked SHIPPED through a path
// that bypassed Dispatch (a concurrent external update); reconciliation
// finds those zombies and removes them from the queue.
//
// The pass is idempotent: running it twice removes nothing new.
type Reconciler struct {
	sched  *Scheduler
	ledger ShippedChecker
}

// NewReconciler creates a reconciler over a scheduler and a ledger.
func NewReconciler(sched *Scheduler, ledger ShippedChecker) *Reconciler {
	return &Reconciler{sched: sched, ledger: ledger}
}

// Reconcile runs one check-then-clean pass and returns the order ids it
// removed from the scheduler. Exactly the ids the ledger reports SHIPPED
// are removed; no other entry is touched.
//
// Fails open: if the ledger is unavailable the pass logs and returns nil,
// leaving the scheduler's last-known view intact. Reconciliation failure
// must never crash a read path.
func (r *Reconciler) Reconcile(ctx context.Context) []string {
	live := r.sched.LiveIDs()
	if len(live) == 0 {
		return nil
	}

	shipped, err := r.ledger.ShippedSubset(ctx, live)
	if err != nil {
		// Log and continue: the read path serves the last-known view.
		slog.Warn("reconciliation skipped: ledger unavailable", "error", err)
		return nil
	}
	if len(shipped) == 0 {
		return nil
	}

	drop := make(map[string]struct{}, len(shipped))
	for _, id := range shipped {
		drop[id] = struct{}{}
	}

	removed := r.sched.RemoveAll(drop)
	if len(removed) > 0 {
		slog.Info("reconciliation removed shipped orders",
			"count", len(removed),
			"order_ids", removed,
		)
	}
	return removed
}
