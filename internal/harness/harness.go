package harness

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/warefloor/pirs/internal/config"
	"github.com/warefloor/pirs/internal/desk"
	"github.com/warefloor/pirs/internal/floor"
	"github.com/warefloor/pirs/internal/inventory"
	"github.com/warefloor/pirs/internal/ledger"
	"github.com/warefloor/pirs/internal/testutil"
)

// Result is the outcome of one scenario run.
type Result struct {
	ScenarioName string
	Passed       bool
	Failures     []string
	Trace        []string
}

func (r *Result) failf(format string, args ...any) {
	r.Passed = false
	r.Failures = append(r.Failures, fmt.Sprintf(format, args...))
}

func (r *Result) tracef(format string, args ...any) {
	r.Trace = append(r.Trace, fmt.Sprintf(format, args...))
}

// Run executes a scenario against a fresh in-memory ledger and desk.
// An error means the scenario could not run at all; assertion failures
// land in the result instead.
func Run(scenario *Scenario) (*Result, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	ctx := context.Background()

	store, err := ledger.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("open in-memory ledger: %w", err)
	}
	defer store.Close()

	if err := seedScenario(ctx, store, scenario); err != nil {
		return nil, err
	}

	d := desk.New(config.Default(), store)
	if err := d.Load(ctx); err != nil {
		return nil, fmt.Errorf("load desk: %w", err)
	}

	result := &Result{ScenarioName: scenario.Name, Passed: true}
	ids := testutil.NewOrderIDGenerator("ORD")

	for i, step := range scenario.Steps {
		if err := runStep(ctx, d, store, ids, step, result); err != nil {
			return nil, fmt.Errorf("scenario %q step %d: %w", scenario.Name, i, err)
		}
	}

	checkFinalState(d, scenario.Expect, result)
	return result, nil
}

func seedScenario(ctx context.Context, store *ledger.Store, scenario *Scenario) error {
	for _, p := range scenario.Products {
		err := store.UpsertProduct(ctx, inventory.Product{
			SKU:          p.SKU,
			Name:         p.Name,
			Stock:        p.Stock,
			LeadTimeDays: 5,
		})
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.SKU, err)
		}
		for i := 1; i <= p.SalesDays && p.DailySales > 0; i++ {
			day := time.Now().AddDate(0, 0, -i)
			if err := store.RecordSale(ctx, p.SKU, p.DailySales, day); err != nil {
				return fmt.Errorf("seed sales for %s: %w", p.SKU, err)
			}
		}
	}
	for _, lot := range scenario.Lots {
		err := store.InsertLot(ctx, lot.ID, lot.SKU, time.Now().AddDate(0, 3, 0), lot.Recalled)
		if err != nil {
			return fmt.Errorf("seed lot %s: %w", lot.ID, err)
		}
	}
	return nil
}

func runStep(ctx context.Context, d *desk.Desk, store *ledger.Store, ids *testutil.OrderIDGenerator, step Step, result *Result) error {
	switch {
	case step.Intake != nil:
		runIntakeStep(ctx, d, ids, step, result)
	case step.Dispatch != "":
		_, err := d.Dispatch(ctx, step.Dispatch)
		if err != nil {
			result.tracef("dispatch %s: error %s", step.Dispatch, errorCode(err))
		} else {
			result.tracef("dispatch %s: shipped", step.Dispatch)
		}
		checkStepError(step, err, result)
	case step.Resolve != "":
		out, err := d.ResolveBlocked(ctx, step.Resolve)
		switch {
		case err != nil:
			result.tracef("resolve %s: error %s", step.Resolve, errorCode(err))
		case out.Requeued:
			result.tracef("resolve %s: requeued", step.Resolve)
		default:
			result.tracef("resolve %s: blocked reason=%s", step.Resolve, out.Reason)
		}
		checkStepError(step, err, result)
		if err == nil && step.Expect != nil {
			if step.Expect.Queued && !out.Requeued {
				result.failf("resolve %s: expected requeue, still blocked (%s)", step.Resolve, out.Reason)
			}
			if step.Expect.Blocked && out.Requeued {
				result.failf("resolve %s: expected to stay blocked, was requeued", step.Resolve)
			}
			if step.Expect.Reason != "" && string(out.Reason) != step.Expect.Reason {
				result.failf("resolve %s: reason %q, want %q", step.Resolve, out.Reason, step.Expect.Reason)
			}
		}
	case step.MarkShipped != "":
		if err := store.MarkShipped(ctx, step.MarkShipped); err != nil {
			return fmt.Errorf("mark %s shipped: %w", step.MarkShipped, err)
		}
		result.tracef("mark_shipped %s", step.MarkShipped)
	case step.Reconcile:
		removed := d.Reconcile(ctx)
		result.tracef("reconcile: removed [%s]", strings.Join(removed, " "))
	}
	return nil
}

func runIntakeStep(ctx context.Context, d *desk.Desk, ids *testutil.OrderIDGenerator, step Step, result *Result) {
	in := step.Intake
	id := in.ID
	if id == "" {
		id = ids.Next()
	}

	res, err := d.Intake(ctx, floor.Order{
		ID:       id,
		SKU:      in.SKU,
		Quantity: in.Qty,
		Tier:     tierFromString(in.Tier),
		LotID:    in.Lot,
	})
	if err != nil {
		result.tracef("intake %s: error %s", id, errorCode(err))
		checkStepError(step, err, result)
		return
	}
	if res.Blocked {
		result.tracef("intake %s: blocked reason=%s", id, res.Reason)
	} else {
		result.tracef("intake %s: queued score=%d reason=%s", id, res.Order.Score, res.Order.Reason)
	}
	checkStepError(step, nil, result)

	if step.Expect != nil {
		if step.Expect.Queued && !res.Queued {
			result.failf("intake %s: expected queued, was blocked (%s)", id, res.Reason)
		}
		if step.Expect.Blocked && !res.Blocked {
			result.failf("intake %s: expected blocked, was queued", id)
		}
		if step.Expect.Reason != "" && string(res.Reason) != step.Expect.Reason {
			result.failf("intake %s: reason %q, want %q", id, res.Reason, step.Expect.Reason)
		}
	}
}

func checkStepError(step Step, err error, result *Result) {
	if step.Expect == nil {
		if err != nil {
			result.failf("unexpected error: %v", err)
		}
		return
	}
	want := step.Expect.Error
	switch {
	case want == "" && err != nil:
		result.failf("unexpected error: %v", err)
	case want != "" && err == nil:
		result.failf("expected error %s, got none", want)
	case want != "" && errorCode(err) != want:
		result.failf("expected error %s, got %s", want, errorCode(err))
	}
}

func checkFinalState(d *desk.Desk, expect FinalState, result *Result) {
	queue := make([]string, 0)
	for _, so := range d.Scheduler().PeekOrdered() {
		queue = append(queue, so.ID)
	}
	blocked := make([]string, 0)
	for _, e := range d.BlockedOrders() {
		blocked = append(blocked, e.Order.ID)
	}

	if !equalIDs(queue, expect.Queue) {
		result.failf("final queue %v, want %v", queue, expect.Queue)
	}
	if !equalIDs(blocked, expect.Blocked) {
		result.failf("final blocked %v, want %v", blocked, expect.Blocked)
	}
	result.tracef("final: queue=[%s] blocked=[%s]",
		strings.Join(queue, " "), strings.Join(blocked, " "))
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func errorCode(err error) string {
	var fe *floor.FloorError
	if errors.As(err, &fe) {
		return string(fe.Code)
	}
	return "INTERNAL"
}

func tierFromString(s string) floor.Tier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vip":
		return floor.TierVIP
	case "premium":
		return floor.TierPremium
	default:
		return floor.TierStandard
	}
}
