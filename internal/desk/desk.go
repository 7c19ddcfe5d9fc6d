// Package desk wires the fulfillment engine together: the safety gate,
// scheduler, blocked-order registry and reconciler on the shipping path,
// and the forecaster, ranker and classifier on the triage path, all over
// one authoritative ledger.
//
// A Desk is constructed explicitly at process start and passed to
// whatever surface consumes it; there are no package-level singletons.
package desk

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warefloor/pirs/internal/config"
	"github.com/warefloor/pirs/internal/floor"
	"github.com/warefloor/pirs/internal/inventory"
	"github.com/warefloor/pirs/internal/ledger"
)

// Ledger is the slice of the persistent store the desk consumes.
// Implemented by *ledger.Store; tests substitute stubs.
type Ledger interface {
	AllOrders(ctx context.Context) ([]ledger.OrderRecord, error)
	GetOrder(ctx context.Context, orderID string) (ledger.OrderRecord, error)
	InsertOrder(ctx context.Context, rec ledger.OrderRecord) error
	UpdateOrderStatus(ctx context.Context, orderID string, status floor.Status) error
	DispatchOrder(ctx context.Context, orderID string) (ledger.OrderRecord, error)
	ShippedSubset(ctx context.Context, orderIDs []string) ([]string, error)
	ProductLookup(ctx context.Context) (map[string]inventory.Product, error)
	BurnRateSummaries(ctx context.Context, windowDays int) (map[string]inventory.SalesSummary, error)
	RecalledLots(ctx context.Context) ([]string, error)
}

// Desk is the fulfillment desk composition root.
type Desk struct {
	cfg        config.Config
	store      Ledger
	gate       *floor.SafetyGate
	sched      *floor.Scheduler
	blocked    *floor.BlockedOrderRegistry
	reconciler *floor.Reconciler
	forecaster *inventory.Forecaster
	audit      *inventory.AuditRotation
}

// New creates a desk over a ledger with the given thresholds.
// Call Load to populate the in-memory structures from the ledger.
func New(cfg config.Config, store Ledger) *Desk {
	sched := floor.NewScheduler(cfg)
	return &Desk{
		cfg:        cfg,
		store:      store,
		gate:       floor.NewSafetyGate(),
		sched:      sched,
		blocked:    floor.NewBlockedOrderRegistry(),
		reconciler: floor.NewReconciler(sched, store),
		forecaster: inventory.NewForecaster(cfg),
		audit:      inventory.NewAuditRotation(nil),
	}
}

// IntakeResult reports where an order landed on intake.
type IntakeResult struct {
	Order   floor.ScoredOrder
	Queued  bool
	Blocked bool
	Reason  floor.BlockReason // set when Blocked
}

// Load populates the in-memory structures from the ledger: recalled lots
// into the safety gate, PENDING orders into the scheduler, BLOCKED
// orders into the registry. SHIPPED history is ignored. Also primes the
// audit rotation from the product catalog.
func (d *Desk) Load(ctx context.Context) error {
	lots, err := d.store.RecalledLots(ctx)
	if err != nil {
		return floor.NewCollaboratorError("load recalled lots", err)
	}
	for _, lot := range lots {
		d.gate.Block(lot)
	}

	products, err := d.store.ProductLookup(ctx)
	if err != nil {
		return floor.NewCollaboratorError("load product snapshot", err)
	}

	summaries, err := d.store.BurnRateSummaries(ctx, d.cfg.SimWindowDays)
	if err != nil {
		return floor.NewCollaboratorError("load burn-rate summaries", err)
	}

	orders, err := d.store.AllOrders(ctx)
	if err != nil {
		return floor.NewCollaboratorError("load order book", err)
	}

	queued, held := 0, 0
	for _, rec := range orders {
		o := rec.Order
		o.DaysRemaining = d.daysRemaining(o.SKU, products, summaries)

		switch rec.Status {
		case floor.StatusBlocked:
			d.blocked.Block(o, floor.BlockReasonManual)
			held++
		case floor.StatusPending:
			if !d.gate.IsSafe(o.LotID) {
				d.blocked.Block(o, floor.BlockReasonSafetyHold)
				held++
				continue
			}
			if _, err := d.sched.Admit(o); err != nil {
				slog.Warn("skipping malformed ledger order", "order_id", o.ID, "error", err)
				continue
			}
			queued++
		}
		// SHIPPED orders never enter the active structures.
	}

	d.audit = auditRotationFor(products)

	slog.Info("desk loaded from ledger",
		"orders", len(orders),
		"queued", queued,
		"blocked", held,
		"recalled_lots", len(lots),
	)
	return nil
}

// Intake admits a new order through the safety and stock checks, landing
// it either on the shipment queue or in the blocked registry, and writes
// it to the ledger either way.
//
// An order arriving without an id is assigned one. An order arriving
// without a tier defaults to standard; without a forecastable SKU its
// days remaining default to the configured value.
func (d *Desk) Intake(ctx context.Context, o floor.Order) (IntakeResult, error) {
	o.Canonicalize()
	if o.ID == "" {
		o.ID = NewOrderID()
	}
	if o.Tier == 0 {
		o.Tier = floor.TierStandard
	}

	products, err := d.store.ProductLookup(ctx)
	if err != nil {
		return IntakeResult{}, floor.NewCollaboratorError("intake: product snapshot", err)
	}
	summaries, err := d.store.BurnRateSummaries(ctx, d.cfg.SimWindowDays)
	if err != nil {
		return IntakeResult{}, floor.NewCollaboratorError("intake: burn-rate summaries", err)
	}

	product, known := products[o.SKU]
	if !known {
		product = inventory.PlaceholderProduct(o.SKU)
	}
	if o.ProductName == "" {
		o.ProductName = product.Name
	}
	if o.TotalAmount.IsZero() && known {
		o.TotalAmount = product.UnitCost.Mul(decimal.NewFromInt(int64(o.Quantity)))
	}
	o.DaysRemaining = d.daysRemaining(o.SKU, products, summaries)

	if err := o.Validate(); err != nil {
		return IntakeResult{}, err
	}

	if !d.gate.IsSafe(o.LotID) {
		return d.blockOnIntake(ctx, o, floor.BlockReasonSafetyHold)
	}
	if product.Stock < o.Quantity {
		return d.blockOnIntake(ctx, o, floor.BlockReasonStockInsufficient)
	}

	scored, err := d.sched.Admit(o)
	if err != nil {
		return IntakeResult{}, err
	}

	if err := d.persistIntake(ctx, o, floor.StatusPending); err != nil {
		return IntakeResult{}, err
	}
	return IntakeResult{Order: scored, Queued: true}, nil
}

// Dispatch ships an order: the ledger transactionally checks stock,
// decrements it and marks the order SHIPPED; then the in-memory queue
// entry is removed. An order unknown to the queue but known to the
// ledger still dispatches (the queue may have been reconciled already).
func (d *Desk) Dispatch(ctx context.Context, orderID string) (ledger.OrderRecord, error) {
	rec, err := d.store.DispatchOrder(ctx, orderID)
	if err != nil {
		return ledger.OrderRecord{}, err
	}

	if err := d.sched.Dispatch(rec.ID); err != nil && !floor.IsNotFound(err) {
		return ledger.OrderRecord{}, err
	}
	return rec, nil
}

// ResolveOutcome reports what happened to a resolved blocked order.
type ResolveOutcome struct {
	Order    floor.Order
	Requeued bool
	Reason   floor.BlockReason // re-block reason when not requeued
}

// ResolveBlocked re-validates a blocked order against the safety gate
// and current stock. If it passes, it returns to the shipment queue and
// the ledger flips to PENDING; otherwise it stays blocked under the
// fresh reason.
func (d *Desk) ResolveBlocked(ctx context.Context, orderID string) (ResolveOutcome, error) {
	entry, err := d.blocked.Resolve(orderID)
	if err != nil {
		return ResolveOutcome{}, err
	}
	o := entry.Order

	if !d.gate.IsSafe(o.LotID) {
		d.blocked.Block(o, floor.BlockReasonSafetyHold)
		return ResolveOutcome{Order: o, Reason: floor.BlockReasonSafetyHold}, nil
	}

	products, err := d.store.ProductLookup(ctx)
	if err != nil {
		// Put the entry back; resolution can be retried.
		d.blocked.Block(o, entry.Reason)
		return ResolveOutcome{}, floor.NewCollaboratorError("resolve: product snapshot", err)
	}
	product, known := products[o.SKU]
	if !known {
		product = inventory.PlaceholderProduct(o.SKU)
	}
	if product.Stock < o.Quantity {
		d.blocked.Block(o, floor.BlockReasonStockInsufficient)
		return ResolveOutcome{Order: o, Reason: floor.BlockReasonStockInsufficient}, nil
	}

	o.Status = floor.StatusPending
	if _, err := d.sched.Admit(o); err != nil {
		return ResolveOutcome{}, err
	}
	if err := d.store.UpdateOrderStatus(ctx, o.ID, floor.StatusPending); err != nil {
		slog.Warn("resolved order not persisted as pending", "order_id", o.ID, "error", err)
	}
	return ResolveOutcome{Order: o, Requeued: true}, nil
}

// Reconcile runs one reconciliation pass against the ledger and returns
// the removed order ids. Exposed so callers can schedule it independently
// of the read path.
func (d *Desk) Reconcile(ctx context.Context) []string {
	return d.reconciler.Reconcile(ctx)
}

// Gate exposes the safety gate for administrative blocking.
func (d *Desk) Gate() *floor.SafetyGate {
	return d.gate
}

// Scheduler exposes the shipment queue for read-side callers.
func (d *Desk) Scheduler() *floor.Scheduler {
	return d.sched
}

// BlockedOrders returns the current blocked list.
func (d *Desk) BlockedOrders() []floor.BlockedEntry {
	return d.blocked.List()
}

// NewOrderID generates a time-sortable order id.
func NewOrderID() string {
	return "ORD-" + uuid.Must(uuid.NewV7()).String()
}

// daysRemaining forecasts days to stockout for a SKU, falling back to
// the configured default when the SKU is missing from the snapshot, and
// to the sentinel when it simply has no sales.
func (d *Desk) daysRemaining(sku string, products map[string]inventory.Product, summaries map[string]inventory.SalesSummary) int {
	product, ok := products[sku]
	if !ok {
		return d.cfg.DaysRemainingDefault
	}

	fc, err := d.forecaster.Estimate(sku, product.Stock, summaries[sku])
	if err != nil {
		slog.Warn("forecast failed, using default days remaining", "sku", sku, "error", err)
		return d.cfg.DaysRemainingDefault
	}
	return int(math.Floor(fc.DaysRemaining))
}

func (d *Desk) blockOnIntake(ctx context.Context, o floor.Order, reason floor.BlockReason) (IntakeResult, error) {
	d.blocked.Block(o, reason)
	if err := d.persistIntake(ctx, o, floor.StatusBlocked); err != nil {
		return IntakeResult{}, err
	}
	return IntakeResult{
		Order:   floor.ScoredOrder{Order: o},
		Blocked: true,
		Reason:  reason,
	}, nil
}

func (d *Desk) persistIntake(ctx context.Context, o floor.Order, status floor.Status) error {
	o.Status = status
	rec := ledger.OrderRecord{Order: o, OrderDate: time.Now()}
	if err := d.store.InsertOrder(ctx, rec); err != nil {
		return floor.NewCollaboratorError(fmt.Sprintf("persist order %s", o.ID), err)
	}
	return nil
}

func auditRotationFor(products map[string]inventory.Product) *inventory.AuditRotation {
	skus := make([]string, 0, len(products))
	for sku := range products {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	return inventory.NewAuditRotation(skus)
}
