package desk

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warefloor/pirs/internal/config"
	"github.com/warefloor/pirs/internal/floor"
	"github.com/warefloor/pirs/internal/inventory"
	"github.com/warefloor/pirs/internal/ledger"
)

func newTestStore(t *testing.T) *ledger.Store {
	t.Helper()
	store, err := ledger.Open(filepath.Join(t.TempDir(), "pirs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedProduct(t *testing.T, store *ledger.Store, sku, name string, stock int) {
	t.Helper()
	err := store.UpsertProduct(context.Background(), inventory.Product{
		SKU:          sku,
		Name:         name,
		Stock:        stock,
		LeadTimeDays: 5,
		UnitCost:     decimal.RequireFromString("9.99"),
	})
	require.NoError(t, err)
}

func seedSteadySales(t *testing.T, store *ledger.Store, sku string, perDay, days int) {
	t.Helper()
	for i := 1; i <= days; i++ {
		day := time.Now().AddDate(0, 0, -i)
		require.NoError(t, store.RecordSale(context.Background(), sku, perDay, day))
	}
}

func newTestDesk(t *testing.T, store *ledger.Store) *Desk {
	t.Helper()
	d := New(config.Default(), store)
	require.NoError(t, d.Load(context.Background()))
	return d
}

func TestDesk_IntakeQueuesHealthyOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedProduct(t, store, "SKU-A", "Widget", 50)
	seedSteadySales(t, store, "SKU-A", 2, 10)
	d := newTestDesk(t, store)

	res, err := d.Intake(ctx, floor.Order{SKU: "SKU-A", Quantity: 3, Tier: floor.TierVIP})
	require.NoError(t, err)
	assert.True(t, res.Queued)
	assert.False(t, res.Blocked)
	assert.True(t, strings.HasPrefix(res.Order.ID, "ORD-"))
	assert.Equal(t, "Widget", res.Order.ProductName)
	assert.Positive(t, res.Order.Score)

	rec, err := store.GetOrder(ctx, res.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, floor.StatusPending, rec.Status)
	assert.Equal(t, 1, d.Scheduler().Len())
}

func TestDesk_IntakeBlocksRecalledLot(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedProduct(t, store, "SKU-A", "Widget", 50)
	require.NoError(t, store.InsertLot(ctx, "LOT-BAD", "SKU-A", time.Now().AddDate(0, 1, 0), true))
	d := newTestDesk(t, store)

	res, err := d.Intake(ctx, floor.Order{SKU: "SKU-A", Quantity: 1, LotID: "LOT-BAD"})
	require.NoError(t, err)
	assert.True(t, res.Blocked)
	assert.Equal(t, floor.BlockReasonSafetyHold, res.Reason)
	assert.Equal(t, 0, d.Scheduler().Len())

	rec, err := store.GetOrder(ctx, res.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, floor.StatusBlocked, rec.Status)
}

func TestDesk_IntakeBlocksInsufficientStock(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedProduct(t, store, "SKU-A", "Widget", 2)
	d := newTestDesk(t, store)

	res, err := d.Intake(ctx, floor.Order{SKU: "SKU-A", Quantity: 10})
	require.NoError(t, err)
	assert.True(t, res.Blocked)
	assert.Equal(t, floor.BlockReasonStockInsufficient, res.Reason)
	require.Len(t, d.BlockedOrders(), 1)
}

func TestDesk_IntakeRejectsMalformedOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedProduct(t, store, "SKU-A", "Widget", 50)
	d := newTestDesk(t, store)

	_, err := d.Intake(ctx, floor.Order{SKU: "SKU-A", Quantity: 0})
	require.Error(t, err)
	assert.True(t, floor.IsValidation(err))
	assert.Equal(t, 0, d.Scheduler().Len())
}

func TestDesk_DispatchShipsAndRemovesFromQueue(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedProduct(t, store, "SKU-A", "Widget", 10)
	d := newTestDesk(t, store)

	res, err := d.Intake(ctx, floor.Order{SKU: "SKU-A", Quantity: 4})
	require.NoError(t, err)

	rec, err := d.Dispatch(ctx, res.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, floor.StatusShipped, rec.Status)
	assert.Equal(t, 0, d.Scheduler().Len())

	p, err := store.GetProduct(ctx, "SKU-A")
	require.NoError(t, err)
	assert.Equal(t, 6, p.Stock)
}

func TestDesk_DispatchInsufficientStockLeavesOrderPending(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedProduct(t, store, "SKU-A", "Widget", 10)
	d := newTestDesk(t, store)

	res, err := d.Intake(ctx, floor.Order{SKU: "SKU-A", Quantity: 4})
	require.NoError(t, err)

	require.NoError(t, store.UpdateStock(ctx, "SKU-A", 1))

	_, err = d.Dispatch(ctx, res.Order.ID)
	require.Error(t, err)
	assert.True(t, floor.IsInsufficientStock(err))
	assert.Equal(t, 1, d.Scheduler().Len())

	rec, err := store.GetOrder(ctx, res.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, floor.StatusPending, rec.Status)
}

func TestDesk_DispatchUnknownOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	d := newTestDesk(t, store)

	_, err := d.Dispatch(ctx, "ORD-NOPE")
	require.Error(t, err)
	assert.True(t, floor.IsNotFound(err))
}

func TestDesk_ResolveBlockedRequeuesWhenStockReturns(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedProduct(t, store, "SKU-A", "Widget", 1)
	d := newTestDesk(t, store)

	res, err := d.Intake(ctx, floor.Order{SKU: "SKU-A", Quantity: 5})
	require.NoError(t, err)
	require.True(t, res.Blocked)

	require.NoError(t, store.UpdateStock(ctx, "SKU-A", 20))

	out, err := d.ResolveBlocked(ctx, res.Order.ID)
	require.NoError(t, err)
	assert.True(t, out.Requeued)
	assert.Equal(t, 1, d.Scheduler().Len())
	assert.Empty(t, d.BlockedOrders())

	rec, err := store.GetOrder(ctx, res.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, floor.StatusPending, rec.Status)
}

func TestDesk_ResolveBlockedStaysBlockedWithoutStock(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedProduct(t, store, "SKU-A", "Widget", 1)
	d := newTestDesk(t, store)

	res, err := d.Intake(ctx, floor.Order{SKU: "SKU-A", Quantity: 5})
	require.NoError(t, err)
	require.True(t, res.Blocked)

	out, err := d.ResolveBlocked(ctx, res.Order.ID)
	require.NoError(t, err)
	assert.False(t, out.Requeued)
	assert.Equal(t, floor.BlockReasonStockInsufficient, out.Reason)
	assert.Len(t, d.BlockedOrders(), 1)
	assert.Equal(t, 0, d.Scheduler().Len())
}

func TestDesk_ResolveBlockedUnknown(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	d := newTestDesk(t, store)

	_, err := d.ResolveBlocked(ctx, "ORD-NOPE")
	require.Error(t, err)
	assert.True(t, floor.IsNotFound(err))
}

func TestDesk_LoadPartitionsByStatus(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedProduct(t, store, "SKU-A", "Widget", 50)

	insert := func(id string, status floor.Status) {
		err := store.InsertOrder(ctx, ledger.OrderRecord{
			Order: floor.Order{
				ID: id, SKU: "SKU-A", Quantity: 1,
				Tier: floor.TierStandard, Status: status,
			},
			OrderDate: time.Now(),
		})
		require.NoError(t, err)
	}
	insert("ORD-1", floor.StatusPending)
	insert("ORD-2", floor.StatusPending)
	insert("ORD-3", floor.StatusBlocked)
	insert("ORD-4", floor.StatusShipped)

	d := newTestDesk(t, store)
	assert.Equal(t, 2, d.Scheduler().Len())
	require.Len(t, d.BlockedOrders(), 1)
	assert.Equal(t, "ORD-3", d.BlockedOrders()[0].Order.ID)
}

func TestDesk_LoadHoldsPendingOrdersOnRecalledLots(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedProduct(t, store, "SKU-A", "Widget", 50)
	require.NoError(t, store.InsertLot(ctx, "LOT-BAD", "SKU-A", time.Now().AddDate(0, 1, 0), true))
	err := store.InsertOrder(ctx, ledger.OrderRecord{
		Order: floor.Order{
			ID: "ORD-1", SKU: "SKU-A", Quantity: 1,
			Tier: floor.TierStandard, Status: floor.StatusPending, LotID: "LOT-BAD",
		},
		OrderDate: time.Now(),
	})
	require.NoError(t, err)

	d := newTestDesk(t, store)
	assert.Equal(t, 0, d.Scheduler().Len())
	require.Len(t, d.BlockedOrders(), 1)
	assert.Equal(t, floor.BlockReasonSafetyHold, d.BlockedOrders()[0].Reason)
}

func TestDesk_AuditNextWalksCatalog(t *testing.T) {
	store := newTestStore(t)
	seedProduct(t, store, "SKU-A", "Widget", 1)
	seedProduct(t, store, "SKU-B", "Gadget", 1)
	seedProduct(t, store, "SKU-C", "Gizmo", 1)
	d := newTestDesk(t, store)

	assert.Equal(t, []string{"SKU-A", "SKU-B"}, d.AuditNext(2))
	assert.Equal(t, []string{"SKU-C", "SKU-A"}, d.AuditNext(2))
}

func TestNewOrderID(t *testing.T) {
	a, b := NewOrderID(), NewOrderID()
	assert.True(t, strings.HasPrefix(a, "ORD-"))
	assert.NotEqual(t, a, b)
}
