package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warefloor/pirs/internal/floor"
	"github.com/warefloor/pirs/internal/inventory"
)

func TestUpsertProduct_Roundtrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := inventory.Product{
		SKU:          "SKU001",
		Name:         "Mouse (Electronics)",
		Stock:        42,
		LeadTimeDays: 9,
		UnitCost:     decimal.RequireFromString("349.00"),
	}
	require.NoError(t, s.UpsertProduct(ctx, want))

	got, err := s.GetProduct(ctx, "SKU001")
	require.NoError(t, err)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, 42, got.Stock)
	assert.Equal(t, 9, got.LeadTimeDays)
	assert.True(t, want.UnitCost.Equal(got.UnitCost))
}

func TestUpsertProduct_ReplacesExisting(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedProduct(t, s, "SKU001", 10)

	updated := inventory.Product{SKU: "SKU001", Name: "Widget v2", Stock: 99, LeadTimeDays: 3, UnitCost: decimal.NewFromInt(5)}
	require.NoError(t, s.UpsertProduct(ctx, updated))

	got, err := s.GetProduct(ctx, "SKU001")
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", got.Name)
	assert.Equal(t, 99, got.Stock)
}

func TestUpsertProduct_Validation(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.UpsertProduct(ctx, inventory.Product{SKU: "", Name: "x"})
	assert.True(t, floor.IsValidation(err))

	err = s.UpsertProduct(ctx, inventory.Product{SKU: "SKU001", Name: "x", Stock: -1})
	assert.True(t, floor.IsValidation(err))
}

func TestGetProduct_Unknown(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetProduct(context.Background(), "SKU404")
	require.Error(t, err)
	assert.True(t, floor.IsNotFound(err))
}

func TestProductLookup(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedProduct(t, s, "SKU001", 10)
	seedProduct(t, s, "SKU002", 20)

	lookup, err := s.ProductLookup(ctx)
	require.NoError(t, err)
	require.Len(t, lookup, 2)
	assert.Equal(t, 10, lookup["SKU001"].Stock)
	assert.Equal(t, 20, lookup["SKU002"].Stock)
}

func TestUpdateStock(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedProduct(t, s, "SKU001", 10)

	require.NoError(t, s.UpdateStock(ctx, "SKU001", 77))

	got, err := s.GetProduct(ctx, "SKU001")
	require.NoError(t, err)
	assert.Equal(t, 77, got.Stock)

	assert.True(t, floor.IsValidation(s.UpdateStock(ctx, "SKU001", -1)))
	assert.True(t, floor.IsNotFound(s.UpdateStock(ctx, "SKU404", 5)))
}

func TestBurnRateSummaries_AggregatesWindow(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedProduct(t, s, "SKU001", 100)
	seedProduct(t, s, "SKU002", 100)

	now := time.Now()
	// SKU001: two active days inside the window.
	require.NoError(t, s.RecordSale(ctx, "SKU001", 10, now.AddDate(0, 0, -1)))
	require.NoError(t, s.RecordSale(ctx, "SKU001", 10, now.AddDate(0, 0, -2)))
	// Same day twice still counts as one active day.
	require.NoError(t, s.RecordSale(ctx, "SKU001", 5, now.AddDate(0, 0, -2)))
	// SKU002: only an ancient sale, outside the 15-day window.
	require.NoError(t, s.RecordSale(ctx, "SKU002", 50, now.AddDate(0, 0, -400)))

	summaries, err := s.BurnRateSummaries(ctx, 15)
	require.NoError(t, err)

	require.Contains(t, summaries, "SKU001")
	assert.Equal(t, inventory.SalesSummary{TotalSold: 25, ActiveDays: 2}, summaries["SKU001"])
	assert.NotContains(t, summaries, "SKU002")
}

func TestRecordSale_Validation(t *testing.T) {
	s := openTestStore(t)
	seedProduct(t, s, "SKU001", 100)

	err := s.RecordSale(context.Background(), "SKU001", 0, time.Now())
	assert.True(t, floor.IsValidation(err))
}

func TestRecalledLots(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedProduct(t, s, "SKU001", 100)

	expiry := time.Now().AddDate(0, 1, 0)
	require.NoError(t, s.InsertLot(ctx, "LOT-OK-1", "SKU001", expiry, false))
	require.NoError(t, s.InsertLot(ctx, "LOT-RCL-2", "SKU001", expiry, true))
	require.NoError(t, s.InsertLot(ctx, "LOT-RCL-1", "SKU001", expiry, true))

	lots, err := s.RecalledLots(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"LOT-RCL-1", "LOT-RCL-2"}, lots)
}

func TestInsertLot_RecallUpdate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedProduct(t, s, "SKU001", 100)

	expiry := time.Now().AddDate(0, 1, 0)
	require.NoError(t, s.InsertLot(ctx, "LOT-1", "SKU001", expiry, false))
	require.NoError(t, s.InsertLot(ctx, "LOT-1", "SKU001", expiry, true))

	lots, err := s.RecalledLots(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"LOT-1"}, lots)
}
