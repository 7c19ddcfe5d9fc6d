package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warefloor/pirs/internal/floor"
)

func TestSeed_PopulatesAllTables(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx, DefaultSeedOptions()))

	lookup, err := s.ProductLookup(ctx)
	require.NoError(t, err)
	assert.Len(t, lookup, len(seedCatalog))

	orders, err := s.AllOrders(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, orders)

	statuses := make(map[floor.Status]int)
	for _, o := range orders {
		statuses[o.Status]++
	}
	assert.Greater(t, statuses[floor.StatusShipped], 0, "seed should include shipped history")
	assert.Greater(t, statuses[floor.StatusPending], 0, "seed should include pending orders")

	summaries, err := s.BurnRateSummaries(ctx, 15)
	require.NoError(t, err)
	assert.NotEmpty(t, summaries)

	lots, err := s.RecalledLots(ctx)
	require.NoError(t, err)
	assert.Contains(t, lots, "LOT-RCL-001")
}

func TestSeed_RejectsOutOfRangeOptions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		opts SeedOptions
	}{
		{"max orders below floor", SeedOptions{HistoryDays: 15, MaxOrdersPerSKU: 2, Seed: 1}},
		{"max orders zero", SeedOptions{HistoryDays: 15, MaxOrdersPerSKU: 0, Seed: 1}},
		{"negative history days", SeedOptions{HistoryDays: -1, MaxOrdersPerSKU: 8, Seed: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Seed(ctx, tt.opts)
			require.Error(t, err)
			assert.True(t, floor.IsValidation(err))
		})
	}

	// Nothing was written by the rejected runs.
	orders, err := s.AllOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestSeed_MinimumMaxOrdersPinsCountPerSKU(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	opts := DefaultSeedOptions()
	opts.MaxOrdersPerSKU = minOrdersPerSKU
	require.NoError(t, s.Seed(ctx, opts))

	orders, err := s.AllOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, minOrdersPerSKU*len(seedCatalog))
}

func TestSeed_ProductsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	opts := DefaultSeedOptions()

	require.NoError(t, s.Seed(ctx, opts))
	first, err := s.AllOrders(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Seed(ctx, opts))
	second, err := s.AllOrders(ctx)
	require.NoError(t, err)

	// Same rng seed generates the same order ids; duplicates are ignored.
	assert.Equal(t, len(first), len(second))

	lookup, err := s.ProductLookup(ctx)
	require.NoError(t, err)
	assert.Len(t, lookup, len(seedCatalog))
}
