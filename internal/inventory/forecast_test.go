package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warefloor/pirs/internal/config"
	"github.com/warefloor/pirs/internal/floor"
)

func TestForecaster_BurnRate(t *testing.T) {
	f := NewForecaster(config.Default())

	// 150 units, 10/day burn rate -> 15 days.
	fc, err := f.Estimate("SKU001", 150, SalesSummary{TotalSold: 20, ActiveDays: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, fc.ActiveDays)
	assert.InEpsilon(t, 10.0, fc.AvgDailySales, 1e-9)
	assert.InEpsilon(t, 15.0, fc.DaysRemaining, 1e-9)
}

func TestForecaster_NoSalesYieldsSentinel(t *testing.T) {
	f := NewForecaster(config.Default())

	fc, err := f.Estimate("SKU001", 100, SalesSummary{})
	require.NoError(t, err)

	assert.Zero(t, fc.AvgDailySales)
	assert.Equal(t, float64(config.DefaultSentinelDays), fc.DaysRemaining)
}

func TestForecaster_ZeroStockOverridesSalesRate(t *testing.T) {
	f := NewForecaster(config.Default())

	fc, err := f.Estimate("SKU001", 0, SalesSummary{TotalSold: 50, ActiveDays: 5})
	require.NoError(t, err)

	assert.Zero(t, fc.DaysRemaining)
}

func TestForecaster_NegativeStockIsValidationError(t *testing.T) {
	f := NewForecaster(config.Default())

	_, err := f.Estimate("SKU001", -1, SalesSummary{})
	require.Error(t, err)
	assert.True(t, floor.IsValidation(err))
}

func TestForecaster_MonotonicInStock(t *testing.T) {
	f := NewForecaster(config.Default())
	sales := SalesSummary{TotalSold: 30, ActiveDays: 10}

	prev := -1.0
	for _, stock := range []int{0, 1, 5, 50, 500, 5000} {
		fc, err := f.Estimate("SKU001", stock, sales)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, fc.DaysRemaining, prev,
			"days remaining decreased when stock grew to %d", stock)
		prev = fc.DaysRemaining
	}
}

func TestSummarize(t *testing.T) {
	cases := []struct {
		name   string
		daily  []int
		window int
		want   SalesSummary
	}{
		{"all active", []int{3, 2, 5}, 90, SalesSummary{TotalSold: 10, ActiveDays: 3}},
		{"zero days inactive", []int{3, 0, 5, 0}, 90, SalesSummary{TotalSold: 8, ActiveDays: 2}},
		{"window truncates", []int{3, 2, 5, 7}, 2, SalesSummary{TotalSold: 5, ActiveDays: 2}},
		{"empty", nil, 15, SalesSummary{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Summarize(tc.daily, tc.window))
		})
	}
}
