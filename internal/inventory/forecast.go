package inventory

import (
	"github.com/warefloor/pirs/internal/config"
	"github.com/warefloor/pirs/internal/floor"
)

// SalesSummary is the aggregated sales history for one SKU over a
// lookback window: total quantity sold and the count of distinct days
// with at least one recorded sale.
type SalesSummary struct {
	TotalSold  int
	ActiveDays int
}

// Forecast is the burn-rate output for one SKU.
type Forecast struct {
	SKU           string
	ActiveDays    int
	AvgDailySales float64
	DaysRemaining float64
}

// Forecaster turns current stock plus aggregated sales history into a
// days-remaining-to-stockout estimate.
//
// The model is deliberately simple: average quantity sold per active day
// over the window, divided into current stock. SKUs that sell nothing map
// to a large finite sentinel rather than infinity so every downstream
// comparison stays well-defined.
type Forecaster struct {
	sentinelDays int
}

// NewForecaster creates a forecaster using the configured sentinel.
func NewForecaster(cfg config.Config) *Forecaster {
	return &Forecaster{sentinelDays: cfg.SentinelDays}
}

// Estimate computes the forecast for one SKU.
//
// Edge cases:
//   - stock == 0 yields DaysRemaining 0 regardless of sales rate
//   - no sales (ActiveDays == 0 or AvgDailySales == 0) yields the sentinel
//   - negative stock is an input-validation error, never silently clamped
func (f *Forecaster) Estimate(sku string, stock int, sales SalesSummary) (Forecast, error) {
	if stock < 0 {
		return Forecast{}, floor.NewProductValidationError("stock must not be negative", sku)
	}
	if sales.TotalSold < 0 || sales.ActiveDays < 0 {
		return Forecast{}, floor.NewProductValidationError("sales summary must not be negative", sku)
	}

	fc := Forecast{SKU: sku, ActiveDays: sales.ActiveDays}

	if sales.ActiveDays > 0 {
		fc.AvgDailySales = float64(sales.TotalSold) / float64(sales.ActiveDays)
	}

	switch {
	case stock == 0:
		fc.DaysRemaining = 0
	case fc.AvgDailySales > 0:
		fc.DaysRemaining = float64(stock) / fc.AvgDailySales
	default:
		fc.DaysRemaining = float64(f.sentinelDays)
	}

	return fc, nil
}

// Summarize collapses a per-day quantity series (most recent first) into
// a SalesSummary over at most window days. Days with zero quantity do not
// count as active. Used for simulation mode, where raw daily series are
// available instead of SQL aggregates.
func Summarize(dailyQuantities []int, window int) SalesSummary {
	if window > 0 && len(dailyQuantities) > window {
		dailyQuantities = dailyQuantities[:window]
	}

	var s SalesSummary
	for _, qty := range dailyQuantities {
		if qty <= 0 {
			continue
		}
		s.TotalSold += qty
		s.ActiveDays++
	}
	return s
}
