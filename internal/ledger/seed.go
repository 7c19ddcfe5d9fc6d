package ledger

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warefloor/pirs/internal/floor"
	"github.com/warefloor/pirs/internal/inventory"
)

// seedCatalog is the fixed product catalog used for local simulation.
var seedCatalog = []struct {
	sku  string
	name string
	cost string
}{
	{"SKU001", "Mouse (Electronics)", "349.00"},
	{"SKU002", "Keyboard (Electronics)", "599.00"},
	{"SKU003", "Monitor (Electronics)", "7499.00"},
	{"SKU004", "Cable (Electronics)", "199.00"},
	{"SKU005", "Headset (Electronics)", "899.00"},
	{"SKU006", "Webcam (Electronics)", "1499.00"},
	{"SKU007", "Router (Electronics)", "1299.00"},
	{"SKU008", "Speaker (Electronics)", "1199.00"},
	{"SKU009", "Paper (Office)", "260.00"},
	{"SKU010", "Stapler (Office)", "149.00"},
	{"SKU011", "Desk Lamp (Office)", "799.00"},
	{"SKU012", "Chair (Office)", "3499.00"},
	{"SKU013", "Whiteboard (Office)", "899.00"},
	{"SKU014", "Shredder (Office)", "2499.00"},
	{"SKU015", "Mug (Kitchen)", "149.00"},
	{"SKU016", "Kettle (Kitchen)", "799.00"},
	{"SKU017", "Toaster (Kitchen)", "1199.00"},
	{"SKU018", "Blender (Kitchen)", "1499.00"},
	{"SKU019", "Wiper Blade (Automotive)", "349.00"},
	{"SKU020", "Jump Starter (Automotive)", "3999.00"},
	{"SKU021", "Shovel (Gardening)", "499.00"},
	{"SKU022", "Hose (Gardening)", "599.00"},
	{"SKU023", "Pruner (Gardening)", "399.00"},
	{"SKU024", "Seeds (Gardening)", "99.00"},
}

// SeedOptions tunes the synthetic data volume.
type SeedOptions struct {
	// HistoryDays is how many days of sales history to generate per SKU.
	HistoryDays int
	// MaxOrdersPerSKU caps the synthetic orders generated per product.
	// Must be at least minOrdersPerSKU.
	MaxOrdersPerSKU int
	// Seed makes generation reproducible.
	Seed int64
}

// minOrdersPerSKU is the floor of the per-product order count; the
// generator draws between minOrdersPerSKU and MaxOrdersPerSKU orders.
const minOrdersPerSKU = 3

// Validate rejects option values outside the generator's working range.
func (o SeedOptions) Validate() error {
	if o.HistoryDays < 0 {
		return floor.NewValidationError(
			fmt.Sprintf("history days must not be negative, got %d", o.HistoryDays), "")
	}
	if o.MaxOrdersPerSKU < minOrdersPerSKU {
		return floor.NewValidationError(
			fmt.Sprintf("max orders per SKU must be at least %d, got %d", minOrdersPerSKU, o.MaxOrdersPerSKU), "")
	}
	return nil
}

// DefaultSeedOptions matches the simulation defaults.
func DefaultSeedOptions() SeedOptions {
	return SeedOptions{HistoryDays: 15, MaxOrdersPerSKU: 8, Seed: 1}
}

// Seed populates the ledger with a deterministic synthetic dataset:
// the fixed product catalog, per-day sales history, a lot table with one
// recalled lot, and an order book with a PENDING/SHIPPED/BLOCKED mix.
// Safe to run against an existing database; inserts are idempotent.
func (s *Store) Seed(ctx context.Context, opts SeedOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	now := time.Now()

	orderCounter := 1001
	for _, item := range seedCatalog {
		cost, err := decimal.NewFromString(item.cost)
		if err != nil {
			return fmt.Errorf("seed: parse cost for %s: %w", item.sku, err)
		}

		p := inventory.Product{
			SKU:          item.sku,
			Name:         item.name,
			Stock:        5 + rng.Intn(496),
			LeadTimeDays: 2 + rng.Intn(20),
			UnitCost:     cost,
		}
		if err := s.UpsertProduct(ctx, p); err != nil {
			return fmt.Errorf("seed: %w", err)
		}

		// Sales history: a base daily demand with noise; quiet days are
		// simply absent from the table.
		dailyDemand := rng.Intn(11)
		for day := 0; day < opts.HistoryDays; day++ {
			qty := dailyDemand + rng.Intn(9) - 3
			if qty <= 0 {
				continue
			}
			saleDay := now.AddDate(0, 0, -day)
			if err := s.RecordSale(ctx, item.sku, qty, saleDay); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
		}

		// One tracked lot per product, expiring within a quarter.
		lotID := fmt.Sprintf("LOT-%s-01", item.sku)
		expiry := now.AddDate(0, 0, 7+rng.Intn(83))
		if err := s.InsertLot(ctx, lotID, item.sku, expiry, false); err != nil {
			return fmt.Errorf("seed: %w", err)
		}

		// Order book with a mostly-shipped history, like a live system.
		numOrders := minOrdersPerSKU + rng.Intn(opts.MaxOrdersPerSKU-minOrdersPerSKU+1)
		for i := 0; i < numOrders; i++ {
			rec := OrderRecord{
				Order: floor.Order{
					ID:          fmt.Sprintf("ORD-%d", orderCounter),
					Tier:        weightedTier(rng),
					SKU:         item.sku,
					ProductName: item.name,
					Quantity:    1 + rng.Intn(10),
					LotID:       lotID,
					Status:      weightedStatus(rng),
				},
				OrderDate: now.AddDate(0, 0, -rng.Intn(31)),
			}
			rec.TotalAmount = cost.Mul(decimal.NewFromInt(int64(rec.Quantity)))
			orderCounter++

			if err := s.InsertOrder(ctx, rec); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
		}
	}

	// A recalled lot, so the safety gate has something to hold.
	recalled := now.AddDate(0, 0, -1)
	if err := s.InsertLot(ctx, "LOT-RCL-001", "SKU001", recalled, true); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	return nil
}

// weightedTier draws a customer tier: mostly standard, some VIP, few premium.
func weightedTier(rng *rand.Rand) floor.Tier {
	switch r := rng.Float64(); {
	case r < 0.6:
		return floor.TierStandard
	case r < 0.9:
		return floor.TierVIP
	default:
		return floor.TierPremium
	}
}

// weightedStatus draws an order status: mostly shipped history, some
// pending, a few blocked.
func weightedStatus(rng *rand.Rand) floor.Status {
	switch r := rng.Float64(); {
	case r < 0.2:
		return floor.StatusPending
	case r < 0.9:
		return floor.StatusShipped
	default:
		return floor.StatusBlocked
	}
}
