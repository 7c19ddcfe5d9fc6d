package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warefloor/pirs/internal/floor"
	"github.com/warefloor/pirs/internal/ident"
	"github.com/warefloor/pirs/internal/inventory"
)

// UpsertProduct writes or replaces a product master record.
func (s *Store) UpsertProduct(ctx context.Context, p inventory.Product) error {
	if ident.Canonical(p.SKU) == "" {
		return floor.NewProductValidationError("product is missing a SKU", p.SKU)
	}
	if p.Stock < 0 {
		return floor.NewProductValidationError("stock must not be negative", p.SKU)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (sku, name, current_stock, lead_time_days, unit_cost)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(sku) DO UPDATE SET
			name = excluded.name,
			current_stock = excluded.current_stock,
			lead_time_days = excluded.lead_time_days,
			unit_cost = excluded.unit_cost
	`,
		ident.Canonical(p.SKU),
		p.Name,
		p.Stock,
		p.LeadTimeDays,
		p.UnitCost.String(),
	)
	if err != nil {
		return fmt.Errorf("upsert product %s: %w", p.SKU, err)
	}
	return nil
}

// GetProduct returns one product by SKU.
func (s *Store) GetProduct(ctx context.Context, sku string) (inventory.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT sku, name, current_stock, lead_time_days, unit_cost
		FROM products
		WHERE sku = ?
	`, ident.Canonical(sku))

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return inventory.Product{}, &floor.FloorError{
			Code:    floor.ErrCodeNotFound,
			Message: "product not found",
			SKU:     sku,
		}
	}
	if err != nil {
		return inventory.Product{}, fmt.Errorf("get product %s: %w", sku, err)
	}
	return p, nil
}

// ProductLookup returns the full product snapshot keyed by SKU.
func (s *Store) ProductLookup(ctx context.Context) (map[string]inventory.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sku, name, current_stock, lead_time_days, unit_cost
		FROM products
		ORDER BY sku ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	lookup := make(map[string]inventory.Product)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		lookup[p.SKU] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return lookup, nil
}

// UpdateStock sets a product's current stock.
func (s *Store) UpdateStock(ctx context.Context, sku string, stock int) error {
	if stock < 0 {
		return floor.NewProductValidationError("stock must not be negative", sku)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET current_stock = ? WHERE sku = ?`, stock, ident.Canonical(sku))
	if err != nil {
		return fmt.Errorf("update stock %s: %w", sku, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update stock %s: %w", sku, err)
	}
	if n == 0 {
		return &floor.FloorError{Code: floor.ErrCodeNotFound, Message: "product not found", SKU: sku}
	}
	return nil
}

// RecordSale appends one sales-history row.
func (s *Store) RecordSale(ctx context.Context, sku string, qty int, day time.Time) error {
	if qty <= 0 {
		return floor.NewProductValidationError("sale quantity must be positive", sku)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sales_history (sku, qty_sold, sale_date) VALUES (?, ?, ?)
	`, ident.Canonical(sku), qty, day.Format(time.DateOnly))
	if err != nil {
		return fmt.Errorf("record sale %s: %w", sku, err)
	}
	return nil
}

// BurnRateSummaries aggregates sales history per SKU over the lookback
// window: total quantity sold and count of distinct active days. The
// aggregation happens in SQL; the forecaster consumes the result.
func (s *Store) BurnRateSummaries(ctx context.Context, windowDays int) (map[string]inventory.SalesSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			sku,
			SUM(qty_sold) AS total_sold,
			COUNT(DISTINCT sale_date) AS active_days
		FROM sales_history
		WHERE sale_date >= date('now', ?)
		GROUP BY sku
	`, fmt.Sprintf("-%d days", windowDays))
	if err != nil {
		return nil, fmt.Errorf("query burn-rate summaries: %w", err)
	}
	defer rows.Close()

	summaries := make(map[string]inventory.SalesSummary)
	for rows.Next() {
		var sku string
		var sum inventory.SalesSummary
		if err := rows.Scan(&sku, &sum.TotalSold, &sum.ActiveDays); err != nil {
			return nil, fmt.Errorf("scan burn-rate summary: %w", err)
		}
		summaries[sku] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate burn-rate summaries: %w", err)
	}
	return summaries, nil
}

// InsertLot writes a lot-tracking row. Idempotent on lot_id.
func (s *Store) InsertLot(ctx context.Context, lotID, sku string, expiry time.Time, recalled bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO inventory_lots (lot_id, sku, expiry_date, is_recalled)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(lot_id) DO UPDATE SET is_recalled = excluded.is_recalled
	`, ident.Canonical(lotID), ident.Canonical(sku), expiry.Format(time.DateOnly), boolToInt(recalled))
	if err != nil {
		return fmt.Errorf("insert lot %s: %w", lotID, err)
	}
	return nil
}

// RecalledLots returns the lot ids flagged as recalled, for loading the
// safety gate at startup.
func (s *Store) RecalledLots(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT lot_id FROM inventory_lots WHERE is_recalled = 1 ORDER BY lot_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query recalled lots: %w", err)
	}
	defer rows.Close()

	var lots []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan recalled lot: %w", err)
		}
		lots = append(lots, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recalled lots: %w", err)
	}
	return lots, nil
}

func scanProduct(row rowScanner) (inventory.Product, error) {
	var (
		p    inventory.Product
		cost string
	)
	if err := row.Scan(&p.SKU, &p.Name, &p.Stock, &p.LeadTimeDays, &cost); err != nil {
		return inventory.Product{}, err
	}

	var err error
	p.UnitCost, err = decimal.NewFromString(cost)
	if err != nil {
		return inventory.Product{}, fmt.Errorf("parse unit cost for %s: %w", p.SKU, err)
	}
	return p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
