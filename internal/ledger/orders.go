package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warefloor/pirs/internal/floor"
	"github.com/warefloor/pirs/internal/ident"
)

// OrderRecord is a ledger row of the customer order book: the in-memory
// order snapshot plus the fields only the ledger cares about.
type OrderRecord struct {
	floor.Order
	OrderDate time.Time
}

// InsertOrder writes an order record. Duplicate order ids are silently
// ignored (ON CONFLICT DO NOTHING) so seeding and replays stay idempotent.
func (s *Store) InsertOrder(ctx context.Context, rec OrderRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO customer_orders
		(order_id, customer_tier, order_date, sku, product_name, qty_requested, total_amount, lot_id, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(order_id) DO NOTHING
	`,
		ident.Canonical(rec.ID),
		int(rec.Tier),
		rec.OrderDate.Format(time.DateOnly),
		ident.Canonical(rec.SKU),
		rec.ProductName,
		rec.Quantity,
		rec.TotalAmount.String(),
		ident.Canonical(rec.LotID),
		string(rec.Status),
	)
	if err != nil {
		return fmt.Errorf("insert order %s: %w", rec.ID, err)
	}
	return nil
}

// GetOrder returns one order record by id.
func (s *Store) GetOrder(ctx context.Context, orderID string) (OrderRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT order_id, customer_tier, order_date, sku, product_name, qty_requested, total_amount, lot_id, status
		FROM customer_orders
		WHERE order_id = ?
	`, ident.Canonical(orderID))

	rec, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return OrderRecord{}, floor.NewNotFoundError(orderID)
	}
	if err != nil {
		return OrderRecord{}, fmt.Errorf("get order %s: %w", orderID, err)
	}
	return rec, nil
}

// AllOrders returns the full order book, newest first. Ordering is
// deterministic: order_date DESC, then order_id ASC.
func (s *Store) AllOrders(ctx context.Context) ([]OrderRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT order_id, customer_tier, order_date, sku, product_name, qty_requested, total_amount, lot_id, status
		FROM customer_orders
		ORDER BY order_date DESC, order_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []OrderRecord
	for rows.Next() {
		rec, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	// Return empty slice instead of nil
	if orders == nil {
		orders = []OrderRecord{}
	}
	return orders, nil
}

// ShippedSubset returns, of exactly the given order ids, those whose
// ledger status is SHIPPED. This is the one question reconciliation asks.
func (s *Store) ShippedSubset(ctx context.Context, orderIDs []string) ([]string, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(orderIDs)), ",")
	args := make([]any, len(orderIDs))
	for i, id := range orderIDs {
		args[i] = ident.Canonical(id)
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT order_id FROM customer_orders
		WHERE order_id IN (%s) AND status = 'SHIPPED'
		ORDER BY order_id ASC
	`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("query shipped subset: %w", err)
	}
	defer rows.Close()

	var shipped []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan shipped id: %w", err)
		}
		shipped = append(shipped, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shipped subset: %w", err)
	}
	return shipped, nil
}

// MarkShipped sets an order's ledger status to SHIPPED without touching
// stock. Used to model external updates that bypass dispatch.
func (s *Store) MarkShipped(ctx context.Context, orderID string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE customer_orders SET status = 'SHIPPED' WHERE order_id = ?
	`, ident.Canonical(orderID))
	if err != nil {
		return fmt.Errorf("mark shipped %s: %w", orderID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark shipped %s: %w", orderID, err)
	}
	if n == 0 {
		return floor.NewNotFoundError(orderID)
	}
	return nil
}

// UpdateOrderStatus sets an order's ledger status.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID string, status floor.Status) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE customer_orders SET status = ? WHERE order_id = ?
	`, string(status), ident.Canonical(orderID))
	if err != nil {
		return fmt.Errorf("update order status %s: %w", orderID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status %s: %w", orderID, err)
	}
	if n == 0 {
		return floor.NewNotFoundError(orderID)
	}
	return nil
}

// DispatchOrder performs the ledger side of a dispatch in one
// transaction: verify the order exists and is not already shipped, check
// product stock, decrement stock and mark the order SHIPPED.
//
// Returns the order record as it stands after the call. An already
// shipped order is returned unchanged with no error; callers detect the
// no-op via the record's status. Insufficient stock aborts with an
// InsufficientStockError and leaves the order PENDING.
func (s *Store) DispatchOrder(ctx context.Context, orderID string) (OrderRecord, error) {
	orderID = ident.Canonical(orderID)

	tx, err := s.begin(ctx)
	if err != nil {
		return OrderRecord{}, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT order_id, customer_tier, order_date, sku, product_name, qty_requested, total_amount, lot_id, status
		FROM customer_orders
		WHERE order_id = ?
	`, orderID)
	rec, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return OrderRecord{}, floor.NewNotFoundError(orderID)
	}
	if err != nil {
		return OrderRecord{}, fmt.Errorf("dispatch %s: %w", orderID, err)
	}

	if rec.Status == floor.StatusShipped {
		return rec, nil
	}

	var stock int
	err = tx.QueryRowContext(ctx,
		`SELECT current_stock FROM products WHERE sku = ?`, rec.SKU,
	).Scan(&stock)
	if err == sql.ErrNoRows {
		return OrderRecord{}, &floor.FloorError{
			Code:    floor.ErrCodeNotFound,
			Message: "product not found",
			OrderID: orderID,
			SKU:     rec.SKU,
		}
	}
	if err != nil {
		return OrderRecord{}, fmt.Errorf("dispatch %s: read stock: %w", orderID, err)
	}

	if stock < rec.Quantity {
		return OrderRecord{}, floor.NewInsufficientStockError(orderID, rec.SKU, stock, rec.Quantity)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE products SET current_stock = ? WHERE sku = ?`, stock-rec.Quantity, rec.SKU,
	); err != nil {
		return OrderRecord{}, fmt.Errorf("dispatch %s: update stock: %w", orderID, err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE customer_orders SET status = 'SHIPPED' WHERE order_id = ?`, orderID,
	); err != nil {
		return OrderRecord{}, fmt.Errorf("dispatch %s: update status: %w", orderID, err)
	}

	if err := tx.Commit(); err != nil {
		return OrderRecord{}, fmt.Errorf("dispatch %s: commit: %w", orderID, err)
	}

	rec.Status = floor.StatusShipped
	return rec, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (OrderRecord, error) {
	var (
		rec       OrderRecord
		tier      int
		orderDate string
		name      sql.NullString
		amount    string
		lotID     sql.NullString
		status    string
	)

	err := row.Scan(&rec.ID, &tier, &orderDate, &rec.SKU, &name, &rec.Quantity, &amount, &lotID, &status)
	if err != nil {
		return OrderRecord{}, err
	}

	rec.Tier = floor.Tier(tier)
	rec.ProductName = name.String
	rec.LotID = lotID.String
	rec.Status = floor.Status(status)

	rec.TotalAmount, err = decimal.NewFromString(amount)
	if err != nil {
		return OrderRecord{}, fmt.Errorf("parse amount for order %s: %w", rec.ID, err)
	}

	rec.OrderDate, err = time.Parse(time.DateOnly, orderDate)
	if err != nil {
		return OrderRecord{}, fmt.Errorf("parse order date for order %s: %w", rec.ID, err)
	}

	return rec, nil
}
