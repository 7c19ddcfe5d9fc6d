package inventory

import "github.com/shopspring/decimal"

// UnknownProductName is used when an order references a SKU missing from
// the product snapshot. Missing products resolve to defaults, never to a
// crash.
const UnknownProductName = "unknown"

// Product is a read-only product snapshot. The ledger owns the record.
type Product struct {
	SKU          string
	Name         string
	Stock        int
	LeadTimeDays int
	UnitCost     decimal.Decimal
}

// PlaceholderProduct returns the documented default for a SKU the product
// snapshot does not contain: zero stock, unknown name.
func PlaceholderProduct(sku string) Product {
	return Product{SKU: sku, Name: UnknownProductName}
}
