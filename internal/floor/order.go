package floor

import (
	"github.com/shopspring/decimal"

	"github.com/warefloor/pirs/internal/ident"
)

// Tier is the ordinal customer tier. Higher tiers earn a priority bonus.
type Tier int

const (
	TierStandard Tier = 1
	TierVIP      Tier = 2
	TierPremium  Tier = 3
)

// String returns a human-readable tier name.
func (t Tier) String() string {
	switch t {
	case TierStandard:
		return "standard"
	case TierVIP:
		return "vip"
	case TierPremium:
		return "premium"
	default:
		return "unknown"
	}
}

// Status is an order's lifecycle state in the ledger.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusBlocked Status = "BLOCKED"
	StatusShipped Status = "SHIPPED"
)

// BlockReason is the closed set of reasons an order can be blocked.
type BlockReason string

const (
	BlockReasonSafetyHold        BlockReason = "safety-hold"
	BlockReasonStockInsufficient BlockReason = "stock-insufficient"
	BlockReasonManual            BlockReason = "manual"
)

// PriorityReason labels the dominant factor behind a priority score.
type PriorityReason string

const (
	ReasonStandard     PriorityReason = "standard"
	ReasonExpiringSoon PriorityReason = "expiring-soon"
	ReasonPremium      PriorityReason = "premium"
	ReasonVIP          PriorityReason = "vip"
)

// Order is a customer order as the engine sees it. The ledger owns the
// authoritative record; this is an in-memory snapshot.
type Order struct {
	ID            string
	Tier          Tier
	SKU           string
	ProductName   string
	Quantity      int
	TotalAmount   decimal.Decimal
	LotID         string // lot the order would ship from; empty if untracked
	DaysRemaining int    // forecasted days until the SKU stocks out
	Status        Status
}

// Canonicalize normalizes the order's external identifiers in place.
// Must run once at intake, before the order is used as a map key anywhere.
func (o *Order) Canonicalize() {
	o.ID = ident.Canonical(o.ID)
	o.SKU = ident.Canonical(o.SKU)
	o.LotID = ident.Canonical(o.LotID)
}

// Validate checks that the order is well-formed. Malformed input is always
// surfaced to the caller, never silently coerced.
func (o Order) Validate() error {
	if o.ID == "" {
		return NewValidationError("order is missing an order id", "")
	}
	if o.SKU == "" {
		return NewValidationError("order is missing a SKU", o.ID)
	}
	if o.Quantity <= 0 {
		return NewValidationError("order quantity must be positive", o.ID)
	}
	if o.TotalAmount.IsNegative() {
		return NewValidationError("order amount must not be negative", o.ID)
	}
	if o.DaysRemaining < 0 {
		return NewValidationError("days remaining must not be negative", o.ID)
	}
	return nil
}
