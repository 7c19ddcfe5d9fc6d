package floor

import (
	"errors"
	"fmt"
)

// FloorError represents a failure detected on the shipping path.
//
// The taxonomy:
//   - Validation: malformed order or product input
//   - Not found: dispatch or resolve referencing an unknown order id
//   - Collaborator unavailable: the ledger could not be reached
//   - Insufficient stock: dispatch against a product with too little stock
//
// FloorError carries structured fields for diagnostics; callers classify
// with the Is* helpers rather than matching message text.
type FloorError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// OrderID identifies the affected order, when one is involved.
	OrderID string

	// SKU identifies the affected product, when one is involved.
	SKU string

	// Err is the underlying cause, when wrapping a collaborator failure.
	Err error
}

// ErrorCode categorizes floor errors.
type ErrorCode string

const (
	// ErrCodeValidation indicates malformed order or product input.
	ErrCodeValidation ErrorCode = "VALIDATION"

	// ErrCodeNotFound indicates an unknown order id.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeCollaboratorUnavailable indicates a failed ledger call.
	ErrCodeCollaboratorUnavailable ErrorCode = "COLLABORATOR_UNAVAILABLE"

	// ErrCodeInsufficientStock indicates dispatch exceeding available stock.
	ErrCodeInsufficientStock ErrorCode = "INSUFFICIENT_STOCK"
)

// Error implements the error interface.
func (e *FloorError) Error() string {
	switch {
	case e.OrderID != "" && e.SKU != "":
		return fmt.Sprintf("%s: %s (order=%s, sku=%s)", e.Code, e.Message, e.OrderID, e.SKU)
	case e.OrderID != "":
		return fmt.Sprintf("%s: %s (order=%s)", e.Code, e.Message, e.OrderID)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *FloorError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a validation failure.
// Uses errors.As to handle wrapped errors.
func IsValidation(err error) bool {
	return hasCode(err, ErrCodeValidation)
}

// IsNotFound reports whether err is an unknown-order failure.
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

// IsCollaboratorUnavailable reports whether err is a failed ledger call.
func IsCollaboratorUnavailable(err error) bool {
	return hasCode(err, ErrCodeCollaboratorUnavailable)
}

// IsInsufficientStock reports whether err is a stock shortfall on dispatch.
func IsInsufficientStock(err error) bool {
	return hasCode(err, ErrCodeInsufficientStock)
}

func hasCode(err error, code ErrorCode) bool {
	var fe *FloorError
	if errors.As(err, &fe) {
		return fe.Code == code
	}
	return false
}

// NewValidationError creates a FloorError for malformed input.
func NewValidationError(message, orderID string) *FloorError {
	return &FloorError{
		Code:    ErrCodeValidation,
		Message: message,
		OrderID: orderID,
	}
}

// NewProductValidationError creates a FloorError for malformed product
// input (missing SKU, negative stock).
func NewProductValidationError(message, sku string) *FloorError {
	return &FloorError{
		Code:    ErrCodeValidation,
		Message: message,
		SKU:     sku,
	}
}

// NewNotFoundError creates a FloorError for an unknown order id.
func NewNotFoundError(orderID string) *FloorError {
	return &FloorError{
		Code:    ErrCodeNotFound,
		Message: "order not found",
		OrderID: orderID,
	}
}

// NewCollaboratorError wraps a failed ledger call.
func NewCollaboratorError(message string, err error) *FloorError {
	return &FloorError{
		Code:    ErrCodeCollaboratorUnavailable,
		Message: message,
		Err:     err,
	}
}

// NewInsufficientStockError creates a FloorError for a dispatch that would
// overdraw a product's stock. The order stays PENDING.
func NewInsufficientStockError(orderID, sku string, have, want int) *FloorError {
	return &FloorError{
		Code:    ErrCodeInsufficientStock,
		Message: fmt.Sprintf("insufficient stock to dispatch (%d available, %d requested)", have, want),
		OrderID: orderID,
		SKU:     sku,
	}
}
