package floor

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloorError_Classifiers(t *testing.T) {
	assert.True(t, IsValidation(NewValidationError("bad input", "ORD-1")))
	assert.True(t, IsNotFound(NewNotFoundError("ORD-1")))
	assert.True(t, IsCollaboratorUnavailable(NewCollaboratorError("ledger query failed", errors.New("locked"))))
	assert.True(t, IsInsufficientStock(NewInsufficientStockError("ORD-1", "SKU001", 2, 5)))

	assert.False(t, IsNotFound(NewValidationError("bad input", "ORD-1")))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestFloorError_ClassifiersSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("dispatch ORD-1: %w", NewNotFoundError("ORD-1"))
	assert.True(t, IsNotFound(wrapped))
}

func TestFloorError_Messages(t *testing.T) {
	err := NewInsufficientStockError("ORD-1", "SKU001", 2, 5)
	assert.Contains(t, err.Error(), "INSUFFICIENT_STOCK")
	assert.Contains(t, err.Error(), "order=ORD-1")
	assert.Contains(t, err.Error(), "sku=SKU001")
	assert.Contains(t, err.Error(), "2 available, 5 requested")
}

func TestFloorError_UnwrapExposesCause(t *testing.T) {
	cause := errors.New("database is locked")
	err := NewCollaboratorError("shipped-subset query failed", cause)
	assert.ErrorIs(t, err, cause)
}
