package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditRotation_CyclesInOrder(t *testing.T) {
	a := NewAuditRotation([]string{"SKU001", "SKU002", "SKU003"})

	got := a.NextN(5)
	assert.Equal(t, []string{"SKU001", "SKU002", "SKU003", "SKU001", "SKU002"}, got)
}

func TestAuditRotation_NextAdvances(t *testing.T) {
	a := NewAuditRotation([]string{"A", "B"})

	first, ok := a.Next()
	require.True(t, ok)
	second, ok := a.Next()
	require.True(t, ok)
	third, ok := a.Next()
	require.True(t, ok)

	assert.Equal(t, "A", first)
	assert.Equal(t, "B", second)
	assert.Equal(t, "A", third)
}

func TestAuditRotation_Empty(t *testing.T) {
	a := NewAuditRotation(nil)

	_, ok := a.Next()
	assert.False(t, ok)
	assert.Nil(t, a.NextN(3))
	assert.Zero(t, a.Len())
}
