package inventory

import "container/ring"

// AuditRotation cycles through SKUs for cycle counting. Each call to Next
// yields the next SKU in a fixed circular order, wrapping around
// indefinitely, so every SKU gets counted at the same cadence.
type AuditRotation struct {
	cur  *ring.Ring
	size int
}

// NewAuditRotation builds a rotation over the given SKUs in order.
func NewAuditRotation(skus []string) *AuditRotation {
	if len(skus) == 0 {
		return &AuditRotation{}
	}

	r := ring.New(len(skus))
	for _, sku := range skus {
		r.Value = sku
		r = r.Next()
	}
	return &AuditRotation{cur: r, size: len(skus)}
}

// Next returns the next SKU to audit and advances the rotation.
// The second result is false when the rotation is empty.
func (a *AuditRotation) Next() (string, bool) {
	if a.cur == nil {
		return "", false
	}
	sku := a.cur.Value.(string)
	a.cur = a.cur.Next()
	return sku, true
}

// NextN returns the next n SKUs to audit, wrapping around as needed.
func (a *AuditRotation) NextN(n int) []string {
	if a.cur == nil || n <= 0 {
		return nil
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		sku, _ := a.Next()
		out = append(out, sku)
	}
	return out
}

// Len returns the number of SKUs in the rotation.
func (a *AuditRotation) Len() int {
	return a.size
}
