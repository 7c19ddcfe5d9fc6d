package inventory

import "github.com/warefloor/pirs/internal/config"

// Band is a stability classification bucket.
type Band string

const (
	// BandCritical: fewer than the critical threshold of days remaining.
	BandCritical Band = "critical"
	// BandWatch: between the critical and stable thresholds.
	BandWatch Band = "watch"
	// BandStable: at or above the stable threshold.
	BandStable Band = "stable"
)

// StabilityEntry is one line of the stability report.
type StabilityEntry struct {
	SKU           string
	DaysRemaining int
	Band          Band
	Product       Product
}

// Classifier is an ordered search tree keyed by integer days remaining.
// Duplicate keys are permitted since many SKUs share the same estimate.
//
// No rebalancing is performed; forecast keys are roughly uniformly
// distributed, so insertion order does not degrade the tree in practice.
// The classifier is rebuilt per reporting cycle like the ranker.
type Classifier struct {
	root         *stabilityNode
	size         int
	criticalDays int
	stableDays   int
}

type stabilityNode struct {
	key     int
	sku     string
	product Product
	left    *stabilityNode
	right   *stabilityNode
}

// NewClassifier creates an empty classifier with the configured band
// boundaries.
func NewClassifier(cfg config.Config) *Classifier {
	return &Classifier{
		criticalDays: cfg.CriticalDays,
		stableDays:   cfg.StableDays,
	}
}

// Insert adds a (days remaining, SKU) pair with its product snapshot.
// O(log n) average for the expected key distribution. Duplicate keys go
// to the right subtree, preserving insertion order among equals in the
// in-order traversal.
func (c *Classifier) Insert(daysRemaining int, sku string, p Product) {
	node := &stabilityNode{key: daysRemaining, sku: sku, product: p}
	c.size++

	if c.root == nil {
		c.root = node
		return
	}

	cur := c.root
	for {
		if node.key < cur.key {
			if cur.left == nil {
				cur.left = node
				return
			}
			cur = cur.left
		} else {
			if cur.right == nil {
				cur.right = node
				return
			}
			cur = cur.right
		}
	}
}

// Band classifies a days-remaining value.
func (c *Classifier) Band(daysRemaining int) Band {
	switch {
	case daysRemaining < c.criticalDays:
		return BandCritical
	case daysRemaining >= c.stableDays:
		return BandStable
	default:
		return BandWatch
	}
}

// StabilityReport walks the tree in order and returns every inserted
// entry exactly once, sorted ascending by days remaining and tagged with
// its band.
func (c *Classifier) StabilityReport() []StabilityEntry {
	report := make([]StabilityEntry, 0, c.size)

	// Iterative in-order traversal; the tree is unbalanced by design and
	// recursion depth would track tree height.
	var stack []*stabilityNode
	cur := c.root
	for cur != nil || len(stack) > 0 {
		for cur != nil {
			stack = append(stack, cur)
			cur = cur.left
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		report = append(report, StabilityEntry{
			SKU:           cur.sku,
			DaysRemaining: cur.key,
			Band:          c.Band(cur.key),
			Product:       cur.product,
		})
		cur = cur.right
	}

	return report
}

// Len returns the number of inserted entries.
func (c *Classifier) Len() int {
	return c.size
}
