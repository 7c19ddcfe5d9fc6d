package inventory

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warefloor/pirs/internal/config"
)

func TestClassifier_Bands(t *testing.T) {
	c := NewClassifier(config.Default())

	assert.Equal(t, BandCritical, c.Band(0))
	assert.Equal(t, BandCritical, c.Band(config.DefaultCriticalDays-1))
	assert.Equal(t, BandWatch, c.Band(config.DefaultCriticalDays))
	assert.Equal(t, BandWatch, c.Band(config.DefaultStableDays-1))
	assert.Equal(t, BandStable, c.Band(config.DefaultStableDays))
	assert.Equal(t, BandStable, c.Band(config.DefaultSentinelDays))
}

func TestClassifier_ReportSortedAscending(t *testing.T) {
	c := NewClassifier(config.Default())

	c.Insert(20, "SKU-C", Product{SKU: "SKU-C"})
	c.Insert(3, "SKU-A", Product{SKU: "SKU-A"})
	c.Insert(10, "SKU-B", Product{SKU: "SKU-B"})

	report := c.StabilityReport()
	require.Len(t, report, 3)

	assert.Equal(t, "SKU-A", report[0].SKU)
	assert.Equal(t, BandCritical, report[0].Band)
	assert.Equal(t, "SKU-B", report[1].SKU)
	assert.Equal(t, BandWatch, report[1].Band)
	assert.Equal(t, "SKU-C", report[2].SKU)
	assert.Equal(t, BandStable, report[2].Band)
}

func TestClassifier_DuplicateKeysAllAppear(t *testing.T) {
	c := NewClassifier(config.Default())

	c.Insert(5, "SKU-A", Product{})
	c.Insert(5, "SKU-B", Product{})
	c.Insert(5, "SKU-C", Product{})

	report := c.StabilityReport()
	require.Len(t, report, 3)

	skus := []string{report[0].SKU, report[1].SKU, report[2].SKU}
	assert.ElementsMatch(t, []string{"SKU-A", "SKU-B", "SKU-C"}, skus)
}

func TestClassifier_CompletenessAndOrdering(t *testing.T) {
	c := NewClassifier(config.Default())
	rng := rand.New(rand.NewSource(42))

	var inserted []string
	for i := 0; i < 500; i++ {
		sku := fmt.Sprintf("SKU-%03d", i)
		c.Insert(rng.Intn(60), sku, Product{SKU: sku})
		inserted = append(inserted, sku)
	}

	report := c.StabilityReport()
	require.Len(t, report, 500)

	// Every inserted SKU appears exactly once.
	got := make([]string, len(report))
	for i, e := range report {
		got[i] = e.SKU
	}
	assert.ElementsMatch(t, inserted, got)

	days := make([]int, len(report))
	for i, e := range report {
		days[i] = e.DaysRemaining
	}
	assert.True(t, sort.IntsAreSorted(days), "report must be ascending in days remaining")
}

func TestClassifier_Empty(t *testing.T) {
	c := NewClassifier(config.Default())
	assert.Empty(t, c.StabilityReport())
	assert.Zero(t, c.Len())
}
