package desk

import (
	"context"
	"log/slog"
	"math"

	"github.com/warefloor/pirs/internal/floor"
	"github.com/warefloor/pirs/internal/inventory"
)

// QueueLine is one priority-queue row annotated with the current stock
// picture for its SKU.
type QueueLine struct {
	floor.ScoredOrder

	CurrentStock   int
	StockAvailable bool
}

// Dashboard is the shipment dashboard snapshot: the reconciled priority
// queue, the pick list derived from it, and the blocked orders.
type Dashboard struct {
	Queue      []QueueLine
	PickList   []floor.PickItem
	Blocked    []floor.BlockedEntry
	QueueCount int
}

// Dashboard reconciles the queue against the ledger and returns the
// resulting snapshot. A ledger outage degrades the stock annotations
// rather than failing the read: rows then report zero stock and the
// last reconciled queue is shown as-is.
func (d *Desk) Dashboard(ctx context.Context) Dashboard {
	d.reconciler.Reconcile(ctx)

	products, err := d.store.ProductLookup(ctx)
	if err != nil {
		slog.Warn("dashboard without stock annotations", "error", err)
		products = nil
	}

	ordered := d.sched.PeekOrdered()
	queue := make([]QueueLine, 0, len(ordered))
	for _, so := range ordered {
		line := QueueLine{ScoredOrder: so}
		if p, ok := products[so.SKU]; ok {
			line.CurrentStock = p.Stock
			line.StockAvailable = p.Stock >= so.Quantity
		}
		queue = append(queue, line)
	}

	return Dashboard{
		Queue:      queue,
		PickList:   d.sched.PickList(),
		Blocked:    d.blocked.List(),
		QueueCount: len(queue),
	}
}

// StabilityReport classifies every cataloged SKU by forecast days to
// stockout and returns the entries ordered by urgency.
func (d *Desk) StabilityReport(ctx context.Context) ([]inventory.StabilityEntry, error) {
	products, err := d.store.ProductLookup(ctx)
	if err != nil {
		return nil, floor.NewCollaboratorError("stability: product snapshot", err)
	}
	summaries, err := d.store.BurnRateSummaries(ctx, d.cfg.BurnWindowDays)
	if err != nil {
		return nil, floor.NewCollaboratorError("stability: burn-rate summaries", err)
	}

	classifier := inventory.NewClassifier(d.cfg)
	for sku, product := range products {
		fc, err := d.forecaster.Estimate(sku, product.Stock, summaries[sku])
		if err != nil {
			slog.Warn("skipping SKU in stability report", "sku", sku, "error", err)
			continue
		}
		classifier.Insert(int(math.Floor(fc.DaysRemaining)), sku, product)
	}
	return classifier.StabilityReport(), nil
}

// ReorderSuggestion pairs a SKU with its urgency and current stock.
type ReorderSuggestion struct {
	SKU           string
	Name          string
	Stock         int
	DaysRemaining float64
}

// ReorderSuggestions returns the k SKUs closest to stockout, most
// urgent first. SKUs with no recorded sales carry the sentinel horizon
// and therefore sort last.
func (d *Desk) ReorderSuggestions(ctx context.Context, k int) ([]ReorderSuggestion, error) {
	products, err := d.store.ProductLookup(ctx)
	if err != nil {
		return nil, floor.NewCollaboratorError("reorder: product snapshot", err)
	}
	summaries, err := d.store.BurnRateSummaries(ctx, d.cfg.BurnWindowDays)
	if err != nil {
		return nil, floor.NewCollaboratorError("reorder: burn-rate summaries", err)
	}

	records := make([]inventory.UrgencyRecord, 0, len(products))
	for sku, product := range products {
		fc, err := d.forecaster.Estimate(sku, product.Stock, summaries[sku])
		if err != nil {
			slog.Warn("skipping SKU in reorder ranking", "sku", sku, "error", err)
			continue
		}
		records = append(records, inventory.UrgencyRecord{
			SKU:           sku,
			DaysRemaining: fc.DaysRemaining,
		})
	}

	ranker := inventory.BuildRanker(records)
	top := ranker.TopK(k)

	out := make([]ReorderSuggestion, 0, len(top))
	for _, rec := range top {
		p := products[rec.SKU]
		out = append(out, ReorderSuggestion{
			SKU:           rec.SKU,
			Name:          p.Name,
			Stock:         p.Stock,
			DaysRemaining: rec.DaysRemaining,
		})
	}
	return out, nil
}

// Summary is a one-line health rollup for the catalog.
type Summary struct {
	TotalSKUs int
	Critical  int
	Watch     int
	Stable    int
}

// SummarizeBands counts report entries per stability band.
func SummarizeBands(entries []inventory.StabilityEntry) Summary {
	var s Summary
	s.TotalSKUs = len(entries)
	for _, e := range entries {
		switch e.Band {
		case inventory.BandCritical:
			s.Critical++
		case inventory.BandWatch:
			s.Watch++
		default:
			s.Stable++
		}
	}
	return s
}

// CatalogSummary counts cataloged SKUs per stability band.
func (d *Desk) CatalogSummary(ctx context.Context) (Summary, error) {
	entries, err := d.StabilityReport(ctx)
	if err != nil {
		return Summary{}, err
	}
	return SummarizeBands(entries), nil
}

// AuditNext advances the cycle-count rotation and returns the next n
// SKUs to audit. The rotation persists across calls so successive
// audits walk the whole catalog before repeating.
func (d *Desk) AuditNext(n int) []string {
	return d.audit.NextN(n)
}
