package audit

import (
	"sort"

	"github.com/dtnitsch/shipment-dossier/models"
)

// CompressionEntry is one client's optimizer outcome for the report.
type CompressionEntry struct {
	ClientName string
	Reference  string
	Filename   string
	Outcome    models.OptimizeOutcome
}

// CompressionTracker accumulates optimizer outcomes across one run. It
// is per-run state: created at run start, discarded with the run.
type CompressionTracker struct {
	entries         []CompressionEntry
	totalOriginalMB float64
	totalFinalMB    float64
	optimized       int
}

func NewCompressionTracker() *CompressionTracker {
	return &CompressionTracker{}
}

// Record adds one outcome. Skipped files appear in the report but only
// files the optimizer actually shrank count toward the run totals.
func (t *CompressionTracker) Record(entry CompressionEntry) {
	t.entries = append(t.entries, entry)
	if !entry.Outcome.Optimized {
		return
	}
	t.optimized++
	t.totalOriginalMB += entry.Outcome.OriginalSizeMB
	t.totalFinalMB += entry.Outcome.FinalSizeMB
}

// Stats folds the accumulated outcomes into the run-level summary. The
// average ratio weighs by size: total original over total final.
func (t *CompressionTracker) Stats() models.OptimizationStats {
	stats := models.OptimizationStats{FilesOptimized: t.optimized}
	for _, e := range t.entries {
		if e.Outcome.Optimized {
			stats.TotalSavingsMB += e.Outcome.SavingsMB
		}
	}
	if t.totalFinalMB > 0 {
		stats.AverageCompressionRatio = t.totalOriginalMB / t.totalFinalMB
	}
	return stats
}

// Entries returns the recorded outcomes sorted by savings, largest
// first, for the report.
func (t *CompressionTracker) Entries() []CompressionEntry {
	out := make([]CompressionEntry, len(t.entries))
	copy(out, t.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Outcome.SavingsMB > out[j].Outcome.SavingsMB
	})
	return out
}
