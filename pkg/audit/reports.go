package audit

import (
	"fmt"
	"strings"
	"time"

	"github.com/dtnitsch/shipment-dossier/models"
)

const reportRule = 60

// BuildCompressionReport renders the plain-text compression summary.
// Entries arrive pre-sorted from the tracker, largest savings first.
func BuildCompressionReport(jobID string, entries []CompressionEntry, stats models.OptimizationStats, now time.Time) string {
	var sb strings.Builder
	sb.WriteString("Compression Report\n")
	sb.WriteString(strings.Repeat("=", reportRule) + "\n")
	if jobID != "" {
		sb.WriteString(fmt.Sprintf("Job:       %s\n", jobID))
	}
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format("2006-01-02 15:04:05")))

	if len(entries) == 0 {
		sb.WriteString("No files were optimized in this run.\n")
		return sb.String()
	}

	for _, e := range entries {
		o := e.Outcome
		sb.WriteString(fmt.Sprintf("%s (%s)\n", e.ClientName, e.Reference))
		if o.Optimized {
			sb.WriteString(fmt.Sprintf("  %s: %.2f MB -> %.2f MB (saved %.2f MB, ratio %.2f)\n",
				e.Filename, o.OriginalSizeMB, o.FinalSizeMB, o.SavingsMB, o.CompressionRatio))
		} else {
			reason := o.Reason
			if reason == "" {
				reason = "not optimized"
			}
			sb.WriteString(fmt.Sprintf("  %s: %.2f MB (%s)\n", e.Filename, o.OriginalSizeMB, reason))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat("-", reportRule) + "\n")
	sb.WriteString(fmt.Sprintf("Files optimized: %d\n", stats.FilesOptimized))
	sb.WriteString(fmt.Sprintf("Total savings:   %.2f MB\n", stats.TotalSavingsMB))
	sb.WriteString(fmt.Sprintf("Average ratio:   %.2f\n", stats.AverageCompressionRatio))
	return sb.String()
}

// BuildTaxAlertReport renders the keyword-alert summary grouped by
// client, with a most-flagged footer when anything was found.
func BuildTaxAlertReport(jobID string, groups []models.ClientAlerts, now time.Time) string {
	var sb strings.Builder
	sb.WriteString("Tax Alert Report\n")
	sb.WriteString(strings.Repeat("=", reportRule) + "\n")
	if jobID != "" {
		sb.WriteString(fmt.Sprintf("Job:       %s\n", jobID))
	}
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format("2006-01-02 15:04:05")))

	total := 0
	for _, g := range groups {
		total += len(g.Alerts)
	}
	if total == 0 {
		sb.WriteString("No flagged keywords found.\n")
		return sb.String()
	}

	for _, g := range groups {
		if len(g.Alerts) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s (%s)\n", g.ClientName, g.ClientRef))
		for _, a := range g.Alerts {
			sb.WriteString(fmt.Sprintf("  page %d, %q: ...%s...\n", a.PageNumber, a.Keyword, a.ContextSnippet))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat("-", reportRule) + "\n")
	sb.WriteString(fmt.Sprintf("Total alerts: %d\n", total))
	if top := TopKeywords(KeywordTotals(groups), 5); len(top) > 0 {
		sb.WriteString("Most flagged: " + strings.Join(top, ", ") + "\n")
	}
	return sb.String()
}
