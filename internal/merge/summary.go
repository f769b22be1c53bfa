package merge

import (
	"fmt"
	"time"

	"github.com/dtnitsch/shipment-dossier/internal/common"
	"github.com/dtnitsch/shipment-dossier/models"
	"github.com/dtnitsch/shipment-dossier/pkg/db"
	"github.com/dtnitsch/shipment-dossier/pkg/storage"
	"gopkg.in/yaml.v3"
)

// ClientSummary is one manifest entry's outcome in the run summary.
type ClientSummary struct {
	Reference         string               `yaml:"reference"`
	Name              string               `yaml:"name,omitempty"`
	Status            string               `yaml:"status"` // merged, failed, no_documents
	OutputFile        string               `yaml:"output_file,omitempty"`
	Pages             *models.PageCountSet `yaml:"pages,omitempty"`
	OriginalSizeBytes int64                `yaml:"original_size_bytes,omitempty"`
	FinalSizeBytes    int64                `yaml:"final_size_bytes,omitempty"`
	Alerts            int                  `yaml:"alerts,omitempty"`
	Error             string               `yaml:"error,omitempty"`
}

// RunSummary is the machine-readable record written beside the merged
// dossiers after every run.
type RunSummary struct {
	JobID           string    `yaml:"job_id,omitempty"`
	Created         time.Time `yaml:"created"`
	InputFolder     string    `yaml:"input_folder"`
	OutputFolder    string    `yaml:"output_folder"`
	ManifestSource  string    `yaml:"manifest_source"`
	ManifestEntries int       `yaml:"manifest_entries"`
	ProcessedFiles  int       `yaml:"processed_files"`
	MergedClients   int       `yaml:"merged_clients"`
	FailedClients   int       `yaml:"failed_clients,omitempty"`

	Optimization *models.OptimizationStats  `yaml:"optimization,omitempty"`
	Clients      []ClientSummary            `yaml:"clients"`
	Unmatched    []models.UnmatchedDocument `yaml:"unmatched,omitempty"`
	Warnings     []string                   `yaml:"warnings,omitempty"`
}

func buildRunSummary(s *runState, now time.Time) *RunSummary {
	merged, failed, _ := s.tally()

	summary := &RunSummary{
		JobID:           s.config.JobID,
		Created:         now,
		InputFolder:     s.config.InputFolder,
		OutputFolder:    s.manager.OutputDir(),
		ManifestSource:  s.manifestSource,
		ManifestEntries: s.manifest.Len(),
		ProcessedFiles:  len(s.discovered),
		MergedClients:   merged,
		FailedClients:   failed,
		Unmatched:       s.attribution.Unmatched,
		Warnings:        s.attribution.Warnings,
	}
	if s.config.EnableOptimization {
		stats := s.tracker.Stats()
		summary.Optimization = &stats
	}

	for _, r := range s.results {
		client := ClientSummary{
			Reference:         r.Reference,
			Name:              r.FullName,
			Status:            db.ClientStatusMerged,
			OutputFile:        r.Filename,
			OriginalSizeBytes: r.OriginalSizeBytes,
			FinalSizeBytes:    r.FinalSizeBytes,
			Alerts:            len(r.Alerts),
			Error:             r.Error,
		}
		switch {
		case r.Failed:
			client.Status = db.ClientStatusFailed
		case r.Filename == "":
			client.Status = db.ClientStatusNoDocuments
		}
		if total := r.PageCounts.Total(); total > 0 {
			pages := r.PageCounts
			client.Pages = &pages
		}
		summary.Clients = append(summary.Clients, client)
	}

	return summary
}

func writeRunSummary(store *storage.Storage, summary *RunSummary, path string) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}
	return store.SaveFile(path, data)
}

// buildRunResult shapes the structured stdout result for --json-output.
func buildRunResult(s *runState) *models.RunResult {
	merged, _, _ := s.tally()

	result := &models.RunResult{
		Success:      true,
		Message:      fmt.Sprintf("Merged %d clients from %d documents", merged, len(s.discovered)),
		OutputFolder: s.manager.OutputDir(),
		Stats: &models.RunStats{
			ProcessedFiles: len(s.discovered),
			MergedClients:  merged,
		},
		TaxAlerts: s.alerts,
	}
	if s.config.EnableOptimization {
		stats := s.tracker.Stats()
		result.Stats.Optimization = &stats
	}
	return result
}

// printRunSummary renders the human view of a finished run to stdout.
func printRunSummary(s *runState, elapsed time.Duration) {
	merged, failed, noDocuments := s.tally()

	fmt.Printf("Merged %d/%d clients from %d documents in %.1fs\n",
		merged, s.manifest.Len(), len(s.discovered), elapsed.Seconds())
	fmt.Printf("Output: %s\n", s.manager.OutputDir())

	for _, r := range s.results {
		switch {
		case r.Failed:
			fmt.Printf("  FAILED  %s (%s): %s\n", r.FullName, r.Reference, r.Error)
		case r.Filename == "":
			fmt.Printf("  MISSING %s (%s): no documents found\n", r.FullName, r.Reference)
		default:
			line := fmt.Sprintf("  %s: %d pages, %s", r.Filename, r.PageCounts.Total(), common.FormatMB(r.FinalSizeBytes))
			if r.Optimization != nil && r.Optimization.Optimized {
				line += fmt.Sprintf(" (was %s)", common.FormatMB(r.OriginalSizeBytes))
			}
			if len(r.Alerts) > 0 {
				line += fmt.Sprintf(", %d alerts", len(r.Alerts))
			}
			fmt.Println(line)
		}
	}

	if len(s.attribution.Unmatched) > 0 {
		fmt.Printf("\n%d document(s) could not be attributed:\n", len(s.attribution.Unmatched))
		for _, u := range s.attribution.Unmatched {
			fmt.Printf("  - %s (%s)\n", u.File, u.Reason)
		}
	}

	if s.config.EnableOptimization {
		stats := s.tracker.Stats()
		if stats.FilesOptimized > 0 {
			fmt.Printf("\n%d file(s) optimized, saved %.2f MB\n", stats.FilesOptimized, stats.TotalSavingsMB)
		}
	}

	if len(s.alerts) > 0 {
		total := 0
		for _, group := range s.alerts {
			total += len(group.Alerts)
		}
		fmt.Printf("\n%d tax alert(s) flagged, see %s\n", total, s.manager.TaxAlertReportPath())
	}

	if failed > 0 || noDocuments > 0 {
		fmt.Printf("\nCommands:\n")
		fmt.Printf("  sdm db runs             # List past runs\n")
		fmt.Printf("  sdm db query --failed   # Find runs with failed clients\n")
	}
}
