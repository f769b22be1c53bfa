package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/shipment-dossier/internal/common"
	"github.com/dtnitsch/shipment-dossier/pkg/artifact_manager"
	dbpkg "github.com/dtnitsch/shipment-dossier/pkg/db"
	"github.com/urfave/cli/v2"
)

func RunsAction(c *cli.Context) error {
	database, err := dbpkg.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	limit := c.Int("limit")
	runs, err := database.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	// Print table header
	fmt.Printf("%-6s %-20s %-10s %-8s %-8s %-8s %-9s %-30s\n",
		"ID", "Created", "Source", "Clients", "Merged", "Failed", "Status", "Output Dir")
	fmt.Println(strings.Repeat("-", 110))

	// Print each run
	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-10s %-8d %-8d %-8d %-9s %-30s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.ManifestSource,
			r.ManifestEntries,
			r.MergedClients,
			r.FailedClients,
			r.Status,
			r.OutputDir,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'sdm db run <id>' to see details\n")

	return nil
}

// RunAction shows details for a specific run
func RunAction(c *cli.Context) error {
	database, err := dbpkg.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	// Get run info
	run, err := database.GetRunByID(runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	// Get clients for this run
	clients, err := database.GetRunClients(runID)
	if err != nil {
		return fmt.Errorf("failed to get run clients: %w", err)
	}

	// Get alerts for this run
	alerts, err := database.GetRunAlerts(runID)
	if err != nil {
		return fmt.Errorf("failed to get run alerts: %w", err)
	}

	// Print run details
	fmt.Printf("Run %d\n", run.RunID)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Created:     %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	if run.JobID != "" {
		fmt.Printf("Job ID:      %s\n", run.JobID)
	}
	fmt.Printf("Input:       %s\n", run.InputDir)
	fmt.Printf("Output:      %s\n", run.OutputDir)
	fmt.Printf("Manifest:    %s (%d clients)\n", run.ManifestSource, run.ManifestEntries)
	fmt.Printf("Files:       %d processed (%d unmatched)\n", run.ProcessedFiles, run.UnmatchedDocuments)
	fmt.Printf("Clients:     %d merged, %d failed\n", run.MergedClients, run.FailedClients)
	if run.FilesOptimized > 0 {
		fmt.Printf("Optimized:   %d files, %.2f MB saved\n", run.FilesOptimized, run.TotalSavingsMB)
	}
	fmt.Printf("Status:      %s\n", run.Status)

	// Print clients
	fmt.Printf("\nClients (%d):\n", len(clients))
	fmt.Println(strings.Repeat("-", 60))
	for i, rc := range clients {
		name := rc.ClientName
		if name == "" {
			name = "(unknown)"
		}
		fmt.Printf("%2d. [%s] %s (%s)\n", i+1, rc.Status, name, rc.Reference)
		switch rc.Status {
		case dbpkg.ClientStatusFailed:
			fmt.Printf("    Error: %s\n", rc.ErrorMessage)
		case dbpkg.ClientStatusMerged:
			size := common.FormatMB(rc.FinalSizeBytes)
			if rc.OriginalSizeBytes > rc.FinalSizeBytes {
				size += fmt.Sprintf(" (was %s)", common.FormatMB(rc.OriginalSizeBytes))
			}
			fmt.Printf("    Pages: %d arrival, %d bill, %d customer | Size: %s\n",
				rc.ArrivalPages, rc.BillPages, rc.CustomerPages, size)
			fmt.Printf("    File: %s\n", rc.OutputFile)
		}
	}

	// Print alerts if available
	if len(alerts) > 0 {
		fmt.Printf("\nAlerts (%d):\n", len(alerts))
		fmt.Println(strings.Repeat("-", 60))
		for i, a := range alerts {
			fmt.Printf("%2d. %s page %d: %q\n", i+1, a.Reference, a.PageNumber, a.Keyword)
			if a.Context != "" {
				fmt.Printf("    ...%s...\n", a.Context)
			}
		}
	}

	fmt.Printf("\nTip: Use 'sdm db summary %d' to see the run summary YAML\n", runID)

	return nil
}

// SummaryAction retrieves and prints run artifact files
func SummaryAction(c *cli.Context) error {
	database, err := dbpkg.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	// Get run to find its output directory
	run, err := database.GetRunByID(runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	// Determine which file to read
	fileType := strings.ToLower(c.String("file"))
	var fileName string
	switch fileType {
	case "summary":
		fileName = artifact_manager.RunSummaryName
	case "compression":
		fileName = artifact_manager.CompressionReportName
	case "alerts":
		fileName = artifact_manager.TaxAlertReportName
	default:
		return fmt.Errorf("unknown file type: %s (use: summary, compression, or alerts)", fileType)
	}

	filePath := filepath.Join(run.OutputDir, fileName)

	// Read and print file
	data, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s\nRun output directory: %s", fileName, run.OutputDir)
		}
		return fmt.Errorf("failed to read file: %w", err)
	}

	// Print run reminder as YAML comment
	fmt.Printf("# Run: %d\n", runID)
	fmt.Print(string(data))

	return nil
}

// QueryAction queries runs with filters
func QueryAction(c *cli.Context) error {
	database, err := dbpkg.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	todayOnly := c.Bool("today")
	failedOnly := c.Bool("failed")
	clientPattern := c.String("client")

	runs, err := database.QueryRuns(todayOnly, failedOnly, clientPattern)
	if err != nil {
		return fmt.Errorf("failed to query runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found matching filters")
		if todayOnly {
			fmt.Println("  - Filter: today only")
		}
		if failedOnly {
			fmt.Println("  - Filter: with failed clients")
		}
		if clientPattern != "" {
			fmt.Printf("  - Filter: client pattern '%s'\n", clientPattern)
		}
		return nil
	}

	// Print table header
	fmt.Printf("%-6s %-20s %-10s %-8s %-8s %-8s %-9s %-30s\n",
		"ID", "Created", "Source", "Clients", "Merged", "Failed", "Status", "Output Dir")
	fmt.Println(strings.Repeat("-", 110))

	// Print each run
	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-10s %-8d %-8d %-8d %-9s %-30s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.ManifestSource,
			r.ManifestEntries,
			r.MergedClients,
			r.FailedClients,
			r.Status,
			r.OutputDir,
		)
	}

	fmt.Printf("\nFound: %d runs\n", len(runs))

	return nil
}

// InitAction creates the run ledger schema if it does not exist yet
func InitAction(c *cli.Context) error {
	database, err := dbpkg.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	fmt.Printf("Run ledger ready: %s\n", database.Path())
	return nil
}
