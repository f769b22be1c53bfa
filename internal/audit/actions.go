package audit

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dtnitsch/shipment-dossier/internal/common"
	"github.com/dtnitsch/shipment-dossier/models"
	"github.com/dtnitsch/shipment-dossier/pkg/artifact_manager"
	"github.com/dtnitsch/shipment-dossier/pkg/attribute"
	auditpkg "github.com/dtnitsch/shipment-dossier/pkg/audit"
	"github.com/dtnitsch/shipment-dossier/pkg/pdfio"
	"github.com/dtnitsch/shipment-dossier/pkg/storage"
	"github.com/urfave/cli/v2"
)

// RescanAction re-runs the keyword audit over previously merged dossiers
// and rewrites the tax alert report in the output folder.
func RescanAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	outputFolder := c.String("output-folder")
	if outputFolder == "" {
		return fmt.Errorf("no output folder provided via --output-folder flag")
	}
	info, err := os.Stat(outputFolder)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("output folder not found: %s", outputFolder)
	}

	rules, err := models.LoadRules(c.String("rules"))
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}
	scanner := auditpkg.NewScanner(rules.AuditKeywords)

	discovered, err := attribute.DiscoverPDFs(outputFolder, logger)
	if err != nil {
		return fmt.Errorf("failed to scan output folder: %w", err)
	}

	// Only merged dossiers carry the Name_Reference filename shape.
	// Anything else in the folder is skipped.
	var groups []models.ClientAlerts
	scanned := 0
	for _, path := range discovered {
		name, reference, ok := common.ParseMergedFilename(filepath.Base(path))
		if !ok {
			logger.Debug("skipping file without dossier name", "file", filepath.Base(path))
			continue
		}

		doc, err := pdfio.OpenDocument(path)
		if err != nil {
			logger.Warn("failed to open dossier for audit", "file", filepath.Base(path), "error", err)
			continue
		}
		alerts := scanner.Scan(doc)
		if err := doc.Close(); err != nil {
			logger.Warn("failed to close dossier", "file", filepath.Base(path), "error", err)
		}

		scanned++
		if len(alerts) > 0 {
			groups = append(groups, models.ClientAlerts{
				ClientName: name,
				ClientRef:  reference,
				Alerts:     alerts,
			})
		}
	}

	if scanned == 0 {
		return fmt.Errorf("no merged dossiers found in %s", outputFolder)
	}

	// Rewrite the report so it reflects the current folder contents
	manager, err := artifact_manager.NewManager(outputFolder)
	if err != nil {
		return fmt.Errorf("failed to initialize output folder: %w", err)
	}
	store := &storage.Storage{}
	report := auditpkg.BuildTaxAlertReport(c.String("job-id"), groups, time.Now())
	if err := store.SaveFile(manager.TaxAlertReportPath(), []byte(report)); err != nil {
		return fmt.Errorf("failed to write tax alert report: %w", err)
	}

	if c.Bool("json-output") {
		jsonData, err := json.MarshalIndent(groups, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal alerts: %w", err)
		}
		fmt.Println(string(jsonData))
		return nil
	}

	fmt.Printf("Scanned %d dossier file(s) in %s\n", scanned, outputFolder)
	if len(groups) == 0 {
		fmt.Println("No tax alerts found")
	} else {
		total := 0
		for _, g := range groups {
			total += len(g.Alerts)
		}
		fmt.Printf("%d alert(s) across %d client(s)\n\n", total, len(groups))
		for _, g := range groups {
			fmt.Printf("  %s (%s): %d alert(s)\n", g.ClientName, g.ClientRef, len(g.Alerts))
		}
		totals := auditpkg.KeywordTotals(groups)
		top := auditpkg.TopKeywords(totals, 5)
		fmt.Printf("\nTop keywords: %s\n", strings.Join(top, ", "))
	}
	fmt.Printf("Report: %s\n", manager.TaxAlertReportPath())

	return nil
}
