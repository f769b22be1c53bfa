package manifest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/shipment-dossier/models"
	"github.com/dtnitsch/shipment-dossier/pkg/artifact_manager"
	"github.com/dtnitsch/shipment-dossier/pkg/attribute"
	"github.com/dtnitsch/shipment-dossier/pkg/classify"
	manifestpkg "github.com/dtnitsch/shipment-dossier/pkg/manifest"
	"github.com/urfave/cli/v2"
)

// BuildAction assembles the client manifest from the best available source
// and saves it as the CSV mapping, without merging anything.
func BuildAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	inputFolder := c.String("input-folder")
	if inputFolder == "" {
		return fmt.Errorf("no input folder provided via --input-folder flag")
	}
	info, err := os.Stat(inputFolder)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("input folder not found: %s", inputFolder)
	}

	rules, err := models.LoadRules(c.String("rules"))
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	// Sources in priority order: EDI data, then a reference document from
	// the input folder, then a previously saved mapping.
	var sources []manifestpkg.Source
	if ediFile := c.String("edi-file"); ediFile != "" {
		sources = append(sources, &manifestpkg.EDISource{Path: ediFile})
	}

	discovered, err := attribute.DiscoverPDFs(inputFolder, logger)
	if err != nil {
		return fmt.Errorf("failed to scan input folder: %w", err)
	}
	classifier := classify.NewClassifier(rules)
	for _, path := range discovered {
		if docType, ok := classifier.Classify(filepath.Base(path)); ok && docType == models.DocTypeArrival {
			sources = append(sources, &manifestpkg.ReferenceDocSource{Path: path})
			break
		}
	}

	mappingPath := c.String("manifest-file")
	if mappingPath == "" {
		mappingPath = artifact_manager.DefaultMappingPath(inputFolder)
	}
	sources = append(sources, &manifestpkg.MappingSource{Path: mappingPath})

	m, sourceName, err := manifestpkg.NewLoader(logger, sources...).Load()
	if err != nil {
		return fmt.Errorf("no client manifest could be built: %w", err)
	}

	outPath := c.String("output")
	if outPath == "" {
		outPath = mappingPath
	}
	if err := manifestpkg.Save(m, outPath); err != nil {
		return fmt.Errorf("failed to save manifest: %w", err)
	}

	// Print the manifest table
	fmt.Printf("Manifest built from %s: %d clients\n\n", sourceName, m.Len())
	fmt.Printf("%-16s %s\n", "Reference", "Client")
	fmt.Println(strings.Repeat("-", 60))
	for _, entry := range m.Entries() {
		fmt.Printf("%-16s %s\n", entry.Reference, entry.FullName)
	}
	fmt.Printf("\nSaved: %s\n", outPath)

	return nil
}
