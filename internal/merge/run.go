package merge

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/dtnitsch/shipment-dossier/models"
	"github.com/dtnitsch/shipment-dossier/pkg/artifact_manager"
	"github.com/dtnitsch/shipment-dossier/pkg/attribute"
	"github.com/dtnitsch/shipment-dossier/pkg/audit"
	"github.com/dtnitsch/shipment-dossier/pkg/classify"
	"github.com/dtnitsch/shipment-dossier/pkg/db"
	"github.com/dtnitsch/shipment-dossier/pkg/manifest"
	pdfmerge "github.com/dtnitsch/shipment-dossier/pkg/merge"
	"github.com/dtnitsch/shipment-dossier/pkg/optimize"
	"github.com/dtnitsch/shipment-dossier/pkg/pdfio"
	"github.com/dtnitsch/shipment-dossier/pkg/refmatch"
	"github.com/dtnitsch/shipment-dossier/pkg/storage"
)

// runState collects everything one merge invocation produces. A fresh
// state is built per run, nothing is shared between invocations.
type runState struct {
	config  *models.RunConfig
	rules   models.Rules
	logger  *slog.Logger
	manager *artifact_manager.Manager
	store   *storage.Storage

	manifest       *models.Manifest
	manifestSource string

	discovered  []string
	attribution *attribute.Result

	results []models.MergeResult  // one per manifest entry, in manifest order
	alerts  []models.ClientAlerts // only clients with keyword hits
	tracker *audit.CompressionTracker
}

// run executes the merge pipeline. The returned error is reserved for
// unrecoverable preconditions; per-file and per-client failures are
// absorbed into the state instead.
func run(logger *slog.Logger, config *models.RunConfig, rules models.Rules, manager *artifact_manager.Manager, database *db.DB) (*runState, error) {
	state := &runState{
		config:  config,
		rules:   rules,
		logger:  logger,
		manager: manager,
		store:   &storage.Storage{},
		tracker: audit.NewCompressionTracker(),
	}

	files, err := attribute.DiscoverPDFs(config.InputFolder, logger)
	if err != nil {
		return nil, err
	}
	state.discovered = files
	logger.Info("discovered input documents", "count", len(files), "folder", config.InputFolder)

	if err := state.loadManifest(); err != nil {
		return nil, err
	}

	// Source documents stay open from attribution until every merge is
	// done, so page extraction and page copying read the same handles.
	arena := pdfio.NewArena()
	defer func() {
		if err := arena.ReleaseAll(); err != nil {
			logger.Warn("failed to close source documents", "error", err)
		}
	}()

	state.attributeDocuments(arena)
	state.mergeClients()

	if err := arena.ReleaseAll(); err != nil {
		logger.Warn("failed to close source documents", "error", err)
	}

	state.auditAndOptimize()
	state.writeReports()
	state.recordRun(database)

	return state, nil
}

// loadManifest builds the client manifest from the first source that
// yields entries: EDI file, then a discovered arrival notice, then the
// saved mapping file. The winning manifest is saved back as the mapping
// file for later runs.
func (s *runState) loadManifest() error {
	classifier := classify.NewClassifier(s.rules)

	var sources []manifest.Source
	if s.config.EDIFile != "" {
		sources = append(sources, &manifest.EDISource{Path: s.config.EDIFile})
	}
	if path := s.findReferenceDocument(classifier); path != "" {
		sources = append(sources, &manifest.ReferenceDocSource{Path: path})
	}
	mappingPath := s.config.ManifestFile
	if mappingPath == "" {
		mappingPath = artifact_manager.DefaultMappingPath(s.config.InputFolder)
	}
	sources = append(sources, &manifest.MappingSource{Path: mappingPath})

	loader := manifest.NewLoader(s.logger, sources...)
	m, sourceName, err := loader.Load()
	if err != nil {
		return fmt.Errorf("no client manifest could be built: %w", err)
	}
	s.manifest = m
	s.manifestSource = sourceName
	s.logger.Info("client manifest loaded", "source", sourceName, "entries", m.Len())

	if err := manifest.Save(m, mappingPath); err != nil {
		s.logger.Warn("failed to save manifest mapping", "path", mappingPath, "error", err)
	}

	return nil
}

// findReferenceDocument returns the first discovered file whose name
// classifies as an arrival notice, the document worth scanning for
// reference codes and client names.
func (s *runState) findReferenceDocument(classifier *classify.Classifier) string {
	for _, path := range s.discovered {
		if t, ok := classifier.Classify(filepath.Base(path)); ok && t == models.DocTypeArrival {
			return path
		}
	}
	return ""
}

func (s *runState) attributeDocuments(arena *pdfio.Arena) {
	classifier := classify.NewClassifier(s.rules)
	matcher := refmatch.NewMatcher(s.manifest)
	open := func(path string) (attribute.TextSource, error) {
		return arena.Acquire(path)
	}

	attributor := attribute.New(matcher, classifier, open, s.logger)
	s.attribution = attributor.Run(s.discovered)
	s.logger.Info("attribution finished",
		"clients", len(s.attribution.Bundles),
		"unmatched", len(s.attribution.Unmatched),
		"open_documents", arena.Len())
}

// mergeClients assembles one output file per manifest entry that has
// attributed pages. Failures are recorded and the loop moves on.
func (s *runState) mergeClients() {
	merger := pdfmerge.NewMerger()

	for _, entry := range s.manifest.Entries() {
		bundle, ok := s.attribution.Bundles[entry.Reference]
		if !ok || len(bundle.Pages) == 0 {
			s.logger.Warn("no documents found for client", "reference", entry.Reference, "name", entry.FullName)
			s.results = append(s.results, models.MergeResult{
				Reference: entry.Reference,
				FullName:  entry.FullName,
			})
			continue
		}

		filename := artifact_manager.MergedFilename(entry.FullName, entry.Reference)
		result := models.MergeResult{
			Reference:  entry.Reference,
			FullName:   entry.FullName,
			Filename:   filename,
			PageCounts: bundle.PageCounts(),
		}

		outPath := s.manager.MergedPath(filename)
		if err := merger.Merge(bundle, outPath); err != nil {
			s.logger.Error("failed to merge client dossier", "reference", entry.Reference, "error", err)
			result.Failed = true
			result.Error = err.Error()
			s.results = append(s.results, result)
			continue
		}

		if stats, err := s.store.GetFileStats(outPath); err == nil {
			result.OriginalSizeBytes = stats.SizeBytes
			result.FinalSizeBytes = stats.SizeBytes
		}

		s.logger.Info("merged client dossier",
			"reference", entry.Reference,
			"file", filename,
			"pages", result.PageCounts.Total())
		s.results = append(s.results, result)
	}
}

// auditAndOptimize reopens each merged file, scans it for flagged
// keywords, and shrinks it in place when optimization is enabled.
func (s *runState) auditAndOptimize() {
	scanner := audit.NewScanner(s.rules.AuditKeywords)

	var optimizer optimize.Optimizer
	if s.config.EnableOptimization {
		optimizer = optimize.NewPDFCPUOptimizer(optimize.Options{
			TargetSizeMB: s.config.TargetSizeMB,
			Quality:      s.config.Quality,
		})
	}

	for i := range s.results {
		result := &s.results[i]
		if result.Failed || result.Filename == "" {
			continue
		}
		outPath := s.manager.MergedPath(result.Filename)

		doc, err := pdfio.OpenDocument(outPath)
		if err != nil {
			s.logger.Warn("failed to reopen merged file for keyword scan", "file", result.Filename, "error", err)
		} else {
			result.Alerts = scanner.Scan(doc)
			if closeErr := doc.Close(); closeErr != nil {
				s.logger.Warn("failed to close merged file", "file", result.Filename, "error", closeErr)
			}
			if len(result.Alerts) > 0 {
				s.alerts = append(s.alerts, models.ClientAlerts{
					ClientName: result.FullName,
					ClientRef:  result.Reference,
					Alerts:     result.Alerts,
				})
			}
		}

		if optimizer == nil {
			continue
		}
		outcome, err := optimizer.Optimize(outPath)
		if err != nil {
			s.logger.Warn("optimization failed, keeping original", "file", result.Filename, "error", err)
			outcome.Reason = "optimization failed"
		}
		result.Optimization = &outcome
		s.tracker.Record(audit.CompressionEntry{
			ClientName: result.FullName,
			Reference:  result.Reference,
			Filename:   result.Filename,
			Outcome:    outcome,
		})
		if stats, statErr := s.store.GetFileStats(outPath); statErr == nil {
			result.FinalSizeBytes = stats.SizeBytes
		}
	}
}

// writeReports renders the plain-text reports and the YAML run summary
// into the output folder. Report failures never fail the run.
func (s *runState) writeReports() {
	now := time.Now()

	compression := audit.BuildCompressionReport(s.config.JobID, s.tracker.Entries(), s.tracker.Stats(), now)
	if err := s.store.SaveFile(s.manager.CompressionReportPath(), []byte(compression)); err != nil {
		s.logger.Warn("failed to write compression report", "error", err)
	}

	tax := audit.BuildTaxAlertReport(s.config.JobID, s.alerts, now)
	if err := s.store.SaveFile(s.manager.TaxAlertReportPath(), []byte(tax)); err != nil {
		s.logger.Warn("failed to write tax alert report", "error", err)
	}

	summary := buildRunSummary(s, now)
	if err := writeRunSummary(s.store, summary, s.manager.RunSummaryPath()); err != nil {
		s.logger.Warn("failed to write run summary", "error", err)
	}
}

// recordRun inserts the run with its clients and alerts into the ledger.
// The ledger is history, not output, so every failure here is a warning.
func (s *runState) recordRun(database *db.DB) {
	if database == nil {
		return
	}

	merged, failed, _ := s.tally()
	status := db.RunStatusSuccess
	if failed > 0 {
		status = db.RunStatusPartial
	}
	if merged == 0 && failed > 0 {
		status = db.RunStatusFailed
	}

	stats := s.tracker.Stats()
	runID, err := database.InsertRun(db.Run{
		JobID:              s.config.JobID,
		InputDir:           s.config.InputFolder,
		OutputDir:          s.manager.OutputDir(),
		ManifestSource:     s.manifestSource,
		ManifestEntries:    s.manifest.Len(),
		ProcessedFiles:     len(s.discovered),
		MergedClients:      merged,
		FailedClients:      failed,
		UnmatchedDocuments: len(s.attribution.Unmatched),
		FilesOptimized:     stats.FilesOptimized,
		TotalSavingsMB:     stats.TotalSavingsMB,
		Status:             status,
	})
	if err != nil {
		s.logger.Warn("failed to record run in ledger", "error", err)
		return
	}

	for _, r := range s.results {
		client := db.RunClient{
			Reference:         r.Reference,
			ClientName:        r.FullName,
			OutputFile:        r.Filename,
			ArrivalPages:      r.PageCounts.Arrival,
			BillPages:         r.PageCounts.Bill,
			CustomerPages:     r.PageCounts.Customer,
			OriginalSizeBytes: r.OriginalSizeBytes,
			FinalSizeBytes:    r.FinalSizeBytes,
			Status:            db.ClientStatusMerged,
			ErrorMessage:      r.Error,
		}
		if r.Failed {
			client.Status = db.ClientStatusFailed
		} else if r.Filename == "" {
			client.Status = db.ClientStatusNoDocuments
		}
		if err := database.InsertRunClient(runID, client); err != nil {
			s.logger.Warn("failed to record client in ledger", "reference", r.Reference, "error", err)
		}

		for _, alert := range r.Alerts {
			err := database.InsertRunAlert(runID, db.RunAlert{
				Reference:  r.Reference,
				Keyword:    alert.Keyword,
				PageNumber: alert.PageNumber,
				Context:    alert.ContextSnippet,
			})
			if err != nil {
				s.logger.Warn("failed to record alert in ledger", "reference", r.Reference, "error", err)
			}
		}
	}
}

// tally counts client outcomes: merged, failed, and without documents.
func (s *runState) tally() (merged, failed, noDocuments int) {
	for _, r := range s.results {
		switch {
		case r.Failed:
			failed++
		case r.Filename == "":
			noDocuments++
		default:
			merged++
		}
	}
	return merged, failed, noDocuments
}
