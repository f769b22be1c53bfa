// Package attribute walks the discovered input files and assigns every
// page to a client bundle via the reference matcher. Multi-client
// documents are attributed page by page; single-client documents go to
// one client whole, or to nobody at all.
package attribute

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dtnitsch/shipment-dossier/models"
	"github.com/dtnitsch/shipment-dossier/pkg/refmatch"
)

// TextSource is the page-level read surface attribution needs from an
// open document.
type TextSource interface {
	PageCount() int
	PageText(pageIndex int) (string, error)
}

// OpenFunc hands out open documents. The production opener is the run's
// arena, which keeps handles open for the merge phase.
type OpenFunc func(path string) (TextSource, error)

// Classifier buckets one filename.
type Classifier interface {
	Classify(filename string) (models.DocumentType, bool)
}

// InputFile is one discovered source document and how it was handled.
type InputFile struct {
	Path    string
	Type    models.DocumentType
	Skipped bool
}

// Result carries everything attribution produced for the merge phase.
type Result struct {
	Bundles   map[string]*models.ClientBundle // keyed by manifest reference
	Files     []InputFile
	Unmatched []models.UnmatchedDocument
	Warnings  []string
}

// DiscoverPDFs lists the .pdf files of dir in sorted name order, which
// fixes the scan order for the whole run. Non-PDF entries are ignored.
func DiscoverPDFs(dir string, logger *slog.Logger) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input folder: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.ToLower(filepath.Ext(e.Name())) != ".pdf" {
			logger.Debug("ignoring non-pdf input", "file", e.Name())
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Attributor assigns pages to clients.
type Attributor struct {
	matcher    *refmatch.Matcher
	classifier Classifier
	open       OpenFunc
	logger     *slog.Logger
}

func New(matcher *refmatch.Matcher, classifier Classifier, open OpenFunc, logger *slog.Logger) *Attributor {
	return &Attributor{matcher: matcher, classifier: classifier, open: open, logger: logger}
}

// Run classifies and attributes every file in scan order. Per-file
// failures are logged and skipped; they never abort the run.
func (a *Attributor) Run(paths []string) *Result {
	res := &Result{Bundles: make(map[string]*models.ClientBundle)}

	arrivalSeen := false
	for _, path := range paths {
		base := filepath.Base(path)
		docType, classified := a.classifier.Classify(base)
		if !classified {
			res.Warnings = append(res.Warnings, fmt.Sprintf("unclassified file treated as customer document: %s", base))
			a.logger.Warn("unclassified file, using default bucket", "file", base)
		}

		if docType == models.DocTypeArrival && arrivalSeen {
			// Only the first-discovered arrival notice contributes pages.
			res.Warnings = append(res.Warnings, fmt.Sprintf("duplicate arrival notice skipped: %s", base))
			a.logger.Warn("duplicate arrival notice skipped", "file", base)
			res.Files = append(res.Files, InputFile{Path: path, Type: docType, Skipped: true})
			continue
		}
		if docType == models.DocTypeArrival {
			arrivalSeen = true
		}

		if docType.MultiClient() {
			a.attributeByPage(path, docType, res)
		} else {
			a.attributeWhole(path, res)
		}
		res.Files = append(res.Files, InputFile{Path: path, Type: docType})
	}
	return res
}

// attributeByPage resolves each page of a multi-client document on its
// own: the first manifest reference found on a page claims it. Pages
// that resolve nowhere belong to nobody.
func (a *Attributor) attributeByPage(path string, docType models.DocumentType, res *Result) {
	doc, err := a.open(path)
	if err != nil {
		a.logger.Warn("failed to open source document, skipping", "file", filepath.Base(path), "error", err)
		return
	}

	for i := 0; i < doc.PageCount(); i++ {
		text, err := doc.PageText(i)
		if err != nil {
			a.logger.Warn("failed to extract page text, skipping page",
				"file", filepath.Base(path), "page", i+1, "error", err)
			continue
		}
		ref, name, ok := a.matcher.ResolveText(text)
		if !ok {
			continue
		}
		a.addPage(res, ref, name, models.PageAttribution{
			ClientReference: ref,
			SourcePath:      path,
			PageIndex:       i,
			Type:            docType,
		})
	}
}

// attributeWhole assigns a single-client document to one client: by
// filename reference when it resolves, otherwise by scanning the content
// for a verbatim manifest reference. The filename match short-circuits
// the scan. Everything unresolved is excluded and recorded.
func (a *Attributor) attributeWhole(path string, res *Result) {
	base := filepath.Base(path)

	ref, name, ok := a.matcher.ResolveText(base)
	var doc TextSource
	if !ok {
		var err error
		doc, err = a.open(path)
		if err != nil {
			a.logger.Warn("failed to open source document, skipping", "file", base, "error", err)
			return
		}
		ref, name, ok = a.matcher.FindVerbatim(fullText(doc))
	}
	if !ok {
		res.Unmatched = append(res.Unmatched, models.UnmatchedDocument{
			File:   base,
			Reason: "no manifest reference in filename or content",
		})
		a.logger.Warn("customer document matched no manifest entry, excluding", "file", base)
		return
	}

	if doc == nil {
		var err error
		doc, err = a.open(path)
		if err != nil {
			a.logger.Warn("failed to open source document, skipping", "file", base, "error", err)
			return
		}
	}

	for i := 0; i < doc.PageCount(); i++ {
		a.addPage(res, ref, name, models.PageAttribution{
			ClientReference: ref,
			SourcePath:      path,
			PageIndex:       i,
			Type:            models.DocTypeCustomer,
		})
	}
}

func (a *Attributor) addPage(res *Result, ref, name string, page models.PageAttribution) {
	b, ok := res.Bundles[ref]
	if !ok {
		b = &models.ClientBundle{Reference: ref, FullName: name}
		res.Bundles[ref] = b
	}
	b.Pages = append(b.Pages, page)
}

// fullText concatenates every extractable page, skipping failures.
func fullText(doc TextSource) string {
	var sb strings.Builder
	for i := 0; i < doc.PageCount(); i++ {
		text, err := doc.PageText(i)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String()
}
