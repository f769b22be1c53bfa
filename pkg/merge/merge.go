// Package merge assembles one output dossier per client from attributed
// pages. Output order is fixed: arrival pages, then bill of lading
// pages, then customer pages, scan order preserved inside each group.
package merge

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/dtnitsch/shipment-dossier/models"
)

// typeOrder is the fixed output order of the document-type groups.
var typeOrder = []models.DocumentType{models.DocTypeArrival, models.DocTypeBill, models.DocTypeCustomer}

// Segment is a run of pages pulled from one source document.
type Segment struct {
	SourcePath string
	Pages      []int // 0-based page indices, already in output order
}

// BuildSegments flattens a bundle into its ordered segment plan,
// coalescing adjacent pages that come from the same source file so each
// source is extracted once per run of pages.
func BuildSegments(b *models.ClientBundle) []Segment {
	var segments []Segment
	for _, t := range typeOrder {
		for _, p := range b.PagesOfType(t) {
			if n := len(segments); n > 0 && segments[n-1].SourcePath == p.SourcePath {
				segments[n-1].Pages = append(segments[n-1].Pages, p.PageIndex)
				continue
			}
			segments = append(segments, Segment{SourcePath: p.SourcePath, Pages: []int{p.PageIndex}})
		}
	}
	return segments
}

// Merger writes merged dossiers with pdfcpu.
type Merger struct {
	conf *model.Configuration
}

func NewMerger() *Merger {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Merger{conf: conf}
}

// Merge writes the bundle's pages to outPath. Page extraction goes
// through per-segment temp files that live only for this call.
func (m *Merger) Merge(b *models.ClientBundle, outPath string) error {
	segments := BuildSegments(b)
	if len(segments) == 0 {
		return fmt.Errorf("no pages attributed to %s", b.Reference)
	}

	tmpDir, err := os.MkdirTemp("", "sdm-merge-")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	parts := make([]string, 0, len(segments))
	for i, seg := range segments {
		part := filepath.Join(tmpDir, fmt.Sprintf("part-%03d.pdf", i))
		if err := api.CollectFile(seg.SourcePath, part, pageSelection(seg.Pages), m.conf); err != nil {
			return fmt.Errorf("failed to collect pages from %s: %w", filepath.Base(seg.SourcePath), err)
		}
		parts = append(parts, part)
	}

	if err := api.MergeCreateFile(parts, outPath, false, m.conf); err != nil {
		return fmt.Errorf("failed to write merged dossier: %w", err)
	}
	return nil
}

// pageSelection renders 0-based page indices as pdfcpu's 1-based page
// selection, order preserved.
func pageSelection(pages []int) []string {
	sel := make([]string, len(pages))
	for i, p := range pages {
		sel[i] = strconv.Itoa(p + 1)
	}
	return sel
}
