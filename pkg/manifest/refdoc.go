package manifest

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	readability "github.com/go-shiori/go-readability"

	"github.com/dtnitsch/shipment-dossier/models"
	"github.com/dtnitsch/shipment-dossier/pkg/pdfio"
	"github.com/dtnitsch/shipment-dossier/pkg/refmatch"
)

// ReferenceDocSource derives the mapping from the run's reference
// document, normally the first-discovered arrival notice. Its text lists
// one reference code and consignee per shipment, but it is far noisier
// than an EDI export, so candidate names must pass the person-name
// heuristic before they are accepted.
type ReferenceDocSource struct {
	Path string
}

func (s *ReferenceDocSource) Name() string { return "reference-document" }

func (s *ReferenceDocSource) Load() (*models.Manifest, error) {
	text, err := referenceText(s.Path)
	if err != nil {
		return nil, err
	}
	return FromReferenceText(text), nil
}

// referenceText extracts plain text from a PDF or HTML reference document.
func referenceText(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		doc, err := pdfio.OpenDocument(path)
		if err != nil {
			return "", err
		}
		defer doc.Close()
		return doc.Text(), nil

	case ".html", ".htm":
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("failed to open reference document: %w", err)
		}
		defer f.Close()

		parser := readability.NewParser()
		article, err := parser.Parse(f, &url.URL{Scheme: "file", Path: path})
		if err != nil {
			return "", fmt.Errorf("failed to extract reference document text: %w", err)
		}
		return article.TextContent, nil
	}
	return "", fmt.Errorf("unsupported reference document format: %s", filepath.Ext(path))
}

// FromReferenceText pairs each reference code with the nearest plausible
// client name: the tail of the code's own line, else the next non-empty
// line. Lines that fail the person-name heuristic contribute nothing.
func FromReferenceText(text string) *models.Manifest {
	m := models.NewManifest()
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		match, end, ok := refmatch.Locate(line)
		if !ok {
			continue
		}
		norm := refmatch.Normalize(match)
		if !refmatch.IsReference(norm) {
			continue
		}

		name := CleanCandidateName(line[end:])
		if !LooksLikePersonName(name) {
			name = ""
			for j := i + 1; j < len(lines); j++ {
				next := CleanCandidateName(lines[j])
				if next == "" {
					continue
				}
				if LooksLikePersonName(next) {
					name = next
				}
				break
			}
		}
		if name == "" {
			continue
		}
		m.Add(norm, name)
	}
	return m
}
