// Package audit inspects merged dossiers after assembly: it flags
// configured keywords past a fixed page offset and keeps the run's
// compression bookkeeping for the reports.
package audit

import (
	"strings"

	"github.com/dtnitsch/shipment-dossier/models"
)

// ScanStartPageIndex is the first 0-based page the keyword scan looks
// at. Front matter (arrival notice, bills, cover sheets) stays out of
// the scan, so a dossier of twelve pages or fewer yields no alerts.
const ScanStartPageIndex = 12

// contextRadius is the number of words captured on each side of a hit.
const contextRadius = 8

// PageSource is the page-text read surface a scan walks.
type PageSource interface {
	PageCount() int
	PageText(pageIndex int) (string, error)
}

// Scanner flags keywords on the scannable pages of a dossier. Matching
// is case-insensitive and substring-based, first hit per keyword per
// page.
type Scanner struct {
	keywords []string
}

func NewScanner(keywords []string) *Scanner {
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	return &Scanner{keywords: lowered}
}

// Scan walks every page of doc past the fixed offset. Pages that fail
// to extract are skipped.
func (s *Scanner) Scan(doc PageSource) []models.KeywordAlert {
	var alerts []models.KeywordAlert
	for i := ScanStartPageIndex; i < doc.PageCount(); i++ {
		text, err := doc.PageText(i)
		if err != nil {
			continue
		}
		alerts = append(alerts, s.ScanPage(text, i+1)...)
	}
	return alerts
}

// ScanPage returns the alerts for one page of text. pageNumber is the
// 1-based page recorded on each alert; the offset rule lives in Scan,
// not here.
func (s *Scanner) ScanPage(text string, pageNumber int) []models.KeywordAlert {
	var alerts []models.KeywordAlert
	lower := strings.ToLower(text)
	for _, kw := range s.keywords {
		idx := strings.Index(lower, kw)
		if idx < 0 {
			continue
		}
		alerts = append(alerts, models.KeywordAlert{
			Keyword:        kw,
			PageNumber:     pageNumber,
			ContextSnippet: contextSnippet(text, idx, len(kw)),
		})
	}
	return alerts
}

// contextSnippet returns the words around the hit at idx, the containing
// word expanded to its boundaries.
func contextSnippet(text string, idx, matchLen int) string {
	start := strings.LastIndexAny(text[:idx], " \t\n\r") + 1
	end := len(text)
	if rel := strings.IndexAny(text[idx+matchLen:], " \t\n\r"); rel >= 0 {
		end = idx + matchLen + rel
	}

	before := strings.Fields(text[:start])
	if len(before) > contextRadius {
		before = before[len(before)-contextRadius:]
	}
	after := strings.Fields(text[end:])
	if len(after) > contextRadius {
		after = after[:contextRadius]
	}

	parts := make([]string, 0, len(before)+1+len(after))
	parts = append(parts, before...)
	parts = append(parts, text[start:end])
	parts = append(parts, after...)
	return strings.Join(parts, " ")
}
