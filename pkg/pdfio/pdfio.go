// Package pdfio wraps page-level PDF access for the pipeline: per-page
// text extraction during attribution and auditing, and the arena of open
// source handles that spans both phases.
package pdfio

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Document is an open PDF. The file handle must stay open for the
// reader's lifetime, so both travel together.
type Document struct {
	Path   string
	file   *os.File
	reader *pdf.Reader
}

// OpenDocument opens a PDF for page-level text access.
func OpenDocument(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	return &Document{Path: path, file: f, reader: r}, nil
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.reader.NumPage()
}

// PageText extracts the plain text of one page. pageIndex is 0-based;
// pages without a content stream yield an empty string.
func (d *Document) PageText(pageIndex int) (text string, err error) {
	// The underlying parser panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to extract text from page %d: %v", pageIndex+1, r)
		}
	}()

	p := d.reader.Page(pageIndex + 1)
	if p.V.IsNull() {
		return "", nil
	}
	text, err = p.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from page %d: %w", pageIndex+1, err)
	}
	return text, nil
}

// Text extracts the whole document's text. Pages that fail to extract
// are skipped; callers treating a page failure as fatal use PageText.
func (d *Document) Text() string {
	var sb strings.Builder
	for i := 0; i < d.PageCount(); i++ {
		text, err := d.PageText(i)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Close releases the underlying file handle.
func (d *Document) Close() error {
	return d.file.Close()
}
