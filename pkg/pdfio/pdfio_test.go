package pdfio

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writePDF builds a minimal single-font PDF with one text line per page.
// Object offsets are recorded while writing, so the xref table is correct
// by construction.
func writePDF(t *testing.T, path string, pages []string) {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := []int{0} // object numbers are 1-based
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets)-1, body)
	}

	n := len(pages)
	fontNum := 3 + 2*n
	kids := make([]string, n)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i)
	}

	writeObj("<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n))
	for i := 0; i < n; i++ {
		writeObj(fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			fontNum, 3+n+i))
	}
	escaper := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	for _, text := range pages {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", escaper.Replace(text))
		writeObj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}
	writeObj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets[1:] {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets), xref)

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write test pdf: %v", err)
	}
}

func TestDocumentPageText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "two-pages.pdf")
	writePDF(t, path, []string{"Reference 000/527/962 Jane Doe", "Customs duty payable"})

	doc, err := OpenDocument(path)
	if err != nil {
		t.Fatalf("OpenDocument() error = %v", err)
	}
	defer doc.Close()

	if got := doc.PageCount(); got != 2 {
		t.Fatalf("PageCount() = %d, want 2", got)
	}

	first, err := doc.PageText(0)
	if err != nil {
		t.Fatalf("PageText(0) error = %v", err)
	}
	if !strings.Contains(first, "000/527/962") {
		t.Errorf("PageText(0) = %q, want reference code present", first)
	}

	second, err := doc.PageText(1)
	if err != nil {
		t.Fatalf("PageText(1) error = %v", err)
	}
	if !strings.Contains(second, "duty") {
		t.Errorf("PageText(1) = %q, want %q present", second, "duty")
	}
}

func TestDocumentText_JoinsPages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	writePDF(t, path, []string{"page one", "page two"})

	doc, err := OpenDocument(path)
	if err != nil {
		t.Fatalf("OpenDocument() error = %v", err)
	}
	defer doc.Close()

	text := doc.Text()
	if !strings.Contains(text, "page one") || !strings.Contains(text, "page two") {
		t.Errorf("Text() = %q, want both pages present", text)
	}
}

func TestOpenDocument_Missing(t *testing.T) {
	if _, err := OpenDocument(filepath.Join(t.TempDir(), "absent.pdf")); err == nil {
		t.Error("OpenDocument() on missing file error = nil, want error")
	}
}

func TestArenaAcquire_ReusesHandle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	writePDF(t, path, []string{"only page"})

	arena := NewArena()
	defer arena.ReleaseAll()

	first, err := arena.Acquire(path)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	second, err := arena.Acquire(path)
	if err != nil {
		t.Fatalf("Acquire() second call error = %v", err)
	}

	if first != second {
		t.Error("Acquire() opened a second handle for the same path")
	}
	if arena.Len() != 1 {
		t.Errorf("Len() = %d, want 1", arena.Len())
	}
}

func TestArenaReleaseAll_Idempotent(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.pdf", "b.pdf"} {
		writePDF(t, filepath.Join(dir, name), []string{"x"})
	}

	arena := NewArena()
	for _, name := range []string{"a.pdf", "b.pdf"} {
		if _, err := arena.Acquire(filepath.Join(dir, name)); err != nil {
			t.Fatalf("Acquire(%s) error = %v", name, err)
		}
	}

	if err := arena.ReleaseAll(); err != nil {
		t.Fatalf("ReleaseAll() error = %v", err)
	}
	if arena.Len() != 0 {
		t.Errorf("Len() after release = %d, want 0", arena.Len())
	}
	if err := arena.ReleaseAll(); err != nil {
		t.Errorf("ReleaseAll() second call error = %v, want nil", err)
	}
}
