package optimize

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestOptimize_UnderTargetSkips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.pdf")
	content := []byte("tiny placeholder")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	o := NewPDFCPUOptimizer(Options{TargetSizeMB: 1.2})
	outcome, err := o.Optimize(path)
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}

	if outcome.Optimized {
		t.Error("Optimized = true, want false for under-target file")
	}
	if outcome.Reason != ReasonUnderTarget {
		t.Errorf("Reason = %q, want %q", outcome.Reason, ReasonUnderTarget)
	}
	if outcome.CompressionRatio != 1.0 {
		t.Errorf("CompressionRatio = %v, want 1.0", outcome.CompressionRatio)
	}
	if outcome.OriginalSizeMB != outcome.FinalSizeMB {
		t.Errorf("sizes differ: %v vs %v, want equal on skip", outcome.OriginalSizeMB, outcome.FinalSizeMB)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.Equal(after, content) {
		t.Error("file content changed on skip")
	}
}

func TestOptimize_UnderTargetIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.pdf")
	if err := os.WriteFile(path, []byte("tiny placeholder"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	o := NewPDFCPUOptimizer(Options{TargetSizeMB: 1.2})
	first, err := o.Optimize(path)
	if err != nil {
		t.Fatalf("Optimize() first call error = %v", err)
	}
	second, err := o.Optimize(path)
	if err != nil {
		t.Fatalf("Optimize() second call error = %v", err)
	}
	if first != second {
		t.Errorf("outcomes differ across calls: %+v vs %+v", first, second)
	}
}

func TestOptimize_InvalidFileLeavesOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	junk := bytes.Repeat([]byte("not a pdf "), 200000) // ~2 MB, over target
	if err := os.WriteFile(path, junk, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	o := NewPDFCPUOptimizer(Options{TargetSizeMB: 1.2})
	if _, err := o.Optimize(path); err == nil {
		t.Fatal("Optimize() on junk error = nil, want error")
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.Equal(after, junk) {
		t.Error("original file was modified by failed optimization")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want 1 (no temp leftovers)", len(entries))
	}
}

func TestOptimize_MissingFile(t *testing.T) {
	o := NewPDFCPUOptimizer(Options{TargetSizeMB: 1.2})
	if _, err := o.Optimize(filepath.Join(t.TempDir(), "absent.pdf")); err == nil {
		t.Error("Optimize() on missing file error = nil, want error")
	}
}
