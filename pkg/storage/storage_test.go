package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveFileAtomic_ReplacesExisting(t *testing.T) {
	s := &Storage{}
	path := filepath.Join(t.TempDir(), "mapping.csv")

	if err := s.SaveFileAtomic(path, []byte("first")); err != nil {
		t.Fatalf("SaveFileAtomic() error = %v", err)
	}
	if err := s.SaveFileAtomic(path, []byte("second")); err != nil {
		t.Fatalf("SaveFileAtomic() second write error = %v", err)
	}

	data, err := s.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}
}

func TestSaveFileAtomic_LeavesNoTempFiles(t *testing.T) {
	s := &Storage{}
	dir := t.TempDir()

	if err := s.SaveFileAtomic(filepath.Join(dir, "out.txt"), []byte("x")); err != nil {
		t.Fatalf("SaveFileAtomic() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want 1 (no temp leftovers)", len(entries))
	}
}

func TestSaveFile_CreatesParentDirs(t *testing.T) {
	s := &Storage{}
	path := filepath.Join(t.TempDir(), "nested", "deep", "report.txt")

	if err := s.SaveFile(path, []byte("report")); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	if !s.HasFile(path) {
		t.Error("HasFile() = false after SaveFile")
	}
}
