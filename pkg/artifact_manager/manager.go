package artifact_manager

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// DefaultMappingName is the persisted manifest mapping file. It keeps
	// the same name across runs so later runs can reload it.
	DefaultMappingName = "client_manifest.csv"

	CompressionReportName = "compression_report.txt"
	TaxAlertReportName    = "tax_alert_report.txt"
	RunSummaryName        = "run_summary.yaml"
)

// Manager lays out the artifacts of one merge run inside the output folder:
// merged dossiers, the two plain-text reports and the machine-readable
// run summary.
type Manager struct {
	outputDir string
}

// NewManager creates a new artifact Manager instance.
// It ensures the output directory exists.
func NewManager(outputDir string) (*Manager, error) {
	if outputDir == "" {
		return nil, fmt.Errorf("output folder is required")
	}
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Manager{outputDir: outputDir}, nil
}

// OutputDir returns the run's output folder.
func (m *Manager) OutputDir() string {
	return m.outputDir
}

// MergedPath returns the output path for one client's dossier.
func (m *Manager) MergedPath(filename string) string {
	return filepath.Join(m.outputDir, filename)
}

func (m *Manager) CompressionReportPath() string {
	return filepath.Join(m.outputDir, CompressionReportName)
}

func (m *Manager) TaxAlertReportPath() string {
	return filepath.Join(m.outputDir, TaxAlertReportName)
}

func (m *Manager) RunSummaryPath() string {
	return filepath.Join(m.outputDir, RunSummaryName)
}

// DefaultMappingPath returns the cross-run mapping file location: a stable
// name next to the input folder, so it survives output folder cleanup.
func DefaultMappingPath(inputDir string) string {
	return filepath.Join(filepath.Dir(filepath.Clean(inputDir)), DefaultMappingName)
}

// invalidNameChar matches everything not allowed in the client-name half of
// a dossier filename. Spaces survive; reference slashes are rewritten.
var invalidNameChar = regexp.MustCompile(`[^a-zA-Z0-9 \-_]+`)
var repeatedSpace = regexp.MustCompile(`\s+`)

// MergedFilename derives the deterministic dossier filename for a client.
// Example: "Jane Doe" + "000/527/962" -> "Jane Doe_000_527_962.pdf"
func MergedFilename(fullName, reference string) string {
	name := invalidNameChar.ReplaceAllString(fullName, "")
	name = repeatedSpace.ReplaceAllString(strings.TrimSpace(name), " ")
	if name == "" {
		name = "client"
	}
	ref := strings.ReplaceAll(reference, "/", "_")
	return fmt.Sprintf("%s_%s.pdf", name, ref)
}
