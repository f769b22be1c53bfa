package manifest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/dtnitsch/shipment-dossier/models"
	"github.com/dtnitsch/shipment-dossier/pkg/refmatch"
	"github.com/dtnitsch/shipment-dossier/pkg/storage"
	"github.com/dtnitsch/shipment-dossier/pkg/tabular"
)

// Header of the persisted two-column mapping file.
var mappingHeader = []string{"ConsigneeRef", "FullName"}

// MappingSource loads a mapping file saved by an earlier run. Lowest
// priority of the sources: it only wins when nothing fresher is around.
type MappingSource struct {
	Path string
}

func (s *MappingSource) Name() string { return "mapping-file" }

func (s *MappingSource) Load() (*models.Manifest, error) {
	if _, err := os.Stat(s.Path); os.IsNotExist(err) {
		return models.NewManifest(), nil
	}

	table, err := tabular.ReadCSV(s.Path)
	if err != nil {
		return nil, err
	}

	refCol := table.HeaderIndex(mappingHeader[0])
	nameCol := table.HeaderIndex(mappingHeader[1])
	if refCol < 0 || nameCol < 0 {
		return nil, fmt.Errorf("mapping file missing %s/%s header", mappingHeader[0], mappingHeader[1])
	}

	m := models.NewManifest()
	for _, row := range table.Rows {
		ref := tabular.Cell(row, refCol)
		name := tabular.Cell(row, nameCol)
		if isEmptyCell(ref) || isEmptyCell(name) {
			continue
		}
		norm := refmatch.Normalize(ref)
		if !refmatch.IsReference(norm) {
			continue
		}
		m.Add(norm, name)
	}
	return m, nil
}

// Save persists the manifest as the reusable two-column mapping file.
// The write is atomic so a reader never sees a half-written mapping.
func Save(m *models.Manifest, path string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(mappingHeader); err != nil {
		return fmt.Errorf("failed to encode mapping header: %w", err)
	}
	for _, e := range m.Entries() {
		if err := w.Write([]string{e.Reference, e.FullName}); err != nil {
			return fmt.Errorf("failed to encode mapping row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to encode mapping: %w", err)
	}

	s := &storage.Storage{}
	return s.SaveFileAtomic(path, buf.Bytes())
}
