package manifest

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/shipment-dossier/models"
	"github.com/dtnitsch/shipment-dossier/pkg/refmatch"
	"github.com/dtnitsch/shipment-dossier/pkg/tabular"
)

// Column aliases seen across EDI exports.
var (
	referenceColumns = []string{"consignees reference", "reference"}
	nameColumns      = []string{"consignees name", "name"}
)

// Cell values treated as an empty cell rather than data.
var emptyMarkers = map[string]struct{}{
	"":     {},
	"-":    {},
	"n/a":  {},
	"na":   {},
	"none": {},
	"null": {},
}

// EDISource reads the tabular EDI export (.xlsx, .csv or .html). The
// export is authoritative: names are taken as-is with no plausibility
// filtering, unlike the reference-document source.
type EDISource struct {
	Path string
}

func (s *EDISource) Name() string { return "edi" }

func (s *EDISource) Load() (*models.Manifest, error) {
	table, err := tabular.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	return FromTable(table)
}

// FromTable builds a manifest from a reference column and a name column,
// resolving the header aliases and skipping unusable rows silently.
func FromTable(table *tabular.Table) (*models.Manifest, error) {
	refCol := table.HeaderIndex(referenceColumns...)
	nameCol := table.HeaderIndex(nameColumns...)
	if refCol < 0 || nameCol < 0 {
		return nil, fmt.Errorf("reference/name columns not found (headers: %s)", strings.Join(table.Headers, ", "))
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

func isEmptyCell(v string) bool {
	_, empty := emptyMarkers[strings.ToLower(v)]
	return empty
}
