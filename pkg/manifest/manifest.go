// Package manifest builds the authoritative reference-to-client mapping
// from one of several sources, tried in a fixed priority order: the EDI
// export, then the run's reference document, then a previously saved
// mapping file.
package manifest

import (
	"fmt"
	"log/slog"

	"github.com/dtnitsch/shipment-dossier/models"
)

// Source is one way of producing a manifest. A source that does not
// apply (missing file, nothing usable in it) returns an empty manifest
// rather than an error; errors mean the source existed but failed.
type Source interface {
	Name() string
	Load() (*models.Manifest, error)
}

// Loader evaluates manifest sources in priority order.
type Loader struct {
	sources []Source
	logger  *slog.Logger
}

func NewLoader(logger *slog.Logger, sources ...Source) *Loader {
	return &Loader{sources: sources, logger: logger}
}

// Load returns the first non-empty manifest a source yields, together
// with the winning source's name. A failing source never aborts the
// chain; running out of sources does, because an empty manifest makes
// every downstream stage meaningless.
func (l *Loader) Load() (*models.Manifest, string, error) {
	for _, src := range l.sources {
		m, err := src.Load()
		if err != nil {
			l.logger.Warn("manifest source failed", "source", src.Name(), "error", err)
			continue
		}
		if m == nil || m.Len() == 0 {
			l.logger.Debug("manifest source yielded no entries", "source", src.Name())
			continue
		}
		l.logger.Info("manifest loaded", "source", src.Name(), "entries", m.Len())
		return m, src.Name(), nil
	}
	return nil, "", fmt.Errorf("no manifest source yielded any entries")
}
