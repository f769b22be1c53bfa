// Package optimize shrinks merged dossiers toward a target size. The
// contract for any backend: running twice is safe, and the file on disk
// never ends up larger than it started.
package optimize

import (
	"github.com/dtnitsch/shipment-dossier/models"
)

// Skip reasons reported when a file is left untouched.
const (
	ReasonUnderTarget = "file already under target size"
	ReasonNoReduction = "no size reduction"
)

// Options tune an optimizer run. Quality is a hint for backends that
// re-encode images; the pdfcpu backend ignores it.
type Options struct {
	TargetSizeMB float64
	Quality      int
}

// Optimizer rewrites one file in place and reports what happened.
type Optimizer interface {
	Optimize(path string) (models.OptimizeOutcome, error)
}
