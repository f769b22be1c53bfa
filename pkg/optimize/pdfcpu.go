package optimize

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/dtnitsch/shipment-dossier/models"
)

const bytesPerMB = 1024.0 * 1024.0

// PDFCPUOptimizer rewrites a dossier through pdfcpu's optimizer:
// duplicate objects and unused resources go away, page content stays
// untouched.
type PDFCPUOptimizer struct {
	opts Options
	conf *model.Configuration
}

func NewPDFCPUOptimizer(opts Options) *PDFCPUOptimizer {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFCPUOptimizer{opts: opts, conf: conf}
}

// Optimize rewrites path if that shrinks it. Files already under the
// target, and rewrites that fail to shrink, leave the original in place
// with Optimized=false and a skip reason. The rewrite goes through a
// sibling temp file and an atomic rename, so the dossier at path is
// always complete.
func (o *PDFCPUOptimizer) Optimize(path string) (models.OptimizeOutcome, error) {
	info, err := os.Stat(path)
	if err != nil {
		return models.OptimizeOutcome{}, fmt.Errorf("failed to stat %s: %w", filepath.Base(path), err)
	}
	originalBytes := info.Size()
	originalMB := float64(originalBytes) / bytesPerMB

	outcome := models.OptimizeOutcome{
		OriginalSizeMB:   originalMB,
		FinalSizeMB:      originalMB,
		CompressionRatio: 1.0,
	}

	if o.opts.TargetSizeMB > 0 && originalMB <= o.opts.TargetSizeMB {
		outcome.Reason = ReasonUnderTarget
		return outcome, nil
	}

	tmp := path + ".opt.tmp"
	if err := api.OptimizeFile(path, tmp, o.conf); err != nil {
		os.Remove(tmp)
		return outcome, fmt.Errorf("optimizer failed on %s: %w", filepath.Base(path), err)
	}

	tmpInfo, err := os.Stat(tmp)
	if err != nil {
		os.Remove(tmp)
		return outcome, fmt.Errorf("failed to stat optimized output: %w", err)
	}

	finalBytes := tmpInfo.Size()
	if finalBytes >= originalBytes {
		os.Remove(tmp)
		outcome.Reason = ReasonNoReduction
		return outcome, nil
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return outcome, fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}

	outcome.Optimized = true
	outcome.FinalSizeMB = float64(finalBytes) / bytesPerMB
	outcome.CompressionRatio = float64(originalBytes) / float64(finalBytes)
	outcome.SavingsMB = outcome.OriginalSizeMB - outcome.FinalSizeMB
	return outcome, nil
}
