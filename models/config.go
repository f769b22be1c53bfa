// Package models defines data structures shared across the merge pipeline.
package models

// RunConfig holds runtime configuration for one merge run.
// All values come from CLI flags, not external config files.
type RunConfig struct {
	InputFolder        string
	OutputFolder       string
	EDIFile            string
	ManifestFile       string
	RulesFile          string
	EnableOptimization bool
	TargetSizeMB       float64
	Quality            int
	JobID              string
	JSONOutput         bool
}
