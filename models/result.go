package models

// KeywordAlert flags one keyword hit on one page of a merged dossier.
type KeywordAlert struct {
	Keyword        string `json:"keyword" yaml:"keyword"`
	PageNumber     int    `json:"page_number" yaml:"page_number"` // 1-based in the merged output
	ContextSnippet string `json:"context_snippet" yaml:"context_snippet"`
}

// OptimizeOutcome is the optimizer's report for one file. Ratio is
// original over final, so 1.0 means nothing changed.
type OptimizeOutcome struct {
	Optimized        bool    `json:"optimized" yaml:"optimized"`
	Reason           string  `json:"reason,omitempty" yaml:"reason,omitempty"`
	OriginalSizeMB   float64 `json:"original_size_mb" yaml:"original_size_mb"`
	FinalSizeMB      float64 `json:"final_size_mb" yaml:"final_size_mb"`
	CompressionRatio float64 `json:"compression_ratio" yaml:"compression_ratio"`
	SavingsMB        float64 `json:"savings_mb" yaml:"savings_mb"`
}

// MergeResult is the outcome of assembling one client's dossier.
type MergeResult struct {
	Reference         string
	FullName          string
	Filename          string
	PageCounts        PageCountSet
	OriginalSizeBytes int64
	FinalSizeBytes    int64
	Alerts            []KeywordAlert
	Optimization      *OptimizeOutcome
	Failed            bool
	Error             string
}

// OptimizationStats aggregates optimizer outcomes across a run. The
// average ratio is total original bytes over total final bytes, counting
// only files the optimizer actually shrank.
type OptimizationStats struct {
	FilesOptimized          int     `json:"files_optimized" yaml:"files_optimized"`
	TotalSavingsMB          float64 `json:"total_savings_mb" yaml:"total_savings_mb"`
	AverageCompressionRatio float64 `json:"average_compression_ratio" yaml:"average_compression_ratio"`
}

// RunStats is the headline tally of one merge run. Optimization is nil
// when the optimizer was disabled.
type RunStats struct {
	ProcessedFiles int                `json:"processed_files" yaml:"processed_files"`
	MergedClients  int                `json:"merged_clients" yaml:"merged_clients"`
	Optimization   *OptimizationStats `json:"optimization" yaml:"optimization"`
}

// ClientAlerts groups one client's keyword alerts for reports and the
// structured result.
type ClientAlerts struct {
	ClientName string         `json:"client_name" yaml:"client_name"`
	ClientRef  string         `json:"client_ref" yaml:"client_ref"`
	Alerts     []KeywordAlert `json:"alerts" yaml:"alerts"`
}

// RunResult is the structured outcome handed back to the caller. With
// --json-output it is printed to stdout as a single line. Fatal
// preconditions produce Success=false with Error set and Stats nil.
type RunResult struct {
	Success      bool           `json:"success"`
	Message      string         `json:"message,omitempty"`
	Error        string         `json:"error,omitempty"`
	OutputFolder string         `json:"output_folder"`
	Stats        *RunStats      `json:"stats,omitempty"`
	TaxAlerts    []ClientAlerts `json:"tax_alerts,omitempty"`
}
