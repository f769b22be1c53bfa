package common

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

func FilterResultFields(result interface{}, fieldsStr string) map[string]interface{} {
	if fieldsStr == "" {
		// No filtering, convert to map and return all fields
		return structToMap(result)
	}

	requestedFields := strings.Split(fieldsStr, ",")

	// Build set of fields to include
	includeFields := make(map[string]bool)
	for _, field := range requestedFields {
		includeFields[strings.TrimSpace(field)] = true
	}

	// Convert struct to map
	fullMap := structToMap(result)

	// Filter map
	filtered := make(map[string]interface{})
	for key, value := range fullMap {
		if includeFields[key] {
			filtered[key] = value
		}
	}

	return filtered
}

// structToMap converts a struct to map[string]interface{} using JSON marshaling.
func structToMap(obj interface{}) map[string]interface{} {
	data, _ := json.Marshal(obj)
	var result map[string]interface{}
	_ = json.Unmarshal(data, &result)
	return result
}

// mergedName matches filenames produced by the merge pipeline: a cleaned
// client name, an underscore, and the reference with slashes flattened
// to underscores.
// Example: "Jane Doe_000_527_962.pdf" -> ("Jane Doe", "000_527_962")
var mergedName = regexp.MustCompile(`^(.+)_(\d{3}_\d{3}_\d{3}(?:[-_][A-Za-z0-9]+)*)\.pdf$`)

// ParseMergedFilename recovers the client name and reference from a merged
// output filename. Returns ok=false for files the pipeline did not produce.
func ParseMergedFilename(filename string) (name, reference string, ok bool) {
	matches := mergedName.FindStringSubmatch(filename)
	if matches == nil {
		return "", "", false
	}
	return matches[1], strings.ReplaceAll(matches[2], "_", "/"), true
}

// FormatMB renders a byte count as megabytes for display.
func FormatMB(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/(1024.0*1024.0))
}
