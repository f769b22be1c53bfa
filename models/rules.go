package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules carries the marker vocabularies the classifier and the keyword
// audit run on. Fields left empty in a rules file keep their defaults.
type Rules struct {
	ArrivalPrefixes  []string `yaml:"arrival_prefixes"`
	BillSuffixes     []string `yaml:"bill_suffixes"`
	CustomerSuffixes []string `yaml:"customer_suffixes"`
	AuditKeywords    []string `yaml:"audit_keywords"`
}

// DefaultRules returns the built-in vocabularies. Classification compares
// case-insensitively, so these are kept lowercase.
func DefaultRules() Rules {
	return Rules{
		ArrivalPrefixes:  []string{"advice of arrival", "arrival notice", "advice", "arrival"},
		BillSuffixes:     []string{"bill of lading", "lading", "hbl", "mbl", "obl", "_bl", "-bl"},
		CustomerSuffixes: []string{"packing list", "documents", "document", "invoice", "docs", "doc"},
		AuditKeywords:    []string{"tax", "vat", "duty", "customs", "hmrc", "excise", "tariff"},
	}
}

// LoadRules reads a YAML rules file and overlays it on the defaults.
// An empty path returns the defaults unchanged.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("failed to read rules file: %w", err)
	}

	var loaded Rules
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return rules, fmt.Errorf("failed to parse rules file: %w", err)
	}

	if len(loaded.ArrivalPrefixes) > 0 {
		rules.ArrivalPrefixes = loaded.ArrivalPrefixes
	}
	if len(loaded.BillSuffixes) > 0 {
		rules.BillSuffixes = loaded.BillSuffixes
	}
	if len(loaded.CustomerSuffixes) > 0 {
		rules.CustomerSuffixes = loaded.CustomerSuffixes
	}
	if len(loaded.AuditKeywords) > 0 {
		rules.AuditKeywords = loaded.AuditKeywords
	}
	return rules, nil
}
