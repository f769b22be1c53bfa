// Package classify buckets input files into document types from the
// filename alone, so classification never costs a content scan.
package classify

import (
	"path/filepath"
	"strings"

	"github.com/dtnitsch/shipment-dossier/models"
	"github.com/dtnitsch/shipment-dossier/pkg/refmatch"
)

// Classifier applies the filename rules in a fixed order: arrival prefix,
// bill suffix, customer suffix, then a bare reference code. Anything else
// lands in the customer bucket unclassified.
type Classifier struct {
	arrivalPrefixes  []string
	billSuffixes     []string
	customerSuffixes []string
}

func NewClassifier(rules models.Rules) *Classifier {
	return &Classifier{
		arrivalPrefixes:  lowered(rules.ArrivalPrefixes),
		billSuffixes:     lowered(rules.BillSuffixes),
		customerSuffixes: lowered(rules.CustomerSuffixes),
	}
}

func lowered(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

// Classify buckets a filename. The second return reports whether any rule
// matched; false means the default bucket was applied and the caller
// should surface the file as unclassified.
func (c *Classifier) Classify(filename string) (models.DocumentType, bool) {
	base := strings.ToLower(filepath.Base(filename))
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	for _, p := range c.arrivalPrefixes {
		if strings.HasPrefix(base, p) {
			return models.DocTypeArrival, true
		}
	}
	for _, s := range c.billSuffixes {
		if strings.HasSuffix(stem, s) {
			return models.DocTypeBill, true
		}
	}
	for _, s := range c.customerSuffixes {
		if strings.HasSuffix(stem, s) {
			return models.DocTypeCustomer, true
		}
	}
	if len(refmatch.Candidates(stem)) > 0 {
		return models.DocTypeCustomer, true
	}
	return models.DocTypeCustomer, false
}
