package models

// PageAttribution assigns one page of a source document to a client.
type PageAttribution struct {
	ClientReference string
	SourcePath      string
	PageIndex       int // 0-based within the source document
	Type            DocumentType
}

// ClientBundle accumulates the pages attributed to one manifest client.
// Pages holds discovery-scan order; the merge step regroups them by type.
type ClientBundle struct {
	Reference string
	FullName  string
	Pages     []PageAttribution
}

// PagesOfType returns this bundle's attributions of one document type,
// scan order preserved.
func (b *ClientBundle) PagesOfType(t DocumentType) []PageAttribution {
	var out []PageAttribution
	for _, p := range b.Pages {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out
}

// PageCounts tallies the bundle per document type.
func (b *ClientBundle) PageCounts() PageCountSet {
	var counts PageCountSet
	for _, p := range b.Pages {
		switch p.Type {
		case DocTypeArrival:
			counts.Arrival++
		case DocTypeBill:
			counts.Bill++
		case DocTypeCustomer:
			counts.Customer++
		}
	}
	return counts
}

// PageCountSet is a per-type page tally for one client.
type PageCountSet struct {
	Arrival  int `json:"arrival" yaml:"arrival"`
	Bill     int `json:"bill" yaml:"bill"`
	Customer int `json:"customer" yaml:"customer"`
}

func (c PageCountSet) Total() int {
	return c.Arrival + c.Bill + c.Customer
}

// UnmatchedDocument records a single-client file that resolved to no
// manifest entry. These files are excluded from every merge.
type UnmatchedDocument struct {
	File   string `json:"file" yaml:"file"`
	Reason string `json:"reason" yaml:"reason"`
}
