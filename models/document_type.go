package models

// DocumentType represents the role a source file's pages play in a dossier.
type DocumentType int

const (
	// DocTypeArrival is the multi-client advice-of-arrival notice.
	DocTypeArrival DocumentType = iota
	DocTypeBill                 // Bill of lading, also multi-client
	DocTypeCustomer             // Single-client paperwork, the default bucket
)

// String returns the stable name used in logs, reports and the run ledger.
func (t DocumentType) String() string {
	switch t {
	case DocTypeArrival:
		return "arrival_notice"
	case DocTypeBill:
		return "bill_of_lading"
	case DocTypeCustomer:
		return "customer_document"
	}
	return "unknown"
}

// MultiClient reports whether pages of this type can belong to different
// clients and therefore need page-by-page attribution.
func (t DocumentType) MultiClient() bool {
	return t == DocTypeArrival || t == DocTypeBill
}
