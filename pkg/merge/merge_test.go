package merge

import (
	"reflect"
	"testing"

	"github.com/dtnitsch/shipment-dossier/models"
)

func page(src string, idx int, t models.DocumentType) models.PageAttribution {
	return models.PageAttribution{ClientReference: "000/527/962", SourcePath: src, PageIndex: idx, Type: t}
}

func TestBuildSegments_TypeOrderBeforeScanOrder(t *testing.T) {
	// Scan order interleaves the types; the plan regroups them.
	b := &models.ClientBundle{
		Reference: "000/527/962",
		Pages: []models.PageAttribution{
			page("bill.pdf", 0, models.DocTypeBill),
			page("arrival.pdf", 2, models.DocTypeArrival),
			page("invoice.pdf", 0, models.DocTypeCustomer),
			page("arrival.pdf", 5, models.DocTypeArrival),
		},
	}

	got := BuildSegments(b)
	want := []Segment{
		{SourcePath: "arrival.pdf", Pages: []int{2, 5}},
		{SourcePath: "bill.pdf", Pages: []int{0}},
		{SourcePath: "invoice.pdf", Pages: []int{0}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildSegments() = %+v, want %+v", got, want)
	}
}

func TestBuildSegments_CoalescesSameSourceRuns(t *testing.T) {
	b := &models.ClientBundle{
		Reference: "000/527/962",
		Pages: []models.PageAttribution{
			page("docs.pdf", 0, models.DocTypeCustomer),
			page("docs.pdf", 1, models.DocTypeCustomer),
			page("other.pdf", 0, models.DocTypeCustomer),
			page("docs.pdf", 3, models.DocTypeCustomer),
		},
	}

	got := BuildSegments(b)
	want := []Segment{
		{SourcePath: "docs.pdf", Pages: []int{0, 1}},
		{SourcePath: "other.pdf", Pages: []int{0}},
		{SourcePath: "docs.pdf", Pages: []int{3}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildSegments() = %+v, want %+v", got, want)
	}
}

func TestBuildSegments_Deterministic(t *testing.T) {
	b := &models.ClientBundle{
		Reference: "000/527/962",
		Pages: []models.PageAttribution{
			page("arrival.pdf", 1, models.DocTypeArrival),
			page("docs.pdf", 0, models.DocTypeCustomer),
		},
	}

	first := BuildSegments(b)
	second := BuildSegments(b)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("BuildSegments() not deterministic: %+v vs %+v", first, second)
	}
}

func TestBuildSegments_EmptyBundle(t *testing.T) {
	b := &models.ClientBundle{Reference: "000/527/962"}
	if got := BuildSegments(b); len(got) != 0 {
		t.Errorf("BuildSegments() = %+v, want empty plan", got)
	}
}

func TestPageSelection(t *testing.T) {
	got := pageSelection([]int{0, 4, 2})
	want := []string{"1", "5", "3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("pageSelection() = %v, want %v (1-based, order preserved)", got, want)
	}
}
