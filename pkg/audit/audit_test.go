package audit

import (
	"strings"
	"testing"
	"time"

	"github.com/dtnitsch/shipment-dossier/models"
)

// pagedDoc serves one string per page.
type pagedDoc []string

func (d pagedDoc) PageCount() int { return len(d) }

func (d pagedDoc) PageText(pageIndex int) (string, error) { return d[pageIndex], nil }

func defaultScanner() *Scanner {
	return NewScanner(models.DefaultRules().AuditKeywords)
}

func TestScan_StartsAtPageThirteen(t *testing.T) {
	// Keyword on every page; only pages 13 and 14 (1-based) may alert.
	doc := make(pagedDoc, 14)
	for i := range doc {
		doc[i] = "import duty payable"
	}

	alerts := defaultScanner().Scan(doc)
	if len(alerts) != 2 {
		t.Fatalf("Scan() produced %d alerts, want 2", len(alerts))
	}
	if alerts[0].PageNumber != 13 || alerts[1].PageNumber != 14 {
		t.Errorf("alert pages = %d, %d, want 13, 14", alerts[0].PageNumber, alerts[1].PageNumber)
	}
}

func TestScan_TwelvePageDossierHasNoAlerts(t *testing.T) {
	doc := make(pagedDoc, 12)
	for i := range doc {
		doc[i] = "vat customs duty excise"
	}

	if alerts := defaultScanner().Scan(doc); len(alerts) != 0 {
		t.Errorf("Scan() produced %d alerts for a 12-page dossier, want 0", len(alerts))
	}
}

func TestScanPage_FirstHitPerKeyword(t *testing.T) {
	text := "Duty is due. The duty office collects duty at the border. Also VAT applies."
	alerts := defaultScanner().ScanPage(text, 13)

	var keywords []string
	for _, a := range alerts {
		keywords = append(keywords, a.Keyword)
		if a.PageNumber != 13 {
			t.Errorf("PageNumber = %d, want 13", a.PageNumber)
		}
	}

	// One alert per keyword even with three occurrences of "duty".
	want := map[string]bool{"duty": true, "vat": true}
	if len(alerts) != len(want) {
		t.Fatalf("ScanPage() keywords = %v, want one each of duty and vat", keywords)
	}
	for _, kw := range keywords {
		if !want[kw] {
			t.Errorf("unexpected keyword %q", kw)
		}
	}
}

func TestScanPage_CaseInsensitive(t *testing.T) {
	alerts := defaultScanner().ScanPage("HMRC correspondence enclosed", 13)
	if len(alerts) != 1 || alerts[0].Keyword != "hmrc" {
		t.Fatalf("ScanPage() = %+v, want lowercase hmrc alert", alerts)
	}
}

func TestContextSnippet(t *testing.T) {
	words := []string{
		"one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"DUTY", "alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta", "iota",
	}
	text := strings.Join(words, " ")

	alerts := defaultScanner().ScanPage(text, 13)
	if len(alerts) != 1 {
		t.Fatalf("ScanPage() produced %d alerts, want 1", len(alerts))
	}

	snippet := alerts[0].ContextSnippet
	fields := strings.Fields(snippet)
	if len(fields) != 17 { // 8 before + hit + 8 after
		t.Errorf("snippet has %d words, want 17: %q", len(fields), snippet)
	}
	if fields[0] != "two" || fields[8] != "DUTY" || fields[16] != "theta" {
		t.Errorf("snippet window wrong: %q", snippet)
	}
}

func TestContextSnippet_ExpandsPartialWord(t *testing.T) {
	alerts := defaultScanner().ScanPage("standard taxation rules apply", 13)
	if len(alerts) != 1 {
		t.Fatalf("ScanPage() produced %d alerts, want 1", len(alerts))
	}
	if !strings.Contains(alerts[0].ContextSnippet, "taxation") {
		t.Errorf("snippet = %q, want containing word expanded", alerts[0].ContextSnippet)
	}
}

func TestCompressionTracker(t *testing.T) {
	tracker := NewCompressionTracker()
	tracker.Record(CompressionEntry{
		ClientName: "Jane Doe",
		Reference:  "000/527/962",
		Filename:   "Jane Doe_000_527_962.pdf",
		Outcome: models.OptimizeOutcome{
			Optimized:      true,
			OriginalSizeMB: 4.0,
			FinalSizeMB:    2.0,
			SavingsMB:      2.0,
		},
	})
	tracker.Record(CompressionEntry{
		ClientName: "John Smith",
		Reference:  "000/527/963",
		Outcome: models.OptimizeOutcome{
			Optimized:      true,
			OriginalSizeMB: 2.0,
			FinalSizeMB:    1.0,
			SavingsMB:      1.0,
		},
	})
	tracker.Record(CompressionEntry{
		ClientName: "Ana Silva",
		Reference:  "111/222/333",
		Outcome: models.OptimizeOutcome{
			Reason:         "file already under target size",
			OriginalSizeMB: 0.5,
			FinalSizeMB:    0.5,
		},
	})

	stats := tracker.Stats()
	if stats.FilesOptimized != 2 {
		t.Errorf("FilesOptimized = %d, want 2 (skip not counted)", stats.FilesOptimized)
	}
	if stats.TotalSavingsMB != 3.0 {
		t.Errorf("TotalSavingsMB = %v, want 3.0", stats.TotalSavingsMB)
	}
	if stats.AverageCompressionRatio != 2.0 { // (4+2)/(2+1)
		t.Errorf("AverageCompressionRatio = %v, want 2.0", stats.AverageCompressionRatio)
	}

	entries := tracker.Entries()
	if entries[0].ClientName != "Jane Doe" {
		t.Errorf("Entries()[0] = %s, want largest savings first", entries[0].ClientName)
	}
}

func TestCompressionTracker_Empty(t *testing.T) {
	stats := NewCompressionTracker().Stats()
	if stats.FilesOptimized != 0 || stats.AverageCompressionRatio != 0 {
		t.Errorf("Stats() on empty tracker = %+v, want zeros", stats)
	}
}

func TestTopKeywords(t *testing.T) {
	totals := map[string]int{"duty": 5, "vat": 5, "customs": 2, "hmrc": 1}

	got := TopKeywords(totals, 3)
	want := []string{"duty:5", "vat:5", "customs:2"}
	if len(got) != len(want) {
		t.Fatalf("TopKeywords() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TopKeywords()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildTaxAlertReport(t *testing.T) {
	groups := []models.ClientAlerts{
		{
			ClientName: "Jane Doe",
			ClientRef:  "000/527/962",
			Alerts: []models.KeywordAlert{
				{Keyword: "duty", PageNumber: 14, ContextSnippet: "import duty payable on arrival"},
			},
		},
		{ClientName: "John Smith", ClientRef: "000/527/963"},
	}

	report := BuildTaxAlertReport("job-7", groups, time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC))

	for _, want := range []string{"Tax Alert Report", "job-7", "Jane Doe (000/527/962)", "page 14", "duty:1"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
	if strings.Contains(report, "John Smith") {
		t.Error("report lists a client with no alerts")
	}
}

func TestBuildTaxAlertReport_Empty(t *testing.T) {
	report := BuildTaxAlertReport("", nil, time.Now())
	if !strings.Contains(report, "No flagged keywords found.") {
		t.Errorf("empty report = %q, want explicit no-findings line", report)
	}
}

func TestBuildCompressionReport(t *testing.T) {
	entries := []CompressionEntry{
		{
			ClientName: "Jane Doe",
			Reference:  "000/527/962",
			Filename:   "Jane Doe_000_527_962.pdf",
			Outcome: models.OptimizeOutcome{
				Optimized:        true,
				OriginalSizeMB:   4.0,
				FinalSizeMB:      2.0,
				SavingsMB:        2.0,
				CompressionRatio: 2.0,
			},
		},
		{
			ClientName: "Ana Silva",
			Reference:  "111/222/333",
			Filename:   "Ana Silva_111_222_333.pdf",
			Outcome: models.OptimizeOutcome{
				Reason:         "file already under target size",
				OriginalSizeMB: 0.5,
				FinalSizeMB:    0.5,
			},
		},
	}
	stats := models.OptimizationStats{FilesOptimized: 1, TotalSavingsMB: 2.0, AverageCompressionRatio: 2.0}

	report := BuildCompressionReport("", entries, stats, time.Now())

	for _, want := range []string{"Compression Report", "4.00 MB -> 2.00 MB", "file already under target size", "Files optimized: 1"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}
