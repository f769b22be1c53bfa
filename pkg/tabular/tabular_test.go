package tabular

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestHeaderIndex(t *testing.T) {
	table := &Table{Headers: []string{"Consignees Reference", " Consignees Name ", "Weight"}}

	tests := []struct {
		name    string
		aliases []string
		want    int
	}{
		{"exact match", []string{"Consignees Reference"}, 0},
		{"case insensitive", []string{"consignees reference"}, 0},
		{"alias fallback", []string{"ref", "consignees name"}, 1},
		{"trimmed header", []string{"Consignees Name"}, 1},
		{"missing", []string{"Vessel"}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.HeaderIndex(tt.aliases...); got != tt.want {
				t.Errorf("HeaderIndex(%v) = %d, want %d", tt.aliases, got, tt.want)
			}
		})
	}
}

func TestCell_ShortRow(t *testing.T) {
	row := []string{"000/527/962"}
	if got := Cell(row, 1); got != "" {
		t.Errorf("Cell() past row end = %q, want empty", got)
	}
	if got := Cell(row, 0); got != "000/527/962" {
		t.Errorf("Cell() = %q, want %q", got, "000/527/962")
	}
}

func TestReadCSV(t *testing.T) {
	input := "ConsigneeRef,FullName\n000/527/962,Jane Doe\n123/456/789,John Smith\n"
	table, err := readCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("readCSV() error = %v", err)
	}

	if len(table.Headers) != 2 || table.Headers[0] != "ConsigneeRef" {
		t.Errorf("Headers = %v, want [ConsigneeRef FullName]", table.Headers)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2", len(table.Rows))
	}
	if table.Rows[1][1] != "John Smith" {
		t.Errorf("Rows[1][1] = %q, want %q", table.Rows[1][1], "John Smith")
	}
}

func TestReadHTML(t *testing.T) {
	input := `<html><body>
<p>EDI Export 2025-11-03</p>
<table>
  <tr><th>Reference</th><th>Name</th></tr>
  <tr><td> 000-527-962 </td><td>Jane Doe</td></tr>
  <tr><td>123-456-789</td><td>John Smith</td></tr>
</table>
</body></html>`

	table, err := readHTML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("readHTML() error = %v", err)
	}

	if len(table.Headers) != 2 || table.Headers[0] != "Reference" {
		t.Errorf("Headers = %v, want [Reference Name]", table.Headers)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2", len(table.Rows))
	}
	if table.Rows[0][0] != "000-527-962" {
		t.Errorf("Rows[0][0] = %q, want trimmed %q", table.Rows[0][0], "000-527-962")
	}
}

func TestReadHTML_NoTable(t *testing.T) {
	if _, err := readHTML(strings.NewReader("<html><body><p>nothing</p></body></html>")); err == nil {
		t.Error("readHTML() without table error = nil, want error")
	}
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edi.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := map[string]string{
		"A1": "Consignees Reference", "B1": "Consignees Name",
		"A2": "000-527-962", "B2": "Jane Doe",
		"A3": "123-456-789", "B3": "John Smith",
	}
	for ref, val := range cells {
		if err := f.SetCellValue(sheet, ref, val); err != nil {
			t.Fatalf("SetCellValue(%s) error = %v", ref, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	f.Close()

	table, err := ReadXLSX(path)
	if err != nil {
		t.Fatalf("ReadXLSX() error = %v", err)
	}
	if len(table.Headers) != 2 || table.Headers[1] != "Consignees Name" {
		t.Errorf("Headers = %v, want [Consignees Reference Consignees Name]", table.Headers)
	}
	if len(table.Rows) != 2 || table.Rows[0][0] != "000-527-962" {
		t.Errorf("Rows = %v, want two data rows", table.Rows)
	}
}

func TestReadFile_UnsupportedExtension(t *testing.T) {
	if _, err := ReadFile("manifest.pdf"); err == nil {
		t.Error("ReadFile(.pdf) error = nil, want unsupported format error")
	}
}
