package tabular

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ReadHTML loads the first <table> of an HTML document. Some EDI portals
// export their "Excel" reports as HTML tables with an .xls-ish name;
// header cells may be <th> or a leading <td> row.
func ReadHTML(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open html: %w", err)
	}
	defer f.Close()

	return readHTML(f)
}

func readHTML(r io.Reader) (*Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no table element found")
	}

	out := &Table{}
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		var cells []string
		row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) == 0 {
			return
		}
		if out.Headers == nil {
			out.Headers = cells
			return
		}
		out.Rows = append(out.Rows, cells)
	})
	return out, nil
}
