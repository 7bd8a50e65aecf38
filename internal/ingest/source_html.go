package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"cetpredict/internal"
)

// LoadHTML reads cutoff tables from an HTML artifact. Each <table> is walked
// independently; its first row supplies the field names.
func LoadHTML(path string) ([]internal.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, err
	}

	course := CourseFromFilename(path)
	base := filepath.Base(path)

	var out []internal.RawRow
	doc.Find("table").Each(func(tableNo int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return
		}

		header := []string{}
		rows.First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			header = append(header, strings.TrimSpace(cell.Text()))
		})

		rows.Slice(1, rows.Length()).Each(func(rowNo int, row *goquery.Selection) {
			cells := []string{}
			row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, strings.TrimSpace(cell.Text()))
			})
			if len(cells) == 0 {
				return
			}
			out = append(out, internal.RawRow{
				Course: course,
				Source: internal.SourceHTMLTable,
				RowID:  fmt.Sprintf("%s:t%d:%d", base, tableNo+1, rowNo+2),
				Fields: cellsToFields(header, cells),
			})
		})
	})

	return out, nil
}
