package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"cetpredict/internal"
)

// LoadXLSX reads one per-course workbook. Every sheet is walked; the first
// non-empty row of each sheet is its header.
func LoadXLSX(path string) ([]internal.RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	course := CourseFromFilename(path)
	base := filepath.Base(path)

	var out []internal.RawRow
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}

		var header []string
		for i, cells := range rows {
			if emptyRow(cells) {
				continue
			}
			if header == nil {
				header = cells
				continue
			}
			out = append(out, internal.RawRow{
				Course: course,
				Source: internal.SourceXLSX,
				RowID:  fmt.Sprintf("%s:%s:%d", base, sheet, i+1),
				Fields: cellsToFields(header, cells),
			})
		}
	}
	return out, nil
}

func emptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
