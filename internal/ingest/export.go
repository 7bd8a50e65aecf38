package ingest

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"cetpredict/internal"
)

// ExportReportToXLSX writes the batch ingestion report for upstream review:
// a summary block followed by one row per rejection.
func ExportReportToXLSX(report internal.IngestReport, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	set := func(col, row int, value any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, value)
	}

	set(1, 1, "total")
	set(2, 1, report.Total)
	set(1, 2, "accepted")
	set(2, 2, report.Accepted)
	set(1, 3, "rejected")
	set(2, 3, report.Rejected)
	set(1, 4, "collapsed")
	set(2, 4, report.Collapsed)

	headers := []string{"row_id", "source", "reason"}
	for i, h := range headers {
		set(i+1, 6, h)
	}
	for i, rej := range report.Rejections {
		set(1, i+7, rej.RowID)
		set(2, i+7, rej.Source)
		set(3, i+7, rej.Reason)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
