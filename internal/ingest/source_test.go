package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"cetpredict/internal"
)

func TestCourseFromFilename(t *testing.T) {
	cases := map[string]string{
		"ENGG_CUTOFF_2024_r1.csv":  "ENGG",
		"PHARMA_CUTOFF_2024.xlsx":  "PHARMA",
		"agri.csv":                 "agri",
		"/tmp/BSCNURS_r1_gen.html": "BSCNURS",
	}
	for path, want := range cases {
		if got := CourseFromFilename(path); got != want {
			t.Fatalf("%s: expected %q, got %q", path, want, got)
		}
	}
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ENGG_CUTOFF_2024_r1.csv")
	content := "college_code,college_name,branch_code,category,cutoff_rank\n" +
		"E001,Example Inst.,CS,GM,5000\n" +
		"E002,Other Inst.,CS,GM,3000\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rows, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	first := rows[0]
	if first.Course != "ENGG" || first.Source != internal.SourceCSV {
		t.Fatalf("unexpected row: %+v", first)
	}
	if first.Fields["college_code"] != "E001" || first.Fields["cutoff_rank"] != "5000" {
		t.Fatalf("unexpected fields: %+v", first.Fields)
	}
	if first.RowID == "" {
		t.Fatal("expected row identifier")
	}
}

func TestLoadXLSX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "PHARMA_CUTOFF_2024_r1.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []string{"institute_code", "institute_name", "programme_code", "category", "last_rank"}
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	values := []string{"P010", "Pharma College", "PH", "2A", "1200"}
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheet, cell, v)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	rows, err := LoadXLSX(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Course != "PHARMA" || rows[0].Fields["last_rank"] != "1200" {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
}

func TestLoadHTML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ENGG_CUTOFF_2024_r1.html")
	content := `<html><body><table>
<tr><th>college_code</th><th>college_name</th><th>branch_code</th><th>category</th><th>cutoff_rank</th></tr>
<tr><td>E001</td><td>Example Inst.</td><td>CS</td><td>GM</td><td>5000</td></tr>
<tr><td>E001</td><td>Example Inst.</td><td>EC</td><td>GM</td><td>8000</td></tr>
</table></body></html>`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rows, err := LoadHTML(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1].Fields["branch_code"] != "EC" || rows[1].Source != internal.SourceHTMLTable {
		t.Fatalf("unexpected row: %+v", rows[1])
	}
}

func TestLoadDirSkipsUnknownExtensions(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "ENGG_CUTOFF_2024_r1.csv")
	content := "college_code,college_name,branch_code,category,cutoff_rank\nE001,Example Inst.,CS,GM,5000\n"
	if err := os.WriteFile(csvPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644); err != nil {
		t.Fatal(err)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)

	rows, err := LoadDir(context.Background(), dir, log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
}
