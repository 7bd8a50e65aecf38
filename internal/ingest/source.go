package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"cetpredict/internal"
)

// CourseFromFilename derives the raw course tag from the first
// underscore-separated token of the file name, the convention the extraction
// collaborator uses (e.g. ENGG_CUTOFF_2024_r1.csv → ENGG). The tag is
// validated later by the normalizer.
func CourseFromFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if i := strings.Index(base, "_"); i > 0 {
		return base[:i]
	}
	return base
}

// LoadDir reads every recognized artifact in dir into raw rows. Unknown
// extensions are skipped; a single unreadable file fails the batch since it
// usually means a truncated handover.
func LoadDir(ctx context.Context, dir string, log *logrus.Logger) ([]internal.RawRow, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var rows []internal.RawRow
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		var (
			loaded []internal.RawRow
			lerr   error
		)
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".csv":
			loaded, lerr = LoadCSV(path)
		case ".xlsx":
			loaded, lerr = LoadXLSX(path)
		case ".html", ".htm":
			loaded, lerr = LoadHTML(path)
		case ".db", ".sqlite":
			loaded, lerr = LoadSQLite(ctx, path)
		default:
			log.Debugf("skipping %s: unrecognized extension", entry.Name())
			continue
		}
		if lerr != nil {
			return nil, fmt.Errorf("load %s: %w", entry.Name(), lerr)
		}
		log.WithFields(logrus.Fields{"file": entry.Name(), "rows": len(loaded)}).Debug("loaded source file")
		rows = append(rows, loaded...)
	}
	return rows, nil
}

// LoadCSV reads one per-course CSV. The first record is the header; each
// following record becomes a field map keyed by header cell.
func LoadCSV(path string) ([]internal.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	all, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}

	course := CourseFromFilename(path)
	base := filepath.Base(path)
	header := all[0]

	out := make([]internal.RawRow, 0, len(all)-1)
	for i, record := range all[1:] {
		out = append(out, internal.RawRow{
			Course: course,
			Source: internal.SourceCSV,
			RowID:  fmt.Sprintf("%s:%d", base, i+2),
			Fields: cellsToFields(header, record),
		})
	}
	return out, nil
}

func cellsToFields(header, cells []string) map[string]string {
	fields := make(map[string]string, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" || i >= len(cells) {
			continue
		}
		fields[h] = strings.TrimSpace(cells[i])
	}
	return fields
}
