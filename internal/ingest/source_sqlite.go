package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"

	"cetpredict/internal"
)

// LoadSQLite reads the extraction collaborator's sqlite snapshot. The
// raw_cutoffs table carries a course column plus whatever per-course columns
// the source tables had; every column lands in the field map as text.
func LoadSQLite(ctx context.Context, path string) ([]internal.RawRow, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT * FROM raw_cutoffs`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	base := filepath.Base(path)
	out := []internal.RawRow{}
	rowNo := 0
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		rowNo++
		fields := make(map[string]string, len(columns))
		for i, col := range columns {
			if values[i].Valid {
				fields[col] = values[i].String
			}
		}
		out = append(out, internal.RawRow{
			Course: fields["course"],
			Source: internal.SourceSQLite,
			RowID:  fmt.Sprintf("%s:%d", base, rowNo),
			Fields: fields,
		})
	}
	return out, rows.Err()
}
