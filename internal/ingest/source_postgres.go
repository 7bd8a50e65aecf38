package ingest

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"cetpredict/internal"
)

// LoadPostgres reads raw rows from the extraction collaborator's staging
// table, for deployments where extraction lands in Postgres instead of files.
func LoadPostgres(ctx context.Context, dsn string) ([]internal.RawRow, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	rows, err := pool.Query(ctx, `SELECT * FROM raw_cutoffs`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []internal.RawRow{}
	rowNo := 0
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}

		rowNo++
		fields := make(map[string]string, len(values))
		for i, desc := range rows.FieldDescriptions() {
			if values[i] == nil {
				continue
			}
			fields[string(desc.Name)] = fmt.Sprint(values[i])
		}
		out = append(out, internal.RawRow{
			Course: fields["course"],
			Source: internal.SourcePostgres,
			RowID:  fmt.Sprintf("raw_cutoffs:%d", rowNo),
			Fields: fields,
		})
	}
	return out, rows.Err()
}
