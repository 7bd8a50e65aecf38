package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"cetpredict/internal"
	"cetpredict/internal/branchmap"
)

// RowError is one malformed raw row. It is aggregated into the batch report
// and never aborts the batch.
type RowError struct {
	RowID  string
	Source internal.RowSource
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %s (%s): %s", e.RowID, e.Source, e.Reason)
}

// Placeholder rank cells as published in the source tables. These mark a
// category with no admitted candidate and are rejected, never defaulted.
var rankPlaceholders = map[string]struct{}{
	"":    {},
	"-":   {},
	"--":  {},
	"–":   {},
	"NA":  {},
	"N/A": {},
}

type Normalizer struct {
	branches *branchmap.Map
}

func NewNormalizer(branches *branchmap.Map) *Normalizer {
	return &Normalizer{branches: branches}
}

// Row converts one raw extracted row into a canonical CutoffRecord, or
// rejects it with a *RowError.
func (n *Normalizer) Row(row internal.RawRow) (internal.CutoffRecord, error) {
	schema, ok := schemaFor(row.Course)
	if !ok {
		return internal.CutoffRecord{}, n.reject(row, fmt.Sprintf("unknown course tag %q", row.Course))
	}

	fields := normalizeFieldKeys(row.Fields)

	collegeCode, ok := pickField(fields, schema.collegeCode)
	if !ok {
		return internal.CutoffRecord{}, n.reject(row, "missing college code")
	}
	collegeName, ok := pickField(fields, schema.collegeName)
	if !ok {
		return internal.CutoffRecord{}, n.reject(row, "missing college name")
	}
	branchCode, ok := pickField(fields, schema.branchCode)
	if !ok {
		return internal.CutoffRecord{}, n.reject(row, "missing branch code")
	}
	category, ok := pickField(fields, schema.category)
	if !ok {
		return internal.CutoffRecord{}, n.reject(row, "missing category")
	}
	rankRaw, _ := pickField(fields, schema.cutoffRank)
	rank, err := parseRank(rankRaw)
	if err != nil {
		return internal.CutoffRecord{}, n.reject(row, err.Error())
	}

	branchCode = strings.ToUpper(branchCode)
	return internal.CutoffRecord{
		Course:      schema.course,
		CollegeCode: strings.ToUpper(collegeCode),
		CollegeName: collegeName,
		BranchCode:  branchCode,
		BranchName:  n.branches.Name(branchCode),
		Category:    strings.ToUpper(category),
		CutoffRank:  rank,
	}, nil
}

// Batch normalizes a whole raw batch. Duplicate
// (course, college, branch, category) keys keep the maximum cutoff_rank,
// reflecting admission widening across rounds.
func (n *Normalizer) Batch(rows []internal.RawRow) ([]internal.CutoffRecord, internal.IngestReport) {
	report := internal.IngestReport{Total: len(rows)}

	records := make([]internal.CutoffRecord, 0, len(rows))
	byKey := map[string]int{}
	for _, row := range rows {
		rec, err := n.Row(row)
		if err != nil {
			report.Rejected++
			rowErr := err.(*RowError)
			report.Rejections = append(report.Rejections, internal.RowRejection{
				RowID:  rowErr.RowID,
				Source: string(rowErr.Source),
				Reason: rowErr.Reason,
			})
			continue
		}
		report.Accepted++

		key := rec.Course + "|" + rec.CollegeCode + "|" + rec.BranchCode + "|" + rec.Category
		if i, seen := byKey[key]; seen {
			report.Collapsed++
			if rec.CutoffRank > records[i].CutoffRank {
				records[i] = rec
			}
			continue
		}
		byKey[key] = len(records)
		records = append(records, rec)
	}

	return records, report
}

func (n *Normalizer) reject(row internal.RawRow, reason string) error {
	return &RowError{RowID: row.RowID, Source: row.Source, Reason: reason}
}

func parseRank(raw string) (int, error) {
	cleaned := strings.TrimSpace(raw)
	if _, placeholder := rankPlaceholders[strings.ToUpper(cleaned)]; placeholder {
		return 0, fmt.Errorf("placeholder cutoff rank %q", raw)
	}
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	rank, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, fmt.Errorf("non-numeric cutoff rank %q", raw)
	}
	if rank <= 0 {
		return 0, fmt.Errorf("non-positive cutoff rank %d", rank)
	}
	return rank, nil
}
