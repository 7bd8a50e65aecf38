package internal

type RowSource string

const (
	SourceCSV       RowSource = "csv"
	SourceXLSX      RowSource = "xlsx"
	SourceHTMLTable RowSource = "html_table"
	SourceSQLite    RowSource = "sqlite"
	SourcePostgres  RowSource = "postgres"
)

// RawRow is one extracted table row as handed over by the upstream
// extraction collaborator. Field names vary per course schema.
type RawRow struct {
	Course string
	Source RowSource
	RowID  string
	Fields map[string]string
}

// CutoffRecord is the canonical form of one published cutoff: the worst
// rank admitted at (course, college, branch, category) in the latest round.
type CutoffRecord struct {
	Course      string
	CollegeCode string
	CollegeName string
	BranchCode  string
	BranchName  string
	Category    string
	CutoffRank  int
}

type BranchOffering struct {
	BranchCode string `json:"branch_code"`
	BranchName string `json:"branch_name,omitempty"`
	CutoffRank int    `json:"cutoff_rank"`
}

// CollegeRow is one flat result row for branch-supplied queries.
type CollegeRow struct {
	CollegeCode string `json:"college_code"`
	CollegeName string `json:"college_name"`
	BranchCode  string `json:"branch_code"`
	BranchName  string `json:"branch_name,omitempty"`
	CutoffRank  int    `json:"cutoff_rank"`
}

// CollegeGroup is one grouped result row for branch-omitted queries.
type CollegeGroup struct {
	CollegeCode string           `json:"college_code"`
	CollegeName string           `json:"college_name"`
	Branches    []BranchOffering `json:"branches"`
}

type RowRejection struct {
	RowID  string `json:"rowId"`
	Source string `json:"source"`
	Reason string `json:"reason"`
}

// IngestReport summarizes one ingestion batch. Accepted counts rows that
// survived normalization before duplicate collapsing, so
// Accepted+Rejected == Total always holds.
type IngestReport struct {
	Total      int            `json:"total"`
	Accepted   int            `json:"accepted"`
	Rejected   int            `json:"rejected"`
	Collapsed  int            `json:"collapsed"`
	Rejections []RowRejection `json:"rejections"`
}
