package ingest

import "strings"

// courseSchema declares one per-course raw-row variant: which course tags map
// to it and which field names its rows use for each canonical column. Every
// variant funnels through the same validation in normalize.go; there is no
// ad hoc field probing outside this table.
type courseSchema struct {
	course      string
	aliases     []string
	collegeCode []string
	collegeName []string
	branchCode  []string
	category    []string
	cutoffRank  []string
}

var schemas = []courseSchema{
	{
		course:      "engineering",
		aliases:     []string{"ENGG", "ENG", "ENGINEERING"},
		collegeCode: []string{"college_code", "clg_code", "code"},
		collegeName: []string{"college_name", "college", "clg_name"},
		branchCode:  []string{"branch_code", "branch", "course_code"},
		category:    []string{"category", "cat"},
		cutoffRank:  []string{"cutoff_rank", "cutoff", "closing_rank"},
	},
	{
		course:      "pharmacy",
		aliases:     []string{"PHARMA", "BPHARM", "PHARMACY"},
		collegeCode: []string{"institute_code", "college_code", "code"},
		collegeName: []string{"institute_name", "college_name", "institute"},
		branchCode:  []string{"programme_code", "branch_code", "branch"},
		category:    []string{"category", "cat"},
		cutoffRank:  []string{"cutoff_rank", "last_rank", "closing_rank"},
	},
	{
		course:      "nursing",
		aliases:     []string{"BSCNURS", "NURS", "NURSING"},
		collegeCode: []string{"college_code", "school_code", "code"},
		collegeName: []string{"college_name", "school_name"},
		branchCode:  []string{"branch_code", "programme", "branch"},
		category:    []string{"category", "quota"},
		cutoffRank:  []string{"cutoff_rank", "last_admitted_rank", "cutoff"},
	},
	{
		course:      "agriculture",
		aliases:     []string{"AGRI", "AG", "AGRICULTURE"},
		collegeCode: []string{"college_code", "farm_univ_code", "code"},
		collegeName: []string{"college_name", "university_name"},
		branchCode:  []string{"branch_code", "discipline_code", "branch"},
		category:    []string{"category", "cat"},
		cutoffRank:  []string{"cutoff_rank", "closing_rank", "cutoff"},
	},
}

// schemaFor resolves a raw course tag (canonical name or source-file alias)
// to its schema variant.
func schemaFor(tag string) (courseSchema, bool) {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	for _, s := range schemas {
		if strings.ToUpper(s.course) == tag {
			return s, true
		}
		for _, alias := range s.aliases {
			if alias == tag {
				return s, true
			}
		}
	}
	return courseSchema{}, false
}

// pickField returns the first of the accepted field names present and
// non-blank in the row.
func pickField(fields map[string]string, names []string) (string, bool) {
	for _, name := range names {
		if v, ok := fields[name]; ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

func normalizeFieldKeys(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}
