package cutoff

import (
	"strings"

	"cetpredict/internal"
)

// Engine answers eligibility queries against the active generation. It only
// reads, so any number of queries may run concurrently with a rebuild.
type Engine struct {
	store         *Store
	defaultCourse string
}

func NewEngine(store *Store, defaultCourse string) *Engine {
	return &Engine{store: store, defaultCourse: strings.ToLower(strings.TrimSpace(defaultCourse))}
}

// PredictBranch runs the branch-supplied query: one flat row per eligible
// (college, branch) pair, cutoff_rank ascending, college_code breaking ties.
func (e *Engine) PredictBranch(rank int, course, category, branch string) ([]internal.CollegeRow, error) {
	idx, err := e.store.Current()
	if err != nil {
		return nil, err
	}

	course, category, err = e.validate(idx, rank, course, category)
	if err != nil {
		return nil, err
	}
	branch = strings.ToUpper(strings.TrimSpace(branch))
	if !idx.HasBranch(course, branch) {
		return nil, invalidQuery("branch", branch)
	}

	out := []internal.CollegeRow{}
	for _, r := range idx.ByCourseCategoryBranch(course, category, branch) {
		if rank > r.CutoffRank {
			continue
		}
		out = append(out, internal.CollegeRow{
			CollegeCode: r.CollegeCode,
			CollegeName: r.CollegeName,
			BranchCode:  r.BranchCode,
			BranchName:  r.BranchName,
			CutoffRank:  r.CutoffRank,
		})
	}
	return out, nil
}

// Predict runs the branch-omitted query: one grouped row per eligible
// college, colleges in order of first appearance in the cutoff-sorted record
// list, branches within a college ascending by cutoff_rank.
func (e *Engine) Predict(rank int, course, category string) ([]internal.CollegeGroup, error) {
	idx, err := e.store.Current()
	if err != nil {
		return nil, err
	}

	course, category, err = e.validate(idx, rank, course, category)
	if err != nil {
		return nil, err
	}

	out := []internal.CollegeGroup{}
	groupIdx := map[string]int{}
	for _, r := range idx.ByCourseCategory(course, category) {
		if rank > r.CutoffRank {
			continue
		}
		i, ok := groupIdx[r.CollegeCode]
		if !ok {
			i = len(out)
			groupIdx[r.CollegeCode] = i
			out = append(out, internal.CollegeGroup{
				CollegeCode: r.CollegeCode,
				CollegeName: r.CollegeName,
			})
		}
		out[i].Branches = append(out[i].Branches, internal.BranchOffering{
			BranchCode: r.BranchCode,
			BranchName: r.BranchName,
			CutoffRank: r.CutoffRank,
		})
	}
	return out, nil
}

func (e *Engine) validate(idx *Index, rank int, course, category string) (string, string, error) {
	if rank <= 0 {
		return "", "", invalidQuery("rank", "")
	}

	course, err := e.resolveCourse(idx, course)
	if err != nil {
		return "", "", err
	}

	category = strings.ToUpper(strings.TrimSpace(category))
	if category == "" || !idx.HasCategory(course, category) {
		return "", "", invalidQuery("category", category)
	}
	return course, category, nil
}

// resolveCourse defaults an empty course only when the deployment serves
// exactly one course, either pinned by configuration or inferred from the
// generation. Anything else is the caller's error.
func (e *Engine) resolveCourse(idx *Index, course string) (string, error) {
	course = strings.ToLower(strings.TrimSpace(course))
	if course == "" {
		if e.defaultCourse != "" {
			course = e.defaultCourse
		} else if len(idx.DistinctCourses()) == 1 {
			course = idx.DistinctCourses()[0]
		}
	}
	if course == "" || !idx.HasCourse(course) {
		return "", invalidQuery("course", course)
	}
	return course, nil
}
