package cutoff

import (
	"sort"

	"cetpredict/internal"
)

// Index is one immutable generation built from a full record batch. Both
// keyings and all distinct-value catalogues are computed once here; after
// BuildIndex returns nothing is ever mutated, so concurrent readers need no
// locking. Callers must not modify returned slices.
type Index struct {
	records []internal.CutoffRecord

	byCourseCategory       map[string][]internal.CutoffRecord
	byCourseCategoryBranch map[string][]internal.CutoffRecord

	courses            []string
	categoriesByCourse map[string][]string
	branchesByCourse   map[string][]string
}

func key2(course, category string) string {
	return course + "|" + category
}

func key3(course, category, branch string) string {
	return course + "|" + category + "|" + branch
}

func BuildIndex(records []internal.CutoffRecord) *Index {
	sorted := make([]internal.CutoffRecord, len(records))
	copy(sorted, records)
	// One sort serves both keyings: within any (course, category) or
	// (course, category, branch) bucket the order is cutoff_rank ascending,
	// college_code then branch_code breaking ties.
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Course != b.Course {
			return a.Course < b.Course
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.CutoffRank != b.CutoffRank {
			return a.CutoffRank < b.CutoffRank
		}
		if a.CollegeCode != b.CollegeCode {
			return a.CollegeCode < b.CollegeCode
		}
		return a.BranchCode < b.BranchCode
	})

	idx := &Index{
		records:                sorted,
		byCourseCategory:       map[string][]internal.CutoffRecord{},
		byCourseCategoryBranch: map[string][]internal.CutoffRecord{},
		categoriesByCourse:     map[string][]string{},
		branchesByCourse:       map[string][]string{},
	}

	courseSet := map[string]struct{}{}
	categorySets := map[string]map[string]struct{}{}
	branchSets := map[string]map[string]struct{}{}

	for _, r := range sorted {
		idx.byCourseCategory[key2(r.Course, r.Category)] = append(idx.byCourseCategory[key2(r.Course, r.Category)], r)
		idx.byCourseCategoryBranch[key3(r.Course, r.Category, r.BranchCode)] = append(idx.byCourseCategoryBranch[key3(r.Course, r.Category, r.BranchCode)], r)

		courseSet[r.Course] = struct{}{}
		addToSet(categorySets, r.Course, r.Category)
		addToSet(branchSets, r.Course, r.BranchCode)
	}

	idx.courses = sortedKeys(courseSet)
	for course, set := range categorySets {
		idx.categoriesByCourse[course] = sortedKeys(set)
	}
	for course, set := range branchSets {
		idx.branchesByCourse[course] = sortedKeys(set)
	}

	return idx
}

func (idx *Index) Len() int {
	return len(idx.records)
}

func (idx *Index) ByCourseCategory(course, category string) []internal.CutoffRecord {
	return idx.byCourseCategory[key2(course, category)]
}

func (idx *Index) ByCourseCategoryBranch(course, category, branch string) []internal.CutoffRecord {
	return idx.byCourseCategoryBranch[key3(course, category, branch)]
}

func (idx *Index) DistinctCourses() []string {
	return idx.courses
}

func (idx *Index) DistinctCategories(course string) []string {
	return idx.categoriesByCourse[course]
}

func (idx *Index) DistinctBranches(course string) []string {
	return idx.branchesByCourse[course]
}

func (idx *Index) HasCourse(course string) bool {
	_, ok := idx.categoriesByCourse[course]
	return ok
}

func (idx *Index) HasCategory(course, category string) bool {
	_, ok := idx.byCourseCategory[key2(course, category)]
	return ok
}

func (idx *Index) HasBranch(course, branch string) bool {
	for _, b := range idx.branchesByCourse[course] {
		if b == branch {
			return true
		}
	}
	return false
}

func addToSet(sets map[string]map[string]struct{}, course, value string) {
	if _, ok := sets[course]; !ok {
		sets[course] = map[string]struct{}{}
	}
	sets[course][value] = struct{}{}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
