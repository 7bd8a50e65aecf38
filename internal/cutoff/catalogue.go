package cutoff

import (
	"strings"

	"cetpredict/internal/branchmap"
)

// Catalogue serves the listing endpoints that populate external selection
// controls. All answers come from the frozen generation's cached
// distinct-value tables; nothing is recomputed per request.
type Catalogue struct {
	store    *Store
	branches *branchmap.Map
}

func NewCatalogue(store *Store, branches *branchmap.Map) *Catalogue {
	return &Catalogue{store: store, branches: branches}
}

func (c *Catalogue) Courses() ([]string, error) {
	idx, err := c.store.Current()
	if err != nil {
		return nil, err
	}
	return idx.DistinctCourses(), nil
}

func (c *Catalogue) Categories(course string) ([]string, error) {
	idx, err := c.store.Current()
	if err != nil {
		return nil, err
	}
	course = strings.ToLower(strings.TrimSpace(course))
	if !idx.HasCourse(course) {
		return nil, invalidQuery("course", course)
	}
	return idx.DistinctCategories(course), nil
}

// Branches lists "CODE Full Name" strings for the course, sorted by code.
func (c *Catalogue) Branches(course string) ([]string, error) {
	idx, err := c.store.Current()
	if err != nil {
		return nil, err
	}
	course = strings.ToLower(strings.TrimSpace(course))
	if !idx.HasCourse(course) {
		return nil, invalidQuery("course", course)
	}

	codes := idx.DistinctBranches(course)
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		out = append(out, c.branches.Display(code))
	}
	return out, nil
}
