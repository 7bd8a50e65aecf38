package cutoff

import (
	"reflect"
	"testing"

	"cetpredict/internal"
)

func testRecords() []internal.CutoffRecord {
	return []internal.CutoffRecord{
		{Course: "engineering", CollegeCode: "E001", CollegeName: "Example Inst.", BranchCode: "CS", Category: "GM", CutoffRank: 5000},
		{Course: "engineering", CollegeCode: "E001", CollegeName: "Example Inst.", BranchCode: "EC", Category: "GM", CutoffRank: 8000},
		{Course: "engineering", CollegeCode: "E002", CollegeName: "Other Inst.", BranchCode: "CS", Category: "GM", CutoffRank: 3000},
		{Course: "engineering", CollegeCode: "E001", CollegeName: "Example Inst.", BranchCode: "CS", Category: "2A", CutoffRank: 9000},
		{Course: "pharmacy", CollegeCode: "P010", CollegeName: "Pharma College", BranchCode: "PH", Category: "GM", CutoffRank: 1200},
	}
}

func TestBuildIndexOrdering(t *testing.T) {
	idx := BuildIndex(testRecords())

	records := idx.ByCourseCategory("engineering", "GM")
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1], records[i]
		if prev.CutoffRank > cur.CutoffRank {
			t.Fatalf("records not ordered by cutoff: %+v before %+v", prev, cur)
		}
		if prev.CutoffRank == cur.CutoffRank && prev.CollegeCode > cur.CollegeCode {
			t.Fatalf("tie not broken by college code: %+v before %+v", prev, cur)
		}
	}

	byBranch := idx.ByCourseCategoryBranch("engineering", "GM", "CS")
	if len(byBranch) != 2 {
		t.Fatalf("expected 2 CS records, got %d", len(byBranch))
	}
	if byBranch[0].CollegeCode != "E002" || byBranch[1].CollegeCode != "E001" {
		t.Fatalf("unexpected branch ordering: %+v", byBranch)
	}
}

func TestBuildIndexCatalogues(t *testing.T) {
	idx := BuildIndex(testRecords())

	if got := idx.DistinctCourses(); !reflect.DeepEqual(got, []string{"engineering", "pharmacy"}) {
		t.Fatalf("unexpected courses: %v", got)
	}
	if got := idx.DistinctCategories("engineering"); !reflect.DeepEqual(got, []string{"2A", "GM"}) {
		t.Fatalf("unexpected categories: %v", got)
	}
	if got := idx.DistinctBranches("engineering"); !reflect.DeepEqual(got, []string{"CS", "EC"}) {
		t.Fatalf("unexpected branches: %v", got)
	}
	if idx.DistinctBranches("nursing") != nil {
		t.Fatal("expected no branches for absent course")
	}
}

func TestBuildIndexIdempotent(t *testing.T) {
	a := BuildIndex(testRecords())
	b := BuildIndex(testRecords())

	if !reflect.DeepEqual(a.DistinctCourses(), b.DistinctCourses()) {
		t.Fatal("courses differ across rebuilds")
	}
	for _, course := range a.DistinctCourses() {
		if !reflect.DeepEqual(a.DistinctCategories(course), b.DistinctCategories(course)) {
			t.Fatalf("categories differ for %s", course)
		}
		if !reflect.DeepEqual(a.DistinctBranches(course), b.DistinctBranches(course)) {
			t.Fatalf("branches differ for %s", course)
		}
		for _, category := range a.DistinctCategories(course) {
			if !reflect.DeepEqual(a.ByCourseCategory(course, category), b.ByCourseCategory(course, category)) {
				t.Fatalf("records differ for %s/%s", course, category)
			}
		}
	}
}

func TestStoreSwapAndNotReady(t *testing.T) {
	store := NewStore()
	if _, err := store.Current(); err != ErrNotReady {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}

	first := BuildIndex(testRecords())
	if gen := store.Swap(first); gen != 1 {
		t.Fatalf("expected generation 1, got %d", gen)
	}

	snapshot, err := store.Current()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := BuildIndex(testRecords()[:2])
	if gen := store.Swap(second); gen != 2 {
		t.Fatalf("expected generation 2, got %d", gen)
	}

	// The earlier snapshot stays intact after the swap.
	if snapshot.Len() != first.Len() {
		t.Fatal("superseded snapshot changed")
	}
	current, _ := store.Current()
	if current != second {
		t.Fatal("expected new generation after swap")
	}
}
