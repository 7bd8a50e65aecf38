package cutoff

import (
	"errors"
	"reflect"
	"testing"

	"cetpredict/internal/branchmap"
)

func TestCatalogueListings(t *testing.T) {
	store := NewStore()
	store.Swap(BuildIndex(testRecords()))
	cat := NewCatalogue(store, branchmap.New(map[string]string{
		"CS": "Computer Science and Engineering",
	}))

	courses, err := cat.Courses()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(courses, []string{"engineering", "pharmacy"}) {
		t.Fatalf("unexpected courses: %v", courses)
	}

	categories, err := cat.Categories("engineering")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(categories, []string{"2A", "GM"}) {
		t.Fatalf("unexpected categories: %v", categories)
	}

	branches, err := cat.Branches("engineering")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"CS Computer Science and Engineering", "EC"}
	if !reflect.DeepEqual(branches, want) {
		t.Fatalf("unexpected branches: %v", branches)
	}
}

func TestCatalogueUnknownCourse(t *testing.T) {
	store := NewStore()
	store.Swap(BuildIndex(testRecords()))
	cat := NewCatalogue(store, branchmap.Empty())

	_, err := cat.Categories("law")
	var invalid *InvalidQueryError
	if !errors.As(err, &invalid) || invalid.Field != "course" {
		t.Fatalf("expected InvalidQueryError on course, got %v", err)
	}
}

func TestCatalogueNotReady(t *testing.T) {
	cat := NewCatalogue(NewStore(), branchmap.Empty())
	if _, err := cat.Courses(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
}
