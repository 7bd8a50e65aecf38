package branchmap

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "branch_map.yaml")
	content := `branches:
  cs: Computer Science and Engineering
  EC: Electronics and Communication Engineering
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Name("CS"); got != "Computer Science and Engineering" {
		t.Fatalf("unexpected name: %q", got)
	}
	if got := m.Name("cs "); got != "Computer Science and Engineering" {
		t.Fatalf("lookup not normalized: %q", got)
	}
	if got := m.Name("ZZ"); got != "" {
		t.Fatalf("unknown code must resolve to unset name, got %q", got)
	}
}

func TestDisplay(t *testing.T) {
	m := New(map[string]string{"CS": "Computer Science and Engineering"})
	if got := m.Display("CS"); got != "CS Computer Science and Engineering" {
		t.Fatalf("unexpected display: %q", got)
	}
	if got := m.Display("ZZ"); got != "ZZ" {
		t.Fatalf("unknown code must fall back to bare code, got %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
