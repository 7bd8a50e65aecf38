package branchmap

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Map is the static branch-code → human-readable-name table, loaded once at
// startup and injected wherever names are resolved. Unknown codes resolve to
// an unset name, never an error.
type Map struct {
	names map[string]string
}

type mapFile struct {
	Branches map[string]string `yaml:"branches"`
}

func Load(path string) (*Map, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read branch map: %w", err)
	}

	var file mapFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse branch map: %w", err)
	}

	names := make(map[string]string, len(file.Branches))
	for code, name := range file.Branches {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		names[code] = strings.TrimSpace(name)
	}
	return &Map{names: names}, nil
}

func Empty() *Map {
	return &Map{names: map[string]string{}}
}

func New(names map[string]string) *Map {
	m := Empty()
	for code, name := range names {
		m.names[strings.ToUpper(strings.TrimSpace(code))] = strings.TrimSpace(name)
	}
	return m
}

// Name returns the display name for a branch code, or "" when unknown.
func (m *Map) Name(code string) string {
	return m.names[strings.ToUpper(strings.TrimSpace(code))]
}

// Display renders "CODE Full Name" for selection controls, falling back to
// the bare code when the name is unknown.
func (m *Map) Display(code string) string {
	if name := m.Name(code); name != "" {
		return code + " " + name
	}
	return code
}
