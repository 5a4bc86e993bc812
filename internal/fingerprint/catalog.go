// Package fingerprint holds the built-in table of named FOFA query expressions.
package fingerprint

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry maps a catalog key to a query expression.
type Entry struct {
	Name  string `json:"name"  yaml:"name"`
	Query string `json:"query" yaml:"query"`
}

//go:embed catalog.yaml
var catalogYAML []byte

// entries is populated once at init and never mutated.
var entries = mustParse(catalogYAML)

func mustParse(data []byte) []Entry {
	parsed, err := parse(data)
	if err != nil {
		panic(fmt.Sprintf("fingerprint: %v", err))
	}

	return parsed
}

func parse(data []byte) ([]Entry, error) {
	var parsed []Entry

	err := yaml.Unmarshal(data, &parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(parsed))
	for _, entry := range parsed {
		if entry.Name == "" || entry.Query == "" {
			return nil, fmt.Errorf("catalog entry %q is incomplete", entry.Name)
		}

		if entry.Name != strings.ToLower(entry.Name) {
			return nil, fmt.Errorf("catalog key %q is not lowercase", entry.Name)
		}

		if _, dup := seen[entry.Name]; dup {
			return nil, fmt.Errorf("catalog key %q is duplicated", entry.Name)
		}

		seen[entry.Name] = struct{}{}
	}

	return parsed, nil
}

// List returns every entry in definition order.
func List() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)

	return out
}

// Len returns the number of entries.
func Len() int {
	return len(entries)
}

// Lookup returns entries whose key contains keyword, ignoring case. The bool
// is false when nothing matched.
func Lookup(keyword string) ([]Entry, bool) {
	needle := strings.ToLower(keyword)

	var matches []Entry

	for _, entry := range entries {
		if strings.Contains(entry.Name, needle) {
			matches = append(matches, entry)
		}
	}

	return matches, len(matches) > 0
}

// Get returns the entry with exactly this key.
func Get(name string) (Entry, bool) {
	name = strings.ToLower(name)
	for _, entry := range entries {
		if entry.Name == name {
			return entry, true
		}
	}

	return Entry{}, false
}
