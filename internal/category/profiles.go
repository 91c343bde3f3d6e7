// Package category holds the closed table of screening categories. Each
// profile carries the localized label shown to operators and the
// category-specific instruction text sent to the vision model. Adding a
// category is a data change: edit the YAML file or the built-in table.
package category

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type Profile struct {
	Key         string `yaml:"-"`
	Label       string `yaml:"label"`
	Instruction string `yaml:"instruction"`
}

// Table is an immutable category lookup, built once at process start.
type Table struct {
	profiles map[string]Profile
	keys     []string
}

func NewTable(profiles map[string]Profile) *Table {
	t := &Table{profiles: make(map[string]Profile, len(profiles))}
	for key, p := range profiles {
		p.Key = key
		t.profiles[key] = p
		t.keys = append(t.keys, key)
	}
	sort.Strings(t.keys)
	return t
}

// Load reads the category table from CATEGORY_CONFIG_PATH, falling back to
// the built-in table when the variable is unset.
func Load() (*Table, error) {
	path := os.Getenv("CATEGORY_CONFIG_PATH")
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category config %s: %w", path, err)
	}

	var profiles map[string]Profile
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse category config %s: %w", path, err)
	}

	if len(profiles) == 0 {
		return nil, fmt.Errorf("category config %s defines no categories", path)
	}
	for key, p := range profiles {
		if strings.TrimSpace(p.Label) == "" || strings.TrimSpace(p.Instruction) == "" {
			return nil, fmt.Errorf("category %s is missing label or instruction", key)
		}
	}

	return NewTable(profiles), nil
}

func (t *Table) Lookup(key string) (Profile, bool) {
	p, ok := t.profiles[key]
	return p, ok
}

// Keys returns the valid category keys in sorted order, for 400 messages
// and the categories endpoint.
func (t *Table) Keys() []string {
	return t.keys
}

func (t *Table) Profiles() []Profile {
	out := make([]Profile, 0, len(t.keys))
	for _, key := range t.keys {
		out = append(out, t.profiles[key])
	}
	return out
}
