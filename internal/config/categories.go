package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ghodss/yaml"
)

// defaultCategories seeds the add-expense selector when no taxonomy file
// is configured.
var defaultCategories = []string{
	"Food",
	"Transport",
	"Shopping",
	"Bills",
	"Entertainment",
	"Other",
}

type categoriesFile struct {
	Categories []string `json:"categories"`
}

// LoadCategories reads the seed category taxonomy from a YAML file.
// A missing file falls back to the built-in defaults; a present but
// malformed file is a configuration error.
func LoadCategories(path string) ([]string, error) {
	if path == "" {
		return append([]string(nil), defaultCategories...), nil
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return append([]string(nil), defaultCategories...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}

	var parsed categoriesFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse categories file %s: %w", path, err)
	}

	out := make([]string, 0, len(parsed.Categories))
	seen := map[string]struct{}{}
	for _, c := range parsed.Categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	if len(out) == 0 {
		return append([]string(nil), defaultCategories...), nil
	}
	return out, nil
}
