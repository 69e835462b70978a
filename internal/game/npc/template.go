// Package npc provides monster templates, live monster instances and the
// default monster supply used by exploration.
package npc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/crawl/internal/game/dungeon"
)

// Template defines a reusable monster archetype loaded from YAML.
type Template struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Themes restricts the template to floors of the named themes; empty
	// means any theme.
	Themes []string `yaml:"themes"`
	// MinLevel and MaxLevel bound the depths the template appears at.
	// MaxLevel 0 means unbounded.
	MinLevel int  `yaml:"min_level"`
	MaxLevel int  `yaml:"max_level"`
	Boss     bool `yaml:"boss"`

	MaxHP    int `yaml:"max_hp"`
	Strength int `yaml:"strength"`
	Defense  int `yaml:"defense"`
	Agility  int `yaml:"agility"`
	XP       int `yaml:"xp"`

	Taunts []string   `yaml:"taunts"`
	Loot   *LootTable `yaml:"loot"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, MinLevel >= 1,
// MaxLevel is 0 or >= MinLevel, MaxHP >= 1, Strength >= 1, every theme
// names a known theme and the loot table is valid; returns an error on the
// first violation otherwise.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("npc template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("npc template %q: name must not be empty", t.ID)
	}
	if t.MinLevel < 1 {
		return fmt.Errorf("npc template %q: min_level must be >= 1", t.ID)
	}
	if t.MaxLevel != 0 && t.MaxLevel < t.MinLevel {
		return fmt.Errorf("npc template %q: max_level %d below min_level %d", t.ID, t.MaxLevel, t.MinLevel)
	}
	if t.MaxHP < 1 {
		return fmt.Errorf("npc template %q: max_hp must be >= 1", t.ID)
	}
	if t.Strength < 1 {
		return fmt.Errorf("npc template %q: strength must be >= 1", t.ID)
	}
	for _, name := range t.Themes {
		if _, err := dungeon.ParseTheme(name); err != nil {
			return fmt.Errorf("npc template %q: %w", t.ID, err)
		}
	}
	if t.Loot != nil {
		if err := t.Loot.Validate(); err != nil {
			return fmt.Errorf("npc template %q: %w", t.ID, err)
		}
	}
	return nil
}

// Fits reports whether the template may appear on a floor of the given
// depth and theme in the given role.
func (t *Template) Fits(level int, theme dungeon.Theme, boss bool) bool {
	if t.Boss != boss || level < t.MinLevel || (t.MaxLevel != 0 && level > t.MaxLevel) {
		return false
	}
	if len(t.Themes) == 0 {
		return true
	}
	for _, name := range t.Themes {
		if strings.EqualFold(name, theme.String()) {
			return true
		}
	}
	return false
}

// LoadTemplateFromBytes parses a single monster template from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Template.
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading npc dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
