package condition

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Duration types.
const (
	DurationMoves     = "moves"
	DurationPermanent = "permanent"
)

// Well-known condition ids the engine applies itself.
const (
	Poisoned = "poisoned"
	Weakened = "weakened"
)

// ConditionDef is the static definition of a condition, loaded from YAML.
type ConditionDef struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	DurationType string `yaml:"duration_type"` // "moves" | "permanent"
	// Duration is the default number of moves when the caller passes 0.
	Duration       int `yaml:"duration"`
	MaxStacks      int `yaml:"max_stacks"` // 0 = unstackable
	AttackPenalty  int `yaml:"attack_penalty"`
	DefensePenalty int `yaml:"defense_penalty"`
	// TickDamage is dealt per stack each move; TickDamageLevelDivisor adds
	// level/divisor on top when positive.
	TickDamage             int      `yaml:"tick_damage"`
	TickDamageLevelDivisor int      `yaml:"tick_damage_level_divisor"`
	RestrictActions        []string `yaml:"restrict_actions"`
}

// DamageAt returns the per-stack tick damage at level.
func (d *ConditionDef) DamageAt(level int) int {
	dmg := d.TickDamage
	if dmg > 0 && d.TickDamageLevelDivisor > 0 {
		dmg += level / d.TickDamageLevelDivisor
	}
	return dmg
}

func (d *ConditionDef) validate() error {
	if d.ID == "" {
		return fmt.Errorf("condition id must not be empty")
	}
	switch d.DurationType {
	case DurationMoves:
		if d.Duration <= 0 {
			return fmt.Errorf("condition %q: moves duration must be positive", d.ID)
		}
	case DurationPermanent:
	default:
		return fmt.Errorf("condition %q: unknown duration_type %q", d.ID, d.DurationType)
	}
	return nil
}

// Registry holds all known ConditionDefs keyed by ID.
type Registry struct {
	defs map[string]*ConditionDef
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*ConditionDef)}
}

// Builtin returns a Registry holding the conditions the engine applies on
// its own, for use when no content directory is configured.
func Builtin() *Registry {
	reg := NewRegistry()
	reg.Register(&ConditionDef{
		ID: Poisoned, Name: "Poisoned", Description: "Venom burns in your blood.",
		DurationType: DurationMoves, Duration: 5,
		TickDamage: 1, TickDamageLevelDivisor: 5,
	})
	reg.Register(&ConditionDef{
		ID: Weakened, Name: "Weakened", Description: "Your limbs feel like lead.",
		DurationType: DurationMoves, Duration: 8,
		AttackPenalty: 2, DefensePenalty: 1,
	})
	return reg
}

// Register adds def to the registry, overwriting any existing entry with the same ID.
// Precondition: def must not be nil and def.ID must not be empty.
func (r *Registry) Register(def *ConditionDef) {
	r.defs[def.ID] = def
}

// Get returns the ConditionDef for id, or (nil, false) if not found.
func (r *Registry) Get(id string) (*ConditionDef, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// All returns every registered ConditionDef ordered by ID.
func (r *Registry) All() []*ConditionDef {
	out := make([]*ConditionDef, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Merge copies every definition of other into r, replacing duplicates.
func (r *Registry) Merge(other *Registry) {
	for id, d := range other.defs {
		r.defs[id] = d
	}
}

// LoadDirectory reads every *.yaml file in dir, parses each as a ConditionDef,
// and returns a populated Registry.
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil Registry, or an error if any file fails to parse
// or validate.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading condition dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var def ConditionDef
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := def.validate(); err != nil {
			return nil, fmt.Errorf("validating %q: %w", path, err)
		}
		reg.Register(&def)
	}
	return reg, nil
}
