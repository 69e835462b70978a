package npc

import (
	"github.com/cory-johannsen/crawl/internal/game/dice"
	"github.com/cory-johannsen/crawl/internal/game/scaling"
)

// Instance is a live monster taking part in one encounter.
type Instance struct {
	// ID uniquely identifies this runtime instance.
	ID string
	// TemplateID is the source template's ID; empty for legacy monsters.
	TemplateID  string
	Name        string
	Description string
	// Level is the depth the instance was scaled to.
	Level     int
	Boss      bool
	CurrentHP int
	MaxHP     int
	Strength  int
	Defense   int
	Agility   int
	XP        int
	// Loot is the loot table copied from the template; nil means no loot.
	Loot   *LootTable
	Taunts []string
}

// NewInstance creates a monster from tmpl scaled to depth level.
//
// Precondition: id must be non-empty; tmpl must be non-nil and valid.
// Postcondition: CurrentHP equals MaxHP; stats are never below the
// template's base values.
func NewInstance(id string, tmpl *Template, level int) *Instance {
	hp := scaling.ScaleHP(tmpl.MaxHP, level)
	return &Instance{
		ID:          id,
		TemplateID:  tmpl.ID,
		Name:        tmpl.Name,
		Description: tmpl.Description,
		Level:       level,
		Boss:        tmpl.Boss,
		CurrentHP:   hp,
		MaxHP:       hp,
		Strength:    scaling.ScaleDamage(tmpl.Strength, level),
		Defense:     scaling.ScaleDamage(tmpl.Defense, level),
		Agility:     tmpl.Agility,
		XP:          scaling.ScaleXP(tmpl.XP, level),
		Loot:        tmpl.Loot,
		Taunts:      tmpl.Taunts,
	}
}

// NewLegacyInstance creates a template-less monster whose stats derive from
// depth alone.
//
// Postcondition: CurrentHP equals MaxHP.
func NewLegacyInstance(id, name string, level int, boss bool) *Instance {
	st := scaling.LegacyMonsterStats(level, boss)
	xp := level * 20
	if boss {
		xp = level * 60
	}
	return &Instance{
		ID:        id,
		Name:      name,
		Level:     level,
		Boss:      boss,
		CurrentHP: st.HP,
		MaxHP:     st.HP,
		Strength:  st.Strength,
		Defense:   st.Defense,
		Agility:   st.Agility,
		XP:        xp,
	}
}

// IsDead reports whether the instance has zero or fewer hit points.
func (i *Instance) IsDead() bool {
	return i.CurrentHP <= 0
}

// TakeDamage reduces CurrentHP by n, flooring at 0.
func (i *Instance) TakeDamage(n int) {
	if n <= 0 {
		return
	}
	i.CurrentHP = max(0, i.CurrentHP-n)
}

// Power returns the aggregate used for difficulty rating.
func (i *Instance) Power() scaling.PowerStats {
	return scaling.PowerStats{Offense: i.Strength, Defense: i.Defense, HP: i.CurrentHP}
}

// Taunt picks one of the instance's taunts.
//
// Postcondition: Returns ("", false) without drawing when there are no taunts.
func (i *Instance) Taunt(src dice.Source) (string, bool) {
	if len(i.Taunts) == 0 {
		return "", false
	}
	return i.Taunts[src.Intn(len(i.Taunts))], true
}

// HealthDescription returns a visible health state string.
//
// Postcondition: Returns a non-empty string.
func (i *Instance) HealthDescription() string {
	if i.CurrentHP <= 0 {
		return "dead"
	}
	pct := float64(i.CurrentHP) / float64(i.MaxHP)
	switch {
	case pct >= 1.0:
		return "unharmed"
	case pct >= 0.85:
		return "barely scratched"
	case pct >= 0.60:
		return "lightly wounded"
	case pct >= 0.40:
		return "moderately wounded"
	case pct >= 0.20:
		return "heavily wounded"
	default:
		return "critically wounded"
	}
}
