package scaling

const (
	regularMultiplier = 0.6
	bossMultiplier    = 1.8
)

// MonsterStats are the fallback combat statistics for a monster with no
// template.
type MonsterStats struct {
	HP       int
	Strength int
	Defense  int
	Agility  int
}

// LegacyMonsterStats derives fallback stats from depth alone.
//
// Postcondition: every stat is at least 1.
func LegacyMonsterStats(level int, boss bool) MonsterStats {
	scale := 1 + float64(level)/20
	mult := regularMultiplier
	if boss {
		mult = bossMultiplier
	}
	f := float64(level) * scale * mult
	return MonsterStats{
		HP:       max(1, int(f*4)),
		Strength: max(1, int(f*1.5)),
		Defense:  max(1, int(f*1.0)),
		Agility:  max(1, int(f*0.8)),
	}
}

// ScaleHP scales a template's base HP to a floor: base * (1 + level*0.1).
func ScaleHP(base, level int) int {
	if level <= 0 {
		return base
	}
	return int(float64(base) * (1 + float64(level)*0.1))
}

// ScaleDamage scales a template's damage to a floor: base * (1 + level*0.08).
func ScaleDamage(base, level int) int {
	if level <= 0 {
		return base
	}
	return int(float64(base) * (1 + float64(level)*0.08))
}

// ScaleXP scales a template's experience award: base * (1 + level*0.15).
func ScaleXP(base, level int) int {
	if level <= 0 {
		return base
	}
	return int(float64(base) * (1 + float64(level)*0.15))
}
