package explore

import "github.com/cory-johannsen/crawl/internal/game/dungeon"

// Overview is the pre-entry summary of the loaded floor.
type Overview struct {
	Level          int
	Theme          dungeon.Theme
	DangerLevel    int
	Rooms          int
	Explored       int
	MonstersKilled int
	TreasuresFound int
	BossDefeated   bool
	// SealPresent hints that the floor still hides a seal.
	SealPresent bool
	Rested      bool
}

// Overview summarizes the loaded floor.
func (s *Session) Overview() Overview {
	f := s.floor
	return Overview{
		Level:          f.Level,
		Theme:          f.Theme,
		DangerLevel:    f.DangerLevel,
		Rooms:          len(f.Rooms),
		Explored:       f.ExploredCount(),
		MonstersKilled: f.MonstersKilled,
		TreasuresFound: f.TreasuresFound,
		BossDefeated:   f.BossDefeated,
		SealPresent:    f.SealAvailable(),
		Rested:         s.hasRestThisFloor,
	}
}
