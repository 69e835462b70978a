package explore

import (
	"strings"

	"github.com/cory-johannsen/crawl/internal/game/dungeon"
)

// Map cell symbols.
const (
	SymbolCurrent  = '@'
	SymbolEntrance = 'E'
	SymbolBoss     = 'B'
	SymbolStairs   = '>'
	SymbolDanger   = '!'
	SymbolTreasure = '$'
	SymbolExplored = '#'
	SymbolUnknown  = '?'
)

// MapCell is one known room on the map.
type MapCell struct {
	Room   dungeon.RoomID
	Pos    dungeon.Point
	Symbol rune
}

// MapView is the player's knowledge of the floor: every explored room plus
// the unexplored rooms their exits reveal.
type MapView struct {
	Level    int
	Theme    dungeon.Theme
	Explored int
	Total    int
	Cells    []MapCell
	// links are the known corridors as pairs of room ids, lower id first.
	links [][2]dungeon.RoomID
	pos   map[dungeon.RoomID]dungeon.Point
}

// ShowMap returns the map of the loaded floor. It is legal in every state.
func (s *Session) ShowMap() *MapView {
	return buildMap(s.floor, s.state == StateInRoom)
}

func buildMap(f *dungeon.Floor, markCurrent bool) *MapView {
	pos := f.Coordinates()
	mv := &MapView{
		Level:    f.Level,
		Theme:    f.Theme,
		Explored: f.ExploredCount(),
		Total:    len(f.Rooms),
		pos:      pos,
	}
	known := make(map[dungeon.RoomID]bool)
	linked := make(map[[2]dungeon.RoomID]bool)
	for _, id := range f.RoomIDs() {
		room := f.Rooms[id]
		if !room.IsExplored {
			continue
		}
		known[id] = true
		for _, n := range room.Neighbors() {
			known[n] = true
			a, b := min(id, n), max(id, n)
			if !linked[[2]dungeon.RoomID{a, b}] {
				linked[[2]dungeon.RoomID{a, b}] = true
				mv.links = append(mv.links, [2]dungeon.RoomID{a, b})
			}
		}
	}
	for _, id := range f.RoomIDs() {
		if !known[id] {
			continue
		}
		mv.Cells = append(mv.Cells, MapCell{Room: id, Pos: pos[id], Symbol: symbolFor(f, f.Rooms[id], markCurrent)})
	}
	return mv
}

func symbolFor(f *dungeon.Floor, room *dungeon.Room, markCurrent bool) rune {
	switch {
	case markCurrent && room.ID == f.Current:
		return SymbolCurrent
	case !room.IsExplored:
		return SymbolUnknown
	case room.Type == dungeon.RoomEntrance:
		return SymbolEntrance
	case room.IsBossRoom:
		return SymbolBoss
	case room.HasStairsDown:
		return SymbolStairs
	case !room.IsSafe():
		return SymbolDanger
	case room.HasTreasureAvailable():
		return SymbolTreasure
	default:
		return SymbolExplored
	}
}

// Symbol returns the symbol drawn for id, or 0 when the room is not on the
// map.
func (m *MapView) Symbol(id dungeon.RoomID) rune {
	for _, c := range m.Cells {
		if c.Room == id {
			return c.Symbol
		}
	}
	return 0
}

// Render draws the map as text. Rooms sit on even columns and rows; the odd
// positions between them hold corridors.
func (m *MapView) Render() string {
	if len(m.Cells) == 0 {
		return ""
	}
	minX, minY := m.Cells[0].Pos.X, m.Cells[0].Pos.Y
	maxX, maxY := minX, minY
	for _, c := range m.Cells {
		minX, maxX = min(minX, c.Pos.X), max(maxX, c.Pos.X)
		minY, maxY = min(minY, c.Pos.Y), max(maxY, c.Pos.Y)
	}
	width, height := (maxX-minX)*2+1, (maxY-minY)*2+1
	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", width))
	}
	at := func(p dungeon.Point) (int, int) { return (p.X - minX) * 2, (p.Y - minY) * 2 }

	for _, l := range m.links {
		ax, ay := at(m.pos[l[0]])
		bx, by := at(m.pos[l[1]])
		mx, my := (ax+bx)/2, (ay+by)/2
		if ay == by {
			grid[my][mx] = '-'
		} else {
			grid[my][mx] = '|'
		}
	}
	for _, c := range m.Cells {
		x, y := at(c.Pos)
		grid[y][x] = c.Symbol
	}

	var b strings.Builder
	for _, row := range grid {
		b.WriteString(strings.TrimRight(string(row), " "))
		b.WriteByte('\n')
	}
	return b.String()
}
