// Package dungeon provides the floor model (rooms, exits, content flags)
// and the procedural floor generator.
package dungeon

import "strings"

// Direction is a compass direction used to key room exits.
type Direction string

// The four compass directions a floor graph uses.
const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// Directions lists every direction in a fixed order. Generation iterates in
// this order, so it is part of the reproducibility contract.
var Directions = []Direction{North, East, South, West}

// ParseDirection resolves a full direction name or its one-letter alias.
//
// Postcondition: Returns (dir, true) for n/s/e/w or north/south/east/west in
// any case, ("", false) otherwise.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "north":
		return North, true
	case "s", "south":
		return South, true
	case "e", "east":
		return East, true
	case "w", "west":
		return West, true
	default:
		return "", false
	}
}

// Opposite returns the reverse direction, or "" for an unknown direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return ""
	}
}

// delta returns the grid step for d. North is negative y.
func (d Direction) delta() (int, int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}
