package dungeon

import (
	"errors"
	"fmt"
	"sort"
)

// EntranceID is the id of every floor's entrance room.
const EntranceID RoomID = 0

// Floor is one generated level of the dungeon. It is owned by a single
// exploration session and mutated in place while the player stays on the
// level.
type Floor struct {
	Level       int
	Theme       Theme
	Rooms       map[RoomID]*Room
	Entrance    RoomID
	Current     RoomID
	DangerLevel int

	MonstersKilled int
	TreasuresFound int
	BossDefeated   bool

	HasUncollectedSeal bool
	Seal               *SealType
	SealCollected      bool
	SealRoom           *RoomID
}

// DangerLevelFor returns clamp(level/10, 1, 10).
func DangerLevelFor(level int) int {
	return clamp(level/10, 1, 10)
}

// Room returns the room with the given id.
//
// Postcondition: Returns (room, true) if present, or (nil, false) otherwise.
func (f *Floor) Room(id RoomID) (*Room, bool) {
	r, ok := f.Rooms[id]
	return r, ok
}

// CurrentRoom returns the room under the cursor.
//
// Precondition: f.Current names a room in f.Rooms.
func (f *Floor) CurrentRoom() *Room {
	return f.Rooms[f.Current]
}

// SetCurrent moves the cursor to id.
//
// Postcondition: Returns an error and leaves Current unchanged if id is not a
// room of this floor.
func (f *Floor) SetCurrent(id RoomID) error {
	if _, ok := f.Rooms[id]; !ok {
		return fmt.Errorf("room %d is not on floor %d", id, f.Level)
	}
	f.Current = id
	return nil
}

// RoomIDs returns every room id in ascending order.
func (f *Floor) RoomIDs() []RoomID {
	ids := make([]RoomID, 0, len(f.Rooms))
	for id := range f.Rooms {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ExploredCount returns the number of rooms visited at least once.
func (f *Floor) ExploredCount() int {
	n := 0
	for _, r := range f.Rooms {
		if r.IsExplored {
			n++
		}
	}
	return n
}

// Progress returns the explored fraction of the floor in [0, 1].
func (f *Floor) Progress() float64 {
	if len(f.Rooms) == 0 {
		return 0
	}
	return float64(f.ExploredCount()) / float64(len(f.Rooms))
}

// BossRoom returns the boss room, or nil if the floor has none.
func (f *Floor) BossRoom() *Room {
	for _, id := range f.RoomIDs() {
		if r := f.Rooms[id]; r.IsBossRoom {
			return r
		}
	}
	return nil
}

// StairsRooms returns every room holding stairs down, ordered by id.
func (f *Floor) StairsRooms() []*Room {
	var out []*Room
	for _, id := range f.RoomIDs() {
		if r := f.Rooms[id]; r.HasStairsDown {
			out = append(out, r)
		}
	}
	return out
}

// SealAvailable reports whether a seal is reserved on this floor and has
// not been found yet.
func (f *Floor) SealAvailable() bool {
	return f.HasUncollectedSeal && !f.SealCollected && f.Seal != nil
}

// CollectSeal records discovery of the floor's seal in room id.
//
// Postcondition: Returns false without change if no seal is available;
// otherwise SealCollected is true and SealRoom is id.
func (f *Floor) CollectSeal(id RoomID) bool {
	if !f.SealAvailable() {
		return false
	}
	f.SealCollected = true
	room := id
	f.SealRoom = &room
	return true
}

// ErrInvalidFloor is wrapped by every Validate failure.
var ErrInvalidFloor = errors.New("invalid floor")

// Validate checks the structural invariants of a generated floor and
// returns an error naming the first violation.
//
// Precondition: maxLevel >= 1.
// Postcondition: Returns nil if every invariant holds.
func (f *Floor) Validate(maxLevel int) error {
	entrances := 0
	for _, r := range f.Rooms {
		if r.Type == RoomEntrance {
			entrances++
		}
	}
	entrance, ok := f.Rooms[f.Entrance]
	if !ok || entrances != 1 || entrance.Type != RoomEntrance {
		return fmt.Errorf("%w: expected exactly one entrance at room %d", ErrInvalidFloor, f.Entrance)
	}

	reach := f.ReachableFrom(f.Entrance)
	if reach.Size() != len(f.Rooms) {
		return fmt.Errorf("%w: %d of %d rooms reachable from entrance", ErrInvalidFloor, reach.Size(), len(f.Rooms))
	}
	for _, id := range f.RoomIDs() {
		for dir, e := range f.Rooms[id].Exits {
			if _, ok := f.Rooms[e.Target]; !ok {
				return fmt.Errorf("%w: room %d exit %s targets missing room %d", ErrInvalidFloor, id, dir, e.Target)
			}
		}
	}

	if f.Level < maxLevel {
		found := false
		for _, r := range f.StairsRooms() {
			if reach.Has(r.ID) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: no reachable stairs below max depth", ErrInvalidFloor)
		}
	}

	bosses := 0
	for _, r := range f.Rooms {
		if !r.IsBossRoom {
			continue
		}
		bosses++
		if !r.HasMonsters {
			return fmt.Errorf("%w: boss room %d has no monsters", ErrInvalidFloor, r.ID)
		}
	}
	if bosses > 1 {
		return fmt.Errorf("%w: %d boss rooms", ErrInvalidFloor, bosses)
	}

	if f.Seal != nil {
		carrier := false
		for _, r := range f.Rooms {
			if r.Type.SealEligible() || r.IsBossRoom {
				carrier = true
				break
			}
		}
		if !carrier {
			return fmt.Errorf("%w: seal %s reserved without an eligible room", ErrInvalidFloor, *f.Seal)
		}
	}
	if f.SealCollected {
		if f.Seal == nil || f.SealRoom == nil {
			return fmt.Errorf("%w: seal collected without seal or room", ErrInvalidFloor)
		}
		if _, ok := f.Rooms[*f.SealRoom]; !ok {
			return fmt.Errorf("%w: seal room %d not on floor", ErrInvalidFloor, *f.SealRoom)
		}
	}

	if _, ok := f.Rooms[f.Current]; !ok {
		return fmt.Errorf("%w: current room %d not on floor", ErrInvalidFloor, f.Current)
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
