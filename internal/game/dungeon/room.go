package dungeon

import "sort"

// RoomID identifies a room within one floor. The entrance is always 0.
type RoomID int

// RoomType classifies a room. The type drives content rolls, mandatory
// events and seal eligibility.
type RoomType int

const (
	RoomEntrance RoomType = iota
	RoomChamber
	RoomCorridor
	RoomShrine
	RoomLoreLibrary
	RoomSecretVault
	RoomMeditationChamber
	RoomRiddleGate
	RoomPuzzleRoom
	RoomArmory
	RoomCrypt
)

var roomTypeNames = map[RoomType]string{
	RoomEntrance:          "Entrance",
	RoomChamber:           "Chamber",
	RoomCorridor:          "Corridor",
	RoomShrine:            "Shrine",
	RoomLoreLibrary:       "Lore Library",
	RoomSecretVault:       "Secret Vault",
	RoomMeditationChamber: "Meditation Chamber",
	RoomRiddleGate:        "Riddle Gate",
	RoomPuzzleRoom:        "Puzzle Room",
	RoomArmory:            "Armory",
	RoomCrypt:             "Crypt",
}

// String returns the display name of the room type.
func (t RoomType) String() string {
	if n, ok := roomTypeNames[t]; ok {
		return n
	}
	return "Unknown"
}

// SealEligible reports whether a room of this type may carry a seal.
func (t RoomType) SealEligible() bool {
	switch t {
	case RoomShrine, RoomLoreLibrary, RoomSecretVault, RoomMeditationChamber:
		return true
	}
	return false
}

// HasMandatoryEvent reports whether rooms of this type always hold an event
// that must be resolved before the player may leave.
func (t RoomType) HasMandatoryEvent() bool {
	return t == RoomRiddleGate || t == RoomPuzzleRoom
}

// Exit is a one-way passage to a neighboring room. Generated floors always
// pair it with an exit in the opposite direction on the target.
type Exit struct {
	// Target is the destination room.
	Target RoomID
	// Description is the short flavor line shown for the passage.
	Description string
}

// Room is a single node of a floor graph together with its content and
// completion state.
//
// Completion fields are exported for reading; callers change them only
// through the Mark* mutators, which never clear a flag.
type Room struct {
	ID           RoomID
	Name         string
	Description  string
	Atmosphere   string
	Type         RoomType
	DangerRating int
	Exits        map[Direction]Exit

	HasMonsters    bool
	IsCleared      bool
	HasTreasure    bool
	TreasureLooted bool
	HasTrap        bool
	TrapTriggered  bool
	HasEvent       bool
	Event          Event
	EventCompleted bool
	HasStairsDown  bool
	IsBossRoom     bool
	Features       []*Feature
	IsExplored     bool
}

func newRoom(id RoomID, t RoomType) *Room {
	return &Room{ID: id, Type: t, Exits: make(map[Direction]Exit)}
}

// Exit returns the exit in the given direction, if one exists.
//
// Postcondition: Returns (exit, true) if found, or (Exit{}, false) otherwise.
func (r *Room) Exit(dir Direction) (Exit, bool) {
	e, ok := r.Exits[dir]
	return e, ok
}

// ExitDirections returns the directions with an exit, in Directions order.
func (r *Room) ExitDirections() []Direction {
	var out []Direction
	for _, d := range Directions {
		if _, ok := r.Exits[d]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Neighbors returns the target ids of every exit, sorted ascending.
func (r *Room) Neighbors() []RoomID {
	out := make([]RoomID, 0, len(r.Exits))
	for _, e := range r.Exits {
		out = append(out, e.Target)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsSafe reports whether no live monsters remain in the room.
func (r *Room) IsSafe() bool {
	return !r.HasMonsters || r.IsCleared
}

// HasPendingEvent reports whether the room holds an unresolved event.
func (r *Room) HasPendingEvent() bool {
	return r.HasEvent && !r.EventCompleted
}

// BlocksExit reports whether the room's unresolved mandatory event prevents
// the player from leaving.
func (r *Room) BlocksExit() bool {
	return r.Type.HasMandatoryEvent() && r.HasPendingEvent()
}

// HasTreasureAvailable reports whether uncollected treasure remains.
func (r *Room) HasTreasureAvailable() bool {
	return r.HasTreasure && !r.TreasureLooted
}

// HasArmedTrap reports whether the room holds a trap that has not fired.
func (r *Room) HasArmedTrap() bool {
	return r.HasTrap && !r.TrapTriggered
}

// MarkExplored records the first visit.
func (r *Room) MarkExplored() { r.IsExplored = true }

// MarkCleared records that the room's monsters are dead.
func (r *Room) MarkCleared() { r.IsCleared = true }

// MarkLooted records that the room's treasure was collected.
func (r *Room) MarkLooted() { r.TreasureLooted = true }

// MarkTrapTriggered records that the room's trap fired.
func (r *Room) MarkTrapTriggered() { r.TrapTriggered = true }

// CompleteEvent records that the room's event was resolved.
func (r *Room) CompleteEvent() { r.EventCompleted = true }
