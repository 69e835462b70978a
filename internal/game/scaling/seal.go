package scaling

import (
	"github.com/cory-johannsen/crawl/internal/game/dice"
	"github.com/cory-johannsen/crawl/internal/game/dungeon"
)

const (
	// GuaranteedDiscoveryProgress is the explored fraction at and above
	// which seal discovery cannot fail.
	GuaranteedDiscoveryProgress = 0.75
	// discoveryFloorProgress is the explored fraction below which
	// non-eligible rooms never yield the seal.
	discoveryFloorProgress = 0.5
	chamberSealChance      = 0.20
	discoveryBase          = 0.15
	discoverySlope         = 0.4
)

// DiscoveryChance returns the probability of finding the seal in a
// non-eligible room at the given progress.
func DiscoveryChance(progress float64) float64 {
	switch {
	case progress >= GuaranteedDiscoveryProgress:
		return 1
	case progress < discoveryFloorProgress:
		return 0
	default:
		return discoveryBase + (progress-discoveryFloorProgress)*discoverySlope
	}
}

// CheckSeal decides whether entering room finds the floor's seal. It does
// not mutate the floor; the caller records a success with CollectSeal.
//
// Precondition: room belongs to f and its IsExplored flag already reflects
// this visit.
// Postcondition: Returns false without drawing when firstVisit is false or
// no seal is available.
func CheckSeal(f *dungeon.Floor, room *dungeon.Room, firstVisit bool, src dice.Source) bool {
	if !firstVisit || !f.SealAvailable() {
		return false
	}
	progress := f.Progress()
	if progress >= GuaranteedDiscoveryProgress {
		return true
	}
	if sealEligible(room, src) {
		return true
	}
	if progress < discoveryFloorProgress {
		return false
	}
	return dice.Chance(src, DiscoveryChance(progress))
}

func sealEligible(room *dungeon.Room, src dice.Source) bool {
	switch {
	case room.Type.SealEligible(), room.IsBossRoom:
		return true
	case room.HasPendingEvent() && room.Event.Kind() == dungeon.EventShrine:
		return true
	case room.Type == dungeon.RoomChamber:
		return dice.Chance(src, chamberSealChance)
	}
	return false
}
