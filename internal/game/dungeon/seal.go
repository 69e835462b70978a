package dungeon

import "strings"

// SealType names one of the narrative seals a floor may carry.
type SealType string

// Seal types in the order the default story schedule hands them out.
const (
	SealEmber SealType = "ember"
	SealTide  SealType = "tide"
	SealGale  SealType = "gale"
	SealStone SealType = "stone"
	SealDusk  SealType = "dusk"
	SealDawn  SealType = "dawn"
	SealVoid  SealType = "void"
)

// AllSeals lists every seal type.
var AllSeals = []SealType{SealEmber, SealTide, SealGale, SealStone, SealDusk, SealDawn, SealVoid}

// Title returns the display name of the seal, e.g. "Seal of Ember".
func (s SealType) Title() string {
	if s == "" {
		return "Unknown Seal"
	}
	return "Seal of " + strings.ToUpper(string(s[:1])) + string(s[1:])
}
