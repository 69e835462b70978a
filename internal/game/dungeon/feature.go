package dungeon

// Interaction is the effect a feature has when examined. The concrete types
// are InspectInteraction, HealInteraction, CacheInteraction and
// LoreInteraction.
type Interaction interface {
	interaction()
}

// InspectInteraction only reveals the feature's description.
type InspectInteraction struct{}

// HealInteraction restores Fraction of the player's maximum HP.
type HealInteraction struct {
	Fraction float64
}

// CacheInteraction yields a fixed amount of gold.
type CacheInteraction struct {
	Gold int
}

// LoreInteraction reveals lore text and grants experience.
type LoreInteraction struct {
	Text string
	XP   int
}

func (InspectInteraction) interaction() {}
func (HealInteraction) interaction()    {}
func (CacheInteraction) interaction()   {}
func (LoreInteraction) interaction()    {}

// Feature is an examinable object inside a room. Its interaction applies at
// most once.
type Feature struct {
	Name        string
	Description string
	Interaction Interaction
	Interacted  bool
}

// MarkInteracted records that the feature's effect has been applied.
func (f *Feature) MarkInteracted() { f.Interacted = true }
