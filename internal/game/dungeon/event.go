package dungeon

import (
	"strconv"
	"strings"
)

// EventKind discriminates the Event variants.
type EventKind int

const (
	EventRiddle EventKind = iota
	EventPuzzle
	EventShrine
	EventSpirit
)

// String returns the display name of the kind.
func (k EventKind) String() string {
	switch k {
	case EventRiddle:
		return "riddle"
	case EventPuzzle:
		return "puzzle"
	case EventShrine:
		return "shrine blessing"
	case EventSpirit:
		return "wandering spirit"
	default:
		return "unknown"
	}
}

// Event is a one-shot room encounter. The concrete types are RiddleEvent,
// PuzzleEvent, ShrineEvent and SpiritEvent.
type Event interface {
	Kind() EventKind
	// Prompt is the text presented when the event is triggered.
	Prompt() string
}

// RiddleEvent asks a question answered with free text.
type RiddleEvent struct {
	Question string
	Answer   string
}

func (RiddleEvent) Kind() EventKind { return EventRiddle }

func (e RiddleEvent) Prompt() string { return e.Question }

// Accepts reports whether answer matches, ignoring case and surrounding
// whitespace.
func (e RiddleEvent) Accepts(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), e.Answer)
}

// PuzzleEvent offers numbered options of which exactly one is correct.
type PuzzleEvent struct {
	Question string
	Options  []string
	// Solution is the zero-based index of the correct option.
	Solution int
}

func (PuzzleEvent) Kind() EventKind { return EventPuzzle }

func (e PuzzleEvent) Prompt() string { return e.Question }

// Accepts reports whether answer names the solution, either by its 1-based
// number or by the option text.
func (e PuzzleEvent) Accepts(answer string) bool {
	a := strings.TrimSpace(answer)
	for i, opt := range e.Options {
		if i != e.Solution {
			continue
		}
		return a == strconv.Itoa(i+1) || strings.EqualFold(a, opt)
	}
	return false
}

// ShrineEvent is a blessing that restores a fraction of maximum HP.
type ShrineEvent struct {
	HealFraction float64
}

func (ShrineEvent) Kind() EventKind { return EventShrine }

func (ShrineEvent) Prompt() string { return "A faint light pulses above a worn altar." }

// SpiritEvent is a wandering spirit that grants experience.
type SpiritEvent struct {
	XP int
}

func (SpiritEvent) Kind() EventKind { return EventSpirit }

func (SpiritEvent) Prompt() string { return "A translucent figure drifts toward you, murmuring." }
