package explore

import (
	"errors"
	"fmt"
)

// Sentinel reasons an action can be rejected. Callers test them with
// errors.Is against the *ActionError an action returns.
var (
	ErrNotInRoom      = errors.New("you are not inside the dungeon")
	ErrAlreadyInRoom  = errors.New("you are already inside the dungeon")
	ErrNoExit         = errors.New("there is no exit that way")
	ErrEventPending   = errors.New("something here demands your attention first")
	ErrNoMonsters     = errors.New("there is nothing here to fight")
	ErrNoTreasure     = errors.New("there is no treasure here")
	ErrNotSafe        = errors.New("monsters still guard this room")
	ErrNoEvent        = errors.New("there is nothing here to investigate")
	ErrAnswerRequired = errors.New("an answer is required")
	ErrNoFeature      = errors.New("there is no such feature")
	ErrNoStairs       = errors.New("there are no stairs here")
	ErrMaxDepth       = errors.New("this is the deepest floor")
	ErrAlreadyRested  = errors.New("you have already rested on this floor")
	ErrRestricted     = errors.New("your condition prevents it")
	ErrNoItem         = errors.New("you are not carrying that")
	ErrUnusable       = errors.New("that cannot be used")
)

// ActionError is a rejected player action. It never leaves the session in a
// changed state.
type ActionError struct {
	Action string
	Err    error
}

// Error returns the player-facing message.
func (e *ActionError) Error() string {
	return fmt.Sprintf("cannot %s: %v", e.Action, e.Err)
}

// Unwrap exposes the sentinel for errors.Is.
func (e *ActionError) Unwrap() error { return e.Err }

func reject(action string, err error) *ActionError {
	return &ActionError{Action: action, Err: err}
}
