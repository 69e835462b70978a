package explore

import (
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/game/condition"
	"github.com/cory-johannsen/crawl/internal/game/dungeon"
	"github.com/cory-johannsen/crawl/internal/game/scaling"
)

// restAction is the action name conditions use to forbid resting.
const restAction = "rest"

// Fight engages the monsters of the current room.
//
// Precondition: the room has monsters and is not cleared.
// Postcondition: On victory the room is cleared and rewards are granted; on
// defeat the player is at 1 HP, weakened, and back at the Overview.
func (s *Session) Fight() (*Outcome, error) {
	room, err := s.inRoom("fight")
	if err != nil {
		return nil, err
	}
	if !room.HasMonsters || room.IsCleared {
		return nil, reject("fight", ErrNoMonsters)
	}
	out := &Outcome{}
	s.fight(room, out)
	return out, nil
}

func (s *Session) fight(room *dungeon.Room, out *Outcome) {
	monsters := s.encounter(room)
	if len(monsters) == 0 {
		// Every monster fell in an earlier fight that ended without a verdict.
		s.clear(room, out)
		return
	}
	res := s.deps.Combat.ResolveCombat(s.player, monsters, nil, s.src)
	s.floor.MonstersKilled += len(monsters) - len(s.Monsters(room.ID))
	out.Combat = &res
	out.Messages = append(out.Messages, res.Narrative()...)

	switch {
	case res.Defeated:
		s.defeat(out)
	case res.Victory:
		out.say("The last foe falls.")
		s.clear(room, out)
		s.grant(scaling.Reward{Gold: res.Gold, XP: res.XP}, out)
		for _, item := range res.Items {
			for i := 0; i < max(1, item.Quantity); i++ {
				s.player.AddConsumable(item.ItemID)
			}
			out.say("You take %s.", item.ItemID)
		}
	default:
		out.say("Exhausted, you break off the fight. The monsters remain.")
	}
}

func (s *Session) clear(room *dungeon.Room, out *Outcome) {
	room.MarkCleared()
	if room.IsBossRoom && !s.floor.BossDefeated {
		s.floor.BossDefeated = true
		bonus := scaling.BossBonus(s.floor.Level, s.src)
		out.say("The guardian of this floor is slain!")
		s.grant(bonus, out)
		s.logger.Info("boss defeated", zap.Int("level", s.floor.Level))
	}
}

func (s *Session) defeat(out *Outcome) {
	out.Defeated = true
	s.player.CurrentHP = 1
	s.applyCondition(condition.Weakened)
	s.state = StateOverview
	if err := s.floor.SetCurrent(s.floor.Entrance); err != nil {
		s.logger.Error("returning to entrance", zap.Error(err))
	}
	out.say("You collapse. Some time later you wake at the floor's entrance, barely alive.")
	s.logger.Info("player defeated", zap.Int("level", s.floor.Level))
}

// grant applies a reward to the player and records it in out.
func (s *Session) grant(r scaling.Reward, out *Outcome) {
	out.merge(r)
	if r.Gold > 0 {
		s.player.AddGold(r.Gold)
		out.say("You gain %d gold.", r.Gold)
	}
	if r.XP > 0 {
		ups := s.player.GainXP(r.XP)
		out.say("You gain %d experience.", r.XP)
		for _, up := range ups {
			out.say("You reach level %d! (+%d max HP)", up.NewLevel, up.HPGain)
		}
		out.LevelUps = append(out.LevelUps, ups...)
	}
	for _, c := range r.Consumables {
		s.player.AddConsumable(c)
		out.say("You find a %s.", c)
	}
}

// CollectTreasure loots the current room's treasure.
//
// Precondition: the room has unlooted treasure and is safe.
func (s *Session) CollectTreasure() (*Outcome, error) {
	const action = "collect treasure"
	room, err := s.inRoom(action)
	if err != nil {
		return nil, err
	}
	if !room.HasTreasureAvailable() {
		return nil, reject(action, ErrNoTreasure)
	}
	if !room.IsSafe() {
		return nil, reject(action, ErrNotSafe)
	}
	out := &Outcome{}
	room.MarkLooted()
	s.floor.TreasuresFound++
	out.say("You pry open the cache.")
	s.grant(scaling.RollTreasure(s.floor.Level, s.src), out)
	return out, nil
}

// InvestigateEvent resolves the current room's event. Riddles and puzzles
// need an answer; a wrong answer hurts but still completes the event.
//
// Precondition: the room has an uncompleted event.
// Postcondition: EventCompleted is true on success.
func (s *Session) InvestigateEvent(answer string) (*Outcome, error) {
	const action = "investigate"
	room, err := s.inRoom(action)
	if err != nil {
		return nil, err
	}
	if !room.HasPendingEvent() {
		return nil, reject(action, ErrNoEvent)
	}

	out := &Outcome{}
	switch ev := room.Event.(type) {
	case dungeon.RiddleEvent:
		if strings.TrimSpace(answer) == "" {
			return nil, reject(action, ErrAnswerRequired)
		}
		s.answer(ev.Accepts(answer), out)
	case dungeon.PuzzleEvent:
		if strings.TrimSpace(answer) == "" {
			return nil, reject(action, ErrAnswerRequired)
		}
		s.answer(ev.Accepts(answer), out)
	case dungeon.ShrineEvent:
		out.Healed = s.player.HealFraction(ev.HealFraction)
		out.say("Warmth flows from the altar. You recover %d HP.", out.Healed)
	case dungeon.SpiritEvent:
		out.say("The spirit whispers secrets of the deep.")
		s.grant(scaling.Reward{XP: ev.XP}, out)
	default:
		return nil, reject(action, ErrNoEvent)
	}
	room.CompleteEvent()
	return out, nil
}

func (s *Session) answer(correct bool, out *Outcome) {
	if correct {
		out.say("The answer rings true. The way opens.")
		s.grant(scaling.EventReward(s.floor.Level), out)
		return
	}
	dealt := s.player.Wound(scaling.EventPenalty(s.floor.Level, s.src))
	out.Damage += dealt
	out.say("Wrong. A lash of force strikes you for %d damage, and the way grinds open.", dealt)
}

// ExamineFeature interacts with the feature at the 1-based index. A
// feature's effect applies only once; later examinations describe it.
func (s *Session) ExamineFeature(index int) (*Outcome, error) {
	const action = "examine"
	room, err := s.inRoom(action)
	if err != nil {
		return nil, err
	}
	if index < 1 || index > len(room.Features) {
		return nil, reject(action, ErrNoFeature)
	}
	feat := room.Features[index-1]
	out := &Outcome{}
	out.say("%s: %s", feat.Name, feat.Description)
	if feat.Interacted {
		out.say("You have already learned all it has to offer.")
		return out, nil
	}
	switch in := feat.Interaction.(type) {
	case dungeon.HealInteraction:
		out.Healed = s.player.HealFraction(in.Fraction)
		out.say("A soothing aura restores %d HP.", out.Healed)
	case dungeon.CacheInteraction:
		out.say("Tucked inside you find a hidden cache.")
		s.grant(scaling.Reward{Gold: in.Gold}, out)
	case dungeon.LoreInteraction:
		out.say("%s", in.Text)
		s.grant(scaling.Reward{XP: in.XP}, out)
	}
	feat.MarkInteracted()
	return out, nil
}

// Descend takes the stairs to the next floor.
//
// Precondition: the room has stairs, is safe, holds no unresolved riddle or
// puzzle, and the floor is above MaxLevel.
func (s *Session) Descend() (*Outcome, error) {
	const action = "descend"
	room, err := s.inRoom(action)
	if err != nil {
		return nil, err
	}
	switch {
	case !room.HasStairsDown:
		return nil, reject(action, ErrNoStairs)
	case !room.IsSafe():
		return nil, reject(action, ErrNotSafe)
	case room.BlocksExit():
		return nil, reject(action, ErrEventPending)
	case s.floor.Level >= s.cfg.MaxLevel:
		return nil, reject(action, ErrMaxDepth)
	}
	out := &Outcome{}
	out.say("You descend the stairs into the dark.")
	s.changeDepth(s.floor.Level+1, out)
	return out, nil
}

// ChangeDepth jumps directly to target, clamped to [1, MaxLevel]. A new
// floor is generated only when the clamped depth differs from the loaded
// one.
func (s *Session) ChangeDepth(target int) (*Outcome, error) {
	out := &Outcome{}
	level := clampLevel(target, s.cfg.MaxLevel)
	if level == s.floor.Level {
		out.say("You are already on floor %d.", level)
		return out, nil
	}
	s.changeDepth(level, out)
	return out, nil
}

func (s *Session) changeDepth(level int, out *Outcome) {
	s.loadFloor(level, out)
	out.say("Floor %d: the %s.", level, s.floor.Theme)
	if s.state == StateInRoom {
		s.arrive(s.floor.CurrentRoom(), out)
	}
}

// Rest heals RestHealFraction of max HP, once per floor, in a safe room.
func (s *Session) Rest() (*Outcome, error) {
	room, err := s.inRoom(restAction)
	if err != nil {
		return nil, err
	}
	switch {
	case !room.IsSafe():
		return nil, reject(restAction, ErrNotSafe)
	case s.hasRestThisFloor:
		return nil, reject(restAction, ErrAlreadyRested)
	case condition.IsActionRestricted(s.player.Conditions, restAction):
		return nil, reject(restAction, ErrRestricted)
	}
	s.hasRestThisFloor = true
	out := &Outcome{}
	out.Healed = s.player.HealFraction(s.cfg.RestHealFraction)
	out.say("You rest a while and recover %d HP.", out.Healed)
	return out, nil
}

// UseItem consumes one carried item. Healing draughts restore HP; antidotes
// cure poison.
func (s *Session) UseItem(name string) (*Outcome, error) {
	const action = "use"
	name = strings.ToLower(strings.TrimSpace(name))
	if s.player.Consumables[name] <= 0 {
		return nil, reject(action, ErrNoItem)
	}
	out := &Outcome{}
	switch name {
	case scaling.HealingDraught:
		s.player.TakeConsumable(name)
		out.Healed = s.player.HealFraction(s.cfg.HealingDraughtFraction)
		out.say("You drink the draught and recover %d HP.", out.Healed)
	case scaling.Antidote:
		s.player.TakeConsumable(name)
		s.player.Conditions.Remove(condition.Poisoned)
		out.say("The antidote purges the poison.")
	default:
		return nil, reject(action, ErrUnusable)
	}
	return out, nil
}

func (s *Session) inRoom(action string) (*dungeon.Room, error) {
	if s.state != StateInRoom {
		return nil, reject(action, ErrNotInRoom)
	}
	return s.floor.CurrentRoom(), nil
}
