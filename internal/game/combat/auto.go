package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/game/character"
	"github.com/cory-johannsen/crawl/internal/game/dice"
	"github.com/cory-johannsen/crawl/internal/game/npc"
)

// DefaultMaxRounds bounds a fight; a fight still undecided after it ends
// with the player withdrawing.
const DefaultMaxRounds = 50

// Result summarizes a resolved fight.
type Result struct {
	// Victory is true when every monster died.
	Victory bool
	// Defeated is true when the player fell.
	Defeated    bool
	Rounds      int
	Events      []RoundEvent
	Taunt       string
	DamageTaken int
	XP          int
	Gold        int
	Items       []npc.LootItem
}

// Narrative returns the fight as lines of text.
func (r Result) Narrative() []string {
	var lines []string
	if r.Taunt != "" {
		lines = append(lines, r.Taunt)
	}
	for _, e := range r.Events {
		lines = append(lines, e.Narrative)
	}
	return lines
}

// AutoResolver fights encounters to completion without player input.
type AutoResolver struct {
	logger    *zap.Logger
	maxRounds int
}

// NewAutoResolver creates an AutoResolver.
//
// Precondition: logger must not be nil; maxRounds < 1 selects DefaultMaxRounds.
func NewAutoResolver(logger *zap.Logger, maxRounds int) *AutoResolver {
	if maxRounds < 1 {
		maxRounds = DefaultMaxRounds
	}
	return &AutoResolver{logger: logger, maxRounds: maxRounds}
}

// PlayerCombatant builds the player's combatant from its effective stats.
func PlayerCombatant(p *character.Player) *Combatant {
	return &Combatant{
		ID:        p.ID,
		Kind:      KindPlayer,
		Name:      p.Name,
		MaxHP:     p.MaxHP,
		CurrentHP: p.CurrentHP,
		Attack:    p.EffectiveAttack(),
		Defense:   p.EffectiveDefense(),
		InitBonus: p.Level / 2,
	}
}

// MonsterCombatant builds a combatant from a monster instance.
func MonsterCombatant(m *npc.Instance) *Combatant {
	return &Combatant{
		ID:        m.ID,
		Kind:      KindMonster,
		Name:      m.Name,
		MaxHP:     m.MaxHP,
		CurrentHP: m.CurrentHP,
		Attack:    m.Strength,
		Defense:   m.Defense,
		InitBonus: m.Agility / 2,
	}
}

// ResolveCombat fights player and allies against monsters. The player's HP
// and each monster's HP are updated in place; a victory also rolls every
// monster's loot.
//
// Precondition: player is alive; monsters is non-empty; src must not be nil.
// Postcondition: Exactly one of Victory, Defeated, or neither (withdrawal
// after maxRounds) holds.
func (a *AutoResolver) ResolveCombat(player *character.Player, monsters []*npc.Instance, allies []*Combatant, src dice.Source) Result {
	var res Result
	pc := PlayerCombatant(player)
	combatants := []*Combatant{pc}
	for _, ally := range allies {
		if ally.Kind == KindMonster {
			continue
		}
		combatants = append(combatants, ally)
	}
	byID := make(map[string]*npc.Instance, len(monsters))
	for _, m := range monsters {
		combatants = append(combatants, MonsterCombatant(m))
		byID[m.ID] = m
		if res.Taunt == "" {
			if taunt, ok := m.Taunt(src); ok {
				res.Taunt = m.Name + ": " + taunt
			}
		}
	}

	c := &Combat{Combatants: combatants}
	RollInitiative(c.Combatants, src)
	for !c.Over() && c.Round < a.maxRounds {
		res.Events = append(res.Events, ResolveRound(c, src)...)
	}
	res.Rounds = c.Round

	res.DamageTaken = player.TakeDamage(player.CurrentHP - pc.CurrentHP)
	for _, cb := range c.Combatants {
		if m, ok := byID[cb.ID]; ok {
			m.TakeDamage(m.CurrentHP - cb.CurrentHP)
		}
	}

	res.Defeated = !player.IsAlive()
	res.Victory = !res.Defeated && len(c.Living(false)) == 0
	if res.Victory {
		for _, m := range monsters {
			res.XP += m.XP
			if m.Loot == nil {
				continue
			}
			loot := npc.GenerateLoot(*m.Loot, m.Level, src)
			res.Gold += loot.Gold
			res.Items = append(res.Items, loot.Items...)
		}
	}

	a.logger.Debug("combat resolved",
		zap.Int("monsters", len(monsters)),
		zap.Int("rounds", res.Rounds),
		zap.Bool("victory", res.Victory),
		zap.Bool("defeated", res.Defeated),
		zap.Int("damage_taken", res.DamageTaken),
	)
	return res
}
