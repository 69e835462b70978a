package dungeon

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/game/dice"
)

const (
	// bossAlternateChance is the probability that the boss lands in one of
	// the three farthest rooms instead of the single farthest.
	bossAlternateChance = 0.25
	maxFeaturesPerRoom  = 2
	shrineHealFraction  = 0.25
	featureHealFraction = 0.15
)

// Params tunes floor generation. Rates are probabilities in [0, 1].
type Params struct {
	MinRooms       int
	MaxRooms       int
	MonsterRate    float64
	TreasureRate   float64
	TrapRate       float64
	EventRate      float64
	FeatureRate    float64
	ExtraEdgeRatio float64
	// BossInterval places a boss on every floor whose level is a multiple
	// of it. Values below 1 are treated as 1.
	BossInterval int
	MaxLevel     int
}

// DefaultParams returns the stock generation parameters.
func DefaultParams() Params {
	return Params{
		MinRooms:       8,
		MaxRooms:       20,
		MonsterRate:    0.45,
		TreasureRate:   0.30,
		TrapRate:       0.15,
		EventRate:      0.15,
		FeatureRate:    0.35,
		ExtraEdgeRatio: 0.20,
		BossInterval:   1,
		MaxLevel:       100,
	}
}

// GenerateOptions carries per-call choices made by the caller.
type GenerateOptions struct {
	// Theme forces the floor theme; nil draws one uniformly.
	Theme *Theme
	// Seal reserves a seal on the floor; nil means none.
	Seal *SealType
}

// Generator builds floors from Params.
type Generator struct {
	params Params
	logger *zap.Logger
}

// NewGenerator creates a Generator.
//
// Precondition: params.MinRooms >= 2 and params.MaxRooms >= params.MinRooms;
// logger must not be nil.
func NewGenerator(params Params, logger *zap.Logger) *Generator {
	if params.BossInterval < 1 {
		params.BossInterval = 1
	}
	return &Generator{params: params, logger: logger}
}

// Params returns the generator's parameters.
func (g *Generator) Params() Params { return g.params }

type cell struct{ x, y int }

// Generate builds a complete floor for level. The result depends only on
// level, the generator's parameters, opts and the state of src.
//
// Precondition: src must not be nil.
// Postcondition: The returned floor satisfies Validate(params.MaxLevel).
func (g *Generator) Generate(level int, src dice.Source, opts GenerateOptions) *Floor {
	if level < 1 {
		level = 1
	}
	var theme Theme
	if opts.Theme != nil {
		theme = *opts.Theme
	} else {
		theme = AllThemes[src.Intn(len(AllThemes))]
	}

	n := clamp(g.params.MinRooms+dice.Between(src, 0, 3)+level/8, g.params.MinRooms, g.params.MaxRooms)
	f := &Floor{
		Level:       level,
		Theme:       theme,
		Rooms:       make(map[RoomID]*Room, n),
		Entrance:    EntranceID,
		Current:     EntranceID,
		DangerLevel: DangerLevelFor(level),
	}

	cells := g.layout(f, n, src)
	extra := g.linkExtra(f, cells, src)
	for _, id := range f.RoomIDs() {
		if id != EntranceID {
			f.Rooms[id].Type = ordinaryTypes[src.Intn(len(ordinaryTypes))]
		}
	}
	boss := g.placeBoss(f, src)
	g.placeStairs(f, src)
	g.fillContent(f, src)
	if opts.Seal != nil {
		g.reserveSeal(f, *opts.Seal, src)
	}

	g.logger.Debug("floor generated",
		zap.Int("level", level),
		zap.Stringer("theme", theme),
		zap.Int("rooms", len(f.Rooms)),
		zap.Int("extra_edges", extra),
		zap.Bool("boss", boss != nil),
		zap.Int("stairs", len(f.StairsRooms())),
		zap.Bool("seal", f.Seal != nil),
	)
	return f
}

// layout places n rooms on a grid as a spanning tree rooted at the entrance.
func (g *Generator) layout(f *Floor, n int, src dice.Source) map[RoomID]cell {
	pos := map[RoomID]cell{EntranceID: {0, 0}}
	occupied := map[cell]RoomID{{0, 0}: EntranceID}
	f.Rooms[EntranceID] = newRoom(EntranceID, RoomEntrance)

	for id := RoomID(1); int(id) < n; id++ {
		placed := false
		start := src.Intn(int(id))
		for k := 0; k < int(id) && !placed; k++ {
			parent := RoomID((start + k) % int(id))
			off := src.Intn(len(Directions))
			for j := 0; j < len(Directions); j++ {
				d := Directions[(off+j)%len(Directions)]
				dx, dy := d.delta()
				c := cell{pos[parent].x + dx, pos[parent].y + dy}
				if _, taken := occupied[c]; taken {
					continue
				}
				room := newRoom(id, RoomChamber)
				f.Rooms[id] = room
				pos[id] = c
				occupied[c] = id
				link(f.Rooms[parent], d, room, exitDescriptions[src.Intn(len(exitDescriptions))])
				placed = true
				break
			}
		}
		if !placed {
			g.logger.Debug("room placement exhausted", zap.Int("placed", int(id)), zap.Int("wanted", n))
			break
		}
	}
	return pos
}

// linkExtra adds loops between grid-adjacent rooms that are not yet linked.
// It returns the number of edges added.
func (g *Generator) linkExtra(f *Floor, cells map[RoomID]cell, src dice.Source) int {
	at := make(map[cell]RoomID, len(cells))
	for id, c := range cells {
		at[c] = id
	}
	type pair struct {
		a, b RoomID
		dir  Direction
	}
	var candidates []pair
	for _, id := range f.RoomIDs() {
		for _, d := range []Direction{East, South} {
			dx, dy := d.delta()
			other, ok := at[cell{cells[id].x + dx, cells[id].y + dy}]
			if !ok {
				continue
			}
			if _, linked := f.Rooms[id].Exits[d]; linked {
				continue
			}
			candidates = append(candidates, pair{id, other, d})
		}
	}

	limit := int(float64(len(f.Rooms)) * g.params.ExtraEdgeRatio)
	added := 0
	for i := 0; i < len(candidates) && added < limit; i++ {
		j := i + src.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
		c := candidates[i]
		link(f.Rooms[c.a], c.dir, f.Rooms[c.b], exitDescriptions[src.Intn(len(exitDescriptions))])
		added++
	}
	return added
}

func link(from *Room, dir Direction, to *Room, desc string) {
	from.Exits[dir] = Exit{Target: to.ID, Description: desc}
	to.Exits[dir.Opposite()] = Exit{Target: from.ID, Description: desc}
}

// placeBoss marks the boss room on boss floors and returns it, or nil.
func (g *Generator) placeBoss(f *Floor, src dice.Source) *Room {
	if f.Level%g.params.BossInterval != 0 || len(f.Rooms) < 2 {
		return nil
	}
	dist := f.Distances(EntranceID)
	candidates := make([]RoomID, 0, len(dist))
	for id := range dist {
		if id != EntranceID {
			candidates = append(candidates, id)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if dist[candidates[i]] != dist[candidates[j]] {
			return dist[candidates[i]] > dist[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})
	idx := 0
	if dice.Chance(src, bossAlternateChance) {
		idx = src.Intn(min(3, len(candidates)))
	}
	boss := f.Rooms[candidates[idx]]
	boss.IsBossRoom = true
	if boss.Type.HasMandatoryEvent() {
		boss.Type = RoomChamber
	}
	return boss
}

// placeStairs puts stairs down in one room unless the floor is the deepest.
func (g *Generator) placeStairs(f *Floor, src dice.Source) {
	if f.Level >= g.params.MaxLevel {
		return
	}
	var candidates []RoomID
	var boss *Room
	for _, id := range f.RoomIDs() {
		r := f.Rooms[id]
		switch {
		case id == EntranceID:
		case r.IsBossRoom:
			boss = r
		default:
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		if boss != nil {
			g.logger.Debug("stairs fall back to boss room", zap.Int("level", f.Level))
			boss.HasStairsDown = true
		}
		return
	}
	f.Rooms[candidates[src.Intn(len(candidates))]].HasStairsDown = true
}

// fillContent names every room and rolls its monsters, treasure, trap,
// event and features.
func (g *Generator) fillContent(f *Floor, src dice.Source) {
	prof := f.Theme.profile()
	for _, id := range f.RoomIDs() {
		r := f.Rooms[id]
		adj := prof.adjectives[src.Intn(len(prof.adjectives))]
		r.Atmosphere = prof.atmosphere[src.Intn(len(prof.atmosphere))]
		r.Description = roomDescriptions[r.Type]

		switch {
		case id == EntranceID:
			r.Name = fmt.Sprintf("%s Entrance", prof.name)
			continue
		case r.IsBossRoom:
			r.Name = fmt.Sprintf("%s Lair", adj)
			r.Description = "Something immense waits here. The air is heavy with menace."
			r.HasMonsters = true
			r.DangerRating = 3
			continue
		}

		r.Name = fmt.Sprintf("%s %s", adj, r.Type)
		rate := g.params.MonsterRate
		if r.Type == RoomShrine || r.Type == RoomMeditationChamber {
			rate /= 2
		}
		r.HasMonsters = dice.Chance(src, rate)
		r.HasTreasure = dice.Chance(src, g.params.TreasureRate)
		r.HasTrap = dice.Chance(src, g.params.TrapRate)

		switch {
		case r.Type == RoomRiddleGate:
			rd := riddles[src.Intn(len(riddles))]
			r.HasEvent, r.Event = true, RiddleEvent{Question: rd.question, Answer: rd.answer}
		case r.Type == RoomPuzzleRoom:
			pz := puzzles[src.Intn(len(puzzles))]
			opts := append([]string(nil), pz.options...)
			r.HasEvent, r.Event = true, PuzzleEvent{Question: pz.question, Options: opts, Solution: src.Intn(len(opts))}
		case dice.Chance(src, g.params.EventRate):
			r.HasEvent = true
			if r.Type == RoomShrine || src.Intn(2) == 0 {
				r.Event = ShrineEvent{HealFraction: shrineHealFraction}
			} else {
				r.Event = SpiritEvent{XP: f.Level * 15}
			}
		}

		switch {
		case r.HasMonsters:
			r.DangerRating = 1 + f.DangerLevel/5
			if r.HasTrap {
				r.DangerRating++
			}
			r.DangerRating = clamp(r.DangerRating, 1, 3)
		case r.HasTrap:
			r.DangerRating = 1
		}

		count := 0
		for i := 0; i < maxFeaturesPerRoom; i++ {
			if dice.Chance(src, g.params.FeatureRate) {
				count++
			}
		}
		for i := 0; i < count; i++ {
			r.Features = append(r.Features, newFeature(f.Level, prof, src))
		}
	}
}

func newFeature(level int, prof themeProfile, src dice.Source) *Feature {
	name := prof.features[src.Intn(len(prof.features))]
	feat := &Feature{Name: name, Description: fmt.Sprintf("You study the %s closely.", name)}
	switch roll := src.Intn(10); {
	case roll < 4:
		feat.Interaction = InspectInteraction{}
	case roll < 6:
		feat.Interaction = HealInteraction{Fraction: featureHealFraction}
		feat.Description = fmt.Sprintf("A soothing warmth radiates from the %s.", name)
	case roll < 8:
		feat.Interaction = CacheInteraction{Gold: level*10 + dice.Between(src, 0, level*20)}
		feat.Description = fmt.Sprintf("Something glints within the %s.", name)
	default:
		feat.Interaction = LoreInteraction{Text: loreTexts[src.Intn(len(loreTexts))], XP: level * 10}
		feat.Description = fmt.Sprintf("Markings cover the %s.", name)
	}
	return feat
}

// reserveSeal records the seal on the floor and makes sure some room can
// carry it.
func (g *Generator) reserveSeal(f *Floor, seal SealType, src dice.Source) {
	s := seal
	f.Seal = &s
	f.HasUncollectedSeal = true

	var plain, other []RoomID
	var boss *Room
	for _, id := range f.RoomIDs() {
		r := f.Rooms[id]
		if r.Type.SealEligible() {
			return
		}
		switch {
		case id == EntranceID:
		case r.IsBossRoom:
			boss = r
		case (r.Type == RoomChamber || r.Type == RoomCorridor) && !r.HasStairsDown:
			plain = append(plain, id)
		default:
			other = append(other, id)
		}
	}

	var pick []RoomID
	switch {
	case len(plain) > 0:
		pick = plain
	case boss != nil:
		g.logger.Debug("seal carried by boss room", zap.Int("level", f.Level), zap.String("seal", string(seal)))
		return
	default:
		pick = other
	}
	if len(pick) == 0 {
		return
	}
	r := f.Rooms[pick[src.Intn(len(pick))]]
	r.Type = RoomShrine
	r.Name = fmt.Sprintf("%s %s", f.Theme.profile().adjectives[0], r.Type)
	r.Description = roomDescriptions[RoomShrine]
	if _, mandatory := r.Event.(RiddleEvent); mandatory {
		r.HasEvent, r.Event = false, nil
	}
	if _, mandatory := r.Event.(PuzzleEvent); mandatory {
		r.HasEvent, r.Event = false, nil
	}
	g.logger.Debug("seal room converted to shrine", zap.Int("level", f.Level), zap.Int("room", int(r.ID)))
}
