package handlers

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cory-johannsen/crawl/internal/frontend/telnet"
	"github.com/cory-johannsen/crawl/internal/game/character"
	"github.com/cory-johannsen/crawl/internal/game/command"
	"github.com/cory-johannsen/crawl/internal/game/dungeon"
	"github.com/cory-johannsen/crawl/internal/game/explore"
	"github.com/cory-johannsen/crawl/internal/game/npc"
	"github.com/cory-johannsen/crawl/internal/game/scaling"
)

// Renderer formats session state as text, optionally with ANSI colors.
type Renderer struct {
	color bool
}

// NewRenderer creates a Renderer. With color false the output is plain text.
func NewRenderer(color bool) *Renderer {
	return &Renderer{color: color}
}

func (r *Renderer) paint(color, text string) string {
	if !r.color {
		return text
	}
	return telnet.Colorize(color, text)
}

func (r *Renderer) paintf(color, format string, args ...any) string {
	return r.paint(color, fmt.Sprintf(format, args...))
}

// heading paints title and underlines it to its printable width.
func (r *Renderer) heading(color, title string) string {
	painted := r.paint(color, title)
	return painted + "\n" + strings.Repeat("=", telnet.VisibleLen(painted)) + "\n"
}

// Room describes room and whatever still waits in it.
func (r *Renderer) Room(room *dungeon.Room, monsters []*npc.Instance) string {
	var b strings.Builder
	title := room.Name
	if room.IsBossRoom {
		title += " (lair)"
	}
	b.WriteString(r.paint(telnet.BrightYellow, title))
	b.WriteString("\n")
	if room.Description != "" {
		b.WriteString(room.Description)
		b.WriteString("\n")
	}
	if room.Atmosphere != "" {
		b.WriteString(r.paint(telnet.Dim, room.Atmosphere))
		b.WriteString("\n")
	}

	for _, m := range monsters {
		b.WriteString(r.paintf(telnet.Red, "  %s (level %d) looks %s.", m.Name, m.Level, m.HealthDescription()))
		b.WriteString("\n")
	}
	if room.HasPendingEvent() {
		b.WriteString(r.paint(telnet.BrightMagenta, room.Event.Prompt()))
		b.WriteString("\n")
		if p, ok := room.Event.(dungeon.PuzzleEvent); ok {
			for i, opt := range p.Options {
				b.WriteString(fmt.Sprintf("  %d) %s\n", i+1, opt))
			}
		}
	}
	if room.HasTreasureAvailable() {
		b.WriteString(r.paint(telnet.BrightYellow, "A treasure cache glints in the dark."))
		b.WriteString("\n")
	}
	for i, f := range room.Features {
		mark := ""
		if f.Interacted {
			mark = " (examined)"
		}
		b.WriteString(r.paintf(telnet.Green, "  [%d] %s%s", i+1, f.Name, mark))
		b.WriteString("\n")
	}
	if room.HasStairsDown {
		b.WriteString(r.paint(telnet.BrightCyan, "Stairs spiral down into the deep."))
		b.WriteString("\n")
	}

	dirs := room.ExitDirections()
	if len(dirs) == 0 {
		b.WriteString(r.paint(telnet.Dim, "There are no obvious exits."))
	} else {
		names := make([]string, 0, len(dirs))
		for _, d := range dirs {
			names = append(names, string(d))
		}
		b.WriteString(r.paint(telnet.Cyan, "Exits: "+strings.Join(names, ", ")))
	}
	return b.String()
}

// Outcome renders the narration of an action.
func (r *Renderer) Outcome(out *explore.Outcome) string {
	if out == nil {
		return ""
	}
	lines := make([]string, 0, len(out.Messages))
	for _, msg := range out.Messages {
		switch {
		case out.Seal != nil && strings.Contains(msg, out.Seal.Title()):
			lines = append(lines, r.paint(telnet.Bold+telnet.BrightWhite, msg))
		case out.Defeated && strings.HasPrefix(msg, "You collapse"):
			lines = append(lines, r.paint(telnet.BrightRed, msg))
		case out.Dangerous && strings.HasPrefix(msg, "Danger:"):
			lines = append(lines, r.paint(difficultyColor(out.Difficulty), msg))
		case strings.HasPrefix(msg, "You reach level"):
			lines = append(lines, r.paint(telnet.BrightGreen, msg))
		default:
			lines = append(lines, msg)
		}
	}
	return strings.Join(lines, "\n")
}

func difficultyColor(d scaling.Difficulty) string {
	switch d {
	case scaling.Trivial, scaling.Easy:
		return telnet.Green
	case scaling.Moderate, scaling.Hard:
		return telnet.Yellow
	default:
		return telnet.BrightRed
	}
}

// Overview renders the pre-entry summary of a floor.
func (r *Renderer) Overview(ov explore.Overview) string {
	var b strings.Builder
	b.WriteString(r.heading(telnet.BrightYellow, fmt.Sprintf("Floor %d: the %s", ov.Level, ov.Theme)))
	b.WriteString(fmt.Sprintf("Danger %d  Rooms %d/%d explored  Monsters slain %d  Treasures %d\n",
		ov.DangerLevel, ov.Explored, ov.Rooms, ov.MonstersKilled, ov.TreasuresFound))
	if ov.BossDefeated {
		b.WriteString(r.paint(telnet.Green, "The guardian of this floor is dead."))
		b.WriteString("\n")
	}
	if ov.SealPresent {
		b.WriteString(r.paint(telnet.BrightWhite, "Something ancient hums somewhere on this floor."))
		b.WriteString("\n")
	}
	if ov.Rested {
		b.WriteString(r.paint(telnet.Dim, "You have already rested here."))
		b.WriteString("\n")
	}
	b.WriteString(r.paint(telnet.Cyan, "Type 'enter' to step inside or 'depth <n>' to travel."))
	return b.String()
}

// Map renders the explored map with a legend.
func (r *Renderer) Map(mv *explore.MapView) string {
	var b strings.Builder
	b.WriteString(r.heading(telnet.BrightYellow, fmt.Sprintf("Floor %d (%d/%d explored)", mv.Level, mv.Explored, mv.Total)))
	grid := mv.Render()
	if grid == "" {
		b.WriteString(r.paint(telnet.Dim, "You have not mapped anything yet."))
		return b.String()
	}
	for _, ch := range grid {
		b.WriteString(r.symbol(ch))
	}
	b.WriteString(r.paint(telnet.Dim, "@ you  E entrance  B lair  > stairs  ! danger  $ treasure  # explored  ? unknown"))
	return b.String()
}

func (r *Renderer) symbol(ch rune) string {
	s := string(ch)
	switch ch {
	case explore.SymbolCurrent:
		return r.paint(telnet.BrightWhite, s)
	case explore.SymbolBoss, explore.SymbolDanger:
		return r.paint(telnet.Red, s)
	case explore.SymbolTreasure:
		return r.paint(telnet.Yellow, s)
	case explore.SymbolStairs, explore.SymbolEntrance:
		return r.paint(telnet.Cyan, s)
	case explore.SymbolUnknown:
		return r.paint(telnet.Dim, s)
	default:
		return s
	}
}

// Status renders the player's condition and progress.
func (r *Renderer) Status(p *character.Player, s *explore.Session) string {
	var b strings.Builder
	b.WriteString(r.paintf(telnet.BrightYellow, "%s, level %d", p.Name, p.Level))
	b.WriteString("\n")
	hpColor := telnet.Green
	if p.CurrentHP*4 <= p.MaxHP {
		hpColor = telnet.BrightRed
	}
	b.WriteString(r.paintf(hpColor, "HP %d/%d", p.CurrentHP, p.MaxHP))
	next := character.XPForLevel(p.Level + 1)
	b.WriteString(fmt.Sprintf("  XP %d/%d  Gold %d  Attack %d  Defense %d\n",
		p.Experience, next, p.Gold, p.EffectiveAttack(), p.EffectiveDefense()))
	for _, ac := range p.Conditions.All() {
		b.WriteString(r.paintf(telnet.Magenta, "  %s", ac.Def.Name))
		if ac.MovesRemaining > 0 {
			b.WriteString(fmt.Sprintf(" (%d moves)", ac.MovesRemaining))
		}
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("Depth %d of %d, %s", s.Level(), s.MaxLevel(), s.State()))
	return b.String()
}

// Inventory renders the player's pack.
func (r *Renderer) Inventory(p *character.Player) string {
	var names []string
	for name, n := range p.Consumables {
		if n > 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return r.paint(telnet.Dim, "Your pack is empty.")
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteString(r.paint(telnet.BrightWhite, "You carry:"))
	for _, name := range names {
		b.WriteString(fmt.Sprintf("\n  %dx %s", p.Consumables[name], name))
	}
	return b.String()
}

// Help renders the command list by category.
func (r *Renderer) Help(registry *command.Registry) string {
	categories := []struct {
		name  string
		label string
	}{
		{command.CategoryMovement, "Movement"},
		{command.CategoryDungeon, "Dungeon"},
		{command.CategoryCharacter, "Character"},
		{command.CategorySystem, "System"},
	}

	var b strings.Builder
	b.WriteString(r.paint(telnet.BrightWhite, "Available commands:"))
	byCategory := registry.CommandsByCategory()
	for _, cat := range categories {
		cmds := byCategory[cat.name]
		if len(cmds) == 0 {
			continue
		}
		b.WriteString("\n")
		b.WriteString(r.paintf(telnet.BrightYellow, "  %s:", cat.label))
		for _, cmd := range cmds {
			usage := cmd.Usage
			if usage == "" {
				usage = cmd.Name
			}
			aliases := ""
			if len(cmd.Aliases) > 0 {
				aliases = " (" + strings.Join(cmd.Aliases, ", ") + ")"
			}
			b.WriteString("\n")
			b.WriteString(r.paintf(telnet.Green, "    %-22s", usage))
			b.WriteString(cmd.Help + aliases)
		}
	}
	return b.String()
}

// Error renders a rejected action or malformed command.
func (r *Renderer) Error(err error) string {
	msg := err.Error()
	var ae *explore.ActionError
	if errors.As(err, &ae) {
		msg = fmt.Sprintf("You cannot %s: %s.", ae.Action, ae.Err)
	}
	return r.paint(telnet.Red, msg)
}
