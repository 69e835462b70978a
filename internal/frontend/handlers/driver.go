package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/frontend/telnet"
	"github.com/cory-johannsen/crawl/internal/game/command"
	"github.com/cory-johannsen/crawl/internal/game/dungeon"
	"github.com/cory-johannsen/crawl/internal/game/explore"
)

// Driver runs the command loop of one exploration session. Every command is
// handled to completion before the next line is read.
type Driver struct {
	session   *explore.Session
	registry  *command.Registry
	renderer  *Renderer
	presenter Presenter
	logger    *zap.Logger
}

// NewDriver creates a Driver.
//
// Precondition: all arguments must be non-nil.
func NewDriver(session *explore.Session, presenter Presenter, renderer *Renderer, logger *zap.Logger) *Driver {
	return &Driver{
		session:   session,
		registry:  command.DefaultRegistry(),
		renderer:  renderer,
		presenter: presenter,
		logger:    logger,
	}
}

// Run shows the floor overview and processes commands until the player
// quits, ctx is cancelled, or the presenter fails.
//
// Postcondition: Returns nil on quit, ctx.Err() on cancellation, or a
// wrapped presenter error.
func (d *Driver) Run(ctx context.Context) error {
	start := time.Now()
	commands := 0
	if err := d.presenter.Display(d.renderer.Overview(d.session.Overview())); err != nil {
		return fmt.Errorf("displaying overview: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := d.presenter.AwaitChoice()
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		text, quit := d.Handle(line)
		commands++
		if text != "" {
			if err := d.presenter.Display(text); err != nil {
				return fmt.Errorf("displaying result: %w", err)
			}
		}
		if quit {
			d.logger.Info("player quit",
				zap.String("session", d.session.ID()),
				zap.Int("commands", commands),
				zap.Int("depth", d.session.Level()),
				zap.Duration("duration", time.Since(start)),
			)
			return nil
		}
	}
}

// Handle executes one input line and returns the text to show and whether
// the player asked to quit. Rejected actions leave the session unchanged.
func (d *Driver) Handle(line string) (string, bool) {
	parsed := command.Parse(line)
	if parsed.Command == "" {
		return "", false
	}
	cmd, ok := d.registry.Resolve(parsed.Command)
	if !ok {
		return d.unknown(parsed.Command), false
	}

	s := d.session
	switch cmd.Handler {
	case command.HandlerMove:
		dir, ok := d.direction(cmd, parsed)
		if !ok {
			return d.renderer.paint(telnet.Red, "Go where? Try north, south, east or west."), false
		}
		return d.act(s.Move(dir)), false
	case command.HandlerEnter:
		return d.act(s.Enter()), false
	case command.HandlerLeave:
		return joinNonEmpty([]string{d.act(s.Leave()), d.renderer.Overview(s.Overview())}), false
	case command.HandlerLook:
		return d.look(), false
	case command.HandlerMap:
		return d.renderer.Map(s.ShowMap()), false
	case command.HandlerFight:
		return d.act(s.Fight()), false
	case command.HandlerLoot:
		return d.act(s.CollectTreasure()), false
	case command.HandlerInvestigate:
		return d.act(s.InvestigateEvent(parsed.RawArgs)), false
	case command.HandlerExamine:
		n, err := parsed.IntArg()
		if err != nil {
			return d.usage(cmd, err), false
		}
		return d.act(s.ExamineFeature(n)), false
	case command.HandlerDescend:
		return d.act(s.Descend()), false
	case command.HandlerRest:
		return d.act(s.Rest()), false
	case command.HandlerDepth:
		n, err := parsed.IntArg()
		if err != nil {
			return d.usage(cmd, err), false
		}
		return d.act(s.ChangeDepth(n)), false
	case command.HandlerUse:
		if parsed.RawArgs == "" {
			return d.usage(cmd, command.ErrMissingArgument), false
		}
		return d.act(s.UseItem(parsed.RawArgs)), false
	case command.HandlerStatus:
		return d.renderer.Status(s.Player(), s), false
	case command.HandlerInventory:
		return d.renderer.Inventory(s.Player()), false
	case command.HandlerHelp:
		return d.renderer.Help(d.registry), false
	case command.HandlerQuit:
		return d.renderer.paint(telnet.Cyan, "The dark closes behind you. Farewell."), true
	default:
		return d.renderer.paintf(telnet.Dim, "You don't know how to '%s'.", parsed.Command), false
	}
}

func (d *Driver) direction(cmd *command.Command, parsed command.ParseResult) (dungeon.Direction, bool) {
	if command.IsMovementCommand(cmd.Name) {
		return dungeon.Direction(cmd.Name), true
	}
	if len(parsed.Args) == 0 {
		return "", false
	}
	return dungeon.ParseDirection(parsed.Args[0])
}

// act renders the result of an action, following it with the room or the
// overview the player now faces.
func (d *Driver) act(out *explore.Outcome, err error) string {
	if err != nil {
		var ae *explore.ActionError
		if !errors.As(err, &ae) {
			d.logger.Error("unexpected action error", zap.String("session", d.session.ID()), zap.Error(err))
		}
		return d.renderer.Error(err)
	}
	parts := []string{d.renderer.Outcome(out)}
	switch {
	case d.session.State() == explore.StateInRoom && out.Arrived:
		room := d.session.CurrentRoom()
		parts = append(parts, d.renderer.Room(room, d.session.Monsters(room.ID)))
	case d.session.State() == explore.StateOverview && (out.NewFloor || out.Defeated):
		parts = append(parts, d.renderer.Overview(d.session.Overview()))
	}
	return joinNonEmpty(parts)
}

func (d *Driver) look() string {
	s := d.session
	if s.State() != explore.StateInRoom {
		return d.renderer.Overview(s.Overview())
	}
	room := s.CurrentRoom()
	return d.renderer.Room(room, s.Monsters(room.ID))
}

func (d *Driver) usage(cmd *command.Command, err error) string {
	switch {
	case errors.Is(err, command.ErrMissingArgument):
		return d.renderer.paintf(telnet.Red, "Usage: %s", cmd.Usage)
	default:
		return d.renderer.paintf(telnet.Red, "%v. Usage: %s", err, cmd.Usage)
	}
}

func (d *Driver) unknown(input string) string {
	if suggestions := d.registry.Suggest(input); len(suggestions) > 0 {
		return d.renderer.paintf(telnet.Red, "Unknown command '%s'. Did you mean: %s?", input, strings.Join(suggestions, ", "))
	}
	return d.renderer.paintf(telnet.Red, "Unknown command '%s'. Type 'help' for a list.", input)
}

func joinNonEmpty(parts []string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}
