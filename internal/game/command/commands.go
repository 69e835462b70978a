// Package command provides the command registry, parser, and built-in command definitions.
package command

// Categories for organizing commands.
const (
	CategoryMovement  = "movement"
	CategoryDungeon   = "dungeon"
	CategoryCharacter = "character"
	CategorySystem    = "system"
)

// Handler identifiers mapping commands to exploration actions.
const (
	HandlerMove        = "move"
	HandlerEnter       = "enter"
	HandlerLeave       = "leave"
	HandlerLook        = "look"
	HandlerMap         = "map"
	HandlerFight       = "fight"
	HandlerLoot        = "loot"
	HandlerInvestigate = "investigate"
	HandlerExamine     = "examine"
	HandlerDescend     = "descend"
	HandlerRest        = "rest"
	HandlerDepth       = "depth"
	HandlerUse         = "use"
	HandlerStatus      = "status"
	HandlerInventory   = "inventory"
	HandlerHelp        = "help"
	HandlerQuit        = "quit"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Usage shows the argument form, e.g. "examine <number>".
	Usage string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command.
	Category string
	// Handler names the action the command invokes.
	Handler string
}

// BuiltinCommands returns all built-in commands for the game.
func BuiltinCommands() []Command {
	return []Command{
		// Movement commands
		{Name: "north", Aliases: []string{"n"}, Help: "Move north", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "south", Aliases: []string{"s"}, Help: "Move south", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "east", Aliases: []string{"e"}, Help: "Move east", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "west", Aliases: []string{"w"}, Help: "Move west", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "go", Aliases: []string{"walk"}, Usage: "go <direction>", Help: "Move in a direction", Category: CategoryMovement, Handler: HandlerMove},

		// Dungeon commands
		{Name: "enter", Aliases: []string{"in"}, Help: "Enter the dungeon floor", Category: CategoryDungeon, Handler: HandlerEnter},
		{Name: "leave", Aliases: []string{"out", "retreat"}, Help: "Withdraw to the floor overview", Category: CategoryDungeon, Handler: HandlerLeave},
		{Name: "look", Aliases: []string{"l"}, Help: "Describe the current room", Category: CategoryDungeon, Handler: HandlerLook},
		{Name: "map", Aliases: []string{"m"}, Help: "Show the map of explored rooms", Category: CategoryDungeon, Handler: HandlerMap},
		{Name: "fight", Aliases: []string{"attack", "kill", "f"}, Help: "Fight the monsters in this room", Category: CategoryDungeon, Handler: HandlerFight},
		{Name: "loot", Aliases: []string{"collect", "take", "get"}, Help: "Collect the treasure in this room", Category: CategoryDungeon, Handler: HandlerLoot},
		{Name: "investigate", Aliases: []string{"answer", "solve"}, Usage: "investigate [answer]", Help: "Investigate this room's event", Category: CategoryDungeon, Handler: HandlerInvestigate},
		{Name: "examine", Aliases: []string{"ex", "x"}, Usage: "examine <number>", Help: "Examine a feature of this room", Category: CategoryDungeon, Handler: HandlerExamine},
		{Name: "descend", Aliases: []string{"down", "d"}, Help: "Take the stairs down", Category: CategoryDungeon, Handler: HandlerDescend},
		{Name: "rest", Aliases: []string{"r", "sleep"}, Help: "Rest in a safe room, once per floor", Category: CategoryDungeon, Handler: HandlerRest},
		{Name: "depth", Aliases: []string{"jump", "floor"}, Usage: "depth <level>", Help: "Travel directly to a dungeon depth", Category: CategoryDungeon, Handler: HandlerDepth},

		// Character commands
		{Name: "use", Aliases: []string{"drink", "quaff"}, Usage: "use <item>", Help: "Use an item from your pack", Category: CategoryCharacter, Handler: HandlerUse},
		{Name: "status", Aliases: []string{"stats", "st"}, Help: "Show your condition and progress", Category: CategoryCharacter, Handler: HandlerStatus},
		{Name: "inventory", Aliases: []string{"inv", "i", "pack"}, Help: "Show your pack", Category: CategoryCharacter, Handler: HandlerInventory},

		// System commands
		{Name: "help", Aliases: []string{"?", "h"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"q", "exit"}, Help: "End the session", Category: CategorySystem, Handler: HandlerQuit},
	}
}

// IsMovementCommand reports whether the command name is a compass direction.
func IsMovementCommand(name string) bool {
	switch name {
	case "north", "south", "east", "west":
		return true
	default:
		return false
	}
}
