package dungeon

type riddle struct {
	question string
	answer   string
}

var riddles = []riddle{
	{"I have keys but open no locks. What am I?", "piano"},
	{"The more you take, the more you leave behind. What are they?", "footsteps"},
	{"What has roots nobody sees and is taller than trees?", "mountain"},
	{"I speak without a mouth and hear without ears. What am I?", "echo"},
	{"What can run but never walks, has a bed but never sleeps?", "river"},
	{"What grows when fed but dies when given water?", "fire"},
}

type puzzle struct {
	question string
	options  []string
}

var puzzles = []puzzle{
	{"Three levers jut from the wall beneath a sealed grate.", []string{"left lever", "middle lever", "right lever"}},
	{"Four pressure plates bear the sun, moon, star and void.", []string{"sun", "moon", "star", "void"}},
	{"A dial of three rings must be set before the door yields.", []string{"inner ring", "middle ring", "outer ring"}},
}

var roomDescriptions = map[RoomType]string{
	RoomEntrance:          "Worn steps lead back toward the surface. This place feels safe, for now.",
	RoomChamber:           "A broad chamber with walls scarred by old battles.",
	RoomCorridor:          "A narrow passage that bends out of sight.",
	RoomShrine:            "A small shrine stands against the far wall, its offerings long gone.",
	RoomLoreLibrary:       "Shelves of crumbling tomes line every wall.",
	RoomSecretVault:       "A hidden vault, its door ajar on rusted hinges.",
	RoomMeditationChamber: "A quiet chamber with a circle of kneeling stones.",
	RoomRiddleGate:        "A stone gate carved with a face that studies you.",
	RoomPuzzleRoom:        "Strange mechanisms cover the walls of this room.",
	RoomArmory:            "Weapon racks stand mostly empty.",
	RoomCrypt:             "Burial slabs fill the room in tidy rows.",
}

var exitDescriptions = []string{
	"a low archway",
	"a cracked doorway",
	"a dark tunnel",
	"a flight of worn steps",
	"a narrow gap in the wall",
}

var loreTexts = []string{
	"An inscription recounts the sealing of something beneath the deepest floor.",
	"Faded script lists the names of wardens who never returned.",
	"A carved map shows this level, though the rooms have since shifted.",
}

// ordinaryTypes are the types rolled for rooms that are not the entrance.
// Weights repeat the common types.
var ordinaryTypes = []RoomType{
	RoomChamber, RoomChamber, RoomChamber, RoomChamber,
	RoomCorridor, RoomCorridor, RoomCorridor,
	RoomArmory, RoomCrypt,
	RoomShrine, RoomLoreLibrary, RoomSecretVault, RoomMeditationChamber,
	RoomRiddleGate, RoomPuzzleRoom,
}
