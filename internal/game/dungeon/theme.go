package dungeon

import (
	"fmt"
	"strings"
)

// Theme is the environmental skin applied uniformly to a whole floor.
type Theme int

const (
	ThemeCatacombs Theme = iota
	ThemeSewers
	ThemeCaverns
	ThemeCrypts
	ThemeRuins
	ThemeAbyss
)

// AllThemes lists every theme in declaration order.
var AllThemes = []Theme{ThemeCatacombs, ThemeSewers, ThemeCaverns, ThemeCrypts, ThemeRuins, ThemeAbyss}

type themeProfile struct {
	name       string
	adjectives []string
	atmosphere []string
	features   []string
}

var themeProfiles = map[Theme]themeProfile{
	ThemeCatacombs: {
		name:       "Catacombs",
		adjectives: []string{"Bone-Lined", "Ossuary", "Candlelit", "Skull-Niched"},
		atmosphere: []string{"Dry dust hangs in the air.", "Empty eye sockets watch from the walls.", "Wax drips from a candle no one lit."},
		features:   []string{"bone pile", "burial niche", "votive candles"},
	},
	ThemeSewers: {
		name:       "Sewers",
		adjectives: []string{"Dripping", "Flooded", "Slime-Slick", "Rusted"},
		atmosphere: []string{"Water gurgles somewhere below.", "The stench is almost solid.", "Rats scatter at your footsteps."},
		features:   []string{"rusted grate", "overflow pipe", "sludge pool"},
	},
	ThemeCaverns: {
		name:       "Caverns",
		adjectives: []string{"Glittering", "Echoing", "Fungal", "Collapsed"},
		atmosphere: []string{"Crystals catch what little light there is.", "Your voice returns to you a moment late.", "Pale mushrooms pulse faintly."},
		features:   []string{"crystal cluster", "stalagmite", "underground spring"},
	},
	ThemeCrypts: {
		name:       "Crypts",
		adjectives: []string{"Sealed", "Gilded", "Funerary", "Hallowed"},
		atmosphere: []string{"Stone lids bear names worn smooth.", "Cold air seeps from a cracked sarcophagus.", "Faded frescoes depict a procession."},
		features:   []string{"sarcophagus", "funerary urn", "memorial plaque"},
	},
	ThemeRuins: {
		name:       "Ruins",
		adjectives: []string{"Crumbling", "Overgrown", "Toppled", "Forgotten"},
		atmosphere: []string{"Roots split the ancient flagstones.", "A broken statue points nowhere.", "Wind whistles through a gap in the vault."},
		features:   []string{"broken statue", "collapsed pillar", "mosaic floor"},
	},
	ThemeAbyss: {
		name:       "Abyss",
		adjectives: []string{"Lightless", "Whispering", "Warped", "Bottomless"},
		atmosphere: []string{"The dark here feels attentive.", "Gravity seems briefly uncertain.", "Something breathes in rhythm with you."},
		features:   []string{"void rift", "obsidian shard", "chained idol"},
	},
}

// String returns the display name of the theme.
func (t Theme) String() string {
	if p, ok := themeProfiles[t]; ok {
		return p.name
	}
	return "Unknown"
}

// ParseTheme resolves a theme by case-insensitive name.
func ParseTheme(s string) (Theme, error) {
	for _, t := range AllThemes {
		if strings.EqualFold(t.String(), strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown theme %q", s)
}

func (t Theme) profile() themeProfile {
	if p, ok := themeProfiles[t]; ok {
		return p
	}
	return themeProfiles[ThemeCatacombs]
}
