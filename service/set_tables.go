package service

import "mtg-labels/models"

// DefaultSetTypes are the set categories printed by default
var DefaultSetTypes = []string{
	"core",
	"expansion",
	"starter", // Portal, P3k, welcome decks
	"masters",
	"commander",
	"planechase",
	"draft_innovation", // Battlebond, Conspiracy
	"duel_deck",
	"premium_deck",
	"from_the_vault", // most are below DefaultMinimumSetSize
	"archenemy",
	"box",
	"funny", // Unglued, Unhinged, Ponies: TG
}

// DefaultMinimumSetSize drops sets with fewer cards.
// The smallest proper expansion is Arabian Nights with 78 cards.
const DefaultMinimumSetSize = 50

// DefaultIgnoredSets are set codes skipped by default
var DefaultIgnoredSets = []string{
	"cmb1", // Mystery Booster Playtest Cards
	"amh1", // Modern Horizon Art Series
	"cmb2", // Mystery Booster Playtest Cards Part Deux
	"fbb",  // Foreign Black Border
	"sum",  // Summer Magic / Edgar
	"4bb",  // Fourth Edition Foreign Black Border
	"bchr", // Chronicles Foreign Black Border
	"rin",  // Rinascimento
	"ren",  // Renaissance
	"rqs",  // Rivals Quick Start Set
	"itp",  // Introductory Two-Player Set
	"sir",  // Shadows over Innistrad Remastered
	"sis",  // Shadows of the Past
	"cst",  // Coldsnap Theme Decks
}

// setRenames shortens set names too long for a label
var setRenames = map[string]string{
	"Fourth Edition Foreign Black Border":          "Fourth Edition FBB",
	"Introductory Two-Player Set":                  "Intro Two-Player Set",
	"Commander Anthology Volume II":                "Commander Anthology II",
	"Planechase Anthology Planes":                  "Planechase Anth. Planes",
	"Mystery Booster Playtest Cards":               "Mystery Booster Playtest",
	"World Championship Decks 1997":                "World Championship 1997",
	"World Championship Decks 1998":                "World Championship 1998",
	"World Championship Decks 1999":                "World Championship 1999",
	"World Championship Decks 2000":                "World Championship 2000",
	"World Championship Decks 2001":                "World Championship 2001",
	"World Championship Decks 2002":                "World Championship 2002",
	"World Championship Decks 2003":                "World Championship 2003",
	"World Championship Decks 2004":                "World Championship 2004",
	"Duel Decks: Elves vs. Goblins":                "DD: Elves vs. Goblins",
	"Duel Decks: Jace vs. Chandra":                 "DD: Jace vs. Chandra",
	"Duel Decks: Divine vs. Demonic":               "DD: Divine vs. Demonic",
	"Duel Decks: Garruk vs. Liliana":               "DD: Garruk vs. Liliana",
	"Duel Decks: Phyrexia vs. the Coalition":       "DD: Phyrexia vs. Coalition",
	"Duel Decks: Elspeth vs. Tezzeret":             "DD: Elspeth vs. Tezzeret",
	"Duel Decks: Knights vs. Dragons":              "DD: Knights vs. Dragons",
	"Duel Decks: Ajani vs. Nicol Bolas":            "DD: Ajani vs. Nicol Bolas",
	"Duel Decks: Heroes vs. Monsters":              "DD: Heroes vs. Monsters",
	"Duel Decks: Speed vs. Cunning":                "DD: Speed vs. Cunning",
	"Duel Decks Anthology: Elves vs. Goblins":      "DDA: Elves vs. Goblins",
	"Duel Decks Anthology: Jace vs. Chandra":       "DDA: Jace vs. Chandra",
	"Duel Decks Anthology: Divine vs. Demonic":     "DDA: Divine vs. Demonic",
	"Duel Decks Anthology: Garruk vs. Liliana":     "DDA: Garruk vs. Liliana",
	"Duel Decks: Elspeth vs. Kiora":                "DD: Elspeth vs. Kiora",
	"Duel Decks: Zendikar vs. Eldrazi":             "DD: Zendikar vs. Eldrazi",
	"Duel Decks: Blessed vs. Cursed":               "DD: Blessed vs. Cursed",
	"Duel Decks: Nissa vs. Ob Nixilis":             "DD: Nissa vs. Ob Nixilis",
	"Duel Decks: Merfolk vs. Goblins":              "DD: Merfolk vs. Goblins",
	"Duel Decks: Elves vs. Inventors":              "DD: Elves vs. Inventors",
	"Premium Deck Series: Slivers":                 "Premium Deck Slivers",
	"Premium Deck Series: Graveborn":               "Premium Deck Graveborn",
	"Premium Deck Series: Fire and Lightning":      "PD: Fire & Lightning",
	"Mystery Booster Retail Edition Foils":         "Mystery Booster Retail Foils",
	"Adventures in the Forgotten Realms":           "Forgotten Realms",
	"Archenemy: Nicol Bolas Schemes":               "Archenemy: Bolas Schemes",
	"Global Series Jiang Yanggu & Mu Yanling":      "Jiang Yanggu & Mu Yanling",
	"Mystery Booster Playtest Cards 2019":          "MB Playtest Cards 2019",
	"Mystery Booster Playtest Cards 2021":          "MB Playtest Cards 2021",
	"Strixhaven: School of Mages Minigames":        "Strixhaven Minigames",
	"Adventures in the Forgotten Realms Minigames": "Forgotten Realms Minigames",
	"Innistrad: Crimson Vow Minigames":             "Crimson Vow Minigames",
	"Commander Legends: Battle for Baldur's Gate":  "CMDR Legends: Baldur's Gate",
	"Warhammer 40,000 Commander":                   "Warhammer 40K",
	"The Brothers' War Retro Artifacts":            "Brothers' War Retro",
	"The Brothers' War Commander":                  "Brothers' War Commander",
	"Phyrexia: All Will Be One Commander":          "Phyrexia: One CMDR",
}

// DisplayName returns the label text for a set name
func DisplayName(name string) string {
	if short, ok := setRenames[name]; ok {
		return short
	}
	return name
}

// DefaultFilterConfig returns the default filtering policy
func DefaultFilterConfig() models.FilterConfig {
	return models.FilterConfig{
		IgnoredSets:    append([]string(nil), DefaultIgnoredSets...),
		SetTypes:       append([]string(nil), DefaultSetTypes...),
		MinimumSetSize: DefaultMinimumSetSize,
	}
}
