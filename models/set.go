package models

import "time"

// ReleaseDateLayout is the layout of the catalog's released_at field
const ReleaseDateLayout = "2006-01-02"

// SetRecord represents one set entry from the catalog listing
// Example payload entry:
//
//	{
//	  "code": "neo",
//	  "name": "Kamigawa: Neon Dynasty",
//	  "set_type": "expansion",
//	  "card_count": 512,
//	  "released_at": "2022-02-18",
//	  "icon_svg_uri": "https://svgs.scryfall.io/sets/neo.svg?1647835200"
//	}
type SetRecord struct {
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	SetType    string    `json:"set_type"`
	CardCount  int       `json:"card_count"`
	ReleasedAt string    `json:"released_at"`
	IconSVGURI string    `json:"icon_svg_uri"`
	Released   time.Time `json:"-"` // Parsed from ReleasedAt by the catalog client
}

// SetList is the list envelope returned by the catalog endpoint
type SetList struct {
	Object   string      `json:"object"`
	HasMore  bool        `json:"has_more"`
	NextPage string      `json:"next_page,omitempty"`
	Data     []SetRecord `json:"data"`
}
