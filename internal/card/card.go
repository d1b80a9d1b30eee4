package card

import "strings"

// Rarity is the card tier that decides the frame, mask and background.
type Rarity string

const (
	Commons   Rarity = "Commons"
	Rare      Rarity = "Rare"
	Epic      Rarity = "Epic"
	Legendary Rarity = "Legendary"
	Champion  Rarity = "Champion"
)

// Rarities lists the known tiers in feed order.
var Rarities = []Rarity{Commons, Rare, Epic, Legendary, Champion}

// Known reports whether r is one of the tiers the compositor has artwork for.
func (r Rarity) Known() bool {
	for _, k := range Rarities {
		if r == k {
			return true
		}
	}
	return false
}

// Card is one record of the card data feed
type Card struct {
	Key    string `json:"key"`    // Canonical key (e.g., knight, mega-knight)
	Rarity Rarity `json:"rarity"` // Commons, Rare, Epic, Legendary or Champion
	Elixir int    `json:"elixir"` // Elixir cost shown on the badge
}

// Variant selects one of the output sets produced from the same feed.
type Variant struct {
	Gold   bool // gold finish, ignored by Champion cards
	Elixir bool // elixir cost badge overlay
}

// Name returns a short label used in logs and step names.
func (v Variant) Name() string {
	var parts []string
	if v.Gold {
		parts = append(parts, "gold")
	}
	if v.Elixir {
		parts = append(parts, "elixir")
	}
	if len(parts) == 0 {
		return "normal"
	}
	return strings.Join(parts, "+")
}
