package compose

import (
	"fmt"

	"github.com/arcanaland/cardgen/internal/card"
)

// ArtLayer names the masked card art in a layer list.
const ArtLayer = "art"

// Treatment is the set of source assets a rarity is drawn with.
type Treatment struct {
	Mask       string
	Background string // empty for unknown rarities
	Frame      string
	Zoom       bool // champion art is zoomed, cropped and shifted before masking
}

// treatments holds the regular and gold treatment for every known rarity.
var treatments = map[card.Rarity][2]Treatment{
	card.Commons: {
		{Mask: "mask-card", Background: "bg-commons", Frame: "frame-card"},
		{Mask: "mask-card", Background: "bg-gold", Frame: "frame-card-gold"},
	},
	card.Rare: {
		{Mask: "mask-card", Background: "bg-rare", Frame: "frame-card"},
		{Mask: "mask-card", Background: "bg-gold", Frame: "frame-card-gold"},
	},
	card.Epic: {
		{Mask: "mask-card", Background: "bg-epic", Frame: "frame-card"},
		{Mask: "mask-card", Background: "bg-gold", Frame: "frame-card-gold"},
	},
	card.Legendary: {
		{Mask: "mask-legendary", Background: "bg-legendary", Frame: "frame-legendary"},
		{Mask: "mask-legendary", Background: "bg-legendary-gold", Frame: "frame-legendary-gold"},
	},
	card.Champion: {
		{Mask: "mask-champion", Background: "bg-champion", Frame: "frame-champion", Zoom: true},
		{Mask: "mask-champion", Background: "bg-champion", Frame: "frame-champion", Zoom: true},
	},
}

// TreatmentFor returns the assets used for rarity r.
// Unknown rarities get the generic mask and frame over a blank background,
// and the gold background when gold is set.
func TreatmentFor(r card.Rarity, gold bool) Treatment {
	idx := 0
	if gold {
		idx = 1
	}
	if t, ok := treatments[r]; ok {
		return t[idx]
	}

	t := treatments[card.Commons][idx]
	if !gold {
		t.Background = ""
	}
	return t
}

// Layers returns the bottom-to-top layer list for c in variant v:
// background, art, frame and the optional elixir badge.
func Layers(c card.Card, v card.Variant) []string {
	t := TreatmentFor(c.Rarity, v.Gold)

	layers := make([]string, 0, 4)
	if t.Background != "" {
		layers = append(layers, t.Background)
	}
	layers = append(layers, ArtLayer, t.Frame)
	if v.Elixir {
		layers = append(layers, ElixirBadge(c.Elixir))
	}
	return layers
}

// ElixirBadge names the badge asset for an elixir cost.
func ElixirBadge(elixir int) string {
	return fmt.Sprintf("elixir-%d", elixir)
}

// AssetNames lists the masks, backgrounds and frames a variant needs, without badges.
func AssetNames(v card.Variant) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(n string) {
		if n != "" && !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}

	for _, r := range card.Rarities {
		t := TreatmentFor(r, v.Gold)
		add(t.Frame)
		add(t.Mask)
		add(t.Background)
	}
	return names
}
