// Package icon provides a flexible multi-variant rendering engine for UI symbols and feedback indicators.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares depending on user preference.
package icon

import (
	"github.com/dfawole/m4tplay/key"
	"github.com/spf13/viper"
)

// Visual Variant Constants - these define the supported aesthetic styles for icon rendering.
const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// Icon identifies a registered UI symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Question
	Bookmark
	Play
	Pause
	Trophy
)

// iconDef encapsulates the visual representations of a single UI symbol across all supported variants.
type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

// icons is the global registry mapping each Icon identifier to its variant renderings.
var icons = map[Icon]iconDef{
	Success:  {emoji: "✅", nerd: "\uf00c", plain: "OK", kaomoji: "(•̀ᴗ•́)و", squares: "🟩"},
	Fail:     {emoji: "❌", nerd: "\uf00d", plain: "X", kaomoji: "(╥﹏╥)", squares: "🟥"},
	Progress: {emoji: "⏳", nerd: "\uf251", plain: "...", kaomoji: "(っ˘ω˘ς)", squares: "🟨"},
	Question: {emoji: "❓", nerd: "\uf128", plain: "?", kaomoji: "(・・?)", squares: "🟦"},
	Bookmark: {emoji: "🔖", nerd: "\uf02e", plain: "*", kaomoji: "φ(..)", squares: "🟪"},
	Play:     {emoji: "▶️", nerd: "\uf04b", plain: ">", kaomoji: "(ノ゜ω゜)ノ", squares: "🟩"},
	Pause:    {emoji: "⏸️", nerd: "\uf04c", plain: "||", kaomoji: "(-ω-)", squares: "🟧"},
	Trophy:   {emoji: "🏆", nerd: "\uf091", plain: "#1", kaomoji: "\\(^o^)/", squares: "🟨"},
}

// Get retrieves the visual representation for the receiver iconDef based on the global icons variant configuration.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns the rendered string for a specified Icon identifier from the global registry.
func Get(i Icon) string {
	d := icons[i]
	return d.Get()
}
