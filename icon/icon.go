// Package icon renders UI symbols in the variant chosen by icons.variant.
package icon

import (
	"github.com/spf13/viper"
	"github.com/vidmeta/vidmeta/key"
)

const (
	emoji = "emoji"
	nerd  = "nerd"
	plain = "plain"
)

// AvailableVariants returns all supported variants.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain}
}

// Icon identifies a symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Video
	Resolution
	Lock
)

type iconDef struct {
	emoji string
	nerd  string
	plain string
}

func (d iconDef) get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	default:
		return ""
	}
}

var icons = map[Icon]iconDef{
	Success:    {emoji: "🎉", nerd: "", plain: "✓"},
	Fail:       {emoji: "😞", nerd: "", plain: "✗"},
	Progress:   {emoji: "⏳", nerd: "", plain: "..."},
	Video:      {emoji: "🎬", nerd: "", plain: ">"},
	Resolution: {emoji: "📺", nerd: "", plain: "#"},
	Lock:       {emoji: "🔒", nerd: "", plain: "[drm]"},
}

// Get renders an icon in the configured variant.
func Get(i Icon) string {
	return icons[i].get()
}
