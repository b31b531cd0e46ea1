package tui

import (
	"fmt"

	"github.com/vidmeta/vidmeta/icon"
	"github.com/vidmeta/vidmeta/metadata"
	"github.com/vidmeta/vidmeta/style"
	"github.com/vidmeta/vidmeta/track"
	"github.com/vidmeta/vidmeta/util"
)

type menuEntry struct {
	name, description string
	target            state
}

// autoQuality lifts the resolution cap.
type autoQuality struct{}

// listItem adapts menu entries, titles and renditions to list.Item.
type listItem struct {
	internal any
	active   bool
}

func (t *listItem) Title() (title string) {
	switch e := t.internal.(type) {
	case *menuEntry:
		title = e.name
	case metadata.Title:
		title = e.Name
	case track.Rendition:
		title = fmt.Sprintf("%s %s", icon.Get(icon.Resolution), e.Label())
	case autoQuality:
		title = "Auto"
	}

	if t.active {
		title = fmt.Sprintf("%s %s", title, style.Fg(style.Green)(icon.Get(icon.Success)))
	}

	return
}

func (t *listItem) Description() string {
	switch e := t.internal.(type) {
	case *menuEntry:
		return e.description
	case metadata.Title:
		return fmt.Sprintf("%s • %s", e.ID, e.Source)
	case track.Rendition:
		return fmt.Sprintf("%dx%d • %s", e.Width, e.Height, util.FormatBitrate(e.Bitrate))
	case autoQuality:
		return "Adapt to available bandwidth"
	default:
		return ""
	}
}

func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case *menuEntry:
		return e.name
	case metadata.Title:
		return e.Name + " " + e.ID
	case track.Rendition:
		return e.Label()
	case autoQuality:
		return "auto"
	default:
		return ""
	}
}
