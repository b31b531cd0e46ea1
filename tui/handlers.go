package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidmeta/vidmeta/internal/ui"
	"github.com/vidmeta/vidmeta/lifecycle"
	"github.com/vidmeta/vidmeta/log"
	"github.com/vidmeta/vidmeta/lookup"
	"github.com/vidmeta/vidmeta/open"
	"github.com/vidmeta/vidmeta/playback"
	"github.com/vidmeta/vidmeta/track"
)

type lookupMsg struct {
	state lookup.State
}

type playbackMsg struct {
	state playback.State
	// updates identifies the session the state belongs to.
	updates <-chan playback.State
}

// waitForLookup delivers the next lookup state. Each delivery re-arms it.
func (b *statefulBubble) waitForLookup() tea.Cmd {
	updates := b.lookupUpdates
	return func() tea.Msg {
		s, ok := <-updates
		if !ok {
			return nil
		}
		return lookupMsg{state: s}
	}
}

func (b *statefulBubble) waitForPlayback() tea.Cmd {
	updates := b.playbackUpdates
	if updates == nil {
		return nil
	}

	return func() tea.Msg {
		s, ok := <-updates
		if !ok {
			return nil
		}
		return playbackMsg{state: s, updates: updates}
	}
}

func (b *statefulBubble) fetch(id string) tea.Cmd {
	b.inputC.SetValue(id)
	b.lookup.SetVideoID(id)
	b.lookup.Fetch()
	return b.spinnerC.Tick
}

func (b *statefulBubble) loadSample(n int) tea.Cmd {
	samples := b.lookup.Samples()
	if n < 0 || n >= len(samples) {
		return nil
	}

	b.inputC.SetValue(samples[n])
	b.lookup.LoadSample(samples[n])
	return b.spinnerC.Tick
}

func (b *statefulBubble) openThumbnail() tea.Cmd {
	record, ok := b.lookupState.Payload()
	if !ok || record.ThumbnailURL == "" {
		return nil
	}

	return func() tea.Msg {
		if err := open.URL(record.ThumbnailURL); err != nil {
			log.Error(err)
			return ui.NotificationMsg(fmt.Sprintf("Could not open thumbnail: %s", err))
		}
		return nil
	}
}

// openPlayer plays the configured manifest.
func (b *statefulBubble) openPlayer() tea.Cmd {
	return b.openStream(stream{manifestURL: b.options.ManifestURL, licenseURL: b.options.LicenseURL})
}

// playRecord plays the stream of the looked up record, falling back to the
// configured manifest.
func (b *statefulBubble) playRecord() tea.Cmd {
	record, ok := b.lookupState.Payload()
	if !ok || b.options.StreamFor == nil {
		return b.openPlayer()
	}

	manifestURL, ok := b.options.StreamFor(record)
	if !ok {
		return b.openPlayer()
	}

	return b.openStream(stream{manifestURL: manifestURL})
}

// openStream starts a fresh player session for s and shows its screen.
func (b *statefulBubble) openStream(s stream) tea.Cmd {
	b.stopPlayback()

	if b.options.NewEngine == nil {
		b.raiseError(fmt.Errorf("no playback engine configured"))
		return nil
	}

	b.session = lifecycle.New(b.scope.Context())
	b.playback = playback.New(b.session, b.options.NewEngine(), b.options.Settle)
	b.playbackState = b.playback.State().Value()
	b.playbackUpdates = b.playback.State().Subscribe()
	b.tracksC.SetItems(nil)

	b.stream = s
	b.playback.Load(s.manifestURL, s.licenseURL)
	b.newState(playerState)

	return tea.Batch(b.waitForPlayback(), b.spinnerC.Tick)
}

// stopPlayback cancels loading and releases the engine of the current session.
func (b *statefulBubble) stopPlayback() {
	if b.session == nil {
		return
	}

	b.session.Close()
	b.session = nil
	b.playback = nil
	b.playbackUpdates = nil
}

func (b *statefulBubble) showTracks(tracks []track.Rendition) {
	constraint := b.playback.Constraint()

	items := []list.Item{&listItem{internal: autoQuality{}, active: !constraint.IsCapped()}}
	for _, t := range tracks {
		items = append(items, &listItem{
			internal: t,
			active:   constraint.IsCapped() && constraint.MaxHeight == t.Height,
		})
	}

	b.tracksC.SetItems(items)
}

func (b *statefulBubble) selectQuality(item *listItem) tea.Cmd {
	if b.playback == nil {
		return nil
	}

	var notification string
	switch e := item.internal.(type) {
	case autoQuality:
		b.playback.SelectHeight(track.Unconstrained().MaxHeight)
		notification = "Quality: auto"
	case track.Rendition:
		b.playback.SelectHeight(e.Height)
		notification = "Quality capped at " + e.Label()
	default:
		return nil
	}

	if payload, ok := b.playbackState.Payload(); ok {
		b.showTracks(payload.Tracks)
	}

	return ui.Notify(notification)
}
