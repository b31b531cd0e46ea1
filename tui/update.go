package tui

import (
	"strconv"
	"strings"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
	"github.com/vidmeta/vidmeta/metadata"
	"github.com/vidmeta/vidmeta/query"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = uiCmd
	}

	switch msg := msg.(type) {
	case error:
		b.raiseError(msg)
		return b, cmd
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case lookupMsg:
		b.lookupState = msg.state
		if id := b.lookup.VideoID().Value(); id != b.inputC.Value() {
			b.inputC.SetValue(id)
		}
		return b, tea.Batch(cmd, b.waitForLookup())
	case playbackMsg:
		// a message from a closed session
		if msg.updates != b.playbackUpdates {
			return b, cmd
		}

		b.playbackState = msg.state
		if payload, ok := msg.state.Payload(); ok {
			b.showTracks(payload.Tracks)
		}
		return b, tea.Batch(cmd, b.waitForPlayback())
	case spinner.TickMsg:
		var spinnerCmd tea.Cmd
		b.spinnerC, spinnerCmd = b.spinnerC.Update(msg)
		return b, tea.Batch(cmd, spinnerCmd)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}

		if bubblesKey.Matches(msg, b.keymap.back) {
			switch b.state {
			case menuState:
				return b, cmd
			case lookupState:
				if b.lookupState.IsError() {
					b.lookup.ClearError()
					return b, cmd
				}
			case titlesState:
				if b.titlesC.FilterState() != list.Unfiltered {
					b.titlesC, cmd = b.titlesC.Update(msg)
					return b, cmd
				}
				b.titlesC.ResetSelected()
			}

			b.previousState()
			return b, cmd
		}
	}

	var stateCmd tea.Cmd
	switch b.state {
	case menuState:
		_, stateCmd = b.updateMenu(msg)
	case lookupState:
		_, stateCmd = b.updateLookup(msg)
	case titlesState:
		_, stateCmd = b.updateTitles(msg)
	case playerState:
		_, stateCmd = b.updatePlayer(msg)
	case errorState:
		_, stateCmd = b.updateError(msg)
	}

	return b, tea.Batch(cmd, stateCmd)
}

func (b *statefulBubble) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.confirm):
			item, ok := b.menuC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}

			entry := item.internal.(*menuEntry)
			switch entry.target {
			case playerState:
				return b, b.openPlayer()
			case lookupState:
				b.inputC.Focus()
			}

			b.newState(entry.target)
			return b, nil
		}
	}

	b.menuC, cmd = b.menuC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateLookup(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			return b, b.fetch(b.inputC.Value())
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion):
			if suggestion, ok := b.searchSuggestion.Get(); ok {
				b.inputC.SetValue(suggestion)
				b.inputC.CursorEnd()
				b.lookup.SetVideoID(suggestion)
				b.searchSuggestion = mo.None[string]()
			}
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.sample):
			return b, b.loadSample(sampleIndex(msg))
		case bubblesKey.Matches(msg, b.keymap.titles):
			b.newState(titlesState)
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.openURL):
			return b, b.openThumbnail()
		case bubblesKey.Matches(msg, b.keymap.play):
			return b, b.playRecord()
		}
	}

	b.inputC, cmd = b.inputC.Update(msg)

	value := b.inputC.Value()
	if value != b.lookup.VideoID().Value() {
		b.lookup.SetVideoID(value)
	}

	if strings.TrimSpace(value) == "" {
		b.searchSuggestion = mo.None[string]()
	} else {
		b.searchSuggestion = query.Suggest(value)
	}

	return b, cmd
}

// sampleIndex maps alt+1..alt+9 to 0..8.
func sampleIndex(msg tea.KeyMsg) int {
	n, err := strconv.Atoi(strings.TrimPrefix(msg.String(), "alt+"))
	if err != nil {
		return -1
	}
	return n - 1
}

func (b *statefulBubble) updateTitles(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && b.titlesC.FilterState() != list.Filtering {
		if bubblesKey.Matches(msg, b.keymap.confirm) {
			item, ok := b.titlesC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}

			title := item.internal.(metadata.Title)
			b.setState(lookupState)
			b.inputC.Focus()
			return b, b.fetch(title.ID)
		}
	}

	b.titlesC, cmd = b.titlesC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updatePlayer(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.reload):
			return b, b.openStream(b.stream)
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if !b.playbackState.IsSuccess() {
				return b, nil
			}
			item, ok := b.tracksC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}
			return b, b.selectQuality(item)
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		}
	}

	if b.playbackState.IsSuccess() {
		b.tracksC, cmd = b.tracksC.Update(msg)
	}

	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if bubblesKey.Matches(msg, b.keymap.quit) {
			return b, tea.Quit
		}
	}
	return b, nil
}
