package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (b *statefulBubble) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, b.spinnerC.Tick, b.waitForLookup()}

	if b.options.Play {
		cmds = append(cmds, b.openPlayer())
	}

	return tea.Batch(cmds...)
}
