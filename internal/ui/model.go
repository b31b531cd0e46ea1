// Package ui renders short-lived notifications below a screen.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidmeta/vidmeta/style"
)

// Lifetime of a notification.
const Lifetime = 3 * time.Second

// NotificationMsg replaces the current notification.
type NotificationMsg string

// ClearNotificationMsg resets the notification.
type ClearNotificationMsg struct {
	at time.Time
}

// Notify returns a tea.Cmd showing text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg(text)
	}
}

// Model holds the current notification.
type Model struct {
	notification string
	notifiedAt   time.Time
}

// Update processes notification messages. Other messages are ignored.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.notification = string(msg)
		m.notifiedAt = time.Now()
		at := m.notifiedAt
		return tea.Tick(Lifetime, func(time.Time) tea.Msg {
			return ClearNotificationMsg{at: at}
		})
	case ClearNotificationMsg:
		// a newer notification keeps its own timer
		if msg.at.Equal(m.notifiedAt) {
			m.notification = ""
		}
	}
	return nil
}

// Current returns the visible notification.
func (m *Model) Current() string {
	return m.notification
}

// View appends the notification to the last line of content.
func (m *Model) View(content string) string {
	if m.notification == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.notification)
	return strings.Join(lines, "\n")
}
