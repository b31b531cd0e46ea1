// Package tui provides the interactive terminal interface.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidmeta/vidmeta/engine"
	"github.com/vidmeta/vidmeta/lifecycle"
	"github.com/vidmeta/vidmeta/metadata"
)

// Options configure the interactive session.
type Options struct {
	Repository metadata.Repository
	// Titles are offered on the titles screen.
	Titles  metadata.Titles
	Samples []string

	// NewEngine creates the engine of one player session.
	NewEngine   func() engine.Engine
	ManifestURL string
	LicenseURL  string
	Settle      time.Duration
	Bandwidth   int
	// StreamFor returns the clear stream of a looked up record, if the
	// repository has one. It is played instead of ManifestURL.
	StreamFor func(record *metadata.Record) (string, bool)

	// Play opens the player screen directly.
	Play bool
}

// Run starts the program and blocks until it exits.
func Run(ctx context.Context, options *Options) error {
	scope := lifecycle.New(ctx)
	defer scope.Close()

	bubble := newBubble(scope, options)

	_, err := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	bubble.stopPlayback()
	return err
}
