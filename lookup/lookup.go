// Package lookup holds the state of the metadata lookup screen.
package lookup

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/vidmeta/vidmeta/lifecycle"
	"github.com/vidmeta/vidmeta/log"
	"github.com/vidmeta/vidmeta/metadata"
	"github.com/vidmeta/vidmeta/state"
)

// ErrBlankID is the message shown when fetching without an ID.
const ErrBlankID = "Please enter a valid video ID"

// State is the screen's view state.
type State = state.State[*metadata.Record]

// Model is the lookup screen model. Fetches run on the screen scope; a
// fetch started while another is in flight is not cancelled and the last
// one to complete determines the final state.
type Model struct {
	scope   *lifecycle.Scope
	repo    metadata.Repository
	samples []string
	history func(id string) error

	videoID *state.Holder[string]
	state   *state.Holder[State]
}

// Option configures a Model.
type Option func(*Model)

// WithSamples sets the IDs offered as samples.
func WithSamples(ids ...string) Option {
	return func(m *Model) { m.samples = ids }
}

// WithHistory registers fn to record successfully fetched IDs.
func WithHistory(fn func(id string) error) Option {
	return func(m *Model) { m.history = fn }
}

// New returns an idle model fetching from repo on scope.
func New(scope *lifecycle.Scope, repo metadata.Repository, opts ...Option) *Model {
	m := &Model{
		scope:   scope,
		repo:    repo,
		videoID: state.NewHolder(""),
		state:   state.NewHolder(state.Idle[*metadata.Record]()),
	}

	for _, opt := range opts {
		opt(m)
	}

	scope.OnRelease(func() {
		m.state.Close()
		m.videoID.Close()
	})

	return m
}

// State is the observable view state.
func (m *Model) State() *state.Holder[State] {
	return m.state
}

// VideoID is the observable entered ID.
func (m *Model) VideoID() *state.Holder[string] {
	return m.videoID
}

// Samples returns the sample IDs.
func (m *Model) Samples() []string {
	return m.samples
}

// Repository returns the repository in use.
func (m *Model) Repository() metadata.Repository {
	return m.repo
}

// SetVideoID replaces the entered ID.
func (m *Model) SetVideoID(id string) {
	m.videoID.Set(id)
}

// Fetch looks up the entered ID.
func (m *Model) Fetch() {
	m.FetchID(m.videoID.Value())
}

// LoadSample enters id and fetches it.
func (m *Model) LoadSample(id string) {
	m.SetVideoID(id)
	m.Fetch()
}

// FetchID emits Loading followed by exactly one of Success or Error. A blank
// id emits Error without Loading.
func (m *Model) FetchID(id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		m.state.Set(state.Error[*metadata.Record](ErrBlankID))
		return
	}

	if m.scope.Closed() {
		return
	}

	logger := log.WithFields(log.Fields{
		"request":    uuid.NewString(),
		"id":         id,
		"repository": m.repo.Name(),
	})

	m.state.Set(state.Loading[*metadata.Record]())

	err := m.scope.Launch(func(ctx context.Context) {
		logger.Info("fetching metadata")

		record, err := m.repo.Metadata(ctx, id)
		if ctx.Err() != nil {
			logger.Info("fetch abandoned")
			return
		}

		if err != nil {
			logger.Error(err)
			m.state.Set(state.Error[*metadata.Record](metadata.Message(err)))
			return
		}

		logger.Infof("fetched %q", record.Title)
		if m.history != nil {
			if err := m.history(id); err != nil {
				logger.Warnf("failed to remember %s: %s", id, err)
			}
		}

		m.state.Set(state.Success(record))
	})

	if err != nil {
		m.state.Set(state.Error[*metadata.Record](metadata.Message(err)))
	}
}

// ClearError returns an Error state to Idle.
func (m *Model) ClearError() {
	if m.state.Value().IsError() {
		m.state.Set(state.Idle[*metadata.Record]())
	}
}

// Clear returns to Idle regardless of the current state.
func (m *Model) Clear() {
	m.state.Set(state.Idle[*metadata.Record]())
}
