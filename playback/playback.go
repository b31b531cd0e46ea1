// Package playback holds the state of the player screen.
package playback

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/samber/mo"
	"github.com/vidmeta/vidmeta/constant"
	"github.com/vidmeta/vidmeta/engine"
	"github.com/vidmeta/vidmeta/lifecycle"
	"github.com/vidmeta/vidmeta/log"
	"github.com/vidmeta/vidmeta/manifest"
	"github.com/vidmeta/vidmeta/metadata"
	"github.com/vidmeta/vidmeta/state"
	"github.com/vidmeta/vidmeta/track"
)

const (
	// DefaultManifestURL is a Widevine-protected DASH test stream.
	DefaultManifestURL = "https://bitmovin-a.akamaihd.net/content/art-of-motion_drm/mpds/11331.mpd"
	// DefaultLicenseURL is a license proxy that requires no authentication.
	DefaultLicenseURL = "https://cwip-shaka-proxy.appspot.com/no_auth"
	// DefaultSettleDelay is how long Load waits for track information.
	DefaultSettleDelay = 2 * time.Second
)

// Playback is the payload of a loaded player screen.
type Playback struct {
	Tracks      []track.Rendition `json:"tracks"`
	AspectRatio float64           `json:"aspectRatio"`
}

// State is the player view state.
type State = state.State[Playback]

// InitialConstraint is the engine constraint before any user selection.
func InitialConstraint(forceHighest bool) track.Constraint {
	c := track.Unconstrained()
	c.ForceHighestBitrate = forceHighest
	return c
}

// Model is the player screen model. Closing it releases the engine.
type Model struct {
	scope  *lifecycle.Scope
	engine engine.Engine
	settle time.Duration

	state     *state.Holder[State]
	buffering *state.Holder[bool]
}

// New binds eng to scope. The view state starts Loading.
func New(scope *lifecycle.Scope, eng engine.Engine, settle time.Duration) *Model {
	m := &Model{
		scope:     scope,
		engine:    eng,
		settle:    settle,
		state:     state.NewHolder(state.Loading[Playback]()),
		buffering: state.NewHolder(false),
	}

	eng.OnStateChange(func(s engine.State) {
		m.buffering.Set(s == engine.StateBuffering)
	})

	scope.OnRelease(func() {
		eng.Release()
		m.state.Close()
		m.buffering.Close()
	})

	return m
}

// State is the observable view state.
func (m *Model) State() *state.Holder[State] {
	return m.state
}

// Buffering reports whether the engine is buffering.
func (m *Model) Buffering() *state.Holder[bool] {
	return m.buffering
}

// Engine returns the bound engine.
func (m *Model) Engine() engine.Engine {
	return m.engine
}

// Item builds the media item for a manifest. An empty licenseURL means clear content.
func Item(manifestURL, licenseURL string) engine.MediaItem {
	mime := manifest.Detect(manifestURL, "").MimeType()
	if mime == "" {
		mime = constant.MimeDASH
	}

	item := engine.MediaItem{URI: manifestURL, MimeType: mime}
	if licenseURL != "" {
		item.DRM = mo.Some(engine.Widevine(licenseURL))
	}

	return item
}

// Load prepares the engine, waits for track information to settle and
// emits Success with the presented renditions, or Error.
func (m *Model) Load(manifestURL, licenseURL string) {
	if m.scope.Closed() {
		return
	}

	m.state.Set(state.Loading[Playback]())

	logger := log.WithFields(log.Fields{
		"request":  uuid.NewString(),
		"manifest": manifestURL,
	})

	err := m.scope.Launch(func(ctx context.Context) {
		logger.Info("preparing media item")

		if err := m.engine.Prepare(ctx, Item(manifestURL, licenseURL)); err != nil {
			m.fail(logger, err)
			return
		}

		timer := time.NewTimer(m.settle)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if err := m.engine.Err(); err != nil {
			m.fail(logger, err)
			return
		}

		raw, ok := m.engine.Renditions()
		if !ok {
			logger.Warnf("track information not ready after %s", m.settle)
		}

		presented := track.Present(raw)
		logger.Infof("extracted %d video tracks", len(presented))

		m.state.Set(state.Success(Playback{
			Tracks:      presented,
			AspectRatio: track.AspectRatio(presented),
		}))
	})

	if err != nil {
		m.fail(logger, err)
	}
}

func (m *Model) fail(logger *log.Entry, err error) {
	logger.Errorf("error loading video: %s", err)
	m.state.Set(state.Error[Playback](fmt.Sprintf("Playback failed: %s", metadata.Message(err))))
}

// SelectHeight caps the engine's adaptive selection at height h.
func (m *Model) SelectHeight(h int) {
	log.Infof("selected resolution height %d", h)
	m.engine.Selector().SetMaxVideoSize(math.MaxInt, h)
}

// SelectResolution parses label ("720p") and caps at it. Malformed labels are ignored.
func (m *Model) SelectResolution(label string) bool {
	h, ok := track.ParseHeight(label)
	if !ok {
		return false
	}
	m.SelectHeight(h)
	return true
}

// Constraint reads back the engine constraint.
func (m *Model) Constraint() track.Constraint {
	return m.engine.Selector().Constraint()
}

// Active returns the rendition the engine would pick at bandwidthBps.
func (m *Model) Active(bandwidthBps int) (track.Rendition, bool) {
	payload, ok := m.state.Value().Payload()
	if !ok {
		return track.Rendition{}, false
	}
	return m.engine.Selector().Select(payload.Tracks, bandwidthBps)
}

// Close cancels loading and releases the engine.
func (m *Model) Close() {
	m.scope.Close()
}
