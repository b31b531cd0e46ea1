// Package engine abstracts the playback engine behind the player screen.
package engine

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/samber/mo"
	"github.com/vidmeta/vidmeta/track"
)

// WidevineUUID is the DRM system ID of Widevine.
var WidevineUUID = uuid.MustParse("edef8ba9-79d6-4ace-a3c8-27dcd51d21ed")

var (
	ErrReleased  = errors.New("engine released")
	ErrProtected = errors.New("media is protected but no DRM configuration was provided")
)

// DRMConfig describes how protected media is licensed.
type DRMConfig struct {
	Scheme       uuid.UUID
	LicenseURI   string
	MultiSession bool
}

// Validate checks the license URI is an absolute http(s) URL.
func (d DRMConfig) Validate() error {
	if d.Scheme == uuid.Nil {
		return fmt.Errorf("DRM scheme is not set")
	}

	u, err := url.Parse(d.LicenseURI)
	if err != nil {
		return fmt.Errorf("invalid license URI: %w", err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid license URI: %q", d.LicenseURI)
	}

	return nil
}

// MediaItem is what an engine is asked to play.
type MediaItem struct {
	URI      string
	MimeType string
	DRM      mo.Option[DRMConfig]
}

// Widevine builds a multi-session Widevine configuration.
func Widevine(licenseURI string) DRMConfig {
	return DRMConfig{
		Scheme:       WidevineUUID,
		LicenseURI:   licenseURI,
		MultiSession: true,
	}
}

// State is the engine playback state.
type State int

const (
	StateIdle State = iota
	StateBuffering
	StateReady
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuffering:
		return "buffering"
	case StateReady:
		return "ready"
	case StateEnded:
		return "ended"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Engine plays a single media item.
type Engine interface {
	// Prepare starts loading item. It returns before loading completes;
	// asynchronous failures surface through Err.
	Prepare(ctx context.Context, item MediaItem) error
	// Renditions is the current video track list, if known.
	Renditions() ([]track.Rendition, bool)
	// Err is the last playback error.
	Err() error
	State() State
	Selector() *track.Selector
	OnStateChange(fn func(State))
	Release()
}
