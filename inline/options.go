package inline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/vidmeta/vidmeta/engine"
	"github.com/vidmeta/vidmeta/metadata"
	"github.com/vidmeta/vidmeta/track"
)

// TrackFilter narrows a presented rendition list.
type TrackFilter func([]track.Rendition) ([]track.Rendition, error)

// LookupOptions configure a non-interactive metadata lookup.
type LookupOptions struct {
	Out        io.Writer
	Repository metadata.Repository
	IDs        []string
	Json       bool
	Width      int
	Tracks     mo.Option[TrackFilter]
	// Thumbnail opens the thumbnail of each successful lookup.
	Thumbnail bool
	// Concurrency bounds the number of lookups in flight.
	Concurrency int
}

// PlayOptions configure a non-interactive player session.
type PlayOptions struct {
	Out         io.Writer
	Engine      engine.Engine
	ManifestURL string
	LicenseURL  string
	Settle      time.Duration
	Json        bool
	Tracks      mo.Option[TrackFilter]
	// MaxHeight caps the selection after loading.
	MaxHeight mo.Option[string]
	// Bandwidth is the estimate used to report the active rendition.
	Bandwidth int
	// Hold keeps the session open until the context ends.
	Hold bool
}

// ParseTrackFilter parses "all", "highest", "lowest", a single height such
// as "720p" or an inclusive height range such as "480-1080".
func ParseTrackFilter(description string) (TrackFilter, error) {
	description = strings.ToLower(strings.TrimSpace(description))

	switch description {
	case "all", "":
		return func(r []track.Rendition) ([]track.Rendition, error) { return r, nil }, nil
	case "highest":
		return func(r []track.Rendition) ([]track.Rendition, error) {
			return lo.Subset(r, 0, 1), nil
		}, nil
	case "lowest":
		return func(r []track.Rendition) ([]track.Rendition, error) {
			if len(r) == 0 {
				return r, nil
			}
			return r[len(r)-1:], nil
		}, nil
	}

	if from, to, ok := strings.Cut(description, "-"); ok {
		low, ok1 := track.ParseHeight(from)
		high, ok2 := track.ParseHeight(to)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("invalid track range: %s", description)
		}
		if low > high {
			low, high = high, low
		}

		return func(r []track.Rendition) ([]track.Rendition, error) {
			return lo.Filter(r, func(t track.Rendition, _ int) bool {
				return t.Height >= low && t.Height <= high
			}), nil
		}, nil
	}

	if h, ok := track.ParseHeight(description); ok {
		return func(r []track.Rendition) ([]track.Rendition, error) {
			return lo.Filter(r, func(t track.Rendition, _ int) bool { return t.Height == h }), nil
		}, nil
	}

	return nil, fmt.Errorf("invalid track filter: %s", description)
}

// optionRenditions turns advertised track options into presented renditions.
func optionRenditions(options []metadata.TrackOption) []track.Rendition {
	raw := lo.Map(options, func(o metadata.TrackOption, _ int) track.Rendition {
		h := o.Height()
		return track.Rendition{
			ID:      o.ID,
			Width:   h * 16 / 9,
			Height:  h,
			Bitrate: o.BitrateKbps * 1000,
		}
	})
	return track.Present(raw)
}
