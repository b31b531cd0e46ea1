// Package fixture serves metadata for a few open movies from memory.
package fixture

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/vidmeta/vidmeta/log"
	"github.com/vidmeta/vidmeta/metadata"
)

// Name of the repository.
const Name = "fixture"

// DefaultStreamURL is played for IDs without a dedicated stream.
const DefaultStreamURL = "https://storage.googleapis.com/exoplayer-test-media-1/60fps/bbb-clear/manifest.mpd"

var streams = map[string]string{
	"video1": "https://dash.akamaized.net/akamai/bbb_30fps/bbb_30fps.mpd",
	"video2": "https://dash.akamaized.net/dash264/TestCases/2c/qualcomm/1/MultiResMPEG2.mpd",
	"video3": "https://dash.akamaized.net/dash264/TestCases/1a/netflix/exMPD_BIP_TC1.mpd",
}

func standardTracks() []metadata.TrackOption {
	return []metadata.TrackOption{
		{ID: "240p", Resolution: "240p", BitrateKbps: 500, MimeType: "video/mp4"},
		{ID: "480p", Resolution: "480p", BitrateKbps: 1500, MimeType: "video/mp4"},
		{ID: "720p", Resolution: "720p", BitrateKbps: 2500, MimeType: "video/mp4"},
		{ID: "1080p", Resolution: "1080p", BitrateKbps: 5000, MimeType: "video/mp4"},
	}
}

// Records returns the sample records in ID order.
func Records() []*metadata.Record {
	return []*metadata.Record{
		{
			ID:           "video1",
			Title:        "Big Buck Bunny",
			Description:  "Big Buck Bunny is a short animated film by the Blender Institute, part of the Blender Foundation. It features a large rabbit fighting against three bullying rodents.",
			ReleaseDate:  "2008-04-10",
			Duration:     596 * time.Second,
			Genres:       []string{"Animation"},
			ThumbnailURL: "https://peach.blender.org/wp-content/uploads/bbb-splash.png",
			Tracks:       standardTracks(),
		},
		{
			ID:           "video2",
			Title:        "Sintel",
			Description:  "Sintel is a fantasy computer animated short film. It was produced by the Blender Foundation as part of the Durian Open Movie Project.",
			ReleaseDate:  "2010-09-27",
			Duration:     888 * time.Second,
			Genres:       []string{"Fantasy"},
			ThumbnailURL: "https://durian.blender.org/wp-content/uploads/2010/05/sintel_trailer_1080p.jpg",
			Tracks:       standardTracks(),
		},
		{
			ID:           "video3",
			Title:        "Tears of Steel",
			Description:  "Tears of Steel was produced by Blender Foundation and directed by Ian Hubert. It's the fourth film from the Blender Open Movie Project.",
			ReleaseDate:  "2012-09-26",
			Duration:     734 * time.Second,
			Genres:       []string{"Sci-Fi"},
			ThumbnailURL: "https://mango.blender.org/wp-content/uploads/2012/09/tears_of_steel_poster.jpg",
			Tracks:       standardTracks(),
		},
	}
}

// SampleIDs are the IDs the fixture knows.
func SampleIDs() []string {
	return lo.Map(Records(), func(r *metadata.Record, _ int) string { return r.ID })
}

// Titles lists the sample records as known titles.
func Titles() metadata.Titles {
	return lo.Map(Records(), func(r *metadata.Record, _ int) metadata.Title {
		return metadata.Title{Name: r.Title, ID: r.ID, Source: Name}
	})
}

// StreamURL returns the public DASH test stream for id.
func StreamURL(id string) string {
	if u, ok := streams[id]; ok {
		return u
	}
	return DefaultStreamURL
}

// Repository looks records up in memory after a simulated latency.
type Repository struct {
	latency time.Duration
}

// New returns a repository answering after latency.
func New(latency time.Duration) *Repository {
	return &Repository{latency: latency}
}

func (r *Repository) Name() string {
	return Name
}

func (r *Repository) Metadata(ctx context.Context, id string) (*metadata.Record, error) {
	if r.latency > 0 {
		timer := time.NewTimer(r.latency)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("Error fetching video metadata: %w", ctx.Err())
		case <-timer.C:
		}
	}

	record, ok := lo.Find(Records(), func(r *metadata.Record) bool { return r.ID == id })
	if !ok {
		log.Warnf("fixture has no video %q", id)
		return nil, &metadata.NotFoundError{ID: id}
	}

	return record, nil
}
