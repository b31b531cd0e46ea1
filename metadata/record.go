// Package metadata defines video metadata records and the repositories that
// produce them.
package metadata

import (
	"context"
	"time"

	"github.com/vidmeta/vidmeta/track"
)

// Contributor is a person credited on a video.
type Contributor struct {
	Name string `json:"name" jsonschema:"description=Name of the contributor."`
	Type string `json:"type" jsonschema:"description=Role of the contributor, e.g. actor or director."`
}

// TrackOption is a quality level advertised by the metadata source.
type TrackOption struct {
	ID          string `json:"id" jsonschema:"description=Identifier of the track option."`
	Resolution  string `json:"resolution" jsonschema:"description=Resolution label, e.g. 720p."`
	BitrateKbps int    `json:"bitrateKbps" jsonschema:"description=Bitrate in kilobits per second."`
	MimeType    string `json:"mimeType" jsonschema:"description=Container mime type."`
}

// Height parses the resolution label. Zero when malformed.
func (t TrackOption) Height() int {
	h, _ := track.ParseHeight(t.Resolution)
	return h
}

// Record is the metadata of one video. Treat it as immutable.
type Record struct {
	ID           string        `json:"id" jsonschema:"description=Video ID the record was fetched for."`
	Title        string        `json:"title" jsonschema:"description=Title of the video."`
	Description  string        `json:"description" jsonschema:"description=Plain text synopsis."`
	ReleaseDate  string        `json:"releaseDate" jsonschema:"description=Release date as reported by the source, usually YYYY-MM-DD."`
	Duration     time.Duration `json:"duration" jsonschema:"description=Running time in nanoseconds."`
	Genres       []string      `json:"genres" jsonschema:"description=Genres of the video."`
	Languages    []string      `json:"languages" jsonschema:"description=Spoken languages."`
	Tags         []string      `json:"tags" jsonschema:"description=Free-form tags."`
	Contributors []Contributor `json:"contributors" jsonschema:"description=Cast and crew."`
	ThumbnailURL string        `json:"thumbnailUrl,omitempty" jsonschema:"description=URL of a poster or splash image."`
	Tracks       []TrackOption `json:"tracks,omitempty" jsonschema:"description=Quality levels advertised by the source."`
}

// Genre returns the first genre or an empty string.
func (r *Record) Genre() string {
	if len(r.Genres) == 0 {
		return ""
	}
	return r.Genres[0]
}

// ContributorsOf returns contributor names with the given type.
func (r *Record) ContributorsOf(kind string) []string {
	var names []string
	for _, c := range r.Contributors {
		if c.Type == kind {
			names = append(names, c.Name)
		}
	}
	return names
}

// Repository fetches metadata by video ID.
type Repository interface {
	// Name identifies the repository in logs and cache paths.
	Name() string
	Metadata(ctx context.Context, id string) (*Record, error)
}
