package inline

import (
	"encoding/json"
	"io"

	"github.com/vidmeta/vidmeta/metadata"
	"github.com/vidmeta/vidmeta/playback"
	"github.com/vidmeta/vidmeta/track"
)

// Result is the outcome of one lookup.
type Result struct {
	ID     string           `json:"id"`
	Record *metadata.Record `json:"record,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// LookupOutput is the JSON document printed by lookup --json.
type LookupOutput struct {
	Repository string    `json:"repository"`
	Results    []*Result `json:"results"`
}

// PlayOutput is the JSON document printed by play --json.
type PlayOutput struct {
	Manifest   string             `json:"manifest"`
	Playback   *playback.Playback `json:"playback,omitempty"`
	Constraint track.Constraint   `json:"constraint"`
	Active     *track.Rendition   `json:"active,omitempty"`
	Error      string             `json:"error,omitempty"`
}

func writeJson(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
