// Package catalog fetches metadata from a REST catalog answering
// GET videos/{id}/metadata with a {success, data, error} envelope.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/vidmeta/vidmeta/metadata"
	"github.com/vidmeta/vidmeta/util"
)

// Name of the repository.
const Name = "catalog"

// DefaultBaseURL is the catalog root.
const DefaultBaseURL = "https://api.example.com/"

type trackPayload struct {
	ID          string `json:"id"`
	Resolution  string `json:"resolution"`
	BitrateKbps int    `json:"bitrateKbps"`
	MimeType    string `json:"mimeType"`
}

type videoPayload struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	ReleaseDate     string         `json:"releaseDate"`
	Duration        int64          `json:"duration"`
	Genre           *string        `json:"genre"`
	ThumbnailURL    *string        `json:"thumbnailUrl"`
	AvailableTracks []trackPayload `json:"availableTracks"`
}

type envelope struct {
	Success bool          `json:"success"`
	Data    *videoPayload `json:"data"`
	Error   *string       `json:"error"`
}

// Repository queries the catalog over HTTP.
type Repository struct {
	base   *url.URL
	client *http.Client
	token  mo.Option[string]
}

// New returns a repository rooted at baseURL. The token, when present, is
// sent as a bearer credential.
func New(baseURL string, client *http.Client, token mo.Option[string]) (*Repository, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog base URL: %w", err)
	}

	if client == nil {
		client = http.DefaultClient
	}

	return &Repository{base: base, client: client, token: token}, nil
}

func (r *Repository) Name() string {
	return Name
}

func (r *Repository) Metadata(ctx context.Context, id string) (*metadata.Record, error) {
	endpoint := r.base.JoinPath("videos", id, "metadata")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	if token, ok := r.token.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode == http.StatusNotFound {
		return nil, &metadata.NotFoundError{ID: id}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &metadata.StatusError{Code: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	var body envelope
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("invalid catalog response: %w", err)
	}

	if !body.Success {
		if body.Error != nil && *body.Error != "" {
			return nil, errors.New(*body.Error)
		}
		return nil, &metadata.NotFoundError{ID: id}
	}

	if body.Data == nil {
		return nil, &metadata.NotFoundError{ID: id}
	}

	return body.Data.toRecord(id), nil
}

func (p *videoPayload) toRecord(requested string) *metadata.Record {
	id := p.ID
	if id == "" {
		id = requested
	}

	record := &metadata.Record{
		ID:          id,
		Title:       p.Title,
		Description: p.Description,
		ReleaseDate: p.ReleaseDate,
		Duration:    time.Duration(p.Duration) * time.Millisecond,
		Tracks: lo.Map(p.AvailableTracks, func(t trackPayload, _ int) metadata.TrackOption {
			return metadata.TrackOption{
				ID:          t.ID,
				Resolution:  t.Resolution,
				BitrateKbps: t.BitrateKbps,
				MimeType:    lo.Ternary(t.MimeType == "", "video/mp4", t.MimeType),
			}
		}),
	}

	if p.Genre != nil && *p.Genre != "" {
		record.Genres = []string{*p.Genre}
	}
	if p.ThumbnailURL != nil {
		record.ThumbnailURL = *p.ThumbnailURL
	}

	return record
}
