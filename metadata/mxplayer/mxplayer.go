// Package mxplayer fetches movie metadata from the MX Player web detail API.
package mxplayer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/vidmeta/vidmeta/constant"
	"github.com/vidmeta/vidmeta/metadata"
	"github.com/vidmeta/vidmeta/network"
	"github.com/vidmeta/vidmeta/util"
)

// Name of the repository.
const Name = "mxplayer"

// DefaultBaseURL is the API root.
const DefaultBaseURL = "https://api.mxplayer.in/"

// Headers are sent with every request.
var Headers = map[string]string{
	"User-Agent":   constant.UserAgent,
	"Accept":       "application/json",
	"Content-Type": "application/json",
}

// KnownTitles are movies with IDs known to resolve.
var KnownTitles = metadata.Titles{
	{Name: "Jab We Met", ID: "acb8b71b41fa86ace0e3e10d75e78e22", Source: Name},
	{Name: "Housefull 2", ID: "f11cec31eff8ae5a0984017b3c252e02", Source: Name},
	{Name: "Yamla Pagla Deewana", ID: "a3b53d8994a29b8cfae0e061427be565", Source: Name},
	{Name: "The Monkey King 2", ID: "500f8c5e98bf9d06e109d8b880a76342", Source: Name},
	{Name: "Anaconda 3", ID: "6f913706db4658ceb8443d9ef805f529", Source: Name},
}

type tag struct {
	Name *string `json:"name"`
}

type contributor struct {
	Name *string `json:"name"`
	Type *string `json:"type"`
}

type detail struct {
	Title        *string       `json:"title"`
	Description  *string       `json:"description"`
	ReleaseDate  *string       `json:"releaseDate"`
	Duration     *int          `json:"duration"`
	Genres       []string      `json:"genres"`
	Languages    []string      `json:"languages"`
	Tags         []tag         `json:"tags"`
	Contributors []contributor `json:"contributors"`
}

// NewClient returns a client carrying Headers.
func NewClient(opts network.Options) *http.Client {
	opts.Headers = Headers
	return network.New(opts)
}

// Repository queries the detail endpoint.
type Repository struct {
	base   *url.URL
	client *http.Client
}

// New returns a repository rooted at baseURL using client, which should
// carry Headers (see NewClient).
func New(baseURL string, client *http.Client) (*Repository, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid detail base URL: %w", err)
	}

	if client == nil {
		client = NewClient(network.Options{ConnectTimeout: 5 * time.Second})
	}

	return &Repository{base: base, client: client}, nil
}

func (r *Repository) Name() string {
	return Name
}

func (r *Repository) Metadata(ctx context.Context, id string) (*metadata.Record, error) {
	endpoint := r.base.JoinPath("v1", "web", "detail", "video")
	endpoint.RawQuery = url.Values{"type": {"movie"}, "id": {id}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer util.Ignore(resp.Body.Close)

	statusErr := &metadata.StatusError{Code: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" {
		return nil, statusErr
	}

	var d detail
	if err := json.Unmarshal(body, &d); err != nil {
		return nil, fmt.Errorf("invalid detail response: %w", err)
	}

	return d.toRecord(id), nil
}

func (d *detail) toRecord(id string) *metadata.Record {
	record := &metadata.Record{
		ID:          id,
		Title:       lo.FromPtr(d.Title),
		Description: lo.FromPtr(d.Description),
		ReleaseDate: lo.FromPtr(d.ReleaseDate),
		Duration:    time.Duration(lo.FromPtr(d.Duration)) * time.Second,
		Genres:      d.Genres,
		Languages:   d.Languages,
		Tags: lo.FilterMap(d.Tags, func(t tag, _ int) (string, bool) {
			return lo.FromPtr(t.Name), t.Name != nil
		}),
		Contributors: lo.Map(d.Contributors, func(c contributor, _ int) metadata.Contributor {
			return metadata.Contributor{Name: lo.FromPtr(c.Name), Type: lo.FromPtr(c.Type)}
		}),
	}

	return record
}
