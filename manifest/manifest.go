// Package manifest probes adaptive-streaming manifests (DASH and HLS) for
// their video renditions and content protection.
package manifest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/vidmeta/vidmeta/constant"
	"github.com/vidmeta/vidmeta/track"
	"github.com/vidmeta/vidmeta/util"
)

// Format of an adaptive-streaming manifest.
type Format int

const (
	Unknown Format = iota
	DASH
	HLS
)

func (f Format) String() string {
	switch f {
	case DASH:
		return "dash"
	case HLS:
		return "hls"
	default:
		return "unknown"
	}
}

// MimeType returns the canonical mime type of the format.
func (f Format) MimeType() string {
	switch f {
	case DASH:
		return constant.MimeDASH
	case HLS:
		return constant.MimeHLS
	default:
		return ""
	}
}

// Manifest is the probed summary of a manifest.
type Manifest struct {
	Format     Format
	Renditions []track.Rendition
	// Protection holds ContentProtection scheme IDs, lowercased.
	Protection []string
}

// Protected reports whether any ContentProtection element was present.
func (m *Manifest) Protected() bool {
	return len(m.Protection) > 0
}

// Detect picks a format from the content type, falling back to the path extension.
func Detect(uri, contentType string) Format {
	ct := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	switch ct {
	case constant.MimeDASH:
		return DASH
	case strings.ToLower(constant.MimeHLS), "application/vnd.apple.mpegurl", "audio/mpegurl":
		return HLS
	}

	p := uri
	if u, err := url.Parse(uri); err == nil {
		p = u.Path
	}

	switch strings.ToLower(path.Ext(p)) {
	case ".mpd":
		return DASH
	case ".m3u8", ".m3u":
		return HLS
	default:
		return Unknown
	}
}

// Parse decodes a manifest body of the given format.
func Parse(format Format, r io.Reader) (*Manifest, error) {
	switch format {
	case DASH:
		return parseDASH(r)
	case HLS:
		return parseHLS(r)
	default:
		return nil, fmt.Errorf("unsupported manifest format")
	}
}

// Fetch downloads and parses the manifest at uri.
func Fetch(ctx context.Context, client *http.Client, uri string) (*Manifest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build manifest request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manifest: %w", err)
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch manifest: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	format := Detect(uri, resp.Header.Get("Content-Type"))
	if format == Unknown {
		format = sniff(body)
	}

	m, err := Parse(format, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	return m, nil
}

func sniff(body []byte) Format {
	trimmed := bytes.TrimSpace(body)
	switch {
	case bytes.HasPrefix(trimmed, []byte("#EXTM3U")):
		return HLS
	case bytes.Contains(trimmed[:min(len(trimmed), 512)], []byte("<MPD")):
		return DASH
	default:
		return Unknown
	}
}
