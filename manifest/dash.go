package manifest

import (
	"fmt"
	"io"
	"strings"

	"github.com/Eyevinn/dash-mpd/mpd"
	"github.com/vidmeta/vidmeta/track"
)

func isVideo(set *mpd.AdaptationSetType) bool {
	if ct := string(set.ContentType); ct != "" {
		return ct == "video"
	}
	if strings.HasPrefix(set.MimeType, "video/") {
		return true
	}
	for _, r := range set.Representations {
		if strings.HasPrefix(r.MimeType, "video/") {
			return true
		}
	}
	return false
}

func parseDASH(r io.Reader) (*Manifest, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read MPD: %w", err)
	}

	doc, err := mpd.ReadFromString(string(body))
	if err != nil {
		return nil, fmt.Errorf("invalid MPD: %w", err)
	}

	if len(doc.Periods) == 0 {
		return nil, fmt.Errorf("MPD contains no periods")
	}

	m := &Manifest{Format: DASH}
	schemes := make(map[string]struct{})
	addScheme := func(cps []*mpd.ContentProtectionType) {
		for _, cp := range cps {
			id := strings.ToLower(strings.TrimSpace(string(cp.SchemeIdUri)))
			if _, ok := schemes[id]; ok || id == "" {
				continue
			}
			schemes[id] = struct{}{}
			m.Protection = append(m.Protection, id)
		}
	}

	for p, per := range doc.Periods {
		for s, set := range per.AdaptationSets {
			addScheme(set.ContentProtections)

			if !isVideo(set) {
				continue
			}

			for i, rep := range set.Representations {
				addScheme(rep.ContentProtections)

				// dimensions set on the adaptation set apply to every representation
				width, height := int(rep.Width), int(rep.Height)
				if width == 0 {
					width = int(set.Width)
				}
				if height == 0 {
					height = int(set.Height)
				}

				m.Renditions = append(m.Renditions, track.Rendition{
					ID:      fmt.Sprintf("%d-%d-%d", p, s, i),
					Width:   width,
					Height:  height,
					Bitrate: int(rep.Bandwidth),
				})
			}
		}
	}

	return m, nil
}
