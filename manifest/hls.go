package manifest

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grafov/m3u8"
	"github.com/vidmeta/vidmeta/track"
)

func parseHLS(r io.Reader) (*Manifest, error) {
	playlist, listType, err := m3u8.DecodeFrom(r, true)
	if err != nil {
		return nil, fmt.Errorf("invalid playlist: %w", err)
	}

	m := &Manifest{Format: HLS}

	// A media playlist has a single implicit rendition without dimensions.
	if listType != m3u8.MASTER {
		return m, nil
	}

	master, ok := playlist.(*m3u8.MasterPlaylist)
	if !ok {
		return nil, fmt.Errorf("unexpected playlist type")
	}

	for i, v := range master.Variants {
		if v == nil {
			continue
		}

		width, height := parseResolution(v.Resolution)
		m.Renditions = append(m.Renditions, track.Rendition{
			ID:      fmt.Sprintf("0-0-%d", i),
			Width:   width,
			Height:  height,
			Bitrate: int(v.Bandwidth),
		})
	}

	return m, nil
}

// parseResolution splits "1280x720"; malformed input yields zeros.
func parseResolution(s string) (width, height int) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0
	}

	width, err := strconv.Atoi(w)
	if err != nil {
		return 0, 0
	}
	height, err = strconv.Atoi(h)
	if err != nil {
		return 0, 0
	}

	return width, height
}
