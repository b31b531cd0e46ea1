package player

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
	"github.com/vidmeta/vidmeta/track"
)

// mpvTrack is an entry of mpv's track-list property.
type mpvTrack struct {
	ID           int    `json:"id"`
	Type         string `json:"type"`
	Width        int    `json:"demux-w"`
	Height       int    `json:"demux-h"`
	HLSBitrate   int    `json:"hls-bitrate"`
	DemuxBitrate int    `json:"demux-bitrate"`
}

func (t mpvTrack) bitrate() int {
	if t.HLSBitrate > 0 {
		return t.HLSBitrate
	}
	return t.DemuxBitrate
}

func (m *MPV) videoTracks() ([]mpvTrack, error) {
	data, err := m.sendCommand([]any{"get_property", "track-list"})
	if err != nil {
		return nil, err
	}

	// the IPC reply is decoded generically; round-trip it into typed tracks
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal track-list: %w", err)
	}

	var tracks []mpvTrack
	if err := json.Unmarshal(raw, &tracks); err != nil {
		return nil, fmt.Errorf("decode track-list: %w", err)
	}

	return lo.Filter(tracks, func(t mpvTrack, _ int) bool {
		return t.Type == "video"
	}), nil
}

// matchTrack finds the video track for r: same height with the closest
// bitrate, else the tallest track not above r, else the shortest track.
func matchTrack(tracks []mpvTrack, r track.Rendition) (int, bool) {
	if len(tracks) == 0 {
		return 0, false
	}

	same := lo.Filter(tracks, func(t mpvTrack, _ int) bool { return t.Height == r.Height })
	if len(same) > 0 {
		best := lo.MinBy(same, func(a, b mpvTrack) bool {
			return distance(a.bitrate(), r.Bitrate) < distance(b.bitrate(), r.Bitrate)
		})
		return best.ID, true
	}

	below := lo.Filter(tracks, func(t mpvTrack, _ int) bool { return t.Height < r.Height })
	if len(below) > 0 {
		return lo.MaxBy(below, func(a, b mpvTrack) bool { return a.Height > b.Height }).ID, true
	}

	return lo.MinBy(tracks, func(a, b mpvTrack) bool { return a.Height < b.Height }).ID, true
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
