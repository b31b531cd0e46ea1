// Package track presents engine renditions and models the selection constraint.
package track

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// DefaultAspectRatio is used when no rendition reports usable dimensions.
const DefaultAspectRatio = 16.0 / 9.0

// Rendition is one video quality level as enumerated by the engine.
type Rendition struct {
	// ID is "<group>-<set>-<track>" in engine enumeration order.
	ID      string `json:"id"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Bitrate int    `json:"bitrate"`
}

// Label renders the height as "720p".
func (r Rendition) Label() string {
	return fmt.Sprintf("%dp", r.Height)
}

func (r Rendition) String() string {
	return fmt.Sprintf("%s %dx%d %d bps", r.ID, r.Width, r.Height, r.Bitrate)
}

// Present drops renditions without positive dimensions, keeps the first
// rendition per height and orders the rest by height, highest first.
func Present(raw []Rendition) []Rendition {
	usable := lo.Filter(raw, func(r Rendition, _ int) bool {
		return r.Width > 0 && r.Height > 0
	})

	presented := lo.UniqBy(usable, func(r Rendition) int {
		return r.Height
	})

	sort.SliceStable(presented, func(i, j int) bool {
		return presented[i].Height > presented[j].Height
	})

	return presented
}

// AspectRatio is width/height of the first presented rendition.
func AspectRatio(presented []Rendition) float64 {
	first, ok := lo.First(presented)
	if !ok || first.Width <= 0 || first.Height <= 0 {
		return DefaultAspectRatio
	}
	return float64(first.Width) / float64(first.Height)
}

// Heights returns the heights of presented renditions.
func Heights(presented []Rendition) []int {
	return lo.Map(presented, func(r Rendition, _ int) int { return r.Height })
}
