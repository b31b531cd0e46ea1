package track

import (
	"math"
	"strconv"
	"strings"
)

// Constraint bounds the renditions an adaptive engine may pick.
type Constraint struct {
	MaxWidth            int  `json:"max_width"`
	MaxHeight           int  `json:"max_height"`
	ForceHighestBitrate bool `json:"force_highest_bitrate"`
}

// Unconstrained allows every rendition.
func Unconstrained() Constraint {
	return Constraint{MaxWidth: math.MaxInt, MaxHeight: math.MaxInt}
}

// CapHeight allows any width up to height h.
func CapHeight(h int) Constraint {
	return Constraint{MaxWidth: math.MaxInt, MaxHeight: h}
}

// Allows reports whether r fits within the constraint.
func (c Constraint) Allows(r Rendition) bool {
	return r.Width <= c.MaxWidth && r.Height <= c.MaxHeight
}

// IsCapped reports whether a height cap is in effect.
func (c Constraint) IsCapped() bool {
	return c.MaxHeight != math.MaxInt
}

// ParseHeight accepts "720", "720p" or " 1080P ".
func ParseHeight(label string) (int, bool) {
	label = strings.TrimSpace(label)
	label = strings.TrimSuffix(strings.TrimSuffix(label, "p"), "P")

	h, err := strconv.Atoi(label)
	if err != nil || h <= 0 {
		return 0, false
	}

	return h, true
}
