package track

// Resolution is a coarse quality bucket.
type Resolution string

const (
	Res240  Resolution = "240p"
	Res480  Resolution = "480p"
	Res720  Resolution = "720p"
	Res1080 Resolution = "1080p"
)

// Resolutions lists buckets from lowest to highest.
var Resolutions = []Resolution{Res240, Res480, Res720, Res1080}

// ResolutionFromHeight buckets a height; anything above 720 is 1080p.
func ResolutionFromHeight(h int) Resolution {
	switch {
	case h <= 240:
		return Res240
	case h <= 480:
		return Res480
	case h <= 720:
		return Res720
	default:
		return Res1080
	}
}

// Height is the nominal height of the bucket.
func (r Resolution) Height() int {
	h, _ := ParseHeight(string(r))
	return h
}
