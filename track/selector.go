package track

import (
	"sort"
	"sync"
)

// Selector holds the engine's current constraint and picks the rendition an
// adaptive engine would play under it.
type Selector struct {
	mu         sync.RWMutex
	constraint Constraint
	listeners  []func(Constraint)
}

// NewSelector starts with the given constraint.
func NewSelector(initial Constraint) *Selector {
	return &Selector{constraint: initial}
}

// Constraint reads back the current constraint.
func (s *Selector) Constraint() Constraint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.constraint
}

// SetConstraint replaces the constraint and notifies listeners.
func (s *Selector) SetConstraint(c Constraint) {
	s.mu.Lock()
	s.constraint = c
	listeners := make([]func(Constraint), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(c)
	}
}

// SetMaxVideoSize keeps ForceHighestBitrate and replaces both axes.
func (s *Selector) SetMaxVideoSize(width, height int) {
	c := s.Constraint()
	c.MaxWidth, c.MaxHeight = width, height
	s.SetConstraint(c)
}

// OnChange registers fn to run after each SetConstraint.
func (s *Selector) OnChange(fn func(Constraint)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Select picks from renditions: within the cap, the highest whose bitrate
// fits bandwidthBps (or the highest outright when forcing the highest bitrate
// or when bandwidthBps <= 0); the lowest within the cap when none fits; the
// lowest overall when nothing is within the cap.
func (s *Selector) Select(renditions []Rendition, bandwidthBps int) (Rendition, bool) {
	if len(renditions) == 0 {
		return Rendition{}, false
	}

	c := s.Constraint()

	sorted := make([]Rendition, len(renditions))
	copy(sorted, renditions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Bitrate > sorted[j].Bitrate
	})

	var allowed []Rendition
	for _, r := range sorted {
		if c.Allows(r) {
			allowed = append(allowed, r)
		}
	}

	if len(allowed) == 0 {
		return sorted[len(sorted)-1], true
	}

	if c.ForceHighestBitrate || bandwidthBps <= 0 {
		return allowed[0], true
	}

	for _, r := range allowed {
		if r.Bitrate <= bandwidthBps {
			return r, true
		}
	}

	return allowed[len(allowed)-1], true
}
