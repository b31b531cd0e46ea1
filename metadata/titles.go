package metadata

import (
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// Title maps a human-readable name to a video ID of a given source.
type Title struct {
	Name   string `json:"name"`
	ID     string `json:"id"`
	Source string `json:"source"`
}

// Titles is a lookup table of known titles.
type Titles []Title

// Names returns the title names in table order.
func (t Titles) Names() []string {
	return lo.Map(t, func(title Title, _ int) string { return title.Name })
}

// BySource keeps titles of one source.
func (t Titles) BySource(source string) Titles {
	return lo.Filter(t, func(title Title, _ int) bool { return title.Source == source })
}

// ByID finds the title with the given ID.
func (t Titles) ByID(id string) (Title, bool) {
	return lo.Find(t, func(title Title) bool { return title.ID == id })
}

// Closest resolves a free-form query to a title. Exact IDs win, then fuzzy
// matches ranked by distance with ties broken by levenshtein distance.
func (t Titles) Closest(query string) (Title, bool) {
	query = normalizedName(query)
	if query == "" {
		return Title{}, false
	}

	if title, ok := lo.Find(t, func(title Title) bool { return strings.EqualFold(title.ID, query) }); ok {
		return title, true
	}

	ranks := fuzzy.RankFindNormalizedFold(query, t.Names())
	if len(ranks) == 0 {
		return Title{}, false
	}

	best := lo.MinBy(ranks, func(a, b fuzzy.Rank) bool {
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		return levenshtein.Distance(query, normalizedName(a.Target)) <
			levenshtein.Distance(query, normalizedName(b.Target))
	})

	return t[best.OriginalIndex], true
}

func normalizedName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
