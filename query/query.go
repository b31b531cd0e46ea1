// Package query remembers looked-up video IDs and suggests them back.
package query

import (
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/vidmeta/vidmeta/filesystem"
	"github.com/vidmeta/vidmeta/key"
	"github.com/vidmeta/vidmeta/where"
	"golang.org/x/exp/slices"
)

type queryRecord struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
}

var (
	mu     sync.Mutex
	cacher *gache.Cache[map[string]*queryRecord]
)

func cache() *gache.Cache[map[string]*queryRecord] {
	if cacher == nil {
		cacher = gache.New[map[string]*queryRecord](
			&gache.Options{
				Path:       where.Queries(),
				FileSystem: &filesystem.GacheFs{},
			},
		)
	}
	return cacher
}

// Remember records q, adding weight to its rank if already known.
func Remember(q string, weight int) error {
	mu.Lock()
	defer mu.Unlock()

	q = sanitize(q)
	if q == "" {
		return nil
	}

	cached, expired, err := cache().Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*queryRecord)
	}

	if record, ok := cached[q]; ok {
		record.Rank += weight
	} else {
		cached[q] = &queryRecord{Rank: weight, Query: q}
	}

	return cache().Set(cached)
}

// Suggest returns the best-ranked remembered query matching q.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns remembered queries fuzzily matching q, highest rank first.
// An empty q matches everything.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowSuggestions) {
		return []string{}
	}

	mu.Lock()
	defer mu.Unlock()

	q = sanitize(q)

	cached, expired, err := cache().Get()
	if err != nil || expired || cached == nil {
		return []string{}
	}

	records := lo.Filter(lo.Values(cached), func(r *queryRecord, _ int) bool {
		return fuzzy.Match(q, r.Query)
	})

	slices.SortFunc(records, func(a, b *queryRecord) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return strings.Compare(a.Query, b.Query)
	})

	return lo.Map(records, func(r *queryRecord, _ int) string {
		return r.Query
	})
}

// Forget removes every remembered query.
func Forget() error {
	mu.Lock()
	defer mu.Unlock()
	return cache().Set(make(map[string]*queryRecord))
}

func sanitize(q string) string {
	return strings.TrimSpace(q)
}
