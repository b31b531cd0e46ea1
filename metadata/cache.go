package metadata

import (
	"context"
	"sync"
	"time"

	"github.com/metafates/gache"
	"github.com/samber/mo"
	"github.com/vidmeta/vidmeta/filesystem"
	"github.com/vidmeta/vidmeta/log"
	"github.com/vidmeta/vidmeta/where"
)

type cacheData struct {
	Records map[string]*Record `json:"records"`
}

// Cached persists records of a wrapped repository on disk.
type Cached struct {
	repo     Repository
	internal *gache.Cache[*cacheData]
	mu       sync.RWMutex
}

// NewCached wraps repo; entries expire together after lifetime.
func NewCached(repo Repository, lifetime time.Duration) *Cached {
	return &Cached{
		repo: repo,
		internal: gache.New[*cacheData](
			&gache.Options{
				Path:       where.Metadata(repo.Name()),
				Lifetime:   lifetime,
				FileSystem: &filesystem.GacheFs{},
			},
		),
	}
}

func (c *Cached) Name() string {
	return c.repo.Name()
}

// Metadata serves from the cache, falling back to the wrapped repository.
// Failures are never cached.
func (c *Cached) Metadata(ctx context.Context, id string) (*Record, error) {
	if record, ok := c.get(id).Get(); ok {
		log.Debugf("metadata cache hit for %s", id)
		return record, nil
	}

	record, err := c.repo.Metadata(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.set(id, record); err != nil {
		log.Warnf("failed to cache metadata for %s: %s", id, err)
	}

	return record, nil
}

func (c *Cached) get(id string) mo.Option[*Record] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[*Record]()
	}

	if record, ok := data.Records[id]; ok {
		return mo.Some(record)
	}

	return mo.None[*Record]()
}

func (c *Cached) set(id string, record *Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if expired || data == nil || data.Records == nil {
		data = &cacheData{Records: make(map[string]*Record)}
	}

	data.Records[id] = record
	return c.internal.Set(data)
}

// Clear drops every cached record.
func (c *Cached) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.internal.Set(&cacheData{Records: make(map[string]*Record)})
}
