package engine

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/vidmeta/vidmeta/log"
	"github.com/vidmeta/vidmeta/manifest"
	"github.com/vidmeta/vidmeta/track"
)

// Probe is an engine that loads the manifest and exposes its renditions
// without decoding media.
type Probe struct {
	client   *http.Client
	selector *track.Selector

	mu         sync.RWMutex
	state      State
	renditions []track.Rendition
	ready      bool
	err        error
	released   bool
	cancel     context.CancelFunc
	listeners  []func(State)

	wg sync.WaitGroup
}

// NewProbe returns an idle engine using client for manifest requests.
func NewProbe(client *http.Client, initial track.Constraint) *Probe {
	if client == nil {
		client = http.DefaultClient
	}

	return &Probe{
		client:   client,
		selector: track.NewSelector(initial),
	}
}

func (p *Probe) Selector() *track.Selector {
	return p.selector
}

func (p *Probe) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

func (p *Probe) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.err
}

// Renditions returns the manifest's video renditions once ready.
func (p *Probe) Renditions() ([]track.Rendition, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.ready {
		return nil, false
	}

	out := make([]track.Rendition, len(p.renditions))
	copy(out, p.renditions)
	return out, true
}

func (p *Probe) OnStateChange(fn func(State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// Prepare validates item and loads the manifest in the background.
func (p *Probe) Prepare(ctx context.Context, item MediaItem) error {
	if strings.TrimSpace(item.URI) == "" {
		return fmt.Errorf("media URI is empty")
	}

	if drm, ok := item.DRM.Get(); ok {
		if err := drm.Validate(); err != nil {
			return err
		}
	}

	p.mu.Lock()
	if p.released {
		p.mu.Unlock()
		return ErrReleased
	}
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.ready, p.renditions, p.err = false, nil, nil
	p.wg.Add(1)
	p.mu.Unlock()

	p.setState(StateBuffering)

	go func() {
		defer p.wg.Done()
		p.load(ctx, item)
	}()

	return nil
}

func (p *Probe) load(ctx context.Context, item MediaItem) {
	logger := log.WithFields(log.Fields{"uri": item.URI, "mime": item.MimeType})
	logger.Info("preparing media")

	m, err := manifest.Fetch(ctx, p.client, item.URI)
	if err == nil {
		err = checkProtection(m, item)
	}

	if ctx.Err() != nil {
		return
	}

	if err != nil {
		logger.Error(err)
		p.mu.Lock()
		p.err = err
		p.mu.Unlock()
		p.setState(StateIdle)
		return
	}

	logger.Infof("manifest ready with %d renditions", len(m.Renditions))
	p.mu.Lock()
	p.renditions = m.Renditions
	p.ready = true
	p.mu.Unlock()
	p.setState(StateReady)
}

func checkProtection(m *manifest.Manifest, item MediaItem) error {
	if !m.Protected() {
		return nil
	}

	drm, ok := item.DRM.Get()
	if !ok {
		return ErrProtected
	}

	var systems []string
	for _, scheme := range m.Protection {
		if id, ok := strings.CutPrefix(scheme, "urn:uuid:"); ok {
			systems = append(systems, id)
		}
	}

	if len(systems) == 0 {
		return nil
	}

	for _, id := range systems {
		if id == drm.Scheme.String() {
			return nil
		}
	}

	return fmt.Errorf("DRM scheme %s is not supported by the media", drm.Scheme)
}

func (p *Probe) setState(s State) {
	p.mu.Lock()
	if p.released || p.state == s {
		p.mu.Unlock()
		return
	}
	p.state = s
	listeners := make([]func(State), len(p.listeners))
	copy(listeners, p.listeners)
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
}

// Release stops loading and drops listeners. Safe to call more than once.
func (p *Probe) Release() {
	p.mu.Lock()
	if p.released {
		p.mu.Unlock()
		return
	}
	if p.cancel != nil {
		p.cancel()
	}
	p.released = true
	p.state = StateIdle
	p.listeners = nil
	p.mu.Unlock()

	p.wg.Wait()
}
