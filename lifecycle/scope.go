// Package lifecycle binds background tasks to the lifetime of a screen.
package lifecycle

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Launch once the scope is closed.
var ErrClosed = errors.New("scope closed")

// Scope owns a cancellable context. Tasks launched on it are cancelled and
// awaited by Close, after which release hooks run in reverse registration order.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	wg      sync.WaitGroup
	closed  bool
	release []func()
}

// New creates a scope derived from parent.
func New(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// Context is cancelled when the scope closes.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Launch runs fn on its own goroutine.
func (s *Scope) Launch(fn func(ctx context.Context)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn(s.ctx)
	}()

	return nil
}

// OnRelease registers fn to run during Close after all tasks have returned.
// Registering on a closed scope runs fn immediately.
func (s *Scope) OnRelease(fn func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		fn()
		return
	}
	s.release = append(s.release, fn)
	s.mu.Unlock()
}

// Closed reports whether Close was called.
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close cancels in-flight tasks, waits for them and runs release hooks.
// Subsequent calls are no-ops.
func (s *Scope) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	release := s.release
	s.release = nil
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()

	for i := len(release) - 1; i >= 0; i-- {
		release[i]()
	}
}
