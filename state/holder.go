package state

import "sync"

// Holder stores a single current value and fans changes out to observers.
//
// Subscribe channels are conflated: a slow reader skips intermediate values
// but always receives the latest one. Observe callbacks see every value in
// Set order.
type Holder[T any] struct {
	// deliver serialises Set so observers run in the order values are stored.
	deliver sync.Mutex

	mu        sync.Mutex
	value     T
	subs      []chan T
	observers []func(T)
	closed    bool
}

// NewHolder returns a holder whose current value is initial.
func NewHolder[T any](initial T) *Holder[T] {
	return &Holder[T]{value: initial}
}

// Value returns the current value.
func (h *Holder[T]) Value() T {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.value
}

// Set replaces the current value. No-op after Close.
func (h *Holder[T]) Set(v T) {
	h.deliver.Lock()
	defer h.deliver.Unlock()

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}

	h.value = v
	for _, ch := range h.subs {
		offer(ch, v)
	}

	observers := make([]func(T), len(h.observers))
	copy(observers, h.observers)
	h.mu.Unlock()

	for _, fn := range observers {
		fn(v)
	}
}

// Subscribe returns a channel that immediately yields the current value and
// then every later value, conflated. It is closed by Close.
func (h *Holder[T]) Subscribe() <-chan T {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan T, 1)
	if h.closed {
		close(ch)
		return ch
	}

	ch <- h.value
	h.subs = append(h.subs, ch)
	return ch
}

// Observe registers fn to be called synchronously on every Set.
// fn must not call Set on the same holder.
func (h *Holder[T]) Observe(fn func(T)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.observers = append(h.observers, fn)
}

// Close closes every subscription. The last value stays readable.
func (h *Holder[T]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for _, ch := range h.subs {
		close(ch)
	}
	h.subs = nil
	h.observers = nil
}

// offer replaces a pending unread value with v.
func offer[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}

		select {
		case <-ch:
		default:
		}
	}
}
