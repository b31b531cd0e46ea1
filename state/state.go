// Package state models screen view state and an observable holder for it.
package state

import "fmt"

// Kind enumerates view state variants.
type Kind int

const (
	KindIdle Kind = iota
	KindLoading
	KindSuccess
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindLoading:
		return "loading"
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// State is exactly one of Idle, Loading, Success(payload) or Error(message).
type State[T any] struct {
	kind    Kind
	payload T
	message string
}

func Idle[T any]() State[T] {
	return State[T]{kind: KindIdle}
}

func Loading[T any]() State[T] {
	return State[T]{kind: KindLoading}
}

func Success[T any](payload T) State[T] {
	return State[T]{kind: KindSuccess, payload: payload}
}

func Error[T any](message string) State[T] {
	return State[T]{kind: KindError, message: message}
}

func (s State[T]) Kind() Kind { return s.kind }

func (s State[T]) IsIdle() bool    { return s.kind == KindIdle }
func (s State[T]) IsLoading() bool { return s.kind == KindLoading }
func (s State[T]) IsSuccess() bool { return s.kind == KindSuccess }
func (s State[T]) IsError() bool   { return s.kind == KindError }

// IsTerminal reports whether the state ends a request.
func (s State[T]) IsTerminal() bool {
	return s.kind == KindSuccess || s.kind == KindError
}

// Payload returns the success payload and whether the state carries one.
func (s State[T]) Payload() (T, bool) {
	return s.payload, s.kind == KindSuccess
}

// Message returns the error message, empty unless Error.
func (s State[T]) Message() string {
	return s.message
}

func (s State[T]) String() string {
	switch s.kind {
	case KindSuccess:
		return fmt.Sprintf("success(%v)", s.payload)
	case KindError:
		return fmt.Sprintf("error(%s)", s.message)
	default:
		return s.kind.String()
	}
}
