package metadata

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound matches any NotFoundError.
var ErrNotFound = errors.New("video not found")

// NotFoundError reports an unknown video ID.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Video not found with ID: %s", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StatusError is a non-successful HTTP response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Failed: %d %s", e.Code, e.Status)
}

// Message turns err into the single line shown in an Error state.
func Message(err error) string {
	if err == nil {
		return "Unknown error"
	}

	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return "Unknown error"
	}

	return msg
}
