package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a tag or query is empty.
	ErrInvalidInput = errors.New("tag and query must both be non-empty")

	// ErrNotFound is returned when deleting a tag that is not saved.
	ErrNotFound = errors.New("saved search not found")

	// ErrDuplicateTag is returned in strict mode when a new tag differs from
	// an existing one only by letter case.
	ErrDuplicateTag = errors.New("a saved search with this tag already exists")
)

// InputError names the empty field. It matches ErrInvalidInput with errors.Is.
type InputError struct {
	Field string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s must not be empty", e.Field)
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NotFoundError carries the tag that was looked up.
type NotFoundError struct {
	Tag string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("saved search %q not found", e.Tag)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DuplicateTagError carries the new tag and the existing case variant.
type DuplicateTagError struct {
	Tag      string
	Existing string
}

func (e *DuplicateTagError) Error() string {
	return fmt.Sprintf("tag %q conflicts with existing tag %q", e.Tag, e.Existing)
}

func (e *DuplicateTagError) Is(target error) bool {
	return target == ErrDuplicateTag
}

// PersistenceError wraps a failure of the durable store.
// Op is one of "load", "put" or "remove"; Tag is empty for load.
type PersistenceError struct {
	Op  string
	Tag string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s %q: %v", e.Op, e.Tag, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistenceError reports whether err is or wraps a *PersistenceError.
func IsPersistenceError(err error) bool {
	var perr *PersistenceError
	return errors.As(err, &perr)
}
