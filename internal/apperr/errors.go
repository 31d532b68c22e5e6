// Package apperr defines the error kinds reported by the note store.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a store failure.
type Kind string

const (
	KindDirectoryUnavailable Kind = "directory_unavailable"
	KindFileReadFailed       Kind = "file_read_failed"
	KindFileWriteFailed      Kind = "file_write_failed"
	KindFileDeleteFailed     Kind = "file_delete_failed"
	KindAttributeReadFailed  Kind = "attribute_read_failed"
	KindInvalidFilename      Kind = "invalid_filename"
)

var (
	ErrDirectoryUnavailable = &Error{Kind: KindDirectoryUnavailable}
	ErrFileReadFailed       = &Error{Kind: KindFileReadFailed}
	ErrFileWriteFailed      = &Error{Kind: KindFileWriteFailed}
	ErrFileDeleteFailed     = &Error{Kind: KindFileDeleteFailed}
	ErrAttributeReadFailed  = &Error{Kind: KindAttributeReadFailed}
	ErrInvalidFilename      = &Error{Kind: KindInvalidFilename}
)

// Error is a store failure carrying its kind, the operation and the note it
// concerned.
type Error struct {
	Kind Kind
	Op   string
	Name string
	Err  error
}

// New builds an Error.
func New(kind Kind, op, name string, err error) *Error {
	return &Error{Kind: kind, Op: op, Name: name, Err: err}
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Name != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Name)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any Error of the same kind, so the sentinels above work with
// errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
