// Package apperr defines the application error taxonomy. Handlers map each
// kind to an HTTP status; messages on validation and not-found errors are
// safe to return to clients, everything else gets a generic message.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindStore
	KindNormalization
	KindArchive
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindStore:
		return "store"
	case KindNormalization:
		return "normalization"
	case KindArchive:
		return "archive"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Msg != "" {
			return fmt.Sprintf("%s: %v", e.Msg, e.Err)
		}
		return e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) error {
	return &Error{Kind: KindValidation, Msg: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

func Store(msg string, err error) error {
	return &Error{Kind: KindStore, Msg: msg, Err: err}
}

func Normalization(msg string, err error) error {
	return &Error{Kind: KindNormalization, Msg: msg, Err: err}
}

func Archive(msg string, err error) error {
	return &Error{Kind: KindArchive, Msg: msg, Err: err}
}

// KindOf returns the kind of the outermost *Error in err's chain, or
// KindUnknown when err carries no taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Message returns a client-safe message for err. Validation and not-found
// errors expose their own message; everything else is masked.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindValidation, KindNotFound:
			return e.Msg
		}
	}
	return "internal server error"
}
