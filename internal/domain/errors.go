package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an Error for transport mapping
type Kind int

const (
	KindInternal          Kind = iota // Unexpected failure
	KindValidation                    // Bad or missing input, nothing was mutated
	KindNotFound                      // Unknown id
	KindUpstream                      // Payment gateway unreachable or non-2xx
	KindSignatureMismatch             // Payment signature rejected
	KindConflict                      // Uniqueness violation
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream"
	case KindSignatureMismatch:
		return "signature_mismatch"
	case KindConflict:
		return "conflict"
	}
	return "internal"
}

// Error is the error type returned by the engine, the review aggregate and the stores
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports bad input
func Validation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NotFound reports an unknown entity
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Upstream reports a payment gateway failure
func Upstream(msg string, err error) error {
	return &Error{Kind: KindUpstream, Message: msg, Err: err}
}

// SignatureMismatch reports a rejected payment signature
func SignatureMismatch(msg string) error {
	return &Error{Kind: KindSignatureMismatch, Message: msg}
}

// Conflict reports a uniqueness violation
func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

// KindOf returns the Kind of the first *Error in err's chain, KindInternal otherwise
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message for err
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
