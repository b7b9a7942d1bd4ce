// Package common defines shared constants and sentinel errors used across
// server and client layers of cocreate. Callers should use errors.Is to
// match these values and KindOf to classify them.
package common

import (
	"errors"
	"fmt"
)

// Kind groups errors by how callers are expected to react to them.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindNotFound
	KindConflict
	KindStorage
	KindUpstream
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindStorage:
		return "storage"
	case KindUpstream:
		return "upstream"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Error is a sentinel error carrying a Kind. The message is safe to show to
// clients.
type Error struct {
	kind Kind
	msg  string
}

// NewError creates a new sentinel of the given kind.
func NewError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }

// Kind reports the error group.
func (e *Error) Kind() Kind { return e.kind }

// kinded is implemented by errors that classify themselves without being a
// *Error (for example validation field errors).
type kinded interface {
	Kind() Kind
}

// KindOf returns the kind of the first classified error in err's chain, or
// KindInternal when nothing in the chain is classified.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindInternal
}

// PublicMessage returns the text that may be shown to a client for err.
// Storage and unclassified failures never leak their causes.
func PublicMessage(err error) string {
	switch KindOf(err) {
	case KindStorage, KindInternal:
		return ErrorInternal.Error()
	}
	var k kinded
	if errors.As(err, &k) {
		if e, ok := k.(error); ok {
			return e.Error()
		}
	}
	return err.Error()
}

// StorageError wraps a driver failure so that it matches ErrStorage.
func StorageError(err error) error {
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

var (
	// Generic errors.
	ErrorInternal = NewError(KindInternal, "internal error")
	ErrBadRequest = NewError(KindValidation, "invalid request body")

	// Repository-level errors.
	ErrNotFound = NewError(KindNotFound, "not found")
	ErrStorage  = NewError(KindStorage, "db error")

	// Auth errors.
	ErrEmptyToken         = NewError(KindAuth, "authorization token required")
	ErrMalformedToken     = NewError(KindAuth, "invalid token")
	ErrExpiredToken       = NewError(KindAuth, "token expired")
	ErrUnknownUser        = NewError(KindAuth, "user not found for token")
	ErrInvalidCredentials = NewError(KindAuth, "invalid username or password")

	// Conflicts.
	ErrUsernameTaken      = NewError(KindConflict, "user already exists")
	ErrAlreadyFavorited   = NewError(KindConflict, "generation is already in favorites")
	ErrNotFavorited       = NewError(KindConflict, "generation is not in favorites")
	ErrGenerationNotOwned = NewError(KindConflict, "generation does not belong to this user")

	// Request-level validation outside of the credential rules.
	ErrEmptyPrompt             = NewError(KindValidation, "prompt cannot be empty")
	ErrEmptyText               = NewError(KindValidation, "text cannot be empty")
	ErrEmptyContentType        = NewError(KindValidation, "content type cannot be empty")
	ErrEmptyTargetAudience     = NewError(KindValidation, "target audience cannot be empty")
	ErrInvalidGenerationID     = NewError(KindValidation, "generation id required")
	ErrUnsupportedExportFormat = NewError(KindValidation, "unsupported export format")

	// Collaborators.
	ErrUpstreamGeneration = NewError(KindUpstream, "content generation failed")
	ErrExportUnavailable  = NewError(KindUnavailable, "export storage is not configured")
)
