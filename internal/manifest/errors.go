package manifest

import (
	"errors"
	"fmt"
)

// Kind classifies manifest errors.
type Kind string

const (
	// KindNotFound means the requested platform is not in the build metadata.
	KindNotFound Kind = "not_found"
	// KindInfrastructure means the build metadata could not be read or parsed.
	KindInfrastructure Kind = "infrastructure"
)

// ErrPlatformNotFound is matched by errors.Is for every KindNotFound error.
var ErrPlatformNotFound = errors.New("platform not found")

// Error is returned by the loader and the builder.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Message
	}
}

// Unwrap allows errors.Is / errors.As to see the cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports platform lookups as ErrPlatformNotFound.
func (e *Error) Is(target error) bool {
	return target == ErrPlatformNotFound && e.Kind == KindNotFound
}

func newPlatformNotFound(platform string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("platform %q not found", platform)}
}

func newInfrastructureError(msg string, err error) *Error {
	return &Error{Kind: KindInfrastructure, Message: msg, Err: err}
}

// KindOf returns the kind of err, or "" when err is not a manifest error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return ""
}

// IsNotFound reports whether err is a missing-platform error.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
