package session

import "errors"

var (
	// ErrConfigNil indicates that a nil Config was provided to an option.
	ErrConfigNil = errors.New("session config is nil")

	// ErrWriteFailed indicates that the underlying channel reported an error
	// distinct from a timeout (broken pipe, device removed). The session
	// treats it as connection loss; reconnection policy belongs to the
	// caller.
	ErrWriteFailed = errors.New("write failed")
)
