package transport

import "errors"

var (
	// ErrInvalidTarget indicates that a target string is TCP-shaped but
	// malformed, e.g. the port is unparsable or the bracketed literal is not
	// an IPv6 address. Strings that are not TCP-shaped never produce this
	// error; they resolve as serial device paths.
	ErrInvalidTarget = errors.New("invalid target")

	// ErrConnection indicates that transport construction failed: the serial
	// device is absent or permission was denied, or the TCP connection was
	// refused or unreachable. The underlying cause is wrapped.
	ErrConnection = errors.New("connection failed")
)
