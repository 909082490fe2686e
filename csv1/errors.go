package csv1

import "errors"

var (
	// ErrInvalidChannel indicates that a DAC channel outside [0, 7] was provided.
	ErrInvalidChannel = errors.New("invalid DAC channel, should be in range of [0, 7]")

	// ErrInvalidTable indicates that a table number outside [0, 3] was provided.
	ErrInvalidTable = errors.New("invalid table number, should be in range of [0, 3]")

	// ErrInvalidPin indicates that a GPIO pin outside [0, 7] was provided.
	ErrInvalidPin = errors.New("invalid GPIO pin, should be in range of [0, 7]")
)

var (
	// ErrInvalidFrame indicates that a 4-byte frame is not the encoding of any
	// constructible command, e.g. a non-zero value field on a command whose
	// value bytes must be zero.
	ErrInvalidFrame = errors.New("frame is not a valid command encoding")

	// ErrUnknownOpcode indicates that the first frame byte does not select any
	// documented command.
	ErrUnknownOpcode = errors.New("unknown command opcode")
)
