package transport

import "time"

// Config holds the transport timing parameters. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	// ReadTimeout bounds a single ReadData call.
	ReadTimeout time.Duration

	// WriteTimeout bounds a single WriteData call. Serial writes complete
	// against the OS buffer and are not separately bounded.
	WriteTimeout time.Duration

	// ConnectTimeout bounds TCP connection establishment.
	ConnectTimeout time.Duration

	// Baud is the serial line rate. The CSv1 hardware runs 115200 8N1.
	Baud int
}

// DefaultConfig returns the timing defaults shared by all front-end tools.
func DefaultConfig() Config {
	return Config{
		ReadTimeout:    100 * time.Millisecond,
		WriteTimeout:   1000 * time.Millisecond,
		ConnectTimeout: 3 * time.Second,
		Baud:           115200,
	}
}
