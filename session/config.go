package session

import (
	"errors"
	"time"

	"github.com/csv1ol8/csv1-go/logger"
)

// Config holds the session parameters. Create one with NewConfig and the
// WithXXX options.
type Config struct {
	// keepaliveInterval is the idle window after which Tick emits a
	// KeepAlive command. The hardware disables its GPIO enable line when no
	// traffic arrives within its own timeout window, so this must stay
	// below the device-side window.
	keepaliveInterval time.Duration

	// readResponses selects whether every send is followed by one read
	// bounded by the transport's read timeout.
	readResponses bool

	// responseBufSize is the size of the scratch buffer a response read
	// fills.
	responseBufSize int

	logger logger.Logger
}

// NewConfig creates a session configuration with defaults (5 s keepalive
// interval, response reading enabled, 256-byte response buffer) and applies
// the given options.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		keepaliveInterval: 5 * time.Second,
		readResponses:     true,
		responseBufSize:   256,
		logger:            logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

// KeepaliveInterval returns the configured keepalive interval.
func (cfg *Config) KeepaliveInterval() time.Duration {
	return cfg.keepaliveInterval
}

// ReadResponses reports whether sends are followed by a response read.
func (cfg *Config) ReadResponses() bool {
	return cfg.readResponses
}

// Option represents a functional option for configuring a Config.
type Option interface {
	apply(*Config) error
}

type optFunc struct {
	name      string
	applyFunc func(*Config) error
}

func (o *optFunc) apply(cfg *Config) error { return o.applyFunc(cfg) }

func newOptFunc(name string, f func(*Config) error) *optFunc {
	return &optFunc{name: name, applyFunc: f}
}

// WithKeepaliveInterval sets the interval between automatic keepalive
// commands. The interval must be positive.
//
// The default value is 5 seconds.
func WithKeepaliveInterval(interval time.Duration) Option {
	return newOptFunc("WithKeepaliveInterval", func(cfg *Config) error {
		if cfg == nil {
			return ErrConfigNil
		}

		if interval <= 0 {
			return errors.New("keepalive interval must be positive")
		}

		cfg.keepaliveInterval = interval

		return nil
	})
}

// WithReadResponses enables or disables the one read that follows every
// send. Disabling it gives a fire-and-forget session for devices that do
// not acknowledge commands.
//
// The default value is true.
func WithReadResponses(val bool) Option {
	return newOptFunc("WithReadResponses", func(cfg *Config) error {
		if cfg == nil {
			return ErrConfigNil
		}

		cfg.readResponses = val

		return nil
	})
}

// WithResponseBufferSize sets the size of the response read buffer.
// The size must be within the range of 4 to 4096.
//
// The default value is 256.
func WithResponseBufferSize(size int) Option {
	return newOptFunc("WithResponseBufferSize", func(cfg *Config) error {
		if cfg == nil {
			return ErrConfigNil
		}

		if size < 4 || size > 4096 {
			return errors.New("response buffer size out of range [4, 4096]")
		}

		cfg.responseBufSize = size

		return nil
	})
}

// WithLogger sets the logger for the session.
//
// The default logger is the global logger instance.
func WithLogger(l logger.Logger) Option {
	return newOptFunc("WithLogger", func(cfg *Config) error {
		if cfg == nil {
			return ErrConfigNil
		}

		cfg.logger = l

		return nil
	})
}
