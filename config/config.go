// Package config loads the optional YAML settings file shared by the
// front-end tools. Command-line flags overlay whatever the file provides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings holds the tool knobs the front-ends share.
type Settings struct {
	// Rate is the scripted loop frequency in Hz.
	Rate float64 `yaml:"rate"`

	// Step is the per-keypress DAC step for the panel.
	Step uint16 `yaml:"step"`

	// ReadTimeoutMS bounds the post-send response read, in milliseconds.
	ReadTimeoutMS int `yaml:"read_timeout_ms"`

	// WriteTimeoutMS bounds a frame write, in milliseconds.
	WriteTimeoutMS int `yaml:"write_timeout_ms"`

	// KeepaliveIntervalS is the keepalive interval in seconds.
	KeepaliveIntervalS int `yaml:"keepalive_interval_s"`

	// ReadResponses enables the single post-send response read.
	ReadResponses bool `yaml:"read_responses"`

	// Verbose switches the tools to debug logging.
	Verbose bool `yaml:"verbose"`
}

// DefaultSettings returns the settings the tools use when no file exists.
func DefaultSettings() Settings {
	return Settings{
		Rate:               10,
		Step:               256,
		ReadTimeoutMS:      100,
		WriteTimeoutMS:     1000,
		KeepaliveIntervalS: 5,
		ReadResponses:      true,
	}
}

// Load reads path and overlays it on the defaults. A missing file is not an
// error; the defaults are returned as-is.
func Load(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}

		return s, fmt.Errorf("read settings %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("settings %s: %w", path, err)
	}

	return s, nil
}

// Validate rejects settings no tool can run with.
func (s Settings) Validate() error {
	if s.Rate <= 0 {
		return fmt.Errorf("rate must be positive, got %v", s.Rate)
	}

	if s.ReadTimeoutMS <= 0 {
		return fmt.Errorf("read_timeout_ms must be positive, got %d", s.ReadTimeoutMS)
	}

	if s.WriteTimeoutMS <= 0 {
		return fmt.Errorf("write_timeout_ms must be positive, got %d", s.WriteTimeoutMS)
	}

	if s.KeepaliveIntervalS <= 0 {
		return fmt.Errorf("keepalive_interval_s must be positive, got %d", s.KeepaliveIntervalS)
	}

	return nil
}

// ReadTimeout returns ReadTimeoutMS as a duration.
func (s Settings) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutMS) * time.Millisecond
}

// WriteTimeout returns WriteTimeoutMS as a duration.
func (s Settings) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutMS) * time.Millisecond
}

// KeepaliveInterval returns KeepaliveIntervalS as a duration.
func (s Settings) KeepaliveInterval() time.Duration {
	return time.Duration(s.KeepaliveIntervalS) * time.Second
}
