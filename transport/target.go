package transport

import (
	"fmt"
	"net"
	"regexp"
	"strconv"
)

// TargetKind tags the resolved form of a target string.
type TargetKind int

const (
	// TargetSerial is an opaque OS-specific serial device path.
	TargetSerial TargetKind = iota
	// TargetTCPv4 is a dotted-quad IPv4 address with a port.
	TargetTCPv4
	// TargetTCPv6 is a bracketed IPv6 literal with a port.
	TargetTCPv6
)

func (k TargetKind) String() string {
	switch k {
	case TargetSerial:
		return "serial"
	case TargetTCPv4:
		return "tcp4"
	case TargetTCPv6:
		return "tcp6"
	default:
		return "unknown"
	}
}

// Target is the resolved, immutable form of a user-supplied target string.
// Device is set for serial targets; Host and Port for TCP targets.
type Target struct {
	Kind   TargetKind
	Device string
	Host   string
	Port   int
}

// Address returns the host:port dial string for TCP targets.
func (t Target) Address() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

func (t Target) String() string {
	if t.Kind == TargetSerial {
		return t.Device
	}

	return t.Address()
}

var (
	// Bracketed-literal and dotted-quad shapes. The port part is permissive
	// here so that a TCP-shaped string with garbage after the colon is
	// reported as invalid instead of being mistaken for a device path.
	tcp6TargetRe = regexp.MustCompile(`^\[([^\]]+)\]:(.+)$`)
	tcp4TargetRe = regexp.MustCompile(`^(\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}):(.+)$`)
)

// ResolveTarget parses a target string into a Target, checking the shapes in
// order:
//
//  1. "[ipv6]:port" resolves as a TCP IPv6 target.
//  2. "ipv4:port" (decimal dotted quad) resolves as a TCP IPv4 target.
//  3. Anything else is an opaque serial device path, covering /dev/ttyXXX
//     and COMn forms.
//
// Only TCP-shaped strings can fail: an unparsable port or a bracketed
// non-IPv6 literal returns ErrInvalidTarget. Whether a serial path actually
// exists is not checked here; that surfaces when dialing.
func ResolveTarget(s string) (Target, error) {
	if s == "" {
		return Target{}, fmt.Errorf("empty target string: %w", ErrInvalidTarget)
	}

	if m := tcp6TargetRe.FindStringSubmatch(s); m != nil {
		ip := net.ParseIP(m[1])
		if ip == nil || ip.To4() != nil {
			return Target{}, fmt.Errorf("bracketed target %q is not an IPv6 literal: %w", s, ErrInvalidTarget)
		}

		port, err := parsePort(m[2])
		if err != nil {
			return Target{}, fmt.Errorf("target %q: %w", s, err)
		}

		return Target{Kind: TargetTCPv6, Host: m[1], Port: port}, nil
	}

	if m := tcp4TargetRe.FindStringSubmatch(s); m != nil {
		// An out-of-range octet means the string is not a dotted quad at
		// all; it falls through as a device path candidate.
		if net.ParseIP(m[1]) != nil {
			port, err := parsePort(m[2])
			if err != nil {
				return Target{}, fmt.Errorf("target %q: %w", s, err)
			}

			return Target{Kind: TargetTCPv4, Host: m[1], Port: port}, nil
		}
	}

	return Target{Kind: TargetSerial, Device: s}, nil
}

func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("port %q out of range [1, 65535]: %w", s, ErrInvalidTarget)
	}

	return port, nil
}
