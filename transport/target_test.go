package transport

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Target
	}{
		{"ipv4", "192.168.1.100:8080", Target{Kind: TargetTCPv4, Host: "192.168.1.100", Port: 8080}},
		{"ipv4 loopback", "127.0.0.1:2012", Target{Kind: TargetTCPv4, Host: "127.0.0.1", Port: 2012}},
		{"ipv6 loopback", "[::1]:8080", Target{Kind: TargetTCPv6, Host: "::1", Port: 8080}},
		{"ipv6 full", "[fe80::1]:2012", Target{Kind: TargetTCPv6, Host: "fe80::1", Port: 2012}},
		{"unix device path", "/dev/ttyACM0", Target{Kind: TargetSerial, Device: "/dev/ttyACM0"}},
		{"macos device path", "/dev/cu.usbmodemcsv1_00011", Target{Kind: TargetSerial, Device: "/dev/cu.usbmodemcsv1_00011"}},
		{"windows com port", "COM5", Target{Kind: TargetSerial, Device: "COM5"}},
		{"hostname with port is a device path", "example.com:8080", Target{Kind: TargetSerial, Device: "example.com:8080"}},
		{"octet out of range is a device path", "999.1.1.1:80", Target{Kind: TargetSerial, Device: "999.1.1.1:80"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveTarget(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTargetInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"ipv4 with non-numeric port", "192.168.1.100:http"},
		{"ipv4 with port out of range", "192.168.1.100:70000"},
		{"ipv4 with zero port", "192.168.1.100:0"},
		{"ipv6 with bad port", "[::1]:notaport"},
		{"bracketed non-ipv6 literal", "[not-an-address]:8080"},
		{"bracketed ipv4 literal", "[192.168.1.1]:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveTarget(tt.in)
			require.ErrorIs(t, err, ErrInvalidTarget)
		})
	}
}

func TestTargetAddress(t *testing.T) {
	require := require.New(t)

	v4, err := ResolveTarget("10.0.0.2:2012")
	require.NoError(err)
	require.Equal("10.0.0.2:2012", v4.Address())
	require.Equal("10.0.0.2:2012", v4.String())

	v6, err := ResolveTarget("[::1]:2012")
	require.NoError(err)
	require.Equal("[::1]:2012", v6.Address())

	dev, err := ResolveTarget("/dev/ttyUSB0")
	require.NoError(err)
	require.Equal("/dev/ttyUSB0", dev.String())
}
