// Package transport provides the byte-channel abstraction the CSv1 tools
// share: one Transport interface with exactly two variants, a serial port
// (115200 8N1) and a persistent low-latency TCP stream.
//
// Both variants follow the same timing contract: reads and writes block up
// to the configured timeout and report the number of bytes transferred. A
// deadline that passes is partial progress, not an error — callers receive
// (n, nil) with n possibly short. Only genuine channel failures (device
// removed, broken pipe) surface as errors.
//
// Targets are chosen from a single address string; see ResolveTarget.
package transport
