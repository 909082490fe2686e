// Package session implements the command/response loop shared by every CSv1
// front-end: it owns exactly one transport, encodes and writes command
// frames, optionally reads whatever the device echoes back within the read
// timeout, and keeps the device's idle watchdog fed with periodic keepalive
// commands.
//
// A Session is owned by a single goroutine. It never retries a failed write;
// a write error means connection loss and is surfaced to the caller, who
// decides whether to reconnect or terminate. Timeouts, by contrast, are soft
// conditions: they are counted, logged when verbose, and the loop continues.
package session
