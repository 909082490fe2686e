// Package sim implements a TCP simulator for the CSv1-OL8 device. It speaks
// the documented command semantics and nothing more: each 4-byte frame is
// decoded, applied to a shared device model (DAC registers, lookup tables,
// bindings, GPIO bits, general registers) and acknowledged with one
// big-endian status word — 0x0000 for OK, 0xFFFF for a malformed or unknown
// frame.
//
// The simulator accepts any number of concurrent clients; they all act on
// the same device model, matching the real hardware's behavior behind the
// serial-to-TCP bridge. TCP stream boundaries are not message boundaries, so
// partial frames are buffered per client until they complete.
package sim
