package csv1

import (
	"encoding/binary"
	"fmt"
)

// StatusOK is the per-frame acknowledgment status word returned by devices
// that reply to commands. The core mandates no reply schema; this constant
// exists for consumers (and the simulator) that use the 2-byte status-word
// convention.
const StatusOK uint16 = 0x0000

// StatusError is the status word devices return for a malformed or unknown
// command frame.
const StatusError uint16 = 0xFFFF

// ResponseKind classifies the bytes observed within one read timeout window.
type ResponseKind int

const (
	// ResponseEmpty means zero bytes were read before the timeout.
	ResponseEmpty ResponseKind = iota
	// ResponsePartial means the byte count tears a 2-byte status word.
	ResponsePartial
	// ResponseBytes means a whole number of status words was read.
	ResponseBytes
)

func (k ResponseKind) String() string {
	switch k {
	case ResponseEmpty:
		return "empty"
	case ResponsePartial:
		return "partial"
	case ResponseBytes:
		return "bytes"
	default:
		return fmt.Sprintf("ResponseKind(%d)", int(k))
	}
}

// Response is a classified view over whatever bytes a device echoed back.
// The codec does not interpret the content beyond the classification.
type Response struct {
	Kind    ResponseKind
	Payload []byte
}

// ClassifyResponse classifies the raw bytes read after a command was sent.
// A nil or empty buffer is an empty response (read timeout with no data).
func ClassifyResponse(buf []byte) Response {
	switch {
	case len(buf) == 0:
		return Response{Kind: ResponseEmpty}
	case len(buf)%2 != 0:
		return Response{Kind: ResponsePartial, Payload: buf}
	default:
		return Response{Kind: ResponseBytes, Payload: buf}
	}
}

// Len returns the number of payload bytes observed.
func (r Response) Len() int { return len(r.Payload) }

// StatusWords decodes the payload as big-endian 16-bit status words.
// A trailing torn byte of a partial response is ignored.
func (r Response) StatusWords() []uint16 {
	n := len(r.Payload) / 2
	if n == 0 {
		return nil
	}

	words := make([]uint16, n)
	for i := range words {
		words[i] = binary.BigEndian.Uint16(r.Payload[i*2:])
	}

	return words
}

// PadFrames pads raw bytes with zeros up to the next 4-byte frame boundary.
// The bridge uses it when forwarding client bytes that may not arrive
// frame-aligned; a zero-padded tail decodes as a DAC 0 mode-0 no-op prefix
// the device tolerates, matching the behavior of the original tools.
func PadFrames(data []byte) []byte {
	rem := len(data) % FrameSize
	if rem == 0 {
		return data
	}

	padded := make([]byte, len(data)+FrameSize-rem)
	copy(padded, data)

	return padded
}
