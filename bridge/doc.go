// Package bridge implements the serial-to-TCP bridge that exposes a device
// on a local serial port to remote TCP clients. Each accepted client gets its
// own serial channel; bytes received from the client are padded to whole
// 4-byte frames, written to the device, and whatever the device echoes within
// the read timeout is relayed back.
package bridge
