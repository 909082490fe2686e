package transport

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/tarm/serial"
)

// SerialTransport drives a point-to-point serial device. The line settings
// are fixed at 8 data bits, 1 stop bit, no parity and no flow control; only
// the baud rate and read timeout come from Config.
type SerialTransport struct {
	port      io.ReadWriteCloser
	closeOnce sync.Once
	closeErr  error
}

var _ Transport = (*SerialTransport)(nil)

func openSerial(device string, cfg Config) (*SerialTransport, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open serial port %s: %w", ErrConnection, device, err)
	}

	return &SerialTransport{port: port}, nil
}

// WriteData writes p to the serial device. tarm/serial exposes no write
// deadline; a 4-byte frame at 115200 baud completes against the OS buffer
// immediately, so writes are effectively non-blocking.
func (t *SerialTransport) WriteData(p []byte) (int, error) {
	return t.port.Write(p)
}

// ReadData reads into p, blocking up to the configured read timeout.
// A timeout with no data returns (0, nil).
//
// tarm/serial implements the read timeout with VMIN=0/VTIME termios settings
// on POSIX platforms, so a deadline that passes quietly surfaces as a
// zero-byte read, which os.File maps to io.EOF. That EOF is the timeout
// signal, not an error; a lost device surfaces as EIO instead.
func (t *SerialTransport) ReadData(p []byte) (int, error) {
	n, err := t.port.Read(p)
	if err != nil && (errors.Is(err, io.EOF) || isTimeout(err)) {
		return n, nil
	}

	return n, err
}

func (t *SerialTransport) Kind() Kind { return KindSerial }

// Close releases the serial port exactly once.
func (t *SerialTransport) Close() error {
	t.closeOnce.Do(func() {
		t.closeErr = t.port.Close()
	})

	return t.closeErr
}
