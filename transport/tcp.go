package transport

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"
)

// TCPTransport drives one persistent connected stream per session with
// Nagle batching disabled for low latency. Read and write deadlines are
// armed per call from Config.
type TCPTransport struct {
	conn         net.Conn
	readTimeout  time.Duration
	writeTimeout time.Duration
	closeOnce    sync.Once
	closeErr     error
}

var _ Transport = (*TCPTransport)(nil)

func dialTCP(target Target, cfg Config) (*TCPTransport, error) {
	conn, err := net.DialTimeout("tcp", target.Address(), cfg.ConnectTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %w", ErrConnection, target.Address(), err)
	}

	if tcpConn, ok := conn.(*net.TCPConn); ok {
		if err := tcpConn.SetNoDelay(true); err != nil {
			conn.Close()
			return nil, fmt.Errorf("%w: set nodelay on %s: %w", ErrConnection, target.Address(), err)
		}
	}

	return NewTCPTransport(conn, cfg), nil
}

// NewTCPTransport wraps an already connected stream. Dial is the usual
// entry point; this constructor exists for tests and for servers that
// accept the connection themselves.
func NewTCPTransport(conn net.Conn, cfg Config) *TCPTransport {
	return &TCPTransport{
		conn:         conn,
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
	}
}

// WriteData writes p, blocking up to the configured write timeout.
// A deadline that passes mid-write returns the short count with a nil
// error; any other failure is a genuine channel error.
func (t *TCPTransport) WriteData(p []byte) (int, error) {
	if err := t.conn.SetWriteDeadline(time.Now().Add(t.writeTimeout)); err != nil {
		return 0, err
	}

	n, err := t.conn.Write(p)
	if err != nil && isTimeout(err) {
		return n, nil
	}

	return n, err
}

// ReadData reads into p, blocking up to the configured read timeout.
// A timeout with no data returns (0, nil).
func (t *TCPTransport) ReadData(p []byte) (int, error) {
	if err := t.conn.SetReadDeadline(time.Now().Add(t.readTimeout)); err != nil {
		return 0, err
	}

	n, err := t.conn.Read(p)
	if err != nil && isTimeout(err) {
		return n, nil
	}

	return n, err
}

func (t *TCPTransport) Kind() Kind { return KindTCP }

// Close releases the stream exactly once.
func (t *TCPTransport) Close() error {
	t.closeOnce.Do(func() {
		t.closeErr = t.conn.Close()
	})

	return t.closeErr
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
