package session

import (
	"fmt"
	"time"

	"github.com/csv1ol8/csv1-go/csv1"
	"github.com/csv1ol8/csv1-go/logger"
	"github.com/csv1ol8/csv1-go/transport"
)

// SendResult reports what one Send observed.
type SendResult struct {
	// BytesWritten is the number of frame bytes the transport accepted.
	BytesWritten int

	// WriteTimedOut is true when the write deadline passed before the whole
	// frame was written. This is a soft condition, not an error.
	WriteTimedOut bool

	// ResponseRead is true when response reading is enabled and a read was
	// attempted; Response then holds the classified result.
	ResponseRead bool

	// Response is the classified view of whatever bytes the device echoed
	// within the read timeout.
	Response csv1.Response

	// Elapsed is the wall time the send (and response read) took.
	Elapsed time.Duration
}

// Session owns one transport and a keepalive clock.
type Session struct {
	tr      transport.Transport
	cfg     *Config
	logger  logger.Logger
	metrics Metrics

	lastKeepAlive time.Time
	readBuf       []byte
}

// New creates a session over an already connected transport. A nil cfg uses
// the defaults of NewConfig. The keepalive clock starts at construction.
func New(tr transport.Transport, cfg *Config) *Session {
	if cfg == nil {
		cfg, _ = NewConfig()
	}

	return &Session{
		tr:            tr,
		cfg:           cfg,
		logger:        cfg.logger.With("transport", tr.Kind().String()),
		lastKeepAlive: time.Now(),
		readBuf:       make([]byte, cfg.responseBufSize),
	}
}

// Send encodes cmd, writes the frame, and, when response reading is enabled,
// performs one read bounded by the transport's read timeout.
//
// Timeouts on either side are soft: they are recorded in the result and the
// metrics, and Send still returns nil. A write error is connection loss and
// returns ErrWriteFailed wrapping the cause; the session does not retry.
func (s *Session) Send(cmd csv1.Command) (SendResult, error) {
	frame := cmd.Encode()
	begin := time.Now()

	n, err := s.tr.WriteData(frame[:])
	if err != nil {
		s.metrics.incWriteFailCount()
		return SendResult{BytesWritten: n, Elapsed: time.Since(begin)},
			fmt.Errorf("%w: %s: %w", ErrWriteFailed, cmd, err)
	}

	res := SendResult{BytesWritten: n}
	s.metrics.incCommandSendCount()
	s.metrics.addBytesSent(n)

	if n < len(frame) {
		res.WriteTimedOut = true
		s.metrics.incWriteTimeoutCount()
		s.logger.Warn("short write", "command", cmd.String(), "written", n)
	} else {
		s.logger.Debug("command sent", "command", cmd.String(), "bytes", n)
	}

	if s.cfg.readResponses {
		res.Response = s.readResponse(cmd)
		res.ResponseRead = true
	}

	res.Elapsed = time.Since(begin)

	return res, nil
}

// readResponse performs the single post-send read. Read errors are soft by
// design: only write failures terminate a session.
func (s *Session) readResponse(cmd csv1.Command) csv1.Response {
	n, err := s.tr.ReadData(s.readBuf)
	if err != nil {
		s.metrics.incReadTimeoutCount()
		s.logger.Warn("response read error", "command", cmd.String(), "error", err)

		return csv1.Response{Kind: csv1.ResponseEmpty}
	}

	if n == 0 {
		s.metrics.incReadTimeoutCount()
		s.logger.Debug("no response within read timeout", "command", cmd.String())

		return csv1.Response{Kind: csv1.ResponseEmpty}
	}

	s.metrics.incResponseRecvCount()
	s.metrics.addBytesReceived(n)

	// the scratch buffer is reused on the next read; hand out a copy
	payload := make([]byte, n)
	copy(payload, s.readBuf[:n])

	rsp := csv1.ClassifyResponse(payload)
	s.logger.Debug("response", "command", cmd.String(), "kind", rsp.Kind.String(), "bytes", n)

	return rsp
}

// Tick drives the keepalive clock and must be called on every loop
// iteration. When the keepalive interval has elapsed since the last
// successful keepalive it sends one KeepAlive command and resets the clock,
// returning true. Multiple ticks within one interval window emit exactly one
// keepalive.
func (s *Session) Tick(now time.Time) (bool, error) {
	if now.Sub(s.lastKeepAlive) < s.cfg.keepaliveInterval {
		return false, nil
	}

	if _, err := s.Send(csv1.KeepAlive{}); err != nil {
		return false, err
	}

	s.lastKeepAlive = now
	s.metrics.incKeepAliveSendCount()
	s.logger.Debug("keepalive sent")

	return true, nil
}

// Metrics returns the session counters.
func (s *Session) Metrics() *Metrics {
	return &s.metrics
}

// Transport returns the owned transport.
func (s *Session) Transport() transport.Transport {
	return s.tr
}

// Close closes the owned transport. Closing an already closed session is
// safe.
func (s *Session) Close() error {
	return s.tr.Close()
}
