package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/csv1ol8/csv1-go/csv1"
	"github.com/csv1ol8/csv1-go/logger"
	"github.com/csv1ol8/csv1-go/transport"
)

// fakeTransport scripts the transport behavior for one session.
// writeN is the byte count to report written (-1 means the full buffer);
// response holds the bytes the next read returns (nil means timeout).
type fakeTransport struct {
	written  [][]byte
	writeN   int
	writeErr error
	response []byte
	readErr  error
	closed   int
}

var _ transport.Transport = (*fakeTransport)(nil)

func newFakeTransport() *fakeTransport {
	return &fakeTransport{writeN: -1}
}

func (f *fakeTransport) WriteData(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}

	buf := make([]byte, len(p))
	copy(buf, p)
	f.written = append(f.written, buf)

	if f.writeN >= 0 {
		return f.writeN, nil
	}

	return len(p), nil
}

func (f *fakeTransport) ReadData(p []byte) (int, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}

	n := copy(p, f.response)

	return n, nil
}

func (f *fakeTransport) Kind() transport.Kind { return transport.KindTCP }

func (f *fakeTransport) Close() error {
	f.closed++
	return nil
}

func newTestConfig(t *testing.T, opts ...Option) *Config {
	t.Helper()

	opts = append([]Option{WithLogger(logger.NewNop())}, opts...)
	cfg, err := NewConfig(opts...)
	require.NoError(t, err)

	return cfg
}

func TestSessionSend(t *testing.T) {
	require := require.New(t)

	tr := newFakeTransport()
	tr.response = []byte{0x00, 0x00}

	s := New(tr, newTestConfig(t))

	cmd, err := csv1.NewDirectDacWrite(2, 1024)
	require.NoError(err)

	res, err := s.Send(cmd)
	require.NoError(err)
	require.Equal(4, res.BytesWritten)
	require.False(res.WriteTimedOut)
	require.True(res.ResponseRead)
	require.Equal(csv1.ResponseBytes, res.Response.Kind)
	require.Equal([]uint16{csv1.StatusOK}, res.Response.StatusWords())
	require.Equal([][]byte{{2, 0x00, 0x04, 0x00}}, tr.written)

	require.Equal(uint64(1), s.Metrics().CommandSendCount.Load())
	require.Equal(uint64(1), s.Metrics().ResponseRecvCount.Load())
	require.Equal(uint64(4), s.Metrics().BytesSent.Load())
	require.Equal(uint64(2), s.Metrics().BytesReceived.Load())
}

func TestSessionSendReadTimeout(t *testing.T) {
	require := require.New(t)

	tr := newFakeTransport() // no response scripted: read returns 0, nil
	s := New(tr, newTestConfig(t))

	res, err := s.Send(csv1.KeepAlive{})
	require.NoError(err)
	require.True(res.ResponseRead)
	require.Equal(csv1.ResponseEmpty, res.Response.Kind)
	require.Equal(uint64(1), s.Metrics().ReadTimeoutCount.Load())
}

func TestSessionSendShortWrite(t *testing.T) {
	require := require.New(t)

	tr := newFakeTransport()
	tr.writeN = 2

	s := New(tr, newTestConfig(t))

	res, err := s.Send(csv1.KeepAlive{})
	require.NoError(err)
	require.True(res.WriteTimedOut)
	require.Equal(2, res.BytesWritten)
	require.Equal(uint64(1), s.Metrics().WriteTimeoutCount.Load())
}

func TestSessionSendWriteFailure(t *testing.T) {
	require := require.New(t)

	tr := newFakeTransport()
	tr.writeErr = errors.New("broken pipe")

	s := New(tr, newTestConfig(t))

	_, err := s.Send(csv1.KeepAlive{})
	require.ErrorIs(err, ErrWriteFailed)
	require.Equal(uint64(1), s.Metrics().WriteFailCount.Load())
}

func TestSessionSendNoResponses(t *testing.T) {
	require := require.New(t)

	tr := newFakeTransport()
	s := New(tr, newTestConfig(t, WithReadResponses(false)))

	res, err := s.Send(csv1.LdacUpdate{})
	require.NoError(err)
	require.False(res.ResponseRead)
	require.Equal(uint64(0), s.Metrics().ReadTimeoutCount.Load())
}

func TestSessionTickKeepaliveWindows(t *testing.T) {
	require := require.New(t)

	tr := newFakeTransport()
	s := New(tr, newTestConfig(t, WithKeepaliveInterval(5*time.Second), WithReadResponses(false)))

	base := time.Now()
	s.lastKeepAlive = base

	// many ticks inside the first window emit nothing
	for i := 1; i <= 4; i++ {
		sent, err := s.Tick(base.Add(time.Duration(i) * time.Second))
		require.NoError(err)
		require.False(sent)
	}
	require.Empty(tr.written)

	// crossing the window boundary emits exactly one keepalive
	sent, err := s.Tick(base.Add(5 * time.Second))
	require.NoError(err)
	require.True(sent)
	require.Len(tr.written, 1)
	require.Equal([]byte{0xFD, 0x00, 0x00, 0x00}, tr.written[0])

	// the clock reset: ticks within the next window stay silent
	sent, err = s.Tick(base.Add(9 * time.Second))
	require.NoError(err)
	require.False(sent)
	require.Len(tr.written, 1)

	sent, err = s.Tick(base.Add(10 * time.Second))
	require.NoError(err)
	require.True(sent)
	require.Len(tr.written, 2)

	require.Equal(uint64(2), s.Metrics().KeepAliveSendCount.Load())
}

func TestSessionTickWriteFailureKeepsClock(t *testing.T) {
	require := require.New(t)

	tr := newFakeTransport()
	s := New(tr, newTestConfig(t, WithKeepaliveInterval(time.Second), WithReadResponses(false)))

	base := time.Now()
	s.lastKeepAlive = base

	tr.writeErr = errors.New("device removed")
	_, err := s.Tick(base.Add(2 * time.Second))
	require.ErrorIs(err, ErrWriteFailed)

	// the clock was not reset; the next tick after recovery sends again
	tr.writeErr = nil
	sent, err := s.Tick(base.Add(3 * time.Second))
	require.NoError(err)
	require.True(sent)
}

func TestSessionClose(t *testing.T) {
	require := require.New(t)

	tr := newFakeTransport()
	s := New(tr, nil)

	require.NoError(s.Close())
	require.Equal(1, tr.closed)
}

func TestConfigOptions(t *testing.T) {
	require := require.New(t)

	cfg, err := NewConfig(
		WithKeepaliveInterval(2*time.Second),
		WithReadResponses(false),
		WithResponseBufferSize(64),
	)
	require.NoError(err)
	require.Equal(2*time.Second, cfg.KeepaliveInterval())
	require.False(cfg.ReadResponses())

	_, err = NewConfig(WithKeepaliveInterval(0))
	require.Error(err)

	_, err = NewConfig(WithResponseBufferSize(2))
	require.Error(err)

	_, err = NewConfig(WithResponseBufferSize(8192))
	require.Error(err)
}
