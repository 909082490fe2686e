package bridge

import (
	"errors"
	"net"
	"sync"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/csv1ol8/csv1-go/csv1"
	"github.com/csv1ol8/csv1-go/logger"
	"github.com/csv1ol8/csv1-go/transport"
)

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the logger used by the bridge.
func WithLogger(l logger.Logger) Option {
	return func(b *Bridge) {
		b.logger = l
	}
}

// WithBackend replaces the serial opener with a custom transport dialer.
// Each client connection gets one backend channel of its own.
func WithBackend(dial func() (transport.Transport, error)) Option {
	return func(b *Bridge) {
		b.dialBackend = dial
	}
}

// Bridge forwards TCP client traffic to a serial device.
type Bridge struct {
	logger      logger.Logger
	dialBackend func() (transport.Transport, error)

	clients *xsync.MapOf[string, net.Conn]
	wg      sync.WaitGroup
	done    chan struct{}

	mu       sync.Mutex
	listener net.Listener
}

// New creates a bridge for the device on serialPath. The serial channel is
// opened per client, when the client connects, so a device that is unplugged
// at startup only fails the clients that arrive while it is missing.
func New(serialPath string, cfg transport.Config, opts ...Option) *Bridge {
	b := &Bridge{
		logger: logger.GetLogger().With("device", serialPath),
		dialBackend: func() (transport.Transport, error) {
			return transport.Dial(transport.Target{Kind: transport.TargetSerial, Device: serialPath}, cfg)
		},
		clients: xsync.NewMapOf[string, net.Conn](),
		done:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Serve accepts clients on l until Close is called. It blocks; run it in its
// own goroutine when the caller has other work.
func (b *Bridge) Serve(l net.Listener) error {
	b.mu.Lock()
	b.listener = l
	b.mu.Unlock()

	b.logger.Info("bridge listening", "addr", l.Addr().String())

	for {
		conn, err := l.Accept()
		if err != nil {
			select {
			case <-b.done:
				return nil
			default:
			}

			if errors.Is(err, net.ErrClosed) {
				return nil
			}

			return err
		}

		id := uuid.NewString()
		b.clients.Store(id, conn)

		// Close may have swept the registry between Accept and Store; a conn
		// stored after that sweep must not outlive the shutdown
		select {
		case <-b.done:
			_ = conn.Close()
			b.clients.Delete(id)

			return nil
		default:
		}

		b.wg.Add(1)
		go b.handleClient(id, conn)
	}
}

// Close stops the accept loop, disconnects all clients and waits for their
// handlers to drain.
func (b *Bridge) Close() error {
	select {
	case <-b.done:
		return nil
	default:
	}

	close(b.done)

	var err error
	b.mu.Lock()
	if b.listener != nil {
		err = b.listener.Close()
	}
	b.mu.Unlock()

	b.clients.Range(func(id string, conn net.Conn) bool {
		_ = conn.Close()
		return true
	})

	b.wg.Wait()

	return err
}

// handleClient pumps one client: TCP bytes go to the device padded to whole
// frames, and whatever the device answers within its read timeout goes back.
func (b *Bridge) handleClient(id string, conn net.Conn) {
	defer b.wg.Done()
	defer b.clients.Delete(id)
	defer conn.Close()

	log := b.logger.With("client", id, "remote", conn.RemoteAddr().String())

	backend, err := b.dialBackend()
	if err != nil {
		log.Error("device open failed", "error", err)
		return
	}
	defer backend.Close()

	log.Info("client connected")

	buf := make([]byte, 1024)
	rsp := make([]byte, 256)

	for {
		n, err := conn.Read(buf)
		if err != nil {
			log.Info("client disconnected", "error", err)
			return
		}

		frames := csv1.PadFrames(buf[:n])

		if _, err := backend.WriteData(frames); err != nil {
			log.Error("device write failed", "error", err)
			return
		}

		// one bounded read; no reply within the timeout means the device
		// had nothing to say about this batch
		rn, err := backend.ReadData(rsp)
		if err != nil {
			log.Error("device read failed", "error", err)
			return
		}

		if rn == 0 {
			continue
		}

		if _, err := conn.Write(rsp[:rn]); err != nil {
			log.Warn("client write failed", "error", err)
			return
		}
	}
}
