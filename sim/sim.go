package sim

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/csv1ol8/csv1-go/csv1"
	"github.com/csv1ol8/csv1-go/logger"
)

// Option configures a Simulator.
type Option func(*Simulator)

// WithLogger sets the logger used by the simulator.
func WithLogger(l logger.Logger) Option {
	return func(s *Simulator) {
		s.logger = l
	}
}

// WithGpioAutoDisable models the hardware interlock watchdog: when no frame
// arrives for the given window, GPIO pin 0 is forced off. Clients keep the
// output enabled by sending keepalives.
func WithGpioAutoDisable(window time.Duration) Option {
	return func(s *Simulator) {
		s.autoDisable = window
	}
}

// Simulator is a TCP device simulator. All connected clients act on one
// shared device model.
type Simulator struct {
	logger      logger.Logger
	dev         *device
	autoDisable time.Duration

	listener net.Listener
	clients  *xsync.MapOf[string, net.Conn]
	wg       sync.WaitGroup
	done     chan struct{}

	// lastTraffic is the unix-nano time of the last received frame; the
	// auto-disable watcher compares against it.
	lastTraffic atomic.Int64
}

// New creates a simulator that will listen on addr, for example
// "127.0.0.1:0" to let the OS pick a port.
func New(addr string, opts ...Option) (*Simulator, error) {
	s := &Simulator{
		logger:  logger.GetLogger(),
		dev:     newDevice(),
		clients: xsync.NewMapOf[string, net.Conn](),
		done:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	s.listener = listener
	s.logger = s.logger.With("addr", listener.Addr().String())

	return s, nil
}

// Addr returns the bound listen address.
func (s *Simulator) Addr() string {
	return s.listener.Addr().String()
}

// Start begins accepting clients. It returns immediately; Close shuts the
// simulator down.
func (s *Simulator) Start() {
	s.lastTraffic.Store(time.Now().UnixNano())

	s.wg.Add(1)
	go s.acceptLoop()

	if s.autoDisable > 0 {
		s.wg.Add(1)
		go s.watchTraffic()
	}

	s.logger.Info("simulator started")
}

// Close stops accepting, disconnects all clients and waits for the handler
// goroutines to drain.
func (s *Simulator) Close() error {
	select {
	case <-s.done:
		return nil
	default:
	}

	close(s.done)
	err := s.listener.Close()

	s.clients.Range(func(id string, conn net.Conn) bool {
		_ = conn.Close()
		return true
	})

	s.wg.Wait()
	s.logger.Info("simulator stopped")

	return err
}

func (s *Simulator) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
			}

			if errors.Is(err, net.ErrClosed) {
				return
			}

			s.logger.Error("accept failed", "error", err)

			return
		}

		id := uuid.NewString()
		s.clients.Store(id, conn)

		// Close may have swept the registry between Accept and Store; a conn
		// stored after that sweep must not outlive the shutdown
		select {
		case <-s.done:
			_ = conn.Close()
			s.clients.Delete(id)

			return
		default:
		}

		s.wg.Add(1)
		go s.handleClient(id, conn)
	}
}

// handleClient reads the client's byte stream, reassembles 4-byte frames and
// acknowledges each with one status word. Stream boundaries are not message
// boundaries, so a partial frame is kept until the rest arrives.
func (s *Simulator) handleClient(id string, conn net.Conn) {
	defer s.wg.Done()
	defer s.clients.Delete(id)
	defer conn.Close()

	log := s.logger.With("client", id, "remote", conn.RemoteAddr().String())
	log.Info("client connected")

	var (
		pending []byte
		buf     = make([]byte, 256)
	)

	for {
		n, err := conn.Read(buf)
		if err != nil {
			log.Info("client disconnected", "error", err)
			return
		}

		s.lastTraffic.Store(time.Now().UnixNano())
		pending = append(pending, buf[:n]...)

		for len(pending) >= csv1.FrameSize {
			var frame [csv1.FrameSize]byte
			copy(frame[:], pending[:csv1.FrameSize])
			pending = pending[csv1.FrameSize:]

			status := s.execute(log, frame)

			var reply [2]byte
			binary.BigEndian.PutUint16(reply[:], status)

			if _, err := conn.Write(reply[:]); err != nil {
				log.Warn("status write failed", "error", err)
				return
			}
		}
	}
}

func (s *Simulator) execute(log logger.Logger, frame [csv1.FrameSize]byte) uint16 {
	cmd, err := csv1.Decode(frame)
	if err != nil {
		log.Warn("rejecting frame", "frame", fmt.Sprintf("% x", frame), "error", err)
		return csv1.StatusError
	}

	log.Debug("frame", "command", cmd.String())

	return s.dev.apply(cmd)
}

// watchTraffic enforces the auto-disable window on GPIO pin 0.
func (s *Simulator) watchTraffic() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.autoDisable / 4)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			last := time.Unix(0, s.lastTraffic.Load())
			if now.Sub(last) >= s.autoDisable && s.dev.snapshotGpio(0) {
				s.dev.clearGpio(0)
				s.logger.Warn("idle window elapsed, GPIO 0 forced off")
			}
		}
	}
}

// Dac returns the current value of DAC channel ch.
func (s *Simulator) Dac(ch int) uint16 { return s.dev.snapshotDac(ch) }

// Gpio returns the state of GPIO pin.
func (s *Simulator) Gpio(pin int) bool { return s.dev.snapshotGpio(pin) }

// TableEntry returns one lookup table entry.
func (s *Simulator) TableEntry(table, index int) uint16 {
	return s.dev.snapshotTableEntry(table, index)
}

// Offset returns the active table offset.
func (s *Simulator) Offset() uint8 { return s.dev.snapshotOffset() }

// Register returns one general register value.
func (s *Simulator) Register(reg int) uint16 { return s.dev.snapshotRegister(reg) }

// Binding returns the table bound to DAC channel ch, or -1 when the channel
// is driven by direct writes.
func (s *Simulator) Binding(ch int) int { return s.dev.snapshotBinding(ch) }

// ClientCount returns the number of connected clients.
func (s *Simulator) ClientCount() int { return s.clients.Size() }
