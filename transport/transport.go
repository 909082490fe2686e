package transport

// Kind tags the two transport variants.
type Kind int

const (
	// KindSerial is a point-to-point serial device.
	KindSerial Kind = iota
	// KindTCP is a persistent connected TCP stream.
	KindTCP
)

func (k Kind) String() string {
	switch k {
	case KindSerial:
		return "serial"
	case KindTCP:
		return "tcp"
	default:
		return "unknown"
	}
}

// Transport is the byte channel a session writes command frames to and reads
// device responses from.
//
// WriteData and ReadData block up to the configured timeout and return the
// number of bytes transferred; a short count with a nil error signals a
// timeout, not a failure. A Transport carries no buffering of its own beyond
// the OS-level channel and supports at most one outstanding call at a time;
// it is owned by a single goroutine.
type Transport interface {
	// WriteData writes p and returns the number of bytes written within the
	// write timeout.
	WriteData(p []byte) (int, error)
	// ReadData reads into p and returns the number of bytes read within the
	// read timeout. Zero with a nil error means the deadline passed with no
	// data.
	ReadData(p []byte) (int, error)
	// Kind reports the transport variant.
	Kind() Kind
	// Close releases the underlying channel. It is safe to call more than
	// once; the resource is released exactly once.
	Close() error
}

// Dial constructs the transport variant an already resolved target selects.
// Construction failures wrap ErrConnection with the underlying cause.
func Dial(target Target, cfg Config) (Transport, error) {
	switch target.Kind {
	case TargetSerial:
		return openSerial(target.Device, cfg)
	default:
		return dialTCP(target, cfg)
	}
}
