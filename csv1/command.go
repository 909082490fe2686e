package csv1

import (
	"encoding/binary"
	"fmt"
)

// FrameSize is the fixed wire size of every encoded command.
const FrameSize = 4

// Opcodes occupying the first frame byte. DAC channels (0..7) and table
// writes (16..19) use the low byte range; the control commands count down
// from 0xFF.
const (
	OpcodeUseTable  byte = 0xFF
	OpcodeGpio      byte = 0xFE
	OpcodeKeepAlive byte = 0xFD
	OpcodeLdac      byte = 0xFC
	OpcodeRegister  byte = 0xFB

	// tableOpcodeBase is added to the table number in AttachTable and
	// TableEntryWrite frames.
	tableOpcodeBase byte = 16
)

// Command is a logical device command that encodes to exactly one 4-byte
// frame. Values are validated at construction; Encode is total over every
// constructible command.
type Command interface {
	// Encode returns the 4-byte wire frame for the command.
	Encode() [FrameSize]byte
	// Opcode returns the first frame byte.
	Opcode() byte
	// String returns a human-readable description, used by verbose logging.
	String() string
}

// DirectDacWrite sets DAC channel Channel to the immediate 16-bit Value.
type DirectDacWrite struct {
	Channel uint8
	Value   uint16
}

// AttachTable binds DAC channel Channel to lookup table Table; the channel
// then outputs the table entry selected by the current table offset.
type AttachTable struct {
	Channel uint8
	Table   uint8
}

// TableEntryWrite stores Value at Index of lookup table Table.
type TableEntryWrite struct {
	Table uint8
	Index uint8
	Value uint16
}

// UseTableOffset selects the active entry index for all bound tables.
type UseTableOffset struct {
	Offset uint8
}

// GpioSet drives GPIO pin Pin to State.
type GpioSet struct {
	Pin   uint8
	State bool
}

// KeepAlive is the periodic no-op that prevents the device from disabling
// outputs after its idle timeout window.
type KeepAlive struct{}

// LdacUpdate latches previously loaded DAC register values so they take
// effect simultaneously.
type LdacUpdate struct{}

// RegisterWrite sets general device register Register to Value. It is an
// optional protocol extension; the device documentation defines no semantics
// beyond the register assignment itself.
type RegisterWrite struct {
	Register uint8
	Value    uint16
}

var (
	_ Command = DirectDacWrite{}
	_ Command = AttachTable{}
	_ Command = TableEntryWrite{}
	_ Command = UseTableOffset{}
	_ Command = GpioSet{}
	_ Command = KeepAlive{}
	_ Command = LdacUpdate{}
	_ Command = RegisterWrite{}
)

// NewDirectDacWrite creates a DirectDacWrite command.
// It returns ErrInvalidChannel if channel is outside [0, 7].
func NewDirectDacWrite(channel uint8, value uint16) (DirectDacWrite, error) {
	if channel > 7 {
		return DirectDacWrite{}, ErrInvalidChannel
	}

	return DirectDacWrite{Channel: channel, Value: value}, nil
}

// NewAttachTable creates an AttachTable command.
// It returns ErrInvalidChannel or ErrInvalidTable on out-of-range fields.
func NewAttachTable(channel uint8, table uint8) (AttachTable, error) {
	if channel > 7 {
		return AttachTable{}, ErrInvalidChannel
	}

	if table > 3 {
		return AttachTable{}, ErrInvalidTable
	}

	return AttachTable{Channel: channel, Table: table}, nil
}

// NewTableEntryWrite creates a TableEntryWrite command.
// It returns ErrInvalidTable if table is outside [0, 3]. Any index is valid.
func NewTableEntryWrite(table uint8, index uint8, value uint16) (TableEntryWrite, error) {
	if table > 3 {
		return TableEntryWrite{}, ErrInvalidTable
	}

	return TableEntryWrite{Table: table, Index: index, Value: value}, nil
}

// NewUseTableOffset creates a UseTableOffset command. Any offset is valid.
func NewUseTableOffset(offset uint8) (UseTableOffset, error) {
	return UseTableOffset{Offset: offset}, nil
}

// NewGpioSet creates a GpioSet command.
// It returns ErrInvalidPin if pin is outside [0, 7].
func NewGpioSet(pin uint8, state bool) (GpioSet, error) {
	if pin > 7 {
		return GpioSet{}, ErrInvalidPin
	}

	return GpioSet{Pin: pin, State: state}, nil
}

// NewRegisterWrite creates a RegisterWrite command. Any register is valid.
func NewRegisterWrite(register uint8, value uint16) (RegisterWrite, error) {
	return RegisterWrite{Register: register, Value: value}, nil
}

func (c DirectDacWrite) Encode() [FrameSize]byte {
	var frame [FrameSize]byte
	frame[0] = c.Channel
	binary.BigEndian.PutUint16(frame[2:], c.Value)

	return frame
}

func (c DirectDacWrite) Opcode() byte { return c.Channel }

func (c DirectDacWrite) String() string {
	return fmt.Sprintf("DAC %d = %d", c.Channel, c.Value)
}

func (c AttachTable) Encode() [FrameSize]byte {
	var frame [FrameSize]byte
	frame[0] = c.Channel
	frame[1] = tableOpcodeBase + c.Table

	return frame
}

func (c AttachTable) Opcode() byte { return c.Channel }

func (c AttachTable) String() string {
	return fmt.Sprintf("DAC %d bound to table %d", c.Channel, c.Table)
}

func (c TableEntryWrite) Encode() [FrameSize]byte {
	var frame [FrameSize]byte
	frame[0] = tableOpcodeBase + c.Table
	frame[1] = c.Index
	binary.BigEndian.PutUint16(frame[2:], c.Value)

	return frame
}

func (c TableEntryWrite) Opcode() byte { return tableOpcodeBase + c.Table }

func (c TableEntryWrite) String() string {
	return fmt.Sprintf("table %d[%d] = %d", c.Table, c.Index, c.Value)
}

func (c UseTableOffset) Encode() [FrameSize]byte {
	return [FrameSize]byte{OpcodeUseTable, c.Offset, 0x00, 0x00}
}

func (c UseTableOffset) Opcode() byte { return OpcodeUseTable }

func (c UseTableOffset) String() string {
	return fmt.Sprintf("table offset = %d", c.Offset)
}

func (c GpioSet) Encode() [FrameSize]byte {
	frame := [FrameSize]byte{OpcodeGpio, c.Pin, 0x00, 0x00}
	if c.State {
		frame[3] = 0x01
	}

	return frame
}

func (c GpioSet) Opcode() byte { return OpcodeGpio }

func (c GpioSet) String() string {
	state := "off"
	if c.State {
		state = "on"
	}

	return fmt.Sprintf("GPIO %d = %s", c.Pin, state)
}

func (KeepAlive) Encode() [FrameSize]byte {
	return [FrameSize]byte{OpcodeKeepAlive, 0x00, 0x00, 0x00}
}

func (KeepAlive) Opcode() byte { return OpcodeKeepAlive }

func (KeepAlive) String() string { return "keepalive" }

func (LdacUpdate) Encode() [FrameSize]byte {
	return [FrameSize]byte{OpcodeLdac, 0x00, 0x00, 0x00}
}

func (LdacUpdate) Opcode() byte { return OpcodeLdac }

func (LdacUpdate) String() string { return "LDAC update" }

func (c RegisterWrite) Encode() [FrameSize]byte {
	var frame [FrameSize]byte
	frame[0] = OpcodeRegister
	frame[1] = c.Register
	binary.BigEndian.PutUint16(frame[2:], c.Value)

	return frame
}

func (c RegisterWrite) Opcode() byte { return OpcodeRegister }

func (c RegisterWrite) String() string {
	return fmt.Sprintf("register %d = %d", c.Register, c.Value)
}
