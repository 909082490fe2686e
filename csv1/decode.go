package csv1

import (
	"encoding/binary"
	"fmt"
)

// Decode recovers the logical command from a 4-byte frame.
//
// It is the inverse of Command.Encode over the constructible domain:
// Decode(c.Encode()) == c for every command that passes construction.
// Frames outside that domain fail with ErrInvalidFrame or ErrUnknownOpcode.
func Decode(frame [FrameSize]byte) (Command, error) {
	b0 := frame[0]
	b1 := frame[1]
	value := binary.BigEndian.Uint16(frame[2:])

	switch {
	case b0 <= 7:
		if b1 == 0x00 {
			return DirectDacWrite{Channel: b0, Value: value}, nil
		}

		if b1 >= tableOpcodeBase && b1 < tableOpcodeBase+4 {
			if value != 0 {
				return nil, fmt.Errorf("attach table frame with non-zero value %#04x: %w", value, ErrInvalidFrame)
			}

			return AttachTable{Channel: b0, Table: b1 - tableOpcodeBase}, nil
		}

		return nil, fmt.Errorf("DAC frame with mode byte %#02x: %w", b1, ErrInvalidFrame)

	case b0 >= tableOpcodeBase && b0 < tableOpcodeBase+4:
		return TableEntryWrite{Table: b0 - tableOpcodeBase, Index: b1, Value: value}, nil

	case b0 == OpcodeUseTable:
		if value != 0 {
			return nil, fmt.Errorf("use table frame with non-zero value %#04x: %w", value, ErrInvalidFrame)
		}

		return UseTableOffset{Offset: b1}, nil

	case b0 == OpcodeGpio:
		if b1 > 7 {
			return nil, fmt.Errorf("GPIO frame with pin %d: %w", b1, ErrInvalidFrame)
		}

		if value > 1 {
			return nil, fmt.Errorf("GPIO frame with state %#04x: %w", value, ErrInvalidFrame)
		}

		return GpioSet{Pin: b1, State: value == 1}, nil

	case b0 == OpcodeKeepAlive:
		if b1 != 0 || value != 0 {
			return nil, fmt.Errorf("keepalive frame with non-zero payload: %w", ErrInvalidFrame)
		}

		return KeepAlive{}, nil

	case b0 == OpcodeLdac:
		if b1 != 0 || value != 0 {
			return nil, fmt.Errorf("LDAC frame with non-zero payload: %w", ErrInvalidFrame)
		}

		return LdacUpdate{}, nil

	case b0 == OpcodeRegister:
		return RegisterWrite{Register: b1, Value: value}, nil

	default:
		return nil, fmt.Errorf("opcode %#02x: %w", b0, ErrUnknownOpcode)
	}
}
