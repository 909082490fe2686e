package csv1

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandEncode(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want [FrameSize]byte
	}{
		{"direct dac write", DirectDacWrite{Channel: 3, Value: 0xABCD}, [4]byte{3, 0x00, 0xAB, 0xCD}},
		{"direct dac write zero", DirectDacWrite{Channel: 0, Value: 0}, [4]byte{0, 0x00, 0x00, 0x00}},
		{"direct dac write max", DirectDacWrite{Channel: 7, Value: 65535}, [4]byte{7, 0x00, 0xFF, 0xFF}},
		{"attach table", AttachTable{Channel: 5, Table: 2}, [4]byte{5, 18, 0x00, 0x00}},
		{"table entry write", TableEntryWrite{Table: 1, Index: 49, Value: 0x4000}, [4]byte{17, 49, 0x40, 0x00}},
		{"use table offset", UseTableOffset{Offset: 48}, [4]byte{0xFF, 48, 0x00, 0x00}},
		{"gpio on", GpioSet{Pin: 1, State: true}, [4]byte{0xFE, 1, 0x00, 0x01}},
		{"gpio off", GpioSet{Pin: 7, State: false}, [4]byte{0xFE, 7, 0x00, 0x00}},
		{"keepalive", KeepAlive{}, [4]byte{0xFD, 0x00, 0x00, 0x00}},
		{"ldac update", LdacUpdate{}, [4]byte{0xFC, 0x00, 0x00, 0x00}},
		{"register write", RegisterWrite{Register: 2, Value: 0x1234}, [4]byte{0xFB, 2, 0x12, 0x34}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.cmd.Encode())
		})
	}
}

func TestCommandConstructors(t *testing.T) {
	require := require.New(t)

	cmd, err := NewDirectDacWrite(7, 1000)
	require.NoError(err)
	require.Equal(uint8(7), cmd.Channel)
	require.Equal(uint16(1000), cmd.Value)

	_, err = NewDirectDacWrite(8, 0)
	require.ErrorIs(err, ErrInvalidChannel)

	att, err := NewAttachTable(0, 3)
	require.NoError(err)
	require.Equal(uint8(3), att.Table)

	_, err = NewAttachTable(8, 0)
	require.ErrorIs(err, ErrInvalidChannel)

	_, err = NewAttachTable(0, 4)
	require.ErrorIs(err, ErrInvalidTable)

	tw, err := NewTableEntryWrite(3, 255, 0xFFFF)
	require.NoError(err)
	require.Equal(uint8(255), tw.Index)

	_, err = NewTableEntryWrite(4, 0, 0)
	require.ErrorIs(err, ErrInvalidTable)

	gp, err := NewGpioSet(0, true)
	require.NoError(err)
	require.True(gp.State)

	_, err = NewGpioSet(8, false)
	require.ErrorIs(err, ErrInvalidPin)

	off, err := NewUseTableOffset(255)
	require.NoError(err)
	require.Equal(uint8(255), off.Offset)

	reg, err := NewRegisterWrite(1, 30)
	require.NoError(err)
	require.Equal(uint8(1), reg.Register)
}

func TestCommandString(t *testing.T) {
	require := require.New(t)

	require.Equal("DAC 2 = 8192", DirectDacWrite{Channel: 2, Value: 8192}.String())
	require.Equal("GPIO 0 = on", GpioSet{Pin: 0, State: true}.String())
	require.Equal("GPIO 3 = off", GpioSet{Pin: 3}.String())
	require.Equal("keepalive", KeepAlive{}.String())
}
