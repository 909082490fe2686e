package panel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csv1ol8/csv1-go/csv1"
)

func TestSaturatingIncrease(t *testing.T) {
	tests := []struct {
		v    uint16
		step uint16
		want uint16
	}{
		{0, 1, 1},
		{0, 65535, 65535},
		{1, 65535, 65535},
		{65534, 1, 65535},
		{65535, 1, 65535},
		{65535, 65535, 65535},
		{65400, 8192, 65535},
		{32768, 32767, 65535},
		{32768, 32768, 65535},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, satAdd(tt.v, tt.step), "satAdd(%d, %d)", tt.v, tt.step)
	}
}

func TestSaturatingDecrease(t *testing.T) {
	tests := []struct {
		v    uint16
		step uint16
		want uint16
	}{
		{0, 1, 0},
		{1, 1, 0},
		{1, 2, 0},
		{65535, 65535, 0},
		{256, 16, 240},
		{8192, 8192, 0},
		{100, 200, 0},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, satSub(tt.v, tt.step), "satSub(%d, %d)", tt.v, tt.step)
	}
}

func TestLargeStepWrapsOnlyAtExactMax(t *testing.T) {
	require := require.New(t)

	tests := []struct {
		start uint16
		want  uint16
	}{
		{0, 8192},
		{57344, 65535},
		{61440, 65535},
		{65400, 65535}, // overflows arithmetically, but clamps — does not wrap
		{65534, 65535},
		{65535, 0}, // wraps only here
	}

	for _, tt := range tests {
		s := NewState(0)
		s.dac[0] = tt.start

		cmd, ok := s.Apply(LargeStep())
		require.True(ok)
		require.Equal(tt.want, s.Dac(0), "largeStep(%d)", tt.start)
		require.Equal(csv1.DirectDacWrite{Channel: 0, Value: tt.want}, cmd)
	}
}

func TestChannelSelectionWraps(t *testing.T) {
	require := require.New(t)

	s := NewState(0)
	require.Equal(0, s.Selected())

	cmd, ok := s.Apply(SelectLeft())
	require.False(ok)
	require.Nil(cmd)
	require.Equal(7, s.Selected())

	_, ok = s.Apply(SelectRight())
	require.False(ok)
	require.Equal(0, s.Selected())

	for i := 1; i <= 8; i++ {
		s.Apply(SelectRight())
		require.Equal(i%8, s.Selected())
	}
}

func TestIncreaseRampScenario(t *testing.T) {
	require := require.New(t)

	s := NewState(8192)

	// seven steps walk the ramp, the eighth clamps at 65535 instead of
	// overflowing to 65536, and further steps stay clamped
	for i := 1; i <= 7; i++ {
		cmd, ok := s.Apply(Increase())
		require.True(ok)
		require.Equal(uint16(i*8192), s.Dac(0))
		require.Equal(csv1.DirectDacWrite{Channel: 0, Value: uint16(i * 8192)}, cmd)
	}
	require.Equal(uint16(57344), s.Dac(0))

	_, ok := s.Apply(Increase())
	require.True(ok)
	require.Equal(uint16(65535), s.Dac(0))

	_, ok = s.Apply(Increase())
	require.True(ok)
	require.Equal(uint16(65535), s.Dac(0))
}

func TestDecreaseAffectsSelectedChannel(t *testing.T) {
	require := require.New(t)

	s := NewState(100)
	s.Apply(SelectRight())
	s.Apply(SelectRight()) // channel 2

	s.Apply(Increase())
	s.Apply(Increase())
	require.Equal(uint16(200), s.Dac(2))
	require.Equal(uint16(0), s.Dac(0))

	cmd, ok := s.Apply(Decrease())
	require.True(ok)
	require.Equal(csv1.DirectDacWrite{Channel: 2, Value: 100}, cmd)

	// saturates at zero
	s.Apply(Decrease())
	s.Apply(Decrease())
	require.Equal(uint16(0), s.Dac(2))
}

func TestFineSteps(t *testing.T) {
	require := require.New(t)

	s := NewState(0)

	cmd, ok := s.Apply(FineUp())
	require.True(ok)
	require.Equal(csv1.DirectDacWrite{Channel: 0, Value: 16}, cmd)

	cmd, ok = s.Apply(FineDown())
	require.True(ok)
	require.Equal(csv1.DirectDacWrite{Channel: 0, Value: 0}, cmd)

	// fine down saturates at zero
	_, ok = s.Apply(FineDown())
	require.True(ok)
	require.Equal(uint16(0), s.Dac(0))
}

func TestToggleGpio(t *testing.T) {
	require := require.New(t)

	s := NewState(0)

	cmd, ok := s.Apply(ToggleGpio(3))
	require.True(ok)
	require.Equal(csv1.GpioSet{Pin: 3, State: true}, cmd)
	require.True(s.Gpio(3))

	cmd, ok = s.Apply(ToggleGpio(3))
	require.True(ok)
	require.Equal(csv1.GpioSet{Pin: 3, State: false}, cmd)
	require.False(s.Gpio(3))

	// out-of-range pin is ignored, no frame produced
	_, ok = s.Apply(ToggleGpio(8))
	require.False(ok)
}

func TestSetOffset(t *testing.T) {
	require := require.New(t)

	s := NewState(0)

	cmd, ok := s.Apply(SetOffset(9))
	require.True(ok)
	require.Equal(csv1.UseTableOffset{Offset: 9}, cmd)
	require.Equal(uint8(9), s.TableOffset())

	_, ok = s.Apply(SetOffset(10))
	require.False(ok)
	require.Equal(uint8(9), s.TableOffset())
}

func TestSetGpioPins(t *testing.T) {
	require := require.New(t)

	s := NewState(0)
	require.Empty(s.SetGpioPins())

	s.Apply(ToggleGpio(0))
	s.Apply(ToggleGpio(5))
	require.Equal([]uint8{0, 5}, s.SetGpioPins())

	s.Apply(ToggleGpio(0))
	require.Equal([]uint8{5}, s.SetGpioPins())
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		key  string
		want Event
	}{
		{"left", SelectLeft()},
		{"right", SelectRight()},
		{"up", Increase()},
		{"down", Decrease()},
		{" ", LargeStep()},
		{"space", LargeStep()},
		{"=", FineUp()},
		{"-", FineDown()},
		{"0", SetOffset(0)},
		{"9", SetOffset(9)},
		{"z", ToggleGpio(0)},
		{"Z", ToggleGpio(0)},
		{"x", ToggleGpio(1)},
		{"c", ToggleGpio(2)},
		{"v", ToggleGpio(3)},
		{"b", ToggleGpio(4)},
		{"n", ToggleGpio(5)},
		{"M", ToggleGpio(6)},
		{",", ToggleGpio(7)},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			ev, ok := MapKey(tt.key)
			require.True(t, ok)
			require.Equal(t, tt.want, ev)
		})
	}

	_, ok := MapKey("q")
	require.False(t, ok)
	_, ok = MapKey("enter")
	require.False(t, ok)
}

func TestSummary(t *testing.T) {
	require := require.New(t)

	s := NewState(256)
	s.Apply(Increase())
	s.Apply(ToggleGpio(1))
	s.Apply(SetOffset(4))

	require.Equal("ch=0 dac=[*256 0 0 0 0 0 0 0] gpio=01000000 offset=4", s.Summary())
}
