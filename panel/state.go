package panel

import (
	"fmt"
	"strings"

	"github.com/csv1ol8/csv1-go/csv1"
)

const (
	// DefaultStep is the per-keypress DAC step when none is configured.
	DefaultStep uint16 = 256

	// largeStepSize is the space-bar step.
	largeStepSize uint16 = 8192

	// fineStepSize is one hardware LSB of the 12-bit DAC left-aligned in
	// the 16-bit register.
	fineStepSize uint16 = 16
)

// State is the bounded control state owned by the event loop. It starts with
// all DAC channels at 0, all GPIO pins off, table offset 0 and channel 0
// selected; it is mutated only through Apply.
type State struct {
	dac         [8]uint16
	gpio        [8]bool
	tableOffset uint8
	selected    int
	step        uint16
}

// NewState creates a fresh control state. A step of 0 selects DefaultStep.
func NewState(step uint16) *State {
	if step == 0 {
		step = DefaultStep
	}

	return &State{step: step}
}

// Apply runs one transition and returns the command it produces. Selection
// moves and ignored events produce no frame and report false. Every returned
// command is in range by construction: values are clamped before encoding.
func (s *State) Apply(ev Event) (csv1.Command, bool) {
	switch ev.Kind {
	case EventSelectLeft:
		s.selected = (s.selected + 7) % 8
		return nil, false

	case EventSelectRight:
		s.selected = (s.selected + 1) % 8
		return nil, false

	case EventIncrease:
		return s.writeSelected(satAdd(s.dac[s.selected], s.step)), true

	case EventDecrease:
		return s.writeSelected(satSub(s.dac[s.selected], s.step)), true

	case EventFineUp:
		return s.writeSelected(satAdd(s.dac[s.selected], fineStepSize)), true

	case EventFineDown:
		return s.writeSelected(satSub(s.dac[s.selected], fineStepSize)), true

	case EventLargeStep:
		// wraps to 0 only on exact max; anything lower clamps at max
		value := uint16(0)
		if s.dac[s.selected] != 65535 {
			value = satAdd(s.dac[s.selected], largeStepSize)
		}

		return s.writeSelected(value), true

	case EventToggleGpio:
		if ev.Pin > 7 {
			return nil, false
		}

		s.gpio[ev.Pin] = !s.gpio[ev.Pin]

		return csv1.GpioSet{Pin: ev.Pin, State: s.gpio[ev.Pin]}, true

	case EventSetOffset:
		if ev.Digit > 9 {
			return nil, false
		}

		s.tableOffset = ev.Digit

		return csv1.UseTableOffset{Offset: ev.Digit}, true

	default:
		return nil, false
	}
}

func (s *State) writeSelected(value uint16) csv1.Command {
	s.dac[s.selected] = value

	return csv1.DirectDacWrite{Channel: uint8(s.selected), Value: value}
}

// Dac returns the value of DAC channel ch.
func (s *State) Dac(ch int) uint16 { return s.dac[ch] }

// Gpio returns the state of GPIO pin.
func (s *State) Gpio(pin int) bool { return s.gpio[pin] }

// Selected returns the selected channel.
func (s *State) Selected() int { return s.selected }

// TableOffset returns the active table offset digit.
func (s *State) TableOffset() uint8 { return s.tableOffset }

// Step returns the configured per-keypress step.
func (s *State) Step() uint16 { return s.step }

// SetGpioPins returns the pins currently driven on, in ascending order.
// Shutdown cleanup clears these before exit.
func (s *State) SetGpioPins() []uint8 {
	var pins []uint8
	for pin := range s.gpio {
		if s.gpio[pin] {
			pins = append(pins, uint8(pin))
		}
	}

	return pins
}

// Summary renders a one-line view of the state for plain-text front-ends.
func (s *State) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "ch=%d dac=[", s.selected)
	for i, v := range s.dac {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i == s.selected {
			fmt.Fprintf(&b, "*%d", v)
		} else {
			fmt.Fprintf(&b, "%d", v)
		}
	}
	b.WriteString("] gpio=")
	for _, on := range s.gpio {
		if on {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	fmt.Fprintf(&b, " offset=%d", s.tableOffset)

	return b.String()
}

func satAdd(v, step uint16) uint16 {
	if v > 65535-step {
		return 65535
	}

	return v + step
}

func satSub(v, step uint16) uint16 {
	if v < step {
		return 0
	}

	return v - step
}
