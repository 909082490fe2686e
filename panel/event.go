package panel

import "strings"

// EventKind enumerates the control-state transitions.
type EventKind int

const (
	// EventSelectLeft moves the channel selection left, wrapping from 0 to 7.
	EventSelectLeft EventKind = iota
	// EventSelectRight moves the channel selection right, wrapping from 7 to 0.
	EventSelectRight
	// EventIncrease raises the selected DAC by the configured step,
	// saturating at 65535.
	EventIncrease
	// EventDecrease lowers the selected DAC by the configured step,
	// saturating at 0.
	EventDecrease
	// EventFineUp raises the selected DAC by one hardware LSB step (16).
	EventFineUp
	// EventFineDown lowers the selected DAC by one hardware LSB step (16).
	EventFineDown
	// EventLargeStep adds 8192 to the selected DAC, clamping at 65535;
	// only an exact 65535 wraps back to 0.
	EventLargeStep
	// EventToggleGpio flips one GPIO pin.
	EventToggleGpio
	// EventSetOffset selects the active table offset digit.
	EventSetOffset
)

// Event is one control-state input. Pin is meaningful for EventToggleGpio
// and Digit for EventSetOffset.
type Event struct {
	Kind  EventKind
	Pin   uint8
	Digit uint8
}

func SelectLeft() Event  { return Event{Kind: EventSelectLeft} }
func SelectRight() Event { return Event{Kind: EventSelectRight} }
func Increase() Event    { return Event{Kind: EventIncrease} }
func Decrease() Event    { return Event{Kind: EventDecrease} }
func FineUp() Event      { return Event{Kind: EventFineUp} }
func FineDown() Event    { return Event{Kind: EventFineDown} }
func LargeStep() Event   { return Event{Kind: EventLargeStep} }

func ToggleGpio(pin uint8) Event  { return Event{Kind: EventToggleGpio, Pin: pin} }
func SetOffset(digit uint8) Event { return Event{Kind: EventSetOffset, Digit: digit} }

// gpioKeys maps the home-row keys of the original panel to GPIO pins 0-7.
var gpioKeys = map[string]uint8{
	"z": 0, "x": 1, "c": 2, "v": 3, "b": 4, "n": 5, "m": 6, ",": 7,
}

// MapKey translates one key name to an Event using the original panel
// bindings: arrows select and adjust, space is the large step, '-'/'=' are
// fine steps, digits set the table offset, and z x c v b n m , toggle
// GPIO 0-7. Unknown keys report false.
func MapKey(key string) (Event, bool) {
	switch k := strings.ToLower(key); k {
	case "left":
		return SelectLeft(), true
	case "right":
		return SelectRight(), true
	case "up":
		return Increase(), true
	case "down":
		return Decrease(), true
	case " ", "space":
		return LargeStep(), true
	case "=", "+":
		return FineUp(), true
	case "-":
		return FineDown(), true
	default:
		if len(k) == 1 && k[0] >= '0' && k[0] <= '9' {
			return SetOffset(k[0] - '0'), true
		}

		if pin, ok := gpioKeys[k]; ok {
			return ToggleGpio(pin), true
		}

		return Event{}, false
	}
}
