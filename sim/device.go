package sim

import (
	"sync"

	"github.com/csv1ol8/csv1-go/csv1"
)

// noBinding marks a DAC channel driven by direct writes instead of a table.
const noBinding = -1

// device is the shared hardware model. All clients mutate the same device,
// so access is serialized with a mutex.
type device struct {
	mu sync.Mutex

	dac       [8]uint16
	bindings  [8]int8
	tables    [4][256]uint16
	gpio      [8]bool
	offset    uint8
	registers [256]uint16
}

func newDevice() *device {
	d := &device{}
	for ch := range d.bindings {
		d.bindings[ch] = noBinding
	}

	return d
}

// apply executes one decoded command against the model and returns the
// status word to acknowledge with.
func (d *device) apply(cmd csv1.Command) uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch c := cmd.(type) {
	case csv1.DirectDacWrite:
		d.dac[c.Channel] = c.Value
		d.bindings[c.Channel] = noBinding

	case csv1.AttachTable:
		d.bindings[c.Channel] = int8(c.Table)

	case csv1.TableEntryWrite:
		d.tables[c.Table][c.Index] = c.Value

	case csv1.UseTableOffset:
		d.offset = c.Offset

	case csv1.GpioSet:
		d.gpio[c.Pin] = c.State

	case csv1.RegisterWrite:
		d.registers[c.Register] = c.Value

	case csv1.KeepAlive, csv1.LdacUpdate:
		// acknowledged, no state change

	default:
		return csv1.StatusError
	}

	return csv1.StatusOK
}

func (d *device) clearGpio(pin uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gpio[pin] = false
}

func (d *device) snapshotDac(ch int) uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.dac[ch]
}

func (d *device) snapshotGpio(pin int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.gpio[pin]
}

func (d *device) snapshotTableEntry(table, index int) uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.tables[table][index]
}

func (d *device) snapshotOffset() uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.offset
}

func (d *device) snapshotRegister(reg int) uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.registers[reg]
}

func (d *device) snapshotBinding(ch int) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return int(d.bindings[ch])
}
