package session

import (
	"sync/atomic"
)

// Metrics contains atomic counters for a session.
// They can be used as the value of a prometheus CounterFunc or GaugeFunc.
type Metrics struct {
	// CommandSendCount indicates the number of command frames written.
	CommandSendCount atomic.Uint64
	// ResponseRecvCount indicates the number of non-empty responses read.
	ResponseRecvCount atomic.Uint64
	// KeepAliveSendCount indicates the number of keepalive commands emitted
	// by the session clock.
	KeepAliveSendCount atomic.Uint64

	// WriteTimeoutCount indicates the number of short writes.
	WriteTimeoutCount atomic.Uint64
	// ReadTimeoutCount indicates the number of response reads that returned
	// no data within the read timeout.
	ReadTimeoutCount atomic.Uint64
	// WriteFailCount indicates the number of writes that failed with a
	// channel error.
	WriteFailCount atomic.Uint64

	// BytesSent indicates the total number of bytes written.
	BytesSent atomic.Uint64
	// BytesReceived indicates the total number of response bytes read.
	BytesReceived atomic.Uint64
}

func (m *Metrics) incCommandSendCount()   { m.CommandSendCount.Add(1) }
func (m *Metrics) incResponseRecvCount()  { m.ResponseRecvCount.Add(1) }
func (m *Metrics) incKeepAliveSendCount() { m.KeepAliveSendCount.Add(1) }
func (m *Metrics) incWriteTimeoutCount()  { m.WriteTimeoutCount.Add(1) }
func (m *Metrics) incReadTimeoutCount()   { m.ReadTimeoutCount.Add(1) }
func (m *Metrics) incWriteFailCount()     { m.WriteFailCount.Add(1) }
func (m *Metrics) addBytesSent(n int)     { m.BytesSent.Add(uint64(n)) }
func (m *Metrics) addBytesReceived(n int) { m.BytesReceived.Add(uint64(n)) }
