// Package panel models the interactive control state: 8 DAC channels, 8
// GPIO bits, a table offset and a selected channel. The transition function
// maps keyboard or scripted events to protocol commands with strict numeric
// contracts — DAC values saturate at 0 and 65535 instead of wrapping, and
// clamping always happens before encoding, so no transition can produce an
// out-of-range command.
//
// One contract is easy to mis-port and is pinned by tests: the large-step
// event wraps to 0 only when the value is exactly 65535. Any smaller value
// clamps at 65535 even when adding the step would overflow.
package panel
