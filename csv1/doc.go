// Package csv1 implements the CSv1-OL8 command codec.
//
// Every command the device understands serializes to exactly one fixed
// 4-byte frame with no length prefix, checksum or delimiter; the uniform
// framing is what lets the serial and TCP transports share one codec.
// The frame layout is:
//
//	+--------------+--------------+-------------------+
//	| First byte   | Second byte  | third & 4th bytes |
//	+--------------+--------------+-------------------+
//	| n = 0..7     | 0x00         | vv                | DirectDacWrite DAC(n)=vv
//	| n = 0..7     | i+16 (16..19)| 0x0000            | AttachTable DAC(n)=Table(i)
//	| i+16 (16..19)| n (0..255)   | vv                | TableEntryWrite Table(i)[n]=vv
//	| 0xFF         | n (0..255)   | 0x0000            | UseTableOffset
//	| 0xFE         | n (0..7)     | 0x0000..0x0001    | GpioSet GPIO(n)
//	| 0xFD         | 0x00         | 0x0000            | KeepAlive
//	| 0xFC         | 0x00         | 0x0000            | LdacUpdate
//	| 0xFB         | n (0..255)   | vv                | RegisterWrite reg(n)=vv
//	+--------------+--------------+-------------------+
//
// The 16-bit value is big-endian. Range violations are rejected at
// construction time; a frame that encodes successfully is always valid on
// the wire.
//
// The package is pure: it performs no I/O.
package csv1
