package emu

// ALU implements the TC16 arithmetic and logic operations. All arithmetic is
// performed on 16-bit words; overflow wraps (two's-complement truncation)
// and there is no overflow flag.
type ALU struct{}

// Add returns a + b with 16-bit wraparound.
func (ALU) Add(a, b uint16) uint16 { return a + b }

// Sub returns a - b with 16-bit wraparound.
func (ALU) Sub(a, b uint16) uint16 { return a - b }

// And returns a & b.
func (ALU) And(a, b uint16) uint16 { return a & b }

// Or returns a | b.
func (ALU) Or(a, b uint16) uint16 { return a | b }

// Shl returns a logically shifted left by one bit.
func (ALU) Shl(a uint16) uint16 { return a << 1 }

// Shr returns a logically shifted right by one bit. The vacated MSB is
// always zero-filled, independent of host signedness.
func (ALU) Shr(a uint16) uint16 { return a >> 1 }

// Sar returns a arithmetically shifted right by one bit: the sign bit is
// replicated into the vacated MSB.
func (ALU) Sar(a uint16) uint16 { return uint16(int16(a) >> 1) }

// LoadLow replaces the low byte of a with imm.
func (ALU) LoadLow(a uint16, imm uint8) uint16 {
	return (a & 0xFF00) | uint16(imm)
}

// LoadHigh replaces the high byte of a with imm.
func (ALU) LoadHigh(a uint16, imm uint8) uint16 {
	return uint16(imm)<<8 | (a & 0x00FF)
}
