// Package emu provides functional TC16 emulation.
package emu

// NumRegs is the number of general-purpose registers.
const NumRegs = 8

// RegFile represents the TC16 register file: eight general-purpose 16-bit
// registers, the 8-bit program counter, and the comparison flag.
type RegFile struct {
	// R holds general-purpose registers R0-R7.
	R [NumRegs]uint16

	// PC is the program counter. It is an 8-bit index into the instruction
	// store; Go's uint8 arithmetic gives the wrap-modulo-256 behavior.
	PC uint8

	// FlagEQ is the comparison flag. It is set by CMP, consumed by JE, and
	// persists until the next CMP overwrites it.
	FlagEQ bool
}

// Read returns the current value of register idx. Reads are combinational:
// they always reflect the last committed value. The index domain is 0-7;
// the decoder's 3-bit field guarantees it, so an out-of-range index is a
// programming error in the caller and panics via the bounds check.
func (r *RegFile) Read(idx uint8) uint16 {
	return r.R[idx]
}

// Commit writes value to register idx when enable is true, effective for
// subsequent reads. When enable is false the register file is left
// untouched; this is the write-enable gating for CMP/JE/JMP/ST/HLT.
func (r *RegFile) Commit(idx uint8, value uint16, enable bool) {
	if !enable {
		return
	}
	r.R[idx] = value
}

// Reset clears all registers, the program counter, and the comparison flag.
func (r *RegFile) Reset() {
	for i := range r.R {
		r.R[i] = 0
	}
	r.PC = 0
	r.FlagEQ = false
}
