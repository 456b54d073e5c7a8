// Package sequencer provides the four-step TC16 cycle sequencer for cycle
// stepping. It reproduces the hardware's phase discipline: fetch, decode +
// operand read, execute, and write-back run strictly in order, and each
// step's outputs are latched for the next step to consume.
package sequencer

import "github.com/sarchlab/tc16sim/insts"

// FDRegister holds state latched between the fetch and decode steps.
type FDRegister struct {
	// Valid indicates if this latch contains data for the current cycle.
	Valid bool

	// PC is the instruction's own address.
	PC uint8

	// Word is the raw 16-bit instruction word.
	Word uint16
}

// Clear resets the FD latch to empty state.
func (r *FDRegister) Clear() {
	r.Valid = false
	r.PC = 0
	r.Word = 0
}

// DXRegister holds state latched between the decode/operand-read and
// execute steps.
type DXRegister struct {
	// Valid indicates if this latch contains data for the current cycle.
	Valid bool

	// PC is the instruction's own address.
	PC uint8

	// Inst is the decoded instruction.
	Inst *insts.Instruction

	// AValue and BValue are the operand values read from the register file.
	AValue uint16
	BValue uint16

	// Addr is the memory address computed during decode. It must remain
	// available, unchanged, through execute and into write-back for this
	// same instruction; its lifetime is exactly these steps.
	Addr uint8

	// MemValue is the data-memory word read at Addr during the operand-read
	// step (the LD operand).
	MemValue uint16
}

// Clear resets the DX latch to empty state.
func (r *DXRegister) Clear() {
	r.Valid = false
	r.PC = 0
	r.Inst = nil
	r.AValue = 0
	r.BValue = 0
	r.Addr = 0
	r.MemValue = 0
}

// XWRegister holds state latched between the execute and write-back steps:
// the write-back commands plus the carried address.
type XWRegister struct {
	// Valid indicates if this latch contains data for the current cycle.
	Valid bool

	// Addr is the memory address carried unchanged from the DX latch. The
	// write-back step uses exactly this value, never a recomputed or
	// next-instruction address.
	Addr uint8

	// RegIndex and RegValue are the register-file commit command, gated by
	// RegWrite.
	RegIndex uint8
	RegValue uint16
	RegWrite bool

	// MemValue is the data-memory commit command, gated by MemWrite.
	MemValue uint16
	MemWrite bool

	// NextPC is the program counter for the following instruction.
	NextPC uint8

	// FlagEQ is the comparison flag after this instruction.
	FlagEQ bool

	// Halt is true when the instruction was HLT.
	Halt bool
}

// Clear resets the XW latch to empty state.
func (r *XWRegister) Clear() {
	r.Valid = false
	r.Addr = 0
	r.RegIndex = 0
	r.RegValue = 0
	r.RegWrite = false
	r.MemValue = 0
	r.MemWrite = false
	r.NextPC = 0
	r.FlagEQ = false
	r.Halt = false
}
