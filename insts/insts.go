// Package insts provides TC16 instruction definitions, decoding, and encoding.
//
// The TC16 uses a fixed 16-bit instruction word:
//
//	[15:11] opcode   (5 bits)
//	[10:8]  regA     (3 bits)
//	[7:5]   regB     (3 bits)
//	[7:0]   imm/addr (8 bits, overlapping regB by design)
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(insts.ADD(2, 1))
//	fmt.Printf("Op: %v, RegA: %d, RegB: %d\n", inst.Op, inst.RegA, inst.RegB)
package insts

import "fmt"

// Op represents a TC16 opcode.
type Op uint8

// TC16 opcodes. The opcode field is 5 bits wide; values above OpHLT are
// undefined and execute as no-ops.
const (
	OpMOV Op = 0  // regA := regB
	OpADD Op = 1  // regA := regA + regB
	OpSUB Op = 2  // regA := regA - regB
	OpAND Op = 3  // regA := regA & regB
	OpOR  Op = 4  // regA := regA | regB
	OpSL  Op = 5  // regA := regA << 1
	OpSR  Op = 6  // regA := regA >> 1 (logical, zero-fill)
	OpSRA Op = 7  // regA := regA >> 1 (arithmetic, sign-fill)
	OpLDL Op = 8  // regA := (regA & 0xFF00) | imm
	OpLDH Op = 9  // regA := (imm << 8) | (regA & 0x00FF)
	OpCMP Op = 10 // flag := (regA == regB)
	OpJE  Op = 11 // if flag: PC := addr
	OpJMP Op = 12 // PC := addr
	OpLD  Op = 13 // regA := mem[addr]
	OpST  Op = 14 // mem[addr] := regA
	OpHLT Op = 15 // halt
)

var opNames = map[Op]string{
	OpMOV: "MOV",
	OpADD: "ADD",
	OpSUB: "SUB",
	OpAND: "AND",
	OpOR:  "OR",
	OpSL:  "SL",
	OpSR:  "SR",
	OpSRA: "SRA",
	OpLDL: "LDL",
	OpLDH: "LDH",
	OpCMP: "CMP",
	OpJE:  "JE",
	OpJMP: "JMP",
	OpLD:  "LD",
	OpST:  "ST",
	OpHLT: "HLT",
}

// String returns the mnemonic for the opcode, or "???" for undefined opcodes.
func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "???"
}

// WritesReg reports whether the opcode commits a value to the register file.
func (op Op) WritesReg() bool {
	switch op {
	case OpMOV, OpADD, OpSUB, OpAND, OpOR, OpSL, OpSR, OpSRA, OpLDL, OpLDH, OpLD:
		return true
	}
	return false
}

// WritesMem reports whether the opcode commits a value to data memory.
func (op Op) WritesMem() bool {
	return op == OpST
}

// ReadsMem reports whether the opcode consumes a data memory read.
func (op Op) ReadsMem() bool {
	return op == OpLD
}

// IsJump reports whether the opcode may overwrite the sequential PC.
func (op Op) IsJump() bool {
	return op == OpJE || op == OpJMP
}

// Instruction represents a decoded TC16 instruction.
type Instruction struct {
	// Word is the raw 16-bit instruction word.
	Word uint16

	// Op is the operation code from bits [15:11].
	Op Op

	// RegA is the destination / first source register index (0-7).
	RegA uint8

	// RegB is the second source register index (0-7).
	RegB uint8

	// Imm is the 8-bit immediate / address field. It overlaps RegB in the
	// instruction word; which interpretation applies depends on Op.
	Imm uint8
}

// String renders the instruction in assembly form, for traces and the
// front-panel disassembly view.
func (i *Instruction) String() string {
	switch i.Op {
	case OpMOV, OpADD, OpSUB, OpAND, OpOR, OpCMP:
		return fmt.Sprintf("%s R%d, R%d", i.Op, i.RegA, i.RegB)
	case OpSL, OpSR, OpSRA:
		return fmt.Sprintf("%s R%d", i.Op, i.RegA)
	case OpLDL, OpLDH:
		return fmt.Sprintf("%s R%d, %d", i.Op, i.RegA, i.Imm)
	case OpLD, OpST:
		return fmt.Sprintf("%s R%d, [%d]", i.Op, i.RegA, i.Imm)
	case OpJE, OpJMP:
		return fmt.Sprintf("%s %d", i.Op, i.Imm)
	case OpHLT:
		return "HLT"
	}
	return fmt.Sprintf("??? (0x%04X)", i.Word)
}
