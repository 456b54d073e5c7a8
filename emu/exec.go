package emu

import "github.com/sarchlab/tc16sim/insts"

// ExecResult carries one instruction's computed effects: the values to be
// committed at write-back together with their write-enables, the next
// program counter, and the updated comparison flag. Nothing in machine
// state changes until a later step consumes it.
type ExecResult struct {
	// Value is the result destined for the register file, committed only
	// when RegWrite is true.
	Value    uint16
	RegWrite bool

	// MemValue is the value destined for data memory, committed only when
	// MemWrite is true.
	MemValue uint16
	MemWrite bool

	// NextPC is the program counter for the following instruction:
	// sequential PC+1 for everything except JMP and a taken JE.
	NextPC uint8

	// FlagEQ is the comparison flag after this instruction. Only CMP
	// changes it.
	FlagEQ bool

	// Halt is true when the instruction is HLT.
	Halt bool
}

// ExecUnit computes ALU results, the comparison flag, the next program
// counter, and the write-back commands. It is a pure step: given the
// decoded instruction and its operands it touches no machine state.
type ExecUnit struct {
	alu ALU
}

// NewExecUnit creates a new execution unit.
func NewExecUnit() *ExecUnit {
	return &ExecUnit{}
}

// Execute runs one instruction through the execution unit. a and b are the
// operand values read for regA and regB, memValue is the data-memory read
// performed during the operand-read step (meaningful for LD), pc is the
// instruction's own address, and flagEQ is the incoming comparison flag.
func (u *ExecUnit) Execute(
	inst *insts.Instruction,
	a, b, memValue uint16,
	pc uint8,
	flagEQ bool,
) ExecResult {
	res := ExecResult{
		NextPC: pc + 1,
		FlagEQ: flagEQ,
	}

	switch inst.Op {
	case insts.OpMOV:
		res.Value = b
		res.RegWrite = true
	case insts.OpADD:
		res.Value = u.alu.Add(a, b)
		res.RegWrite = true
	case insts.OpSUB:
		res.Value = u.alu.Sub(a, b)
		res.RegWrite = true
	case insts.OpAND:
		res.Value = u.alu.And(a, b)
		res.RegWrite = true
	case insts.OpOR:
		res.Value = u.alu.Or(a, b)
		res.RegWrite = true
	case insts.OpSL:
		res.Value = u.alu.Shl(a)
		res.RegWrite = true
	case insts.OpSR:
		res.Value = u.alu.Shr(a)
		res.RegWrite = true
	case insts.OpSRA:
		res.Value = u.alu.Sar(a)
		res.RegWrite = true
	case insts.OpLDL:
		res.Value = u.alu.LoadLow(a, inst.Imm)
		res.RegWrite = true
	case insts.OpLDH:
		res.Value = u.alu.LoadHigh(a, inst.Imm)
		res.RegWrite = true
	case insts.OpCMP:
		res.FlagEQ = a == b
	case insts.OpJE:
		if flagEQ {
			res.NextPC = inst.Imm
		}
	case insts.OpJMP:
		res.NextPC = inst.Imm
	case insts.OpLD:
		res.Value = memValue
		res.RegWrite = true
	case insts.OpST:
		res.MemValue = a
		res.MemWrite = true
	case insts.OpHLT:
		res.Halt = true
	default:
		// Undefined opcode: executes as a no-op, not a fault.
	}

	return res
}
