package insts

import "fmt"

// Encoding helpers build TC16 instruction words from operands. Operands are
// masked to their field widths; use Builder for validated assembly.

func encodeRR(op Op, ra, rb uint8) uint16 {
	return uint16(op)<<opcodeShift |
		uint16(ra&regMask)<<regAShift |
		uint16(rb&regMask)<<regBShift
}

func encodeRI(op Op, ra, imm uint8) uint16 {
	return uint16(op)<<opcodeShift |
		uint16(ra&regMask)<<regAShift |
		uint16(imm)
}

// MOV encodes "regA := regB".
func MOV(ra, rb uint8) uint16 { return encodeRR(OpMOV, ra, rb) }

// ADD encodes "regA := regA + regB".
func ADD(ra, rb uint8) uint16 { return encodeRR(OpADD, ra, rb) }

// SUB encodes "regA := regA - regB".
func SUB(ra, rb uint8) uint16 { return encodeRR(OpSUB, ra, rb) }

// AND encodes "regA := regA & regB".
func AND(ra, rb uint8) uint16 { return encodeRR(OpAND, ra, rb) }

// OR encodes "regA := regA | regB".
func OR(ra, rb uint8) uint16 { return encodeRR(OpOR, ra, rb) }

// SL encodes a logical left shift of regA by one bit.
func SL(ra uint8) uint16 { return encodeRR(OpSL, ra, 0) }

// SR encodes a logical right shift of regA by one bit.
func SR(ra uint8) uint16 { return encodeRR(OpSR, ra, 0) }

// SRA encodes an arithmetic right shift of regA by one bit.
func SRA(ra uint8) uint16 { return encodeRR(OpSRA, ra, 0) }

// LDL encodes loading imm into the low byte of regA.
func LDL(ra, imm uint8) uint16 { return encodeRI(OpLDL, ra, imm) }

// LDH encodes loading imm into the high byte of regA.
func LDH(ra, imm uint8) uint16 { return encodeRI(OpLDH, ra, imm) }

// CMP encodes the equality comparison of regA and regB.
func CMP(ra, rb uint8) uint16 { return encodeRR(OpCMP, ra, rb) }

// JE encodes a conditional jump to addr, taken when the comparison flag is set.
func JE(addr uint8) uint16 { return encodeRI(OpJE, 0, addr) }

// JMP encodes an unconditional jump to addr.
func JMP(addr uint8) uint16 { return encodeRI(OpJMP, 0, addr) }

// LD encodes "regA := mem[addr]".
func LD(ra, addr uint8) uint16 { return encodeRI(OpLD, ra, addr) }

// ST encodes "mem[addr] := regA".
func ST(ra, addr uint8) uint16 { return encodeRI(OpST, ra, addr) }

// HLT encodes the halt instruction.
func HLT() uint16 { return uint16(OpHLT) << opcodeShift }

// Builder assembles a TC16 program with operand validation. Methods append
// one instruction each and record the first out-of-range operand; Build
// reports it as a structured error.
type Builder struct {
	words []uint16
	err   error
}

// NewBuilder creates an empty program builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) reg(name string, idx int) uint8 {
	if idx < 0 || idx > int(regMask) {
		b.fail(fmt.Errorf("instruction %d: register %s out of range: %d (want 0-7)",
			len(b.words), name, idx))
		return 0
	}
	return uint8(idx)
}

func (b *Builder) imm(name string, v int) uint8 {
	if v < 0 || v > immMask {
		b.fail(fmt.Errorf("instruction %d: %s out of range: %d (want 0-255)",
			len(b.words), name, v))
		return 0
	}
	return uint8(v)
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Builder) add(word uint16) *Builder {
	b.words = append(b.words, word)
	return b
}

// MOV appends "regA := regB".
func (b *Builder) MOV(ra, rb int) *Builder {
	return b.add(MOV(b.reg("regA", ra), b.reg("regB", rb)))
}

// ADD appends "regA := regA + regB".
func (b *Builder) ADD(ra, rb int) *Builder {
	return b.add(ADD(b.reg("regA", ra), b.reg("regB", rb)))
}

// SUB appends "regA := regA - regB".
func (b *Builder) SUB(ra, rb int) *Builder {
	return b.add(SUB(b.reg("regA", ra), b.reg("regB", rb)))
}

// AND appends "regA := regA & regB".
func (b *Builder) AND(ra, rb int) *Builder {
	return b.add(AND(b.reg("regA", ra), b.reg("regB", rb)))
}

// OR appends "regA := regA | regB".
func (b *Builder) OR(ra, rb int) *Builder {
	return b.add(OR(b.reg("regA", ra), b.reg("regB", rb)))
}

// SL appends a logical left shift of regA.
func (b *Builder) SL(ra int) *Builder { return b.add(SL(b.reg("regA", ra))) }

// SR appends a logical right shift of regA.
func (b *Builder) SR(ra int) *Builder { return b.add(SR(b.reg("regA", ra))) }

// SRA appends an arithmetic right shift of regA.
func (b *Builder) SRA(ra int) *Builder { return b.add(SRA(b.reg("regA", ra))) }

// LDL appends an immediate load into the low byte of regA.
func (b *Builder) LDL(ra, imm int) *Builder {
	return b.add(LDL(b.reg("regA", ra), b.imm("immediate", imm)))
}

// LDH appends an immediate load into the high byte of regA.
func (b *Builder) LDH(ra, imm int) *Builder {
	return b.add(LDH(b.reg("regA", ra), b.imm("immediate", imm)))
}

// CMP appends an equality comparison of regA and regB.
func (b *Builder) CMP(ra, rb int) *Builder {
	return b.add(CMP(b.reg("regA", ra), b.reg("regB", rb)))
}

// JE appends a conditional jump to addr.
func (b *Builder) JE(addr int) *Builder { return b.add(JE(b.imm("address", addr))) }

// JMP appends an unconditional jump to addr.
func (b *Builder) JMP(addr int) *Builder { return b.add(JMP(b.imm("address", addr))) }

// LD appends "regA := mem[addr]".
func (b *Builder) LD(ra, addr int) *Builder {
	return b.add(LD(b.reg("regA", ra), b.imm("address", addr)))
}

// ST appends "mem[addr] := regA".
func (b *Builder) ST(ra, addr int) *Builder {
	return b.add(ST(b.reg("regA", ra), b.imm("address", addr)))
}

// HLT appends the halt instruction.
func (b *Builder) HLT() *Builder { return b.add(HLT()) }

// Len returns the number of instructions appended so far. Useful for
// computing jump targets while assembling.
func (b *Builder) Len() int {
	return len(b.words)
}

// Build returns the assembled instruction words, or the first operand error
// recorded while assembling.
func (b *Builder) Build() ([]uint16, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.words, nil
}

// SumToTen returns the canonical TC16 demo program: accumulate 1+2+...+10
// into R0, storing the running sum to outAddr each iteration, and halt when
// the counter reaches 10. The final value written to outAddr is 55.
//
// Register use: R0 sum, R1 constant 1, R2 counter, R3 constant 10.
func SumToTen(outAddr uint8) []uint16 {
	return []uint16{
		LDH(0, 0),
		LDL(0, 0),
		LDH(1, 0),
		LDL(1, 1),
		LDH(2, 0),
		LDL(2, 0),
		LDH(3, 0),
		LDL(3, 10),
		ADD(2, 1), // loop:
		ADD(0, 2),
		ST(0, outAddr),
		CMP(2, 3),
		JE(14),
		JMP(8),
		HLT(), // 14:
	}
}
