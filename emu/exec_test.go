package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tc16sim/emu"
	"github.com/sarchlab/tc16sim/insts"
)

var _ = Describe("ExecUnit", func() {
	var (
		unit    *emu.ExecUnit
		decoder *insts.Decoder
	)

	exec := func(word uint16, a, b, memValue uint16, pc uint8, flag bool) emu.ExecResult {
		return unit.Execute(decoder.Decode(word), a, b, memValue, pc, flag)
	}

	BeforeEach(func() {
		unit = emu.NewExecUnit()
		decoder = insts.NewDecoder()
	})

	Describe("ALU operations", func() {
		It("should execute MOV", func() {
			res := exec(insts.MOV(0, 1), 5, 7, 0, 0, false)

			Expect(res.Value).To(Equal(uint16(7)))
			Expect(res.RegWrite).To(BeTrue())
			Expect(res.MemWrite).To(BeFalse())
			Expect(res.NextPC).To(Equal(uint8(1)))
		})

		It("should execute ADD", func() {
			res := exec(insts.ADD(0, 1), 5, 7, 0, 0, false)

			Expect(res.Value).To(Equal(uint16(12)))
			Expect(res.RegWrite).To(BeTrue())
		})

		It("should wrap ADD overflow to 16 bits", func() {
			res := exec(insts.ADD(0, 1), 0xFFFF, 2, 0, 0, false)

			Expect(res.Value).To(Equal(uint16(1)))
		})

		It("should execute SUB with two's-complement wraparound", func() {
			res := exec(insts.SUB(0, 1), 0, 1, 0, 0, false)

			Expect(res.Value).To(Equal(uint16(0xFFFF)))
		})

		It("should execute AND", func() {
			res := exec(insts.AND(0, 1), 0xF0F0, 0xFF00, 0, 0, false)

			Expect(res.Value).To(Equal(uint16(0xF000)))
		})

		It("should execute OR", func() {
			res := exec(insts.OR(0, 1), 0xF0F0, 0x0F00, 0, 0, false)

			Expect(res.Value).To(Equal(uint16(0xFFF0)))
		})

		It("should execute SL", func() {
			res := exec(insts.SL(0), 0x8001, 0, 0, 0, false)

			Expect(res.Value).To(Equal(uint16(0x0002)))
		})
	})

	Describe("Right shifts", func() {
		// SR and SRA must differ on negative values; this distinguishes a
		// true logical shift from a host-default signed shift.
		It("should zero-fill SR on 0x8001", func() {
			res := exec(insts.SR(0), 0x8001, 0, 0, 0, false)

			Expect(res.Value).To(Equal(uint16(0x4000)))
		})

		It("should sign-fill SRA on 0x8001", func() {
			res := exec(insts.SRA(0), 0x8001, 0, 0, 0, false)

			Expect(res.Value).To(Equal(uint16(0xC000)))
		})

		It("should sign-fill SRA on 0x8000", func() {
			res := exec(insts.SRA(0), 0x8000, 0, 0, 0, false)

			Expect(res.Value).To(Equal(uint16(0xC000)))
		})

		It("should behave identically for SR and SRA on positive values", func() {
			sr := exec(insts.SR(0), 0x4002, 0, 0, 0, false)
			sra := exec(insts.SRA(0), 0x4002, 0, 0, 0, false)

			Expect(sr.Value).To(Equal(uint16(0x2001)))
			Expect(sra.Value).To(Equal(sr.Value))
		})
	})

	Describe("Byte loads", func() {
		It("should compose a 16-bit constant from LDH then LDL", func() {
			res := exec(insts.LDH(0, 0x12), 0, 0, 0, 0, false)
			Expect(res.Value).To(Equal(uint16(0x1200)))

			res = exec(insts.LDL(0, 0x34), res.Value, 0, 0, 1, false)
			Expect(res.Value).To(Equal(uint16(0x1234)))
		})

		It("should preserve the other byte", func() {
			res := exec(insts.LDL(0, 0xCD), 0xABFF, 0, 0, 0, false)
			Expect(res.Value).To(Equal(uint16(0xABCD)))

			res = exec(insts.LDH(0, 0xEF), 0xABCD, 0, 0, 0, false)
			Expect(res.Value).To(Equal(uint16(0xEFCD)))
		})
	})

	Describe("Compare and jumps", func() {
		It("should set the flag when operands are equal", func() {
			res := exec(insts.CMP(0, 1), 9, 9, 0, 0, false)

			Expect(res.FlagEQ).To(BeTrue())
			Expect(res.RegWrite).To(BeFalse())
		})

		It("should clear the flag when operands differ", func() {
			res := exec(insts.CMP(0, 1), 9, 10, 0, 0, true)

			Expect(res.FlagEQ).To(BeFalse())
		})

		It("should take JE when the flag is set", func() {
			res := exec(insts.JE(14), 0, 0, 0, 12, true)

			Expect(res.NextPC).To(Equal(uint8(14)))
		})

		It("should fall through JE when the flag is clear", func() {
			res := exec(insts.JE(14), 0, 0, 0, 12, false)

			Expect(res.NextPC).To(Equal(uint8(13)))
		})

		It("should preserve the flag across non-CMP instructions", func() {
			res := exec(insts.ADD(0, 1), 1, 2, 0, 0, true)

			Expect(res.FlagEQ).To(BeTrue())
		})

		It("should take JMP unconditionally", func() {
			res := exec(insts.JMP(8), 0, 0, 0, 13, false)

			Expect(res.NextPC).To(Equal(uint8(8)))
		})
	})

	Describe("Loads and stores", func() {
		It("should pass the memory read value to the register write for LD", func() {
			res := exec(insts.LD(2, 5), 0, 0, 0x5555, 0, false)

			Expect(res.Value).To(Equal(uint16(0x5555)))
			Expect(res.RegWrite).To(BeTrue())
			Expect(res.MemWrite).To(BeFalse())
		})

		It("should pass regA to the memory write for ST", func() {
			res := exec(insts.ST(2, 5), 0x7777, 0, 0, 0, false)

			Expect(res.MemValue).To(Equal(uint16(0x7777)))
			Expect(res.MemWrite).To(BeTrue())
			Expect(res.RegWrite).To(BeFalse())
		})
	})

	Describe("HLT and undefined opcodes", func() {
		It("should signal halt with no state change for HLT", func() {
			res := exec(insts.HLT(), 1, 2, 3, 7, true)

			Expect(res.Halt).To(BeTrue())
			Expect(res.RegWrite).To(BeFalse())
			Expect(res.MemWrite).To(BeFalse())
			Expect(res.FlagEQ).To(BeTrue())
		})

		It("should treat undefined opcodes as no-ops", func() {
			for op := uint16(16); op < 32; op++ {
				res := exec(op<<11, 1, 2, 3, 7, true)

				Expect(res.RegWrite).To(BeFalse())
				Expect(res.MemWrite).To(BeFalse())
				Expect(res.Halt).To(BeFalse())
				Expect(res.NextPC).To(Equal(uint8(8)))
				Expect(res.FlagEQ).To(BeTrue())
			}
		})
	})

	Describe("PC update", func() {
		It("should default to PC+1 for every non-jump opcode", func() {
			nonJump := []uint16{
				insts.MOV(0, 1), insts.ADD(0, 1), insts.SUB(0, 1),
				insts.AND(0, 1), insts.OR(0, 1), insts.SL(0), insts.SR(0),
				insts.SRA(0), insts.LDL(0, 1), insts.LDH(0, 1),
				insts.CMP(0, 1), insts.LD(0, 1), insts.ST(0, 1),
			}
			for _, word := range nonJump {
				res := exec(word, 0, 0, 0, 41, false)
				Expect(res.NextPC).To(Equal(uint8(42)))
			}
		})

		It("should wrap PC past the instruction store size", func() {
			res := exec(insts.ADD(0, 1), 0, 0, 0, 255, false)

			Expect(res.NextPC).To(Equal(uint8(0)))
		})
	})
})
