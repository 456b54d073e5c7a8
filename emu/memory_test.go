package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tc16sim/emu"
)

var _ = Describe("Memory", func() {
	var memory *emu.Memory

	BeforeEach(func() {
		memory = emu.NewMemory()
	})

	Describe("Ordinary range", func() {
		It("should store and return words", func() {
			memory.Write(5, 0xBEEF, true)

			Expect(memory.Read(5)).To(Equal(uint16(0xBEEF)))
		})

		It("should discard writes when the enable is deasserted", func() {
			memory.Write(5, 0xBEEF, false)

			Expect(memory.Read(5)).To(Equal(uint16(0)))
		})
	})

	Describe("Output port", func() {
		It("should latch writes into the output register", func() {
			memory.Write(emu.DefaultOutputAddr, 55, true)

			Expect(memory.Output()).To(Equal(uint16(55)))
		})

		It("should hold the last value without an intervening write", func() {
			memory.Write(emu.DefaultOutputAddr, 55, true)

			Expect(memory.Output()).To(Equal(uint16(55)))
			Expect(memory.Output()).To(Equal(uint16(55)))
		})

		It("should not disturb ordinary memory", func() {
			memory.Write(emu.DefaultOutputAddr, 55, true)

			for addr := 0; addr < memory.NumWords(); addr++ {
				Expect(memory.Read(uint8(addr))).To(Equal(uint16(0)))
			}
		})

		It("should return the held output value when read", func() {
			// Reading the output address never observes memory content;
			// the read bus holds the output latch.
			memory.Write(emu.DefaultOutputAddr, 99, true)

			Expect(memory.Read(emu.DefaultOutputAddr)).To(Equal(uint16(99)))
		})
	})

	Describe("Input port", func() {
		It("should surface the externally supplied value", func() {
			memory.SetInput(1234)

			Expect(memory.Read(emu.DefaultInputAddr)).To(Equal(uint16(1234)))
		})

		It("should read zero before the first assignment", func() {
			Expect(memory.Read(emu.DefaultInputAddr)).To(Equal(uint16(0)))
		})

		It("should silently discard writes", func() {
			memory.SetInput(7)
			memory.Write(emu.DefaultInputAddr, 0xFFFF, true)

			Expect(memory.Read(emu.DefaultInputAddr)).To(Equal(uint16(7)))
		})
	})

	Describe("Undefined addresses", func() {
		It("should return the last output value on read", func() {
			memory.Write(emu.DefaultOutputAddr, 42, true)

			Expect(memory.Read(200)).To(Equal(uint16(42)))
		})

		It("should silently discard writes", func() {
			memory.Write(200, 0xFFFF, true)

			Expect(memory.Read(200)).To(Equal(uint16(0)))
			Expect(memory.Output()).To(Equal(uint16(0)))
		})
	})

	Describe("Small memory map", func() {
		BeforeEach(func() {
			memory = emu.NewMemoryWithMap(
				emu.SmallMemWords, emu.SmallOutputAddr, emu.SmallInputAddr)
		})

		It("should place the ports just above the 8-word range", func() {
			memory.Write(7, 11, true)
			memory.Write(emu.SmallOutputAddr, 22, true)
			memory.SetInput(33)

			Expect(memory.Read(7)).To(Equal(uint16(11)))
			Expect(memory.Output()).To(Equal(uint16(22)))
			Expect(memory.Read(emu.SmallInputAddr)).To(Equal(uint16(33)))
			Expect(memory.NumWords()).To(Equal(8))
		})
	})

	Describe("Reset", func() {
		It("should clear the store and both ports", func() {
			memory.Write(3, 1, true)
			memory.Write(emu.DefaultOutputAddr, 2, true)
			memory.SetInput(3)

			memory.Reset()

			Expect(memory.Read(3)).To(Equal(uint16(0)))
			Expect(memory.Output()).To(Equal(uint16(0)))
			Expect(memory.Read(emu.DefaultInputAddr)).To(Equal(uint16(0)))
		})
	})
})
