package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tc16sim/emu"
)

var _ = Describe("RegFile", func() {
	var regFile *emu.RegFile

	BeforeEach(func() {
		regFile = &emu.RegFile{}
	})

	It("should commit a value when the write-enable is asserted", func() {
		regFile.Commit(3, 0x1234, true)

		Expect(regFile.Read(3)).To(Equal(uint16(0x1234)))
	})

	It("should leave all registers untouched when the write-enable is deasserted", func() {
		for i := uint8(0); i < emu.NumRegs; i++ {
			regFile.Commit(i, uint16(i)+100, true)
		}
		before := regFile.R

		regFile.Commit(2, 0xDEAD, false)

		Expect(regFile.R).To(Equal(before))
	})

	It("should clear registers, PC, and flag on reset", func() {
		regFile.Commit(0, 42, true)
		regFile.PC = 17
		regFile.FlagEQ = true

		regFile.Reset()

		for i := uint8(0); i < emu.NumRegs; i++ {
			Expect(regFile.Read(i)).To(Equal(uint16(0)))
		}
		Expect(regFile.PC).To(Equal(uint8(0)))
		Expect(regFile.FlagEQ).To(BeFalse())
	})
})

var _ = Describe("InstStore", func() {
	var store *emu.InstStore

	BeforeEach(func() {
		store = emu.NewInstStore()
	})

	It("should fetch loaded words", func() {
		Expect(store.Load([]uint16{0x1111, 0x2222})).To(Succeed())

		Expect(store.Fetch(0)).To(Equal(uint16(0x1111)))
		Expect(store.Fetch(1)).To(Equal(uint16(0x2222)))
		Expect(store.Len()).To(Equal(2))
	})

	It("should clear previous contents on load", func() {
		Expect(store.Load([]uint16{0x1111, 0x2222})).To(Succeed())
		Expect(store.Load([]uint16{0x3333})).To(Succeed())

		Expect(store.Fetch(0)).To(Equal(uint16(0x3333)))
		Expect(store.Fetch(1)).To(Equal(uint16(0)))
	})

	It("should reject a program longer than the store", func() {
		words := make([]uint16, emu.InstStoreSize+1)

		err := store.Load(words)

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("too long"))
	})

	It("should accept a program that exactly fills the store", func() {
		words := make([]uint16, emu.InstStoreSize)

		Expect(store.Load(words)).To(Succeed())
	})
})
