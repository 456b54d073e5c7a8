package loader_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tc16sim/emu"
	"github.com/sarchlab/tc16sim/loader"
)

var _ = Describe("Parse", func() {
	It("should parse one hex word per line", func() {
		prog, err := loader.Parse(strings.NewReader("4005\n0a20\n7800\n"))

		Expect(err).To(BeNil())
		Expect(prog.Words).To(Equal([]uint16{0x4005, 0x0A20, 0x7800}))
	})

	It("should accept an optional 0x prefix", func() {
		prog, err := loader.Parse(strings.NewReader("0x4005\n0x7800\n"))

		Expect(err).To(BeNil())
		Expect(prog.Words).To(Equal([]uint16{0x4005, 0x7800}))
	})

	It("should skip blank lines and comments", func() {
		src := strings.Join([]string{
			"# sum demo",
			"",
			"4005  ; LDL R0, 5",
			"   ",
			"7800",
		}, "\n")

		prog, err := loader.Parse(strings.NewReader(src))

		Expect(err).To(BeNil())
		Expect(prog.Words).To(Equal([]uint16{0x4005, 0x7800}))
	})

	It("should reject a malformed word with its line number", func() {
		_, err := loader.Parse(strings.NewReader("4005\nnope\n"))

		Expect(err).NotTo(BeNil())
		Expect(err.Error()).To(ContainSubstring("line 2"))
	})

	It("should reject a word wider than 16 bits", func() {
		_, err := loader.Parse(strings.NewReader("12345\n"))

		Expect(err).NotTo(BeNil())
	})

	It("should reject an empty program", func() {
		_, err := loader.Parse(strings.NewReader("# only comments\n\n"))

		Expect(err).NotTo(BeNil())
		Expect(err.Error()).To(ContainSubstring("empty"))
	})

	It("should reject a program longer than the instruction store", func() {
		var sb strings.Builder
		for i := 0; i <= emu.InstStoreSize; i++ {
			sb.WriteString("7800\n")
		}

		_, err := loader.Parse(strings.NewReader(sb.String()))

		Expect(err).NotTo(BeNil())
		Expect(err.Error()).To(ContainSubstring("instruction store"))
	})

	It("should accept a program that exactly fills the store", func() {
		var sb strings.Builder
		for i := 0; i < emu.InstStoreSize; i++ {
			sb.WriteString("7800\n")
		}

		prog, err := loader.Parse(strings.NewReader(sb.String()))

		Expect(err).To(BeNil())
		Expect(prog.Words).To(HaveLen(emu.InstStoreSize))
	})
})

var _ = Describe("Load", func() {
	It("should load a program from a file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "sum.hex")
		err := os.WriteFile(path, []byte("4005\n7800\n"), 0o644)
		Expect(err).To(BeNil())

		prog, err := loader.Load(path)

		Expect(err).To(BeNil())
		Expect(prog.Words).To(Equal([]uint16{0x4005, 0x7800}))
	})

	It("should report a missing file", func() {
		_, err := loader.Load(filepath.Join(GinkgoT().TempDir(), "missing.hex"))

		Expect(err).NotTo(BeNil())
	})

	It("should include the path in parse errors", func() {
		path := filepath.Join(GinkgoT().TempDir(), "bad.hex")
		err := os.WriteFile(path, []byte("nope\n"), 0o644)
		Expect(err).To(BeNil())

		_, err = loader.Load(path)

		Expect(err).NotTo(BeNil())
		Expect(err.Error()).To(ContainSubstring("bad.hex"))
	})
})
