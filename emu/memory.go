package emu

// Default memory map: 64 ordinary words with the two I/O ports aliased just
// above them. The output port sits at 64, where the bundled demo program
// stores its running sum; the input port follows at 65.
const (
	DefaultMemWords   = 64
	DefaultOutputAddr = 64
	DefaultInputAddr  = 65
)

// Small memory map variant: 8 ordinary words, ports at 8 and 9.
const (
	SmallMemWords   = 8
	SmallOutputAddr = 8
	SmallInputAddr  = 9
)

// Memory is the TC16 data memory: a small word-addressable store plus two
// memory-mapped I/O ports sharing the same 8-bit address space. Aliasing the
// ports onto memory addresses lets LD/ST double as the machine's only I/O
// mechanism.
type Memory struct {
	words      []uint16
	outputAddr uint8
	inputAddr  uint8

	// input is the most recent externally supplied input value. It reads
	// as zero before the first SetInput call.
	input uint16

	// output is the externally observable output register. It is updated
	// only by an enabled write to outputAddr and otherwise holds its last
	// value.
	output uint16
}

// NewMemory creates a Memory with the default 64-word map.
func NewMemory() *Memory {
	return NewMemoryWithMap(DefaultMemWords, DefaultOutputAddr, DefaultInputAddr)
}

// NewMemoryWithMap creates a Memory with the given ordinary-range size and
// I/O port addresses. The port addresses must lie outside the ordinary
// range.
func NewMemoryWithMap(numWords int, outputAddr, inputAddr uint8) *Memory {
	return &Memory{
		words:      make([]uint16, numWords),
		outputAddr: outputAddr,
		inputAddr:  inputAddr,
	}
}

// Read returns the word at addr. An ordinary address returns the stored
// word and the input port address returns the last externally supplied
// value. Every other address, including the output port, returns the last
// output value: the hardware leaves the read bus holding the output latch
// for undefined addresses, and that quirk is reproduced here as an explicit
// branch rather than an error.
func (m *Memory) Read(addr uint8) uint16 {
	switch {
	case int(addr) < len(m.words):
		return m.words[addr]
	case addr == m.inputAddr:
		return m.input
	default:
		return m.output
	}
}

// Write stores value at addr when enable is true. An ordinary address
// updates the store; the output port address latches value into the
// externally observable output register instead. Writes to the input port
// or any undefined address are silently discarded, matching the hardware.
func (m *Memory) Write(addr uint8, value uint16, enable bool) {
	if !enable {
		return
	}
	switch {
	case int(addr) < len(m.words):
		m.words[addr] = value
	case addr == m.outputAddr:
		m.output = value
	default:
		// Undefined address: discarded, not an error.
	}
}

// SetInput supplies a value to the input port, surfaced by reads of the
// input address until replaced.
func (m *Memory) SetInput(value uint16) {
	m.input = value
}

// Output returns the current value of the output register.
func (m *Memory) Output() uint16 {
	return m.output
}

// NumWords returns the size of the ordinary address range.
func (m *Memory) NumWords() int {
	return len(m.words)
}

// OutputAddr returns the memory-mapped output port address.
func (m *Memory) OutputAddr() uint8 {
	return m.outputAddr
}

// InputAddr returns the memory-mapped input port address.
func (m *Memory) InputAddr() uint8 {
	return m.inputAddr
}

// Reset clears the ordinary store and both port latches.
func (m *Memory) Reset() {
	for i := range m.words {
		m.words[i] = 0
	}
	m.input = 0
	m.output = 0
}
