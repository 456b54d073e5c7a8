package emu

import (
	"fmt"
	"io"

	"github.com/sarchlab/tc16sim/insts"
)

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Halted is true once the machine has fetched HLT.
	Halted bool

	// Err is set if execution could not proceed (e.g. the cycle limit was
	// reached).
	Err error
}

// Emulator executes TC16 instructions as a single-threaded
// fetch-decode-execute loop. It reproduces the same observable
// register/memory/I/O transitions as the staged sequencer in timing.
type Emulator struct {
	regFile   *RegFile
	memory    *Memory
	instStore *InstStore
	decoder   *insts.Decoder
	execUnit  *ExecUnit

	// trace receives a per-cycle line (PC, instruction word, R0-R3) when
	// non-nil. Purely observational.
	trace io.Writer

	cycleCount uint64
	maxCycles  uint64 // 0 means no limit
	halted     bool
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithTrace enables per-cycle trace output to w.
func WithTrace(w io.Writer) EmulatorOption {
	return func(e *Emulator) {
		e.trace = w
	}
}

// WithMemory replaces the default 64-word memory, e.g. with the small
// 8-word variant.
func WithMemory(m *Memory) EmulatorOption {
	return func(e *Emulator) {
		e.memory = m
	}
}

// WithMaxCycles sets the maximum number of cycles Run will execute.
// A value of 0 means no limit.
func WithMaxCycles(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxCycles = max
	}
}

// NewEmulator creates a new TC16 emulator in the reset state.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		regFile:   &RegFile{},
		memory:    NewMemory(),
		instStore: NewInstStore(),
		decoder:   insts.NewDecoder(),
		execUnit:  NewExecUnit(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's data memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// InstStore returns the emulator's instruction store.
func (e *Emulator) InstStore() *InstStore {
	return e.instStore
}

// CycleCount returns the number of instructions executed since reset.
func (e *Emulator) CycleCount() uint64 {
	return e.cycleCount
}

// Halted reports whether the machine has halted.
func (e *Emulator) Halted() bool {
	return e.halted
}

// SetInput supplies a value to the memory-mapped input port.
func (e *Emulator) SetInput(value uint16) {
	e.memory.SetInput(value)
}

// Output returns the value of the memory-mapped output port.
func (e *Emulator) Output() uint16 {
	return e.memory.Output()
}

// LoadProgram writes an encoded program into the instruction store and
// resets the machine. A program longer than the store is rejected with a
// load-time error.
func (e *Emulator) LoadProgram(words []uint16) error {
	if err := e.instStore.Load(words); err != nil {
		return err
	}
	e.Reset()
	return nil
}

// Reset returns the machine to its initial state: registers, PC, and
// comparison flag cleared, memory and ports cleared, cycle count zeroed.
// The loaded program is retained.
func (e *Emulator) Reset() {
	e.regFile.Reset()
	e.memory.Reset()
	e.cycleCount = 0
	e.halted = false
}

// Step executes a single instruction: fetch, decode, operand read, execute,
// and commit, in order. State mutation happens only in the commit at the
// end, after every input has been read.
func (e *Emulator) Step() StepResult {
	if e.halted {
		return StepResult{Halted: true}
	}

	// Fetch.
	pc := e.regFile.PC
	word := e.instStore.Fetch(pc)

	if e.trace != nil {
		_, _ = fmt.Fprintf(e.trace, " %5d  %04x  %5d  %5d  %5d  %5d\n",
			pc, word,
			e.regFile.Read(0), e.regFile.Read(1),
			e.regFile.Read(2), e.regFile.Read(3))
	}

	// Decode and operand read.
	inst := e.decoder.Decode(word)
	a := e.regFile.Read(inst.RegA)
	b := e.regFile.Read(inst.RegB)
	memValue := e.memory.Read(inst.Imm)

	// Execute.
	res := e.execUnit.Execute(inst, a, b, memValue, pc, e.regFile.FlagEQ)

	// Write-back. The address used here is the one decoded above from this
	// same instruction; nothing between decode and commit can change it.
	e.regFile.Commit(inst.RegA, res.Value, res.RegWrite)
	e.memory.Write(inst.Imm, res.MemValue, res.MemWrite)
	e.regFile.FlagEQ = res.FlagEQ
	e.regFile.PC = res.NextPC
	e.cycleCount++

	if res.Halt {
		e.halted = true
		return StepResult{Halted: true}
	}

	return StepResult{}
}

// Run executes instructions until the machine halts. If a cycle limit is
// configured and reached first, Run returns an error.
func (e *Emulator) Run() error {
	for !e.halted {
		if e.maxCycles > 0 && e.cycleCount >= e.maxCycles {
			return fmt.Errorf("max cycles reached after %d cycles (PC=%d)",
				e.cycleCount, e.regFile.PC)
		}
		e.Step()
	}
	return nil
}
