package sequencer

import (
	"fmt"
	"io"

	"github.com/sarchlab/tc16sim/emu"
)

// State identifies the sequencer's current step.
type State int

// Sequencer states. Exactly one instruction is in flight at a time; the
// four steps run strictly in order with no skipping and no overlap between
// instructions.
const (
	StateFetch State = iota
	StateDecodeRead
	StateExecute
	StateWriteback
	StateHalted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateFetch:
		return "FETCH"
	case StateDecodeRead:
		return "DECODE_READ"
	case StateExecute:
		return "EXECUTE"
	case StateWriteback:
		return "WRITEBACK"
	case StateHalted:
		return "HALTED"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Statistics holds performance counters for the sequencer.
type Statistics struct {
	// Cycles is the number of phase steps executed (four per instruction).
	Cycles uint64
	// Instructions is the number of instructions retired.
	Instructions uint64
}

// Sequencer orchestrates one instruction's four logical steps per cycle.
// Each step's outputs become the next step's inputs through the FD, DX, and
// XW latch registers; in particular the memory address computed at decode
// travels unchanged through execute into write-back, which is the single
// hazard the staged design exists to avoid.
type Sequencer struct {
	fetchStage     *FetchStage
	decodeStage    *DecodeStage
	executeStage   *ExecuteStage
	writebackStage *WritebackStage

	// Shared resources, exclusively owned by the sequencer for the
	// duration of a cycle.
	regFile *emu.RegFile
	memory  *emu.Memory
	store   *emu.InstStore

	// Inter-stage latches.
	fd FDRegister
	dx DXRegister
	xw XWRegister

	state State
	stats Statistics
	trace io.Writer
}

// Option is a functional option for configuring the Sequencer.
type Option func(*Sequencer)

// WithTrace enables per-instruction trace output to w.
func WithTrace(w io.Writer) Option {
	return func(s *Sequencer) {
		s.trace = w
	}
}

// NewSequencer creates a sequencer over the given machine state, in the
// reset condition: FETCH state with PC=0.
func NewSequencer(regFile *emu.RegFile, memory *emu.Memory, store *emu.InstStore, opts ...Option) *Sequencer {
	s := &Sequencer{
		fetchStage:     NewFetchStage(store),
		decodeStage:    NewDecodeStage(regFile, memory),
		executeStage:   NewExecuteStage(),
		writebackStage: NewWritebackStage(regFile, memory),
		regFile:        regFile,
		memory:         memory,
		store:          store,
		state:          StateFetch,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// State returns the sequencer's current state.
func (s *Sequencer) State() State {
	return s.state
}

// Halted reports whether the sequencer has reached the terminal state.
func (s *Sequencer) Halted() bool {
	return s.state == StateHalted
}

// Stats returns the performance counters.
func (s *Sequencer) Stats() Statistics {
	return s.stats
}

// PC returns the current program counter.
func (s *Sequencer) PC() uint8 {
	return s.regFile.PC
}

// FD returns the fetch/decode latch register.
func (s *Sequencer) FD() *FDRegister {
	return &s.fd
}

// DX returns the decode/execute latch register.
func (s *Sequencer) DX() *DXRegister {
	return &s.dx
}

// XW returns the execute/write-back latch register.
func (s *Sequencer) XW() *XWRegister {
	return &s.xw
}

// Phase advances the sequencer by one step. Transitions are unconditional
// and strictly ordered; a halted sequencer stays halted.
func (s *Sequencer) Phase() {
	switch s.state {
	case StateFetch:
		s.fd = s.fetchStage.Fetch(s.regFile.PC)
		s.traceFetch()
		s.state = StateDecodeRead
	case StateDecodeRead:
		s.dx = s.decodeStage.DecodeRead(s.fd)
		s.state = StateExecute
	case StateExecute:
		s.xw = s.executeStage.Execute(s.dx, s.regFile.FlagEQ)
		s.state = StateWriteback
	case StateWriteback:
		s.writebackStage.Writeback(s.xw)
		s.stats.Instructions++
		if s.xw.Halt {
			s.state = StateHalted
		} else {
			s.state = StateFetch
		}
	case StateHalted:
		return
	}
	s.stats.Cycles++
}

// Tick runs one full instruction: the four steps back-to-back within one
// logical tick. If the sequencer is mid-instruction from manual Phase
// calls, Tick completes that instruction. On a halted sequencer Tick is a
// no-op.
func (s *Sequencer) Tick() {
	if s.state == StateHalted {
		return
	}
	for {
		s.Phase()
		if s.state == StateFetch || s.state == StateHalted {
			return
		}
	}
}

// Run executes instructions until the sequencer halts, up to maxInstructions
// when it is non-zero. It returns an error if the limit is reached first.
func (s *Sequencer) Run(maxInstructions uint64) error {
	for !s.Halted() {
		if maxInstructions > 0 && s.stats.Instructions >= maxInstructions {
			return fmt.Errorf("max instructions reached after %d instructions (PC=%d)",
				s.stats.Instructions, s.regFile.PC)
		}
		s.Tick()
	}
	return nil
}

// Reset returns the sequencer to the FETCH state with PC=0, registers and
// comparison flag cleared, and all latches emptied, regardless of prior
// state. Data memory is the caller's to reset.
func (s *Sequencer) Reset() {
	s.regFile.Reset()
	s.fd.Clear()
	s.dx.Clear()
	s.xw.Clear()
	s.state = StateFetch
	s.stats = Statistics{}
}

func (s *Sequencer) traceFetch() {
	if s.trace == nil {
		return
	}
	_, _ = fmt.Fprintf(s.trace, " %5d  %04x  %5d  %5d  %5d  %5d\n",
		s.fd.PC, s.fd.Word,
		s.regFile.Read(0), s.regFile.Read(1),
		s.regFile.Read(2), s.regFile.Read(3))
}
