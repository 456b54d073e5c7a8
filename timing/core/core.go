// Package core provides the cycle-stepped TC16 machine model. It wraps the
// four-step sequencer to provide a high-level interface.
package core

import (
	"io"
	"sync"

	"github.com/sarchlab/tc16sim/emu"
	"github.com/sarchlab/tc16sim/timing/sequencer"
)

// Stats holds performance statistics for the core.
type Stats struct {
	// Cycles is the total number of phase steps simulated.
	Cycles uint64
	// Instructions is the number of instructions retired.
	Instructions uint64
}

// Core represents a cycle-stepped TC16 machine. It owns the register file,
// data memory, and instruction store, and serializes access to them: each
// cycle commits inside a single critical section, so an external control
// goroutine (the front panel, the event-driven clock) can step the machine
// without observing a half-committed cycle.
type Core struct {
	// Sequencer is the underlying four-step sequencer.
	Sequencer *sequencer.Sequencer

	mu      sync.Mutex
	regFile *emu.RegFile
	memory  *emu.Memory
	store   *emu.InstStore
}

// Option is a functional option for configuring the Core.
type Option func(*coreConfig)

type coreConfig struct {
	memory *emu.Memory
	trace  io.Writer
}

// WithMemory replaces the default 64-word memory.
func WithMemory(m *emu.Memory) Option {
	return func(c *coreConfig) {
		c.memory = m
	}
}

// WithTrace enables per-instruction trace output to w.
func WithTrace(w io.Writer) Option {
	return func(c *coreConfig) {
		c.trace = w
	}
}

// NewCore creates a new Core in the reset state.
func NewCore(opts ...Option) *Core {
	cfg := &coreConfig{
		memory: emu.NewMemory(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	regFile := &emu.RegFile{}
	store := emu.NewInstStore()

	var seqOpts []sequencer.Option
	if cfg.trace != nil {
		seqOpts = append(seqOpts, sequencer.WithTrace(cfg.trace))
	}

	return &Core{
		Sequencer: sequencer.NewSequencer(regFile, cfg.memory, store, seqOpts...),
		regFile:   regFile,
		memory:    cfg.memory,
		store:     store,
	}
}

// RegFile returns the core's register file.
func (c *Core) RegFile() *emu.RegFile {
	return c.regFile
}

// Memory returns the core's data memory.
func (c *Core) Memory() *emu.Memory {
	return c.memory
}

// LoadProgram writes an encoded program into the instruction store and
// resets the machine.
func (c *Core) LoadProgram(words []uint16) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Load(words); err != nil {
		return err
	}
	c.memory.Reset()
	c.Sequencer.Reset()
	return nil
}

// Tick executes one full instruction cycle.
func (c *Core) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sequencer.Tick()
}

// Phase executes a single sequencer step, for phase-granular inspection.
func (c *Core) Phase() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sequencer.Phase()
}

// Halted reports whether the machine has halted.
func (c *Core) Halted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Sequencer.Halted()
}

// Stats returns performance statistics for the core.
func (c *Core) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	seqStats := c.Sequencer.Stats()
	return Stats{
		Cycles:       seqStats.Cycles,
		Instructions: seqStats.Instructions,
	}
}

// Run executes instructions until the machine halts, up to maxInstructions
// when non-zero.
func (c *Core) Run(maxInstructions uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Sequencer.Run(maxInstructions)
}

// Reset clears the registers, comparison flag, latches, and data memory,
// and returns the sequencer to FETCH with PC=0. The loaded program is
// retained.
func (c *Core) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.memory.Reset()
	c.Sequencer.Reset()
}

// SetInput supplies a value to the memory-mapped input port.
func (c *Core) SetInput(value uint16) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.memory.SetInput(value)
}

// Output returns the value of the memory-mapped output port.
func (c *Core) Output() uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.memory.Output()
}
