// Package clock drives the TC16 core from the Akita event engine. It
// stands in for the hardware's clock-waveform generator: one event per
// machine cycle, scheduled at the configured frequency, with the four phase
// steps of that cycle executed back-to-back when the event fires.
package clock

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/tc16sim/timing/core"
)

// cycleEvent triggers one machine cycle on the core.
type cycleEvent struct {
	*sim.EventBase
}

// Driver schedules machine cycles on an Akita event engine until the core
// halts or the instruction limit is reached.
type Driver struct {
	engine sim.Engine
	core   *core.Core
	freq   sim.Freq

	// maxInstructions bounds the run; 0 means no limit.
	maxInstructions uint64
}

// DriverOption is a functional option for configuring the Driver.
type DriverOption func(*Driver)

// WithMaxInstructions bounds the number of instructions the driver will
// schedule. A value of 0 means no limit.
func WithMaxInstructions(max uint64) DriverOption {
	return func(d *Driver) {
		d.maxInstructions = max
	}
}

// NewDriver creates a driver that ticks c on engine at freq.
func NewDriver(engine sim.Engine, c *core.Core, freq sim.Freq, opts ...DriverOption) *Driver {
	d := &Driver{
		engine: engine,
		core:   c,
		freq:   freq,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Start schedules the first cycle. The caller then runs the engine.
func (d *Driver) Start() {
	d.schedule(d.freq.NextTick(d.engine.CurrentTime()))
}

// Handle executes one machine cycle and schedules the next one.
func (d *Driver) Handle(e sim.Event) error {
	d.core.Tick()

	if d.core.Halted() {
		return nil
	}
	if d.maxInstructions > 0 && d.core.Stats().Instructions >= d.maxInstructions {
		return nil
	}

	d.schedule(e.Time() + d.freq.Period())
	return nil
}

func (d *Driver) schedule(t sim.VTimeInSec) {
	d.engine.Schedule(cycleEvent{
		EventBase: sim.NewEventBase(t, d),
	})
}
