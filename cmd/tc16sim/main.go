// Package main provides the entry point for TC16Sim.
// TC16Sim is a behavioral simulator for the TC16 teaching CPU.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/tc16sim/config"
	"github.com/sarchlab/tc16sim/console"
	"github.com/sarchlab/tc16sim/emu"
	"github.com/sarchlab/tc16sim/insts"
	"github.com/sarchlab/tc16sim/loader"
	"github.com/sarchlab/tc16sim/timing/clock"
	"github.com/sarchlab/tc16sim/timing/core"
)

var (
	timing     = flag.Bool("timing", false, "Run on the four-step cycle sequencer")
	events     = flag.Bool("events", false, "Drive the sequencer from the Akita event engine (implies -timing)")
	panel      = flag.Bool("console", false, "Open the interactive front panel (implies -timing)")
	demo       = flag.Bool("demo", false, "Run the built-in sum-1..10 demo program")
	trace      = flag.Bool("trace", false, "Print a per-cycle trace (PC, word, R0-R3)")
	configPath = flag.String("config", "", "Path to machine configuration JSON file")
	small      = flag.Bool("small", false, "Use the small 8-word memory map")
	input      = flag.Uint("input", 0, "Value presented at the memory-mapped input port")
	maxInsts   = flag.Uint64("max-insts", 10_000_000, "Instruction limit (0 = unlimited)")
)

func main() {
	flag.Parse()

	words, err := programWords()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	cfg, err := machineConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	memory := emu.NewMemoryWithMap(cfg.MemWords, cfg.OutputAddr, cfg.InputAddr)

	if *panel || *timing || *events {
		if err := runTiming(words, memory); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runEmulation(words, memory); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// programWords resolves the instruction stream: the built-in demo or a hex
// program file argument.
func programWords() ([]uint16, error) {
	if *demo {
		return insts.SumToTen(emu.DefaultOutputAddr), nil
	}

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: tc16sim [options] <program.hex>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	prog, err := loader.Load(flag.Arg(0))
	if err != nil {
		return nil, err
	}
	return prog.Words, nil
}

func machineConfig() (*config.MachineConfig, error) {
	if *configPath != "" {
		return config.LoadConfig(*configPath)
	}
	if *small {
		return config.SmallConfig(), nil
	}
	return config.DefaultConfig(), nil
}

// runEmulation runs the program on the functional emulator.
func runEmulation(words []uint16, memory *emu.Memory) error {
	opts := []emu.EmulatorOption{
		emu.WithMemory(memory),
		emu.WithMaxCycles(*maxInsts),
	}
	if *trace {
		opts = append(opts, emu.WithTrace(os.Stdout))
	}

	emulator := emu.NewEmulator(opts...)
	if err := emulator.LoadProgram(words); err != nil {
		return err
	}
	emulator.SetInput(uint16(*input))

	if err := emulator.Run(); err != nil {
		return err
	}

	fmt.Printf("Output: %d\n", emulator.Output())
	fmt.Printf("Instructions executed: %d\n", emulator.CycleCount())
	return nil
}

// runTiming runs the program on the cycle sequencer, optionally under the
// Akita event engine or the interactive front panel.
func runTiming(words []uint16, memory *emu.Memory) error {
	opts := []core.Option{core.WithMemory(memory)}
	if *trace {
		opts = append(opts, core.WithTrace(os.Stdout))
	}

	c := core.NewCore(opts...)
	if err := c.LoadProgram(words); err != nil {
		return err
	}
	c.SetInput(uint16(*input))

	if *panel {
		return console.NewPanel(c, words).Run()
	}

	if *events {
		engine := sim.NewSerialEngine()
		driver := clock.NewDriver(engine, c, 1*sim.MHz,
			clock.WithMaxInstructions(*maxInsts))
		driver.Start()
		if err := engine.Run(); err != nil {
			return fmt.Errorf("event engine error: %w", err)
		}
	} else {
		if err := c.Run(*maxInsts); err != nil {
			return err
		}
	}

	stats := c.Stats()
	fmt.Printf("Output: %d\n", c.Output())
	fmt.Printf("Cycles: %d, Instructions: %d\n", stats.Cycles, stats.Instructions)
	return nil
}
