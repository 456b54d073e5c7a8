// Package config holds the TC16 machine configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// MachineConfig selects the memory map of the simulated machine. Two stock
// variants exist, a 64-word map and an 8-word map; the default is the
// 64-word map the bundled demo program targets.
type MachineConfig struct {
	// MemWords is the size of the ordinary data memory range, in 16-bit
	// words. Addresses 0..MemWords-1 are ordinary storage.
	MemWords int `json:"mem_words"`

	// OutputAddr is the memory-mapped output port address. A store to this
	// address latches the externally observable output register.
	OutputAddr uint8 `json:"output_addr"`

	// InputAddr is the memory-mapped input port address. A load from this
	// address returns the last externally supplied input value.
	InputAddr uint8 `json:"input_addr"`
}

// DefaultConfig returns the 64-word memory map with the I/O ports aliased
// at 64 (output) and 65 (input).
func DefaultConfig() *MachineConfig {
	return &MachineConfig{
		MemWords:   64,
		OutputAddr: 64,
		InputAddr:  65,
	}
}

// SmallConfig returns the 8-word memory map variant with the ports at 8
// (output) and 9 (input).
func SmallConfig() *MachineConfig {
	return &MachineConfig{
		MemWords:   8,
		OutputAddr: 8,
		InputAddr:  9,
	}
}

// Validate checks the configuration for internal consistency.
func (c *MachineConfig) Validate() error {
	if c.MemWords <= 0 {
		return fmt.Errorf("mem_words must be positive, got %d", c.MemWords)
	}
	if c.MemWords > 254 {
		return fmt.Errorf("mem_words must leave room for the two I/O ports in the 8-bit address space, got %d",
			c.MemWords)
	}
	if int(c.OutputAddr) < c.MemWords {
		return fmt.Errorf("output_addr %d aliases ordinary memory (range 0-%d)",
			c.OutputAddr, c.MemWords-1)
	}
	if int(c.InputAddr) < c.MemWords {
		return fmt.Errorf("input_addr %d aliases ordinary memory (range 0-%d)",
			c.InputAddr, c.MemWords-1)
	}
	if c.InputAddr == c.OutputAddr {
		return fmt.Errorf("input_addr and output_addr must differ, both are %d", c.InputAddr)
	}
	return nil
}

// LoadConfig loads a MachineConfig from a JSON file. Fields omitted from
// the file keep their default values.
func LoadConfig(path string) (*MachineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse machine config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid machine config: %w", err)
	}
	return cfg, nil
}
