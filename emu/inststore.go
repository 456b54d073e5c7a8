package emu

import "fmt"

// InstStoreSize is the number of instruction words in the store. It matches
// the range of the 8-bit program counter, so PC arithmetic wraps modulo the
// store size by construction.
const InstStoreSize = 256

// InstStore is the read-only instruction memory, addressed by the program
// counter. Words are written once at program-load time and never mutated
// during execution.
type InstStore struct {
	rom [InstStoreSize]uint16
	len int
}

// NewInstStore creates an empty instruction store.
func NewInstStore() *InstStore {
	return &InstStore{}
}

// Load writes an encoded program into the store, replacing any previous
// contents. Unused words are cleared to zero. A program longer than the
// store is a load-time error.
func (s *InstStore) Load(words []uint16) error {
	if len(words) > InstStoreSize {
		return fmt.Errorf("program too long: %d words (instruction store holds %d)",
			len(words), InstStoreSize)
	}
	s.rom = [InstStoreSize]uint16{}
	copy(s.rom[:], words)
	s.len = len(words)
	return nil
}

// Fetch returns the instruction word at pc.
func (s *InstStore) Fetch(pc uint8) uint16 {
	return s.rom[pc]
}

// Len returns the number of words loaded by the last Load call.
func (s *InstStore) Len() int {
	return s.len
}
