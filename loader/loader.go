// Package loader reads TC16 program images: text files with one 16-bit hex
// instruction word per line.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/tc16sim/emu"
)

// Program represents a loaded TC16 program ready for execution.
type Program struct {
	// Words contains the encoded instruction words in execution order.
	Words []uint16
}

// Load reads and validates a TC16 program image from path.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open program file: %w", err)
	}
	defer func() { _ = f.Close() }()

	prog, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return prog, nil
}

// Parse reads a program image from r. Each line carries one instruction
// word in hexadecimal (an optional 0x prefix is accepted). Blank lines are
// skipped, and anything after '#' or ';' on a line is a comment.
//
// Malformed words and over-length programs are load-time errors; once a
// word is accepted here, execution can never fault on it (every 16-bit word
// decodes).
func Parse(r io.Reader) (*Program, error) {
	prog := &Program{}
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if i := strings.IndexAny(line, "#;"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		line = strings.TrimPrefix(line, "0x")
		word, err := strconv.ParseUint(line, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("line %d: malformed instruction word %q: %w",
				lineNo, line, err)
		}

		if len(prog.Words) >= emu.InstStoreSize {
			return nil, fmt.Errorf("line %d: program exceeds instruction store size (%d words)",
				lineNo, emu.InstStoreSize)
		}
		prog.Words = append(prog.Words, uint16(word))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}

	if len(prog.Words) == 0 {
		return nil, fmt.Errorf("program is empty")
	}

	return prog, nil
}
