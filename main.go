// Package main provides the entry point for TC16Sim.
// TC16Sim is a behavioral simulator for the TC16 teaching CPU.
//
// For the full CLI, use: go run ./cmd/tc16sim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("TC16Sim - TC16 Teaching CPU Simulator")
	fmt.Println("")
	fmt.Println("Usage: tc16sim [options] <program.hex>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -timing    Run on the four-step cycle sequencer")
	fmt.Println("  -events    Drive the sequencer from the Akita event engine")
	fmt.Println("  -console   Open the interactive front panel")
	fmt.Println("  -demo      Run the built-in sum-1..10 demo program")
	fmt.Println("  -trace     Print a per-cycle trace")
	fmt.Println("  -config    Path to machine configuration JSON file")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/tc16sim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/tc16sim' instead.")
	}
}
