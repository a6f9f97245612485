// Command dcpu16vm loads an assembled DCPU-16 binary and executes it.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"

	"dcpu16vm/config"
	"dcpu16vm/machine"
)

// traceHook prints the PC of every instruction before it executes, then
// always allows execution to continue; it is the StartInstruction side
// of the single-method machine.Hook the interpreter depends on.
type traceHook struct {
	m       *machine.Machine
	enabled bool
}

func (h traceHook) StartInstruction() bool {
	if h.enabled {
		fmt.Fprintf(os.Stderr, "pc=%04x steps=%d\n", h.m.PC, h.m.Steps)
	}
	return true
}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	maxSteps := flag.Uint64("max-steps", 0, "override the configured step budget (0 = keep the configured budget)")
	trace := flag.Bool("trace", false, "print PC before every instruction")
	dumpRegs := flag.Bool("dump-registers", false, "print final register state")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: dcpu16vm [flags] <program.bin>")
		os.Exit(2)
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dcpu16vm: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *maxSteps != 0 {
		cfg.Execution.MaxSteps = *maxSteps
	}
	if *trace {
		cfg.Execution.Trace = true
	}

	raw, err := os.ReadFile(flag.Arg(0)) // #nosec G304 -- path supplied by the operator invoking the CLI
	if err != nil {
		fmt.Fprintf(os.Stderr, "dcpu16vm: %v\n", err)
		os.Exit(1)
	}
	if len(raw)%2 != 0 {
		fmt.Fprintln(os.Stderr, "dcpu16vm: program file has an odd number of bytes")
		os.Exit(1)
	}

	words := make([]uint16, len(raw)/2)
	for i := range words {
		words[i] = binary.LittleEndian.Uint16(raw[i*2:])
	}

	m := machine.New()
	m.MaxSteps = cfg.Execution.MaxSteps
	m.Load(words)

	hook := traceHook{m: m, enabled: cfg.Execution.Trace}
	executed := machine.Run(m, hook)

	if *dumpRegs {
		fmt.Printf("executed %d instructions\n", executed)
		fmt.Printf("A=%04x B=%04x C=%04x X=%04x Y=%04x Z=%04x I=%04x J=%04x\n",
			m.Reg[machine.RegA], m.Reg[machine.RegB], m.Reg[machine.RegC], m.Reg[machine.RegX],
			m.Reg[machine.RegY], m.Reg[machine.RegZ], m.Reg[machine.RegI], m.Reg[machine.RegJ])
		fmt.Printf("PC=%04x SP=%04x O=%04x\n", m.PC, m.SP, m.O)
	}
}
