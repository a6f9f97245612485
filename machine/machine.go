// Package machine implements the DCPU-16-style virtual machine: flat
// 16-bit-word memory, eight general registers plus SP/PC/O, and the
// conditional-skip latch that basic instructions set and read.
package machine

const (
	RegA = iota
	RegB
	RegC
	RegX
	RegY
	RegZ
	RegI
	RegJ
)

const memSize = 1 << 16

// Machine holds the entire architectural state: general registers,
// special registers, RAM, and the skip latch. There is no separate CPU/
// memory split — the instruction set has no segmented addressing, so one
// struct covers both.
type Machine struct {
	Reg [8]uint16
	PC  uint16
	SP  uint16
	O   uint16

	RAM [memSize]uint16

	skip bool

	Steps    uint64
	MaxSteps uint64 // 0 means unlimited
}

// New returns a Machine with all registers, PC, SP, and O zeroed — their
// power-on state.
func New() *Machine {
	m := &Machine{}
	m.Reset()
	return m
}

// Reset zeroes every register and the skip latch and rewinds SP to 0,
// leaving RAM untouched — callers reload a program with Load after Reset.
func (m *Machine) Reset() {
	m.Reg = [8]uint16{}
	m.PC = 0
	m.SP = 0
	m.O = 0
	m.skip = false
	m.Steps = 0
}

// Load copies words into RAM starting at address 0, the program's
// natural load address, and leaves PC/SP/registers untouched so a caller
// can Load after an explicit Reset without it being implicit in Load
// itself.
func (m *Machine) Load(words []uint16) {
	copy(m.RAM[:], words)
}

// ReadWord and WriteWord wrap around the 16-bit address space, matching
// the flat, unsegmented memory model this machine uses.
func (m *Machine) ReadWord(addr uint16) uint16 {
	return m.RAM[addr]
}

func (m *Machine) WriteWord(addr, value uint16) {
	m.RAM[addr] = value
}

// Hook lets a host observe execution one instruction at a time. Step
// calls StartInstruction before fetching; a false return stops execution
// before the current instruction runs. A single-method interface so a
// host can implement tracing or a step limit without pulling in a full
// debugger surface.
type Hook interface {
	StartInstruction() bool
}
