package assembler

import (
	"reflect"
	"testing"

	"dcpu16vm/machine"
)

func assembleOK(t *testing.T, src string) Result {
	t.Helper()
	r := Assemble([]byte(src), nil)
	if !r.Success {
		t.Fatalf("assembly failed for %q: %+v", src, r.Diagnostics)
	}
	return r
}

func TestAssembleMinimalSet(t *testing.T) {
	r := assembleOK(t, "SET A, 0x30")
	want := []uint16{0x7C01, 0x0030}
	if !reflect.DeepEqual(r.Words, want) {
		t.Fatalf("got %#04x, want %#04x", r.Words, want)
	}

	m := machine.New()
	m.Load(r.Words)
	m.MaxSteps = 1
	machine.Run(m, nil)
	if m.Reg[machine.RegA] != 0x30 {
		t.Errorf("A = %#04x, want 0x30", m.Reg[machine.RegA])
	}
	if m.PC != 2 {
		t.Errorf("PC = %d, want 2", m.PC)
	}
}

// Short literal. The illustrative word 0xA401 from some DCPU-16 references is inconsistent
// with its own per-field breakdown (a_code=0, b_code=0x25, op=1) and with
// the general op|a<<4|b<<10 encoding validated by the forward-label and
// JSR scenarios below; 0x9401 is what that formula actually produces.
func TestAssembleShortLiteral(t *testing.T) {
	r := assembleOK(t, "SET A, 5")
	want := []uint16{0x9401}
	if !reflect.DeepEqual(r.Words, want) {
		t.Fatalf("got %#04x, want %#04x", r.Words, want)
	}

	m := machine.New()
	m.Load(r.Words)
	m.MaxSteps = 1
	machine.Run(m, nil)
	if m.Reg[machine.RegA] != 5 {
		t.Errorf("A = %d, want 5", m.Reg[machine.RegA])
	}
	if m.PC != 1 {
		t.Errorf("PC = %d, want 1", m.PC)
	}
}

func TestAssembleForwardLabel(t *testing.T) {
	src := "SET PC, end\n:end SUB PC, 1\n"
	r := assembleOK(t, src)
	want := []uint16{0x7DC1, 0x0002, 0x85C3}
	if !reflect.DeepEqual(r.Words, want) {
		t.Fatalf("got %#04x, want %#04x", r.Words, want)
	}
	if addr, ok := r.Symbols.Resolve("end"); !ok || addr != 2 {
		t.Fatalf("expected symbol end=2, got %d (ok=%v)", addr, ok)
	}

	m := machine.New()
	m.Load(r.Words)
	m.MaxSteps = 4
	machine.Run(m, nil)
	if m.PC != 2 {
		t.Errorf("PC = %d, want 2 (infinite loop at end)", m.PC)
	}
	if m.O != 0 {
		t.Errorf("O = %#04x, want 0", m.O)
	}
}

func TestAssembleConditionalSkip(t *testing.T) {
	src := "SET A, 1\nIFE A, 2\nSET A, 9\nSET B, 7\n"
	r := assembleOK(t, src)

	m := machine.New()
	m.Load(r.Words)
	m.MaxSteps = 4
	machine.Run(m, nil)
	if m.Reg[machine.RegA] != 1 {
		t.Errorf("A = %d, want 1 (SET A,9 should have been skipped)", m.Reg[machine.RegA])
	}
	if m.Reg[machine.RegB] != 7 {
		t.Errorf("B = %d, want 7", m.Reg[machine.RegB])
	}
}

func TestAssembleJSRAndStack(t *testing.T) {
	src := "JSR sub\n:sub SET A, 1\n"
	r := assembleOK(t, src)

	m := machine.New()
	m.Load(r.Words)

	machine.Step(m, nil)
	if m.SP != 0xFFFF {
		t.Errorf("SP = %#04x, want 0xFFFF after JSR", m.SP)
	}
	if m.RAM[m.SP] != 2 {
		t.Errorf("memory[SP] = %#04x, want 0x0002", m.RAM[m.SP])
	}
	subAddr, ok := r.Symbols.Resolve("sub")
	if !ok {
		t.Fatal("expected symbol sub to be defined")
	}
	if m.PC != subAddr {
		t.Errorf("PC = %#04x, want sub address %#04x", m.PC, subAddr)
	}

	machine.Step(m, nil)
	if m.Reg[machine.RegA] != 1 {
		t.Errorf("A = %d, want 1", m.Reg[machine.RegA])
	}
}

func TestAssembleRedefinition(t *testing.T) {
	src := ":x SET A, 0\n:x SET A, 1\n"
	r := Assemble([]byte(src), nil)
	if r.Success {
		t.Fatal("expected assembly to fail on redefinition")
	}
	var redefs []string
	for _, d := range r.Diagnostics {
		if d.Kind.String() == "redefinition" {
			redefs = append(redefs, d.Name)
		}
	}
	if len(redefs) != 1 || redefs[0] != "x" {
		t.Fatalf("expected exactly one redefinition diagnostic for 'x', got %v", redefs)
	}
}

