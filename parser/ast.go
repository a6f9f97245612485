package parser

// Resolver supplies label addresses during phase-2 encoding. The symbol
// table built during phase 1 is the only implementation, but keeping this
// as an interface lets the Argument/Statement sizing methods stay pure
// (no table access) while only Encode and the extra-word value need one.
type Resolver interface {
	Resolve(name string) (addr uint16, ok bool)
}

// ---- Constant -------------------------------------------------------

// Constant is either a bare numeric literal or a label reference, the two
// things a DCPU-16 argument's "next word" can hold.
type Constant interface {
	// Value returns the constant's 16-bit value. A label constant needs r
	// to resolve; a numeric constant ignores it and never fails.
	Value(r Resolver) (uint16, *Diagnostic)
	Pos() Pos
}

type numericConstant struct {
	value uint16
	pos   Pos
}

func NewNumericConstant(value uint16, pos Pos) Constant {
	return numericConstant{value: value, pos: pos}
}

func (c numericConstant) Value(Resolver) (uint16, *Diagnostic) { return c.value, nil }
func (c numericConstant) Pos() Pos                             { return c.pos }

type labelConstant struct {
	name string
	pos  Pos
}

func NewLabelConstant(name string, pos Pos) Constant {
	return labelConstant{name: name, pos: pos}
}

func (c labelConstant) Value(r Resolver) (uint16, *Diagnostic) {
	addr, ok := r.Resolve(c.name)
	if !ok {
		return 0, &Diagnostic{Kind: DiagSemantic, Pos: c.pos, Message: "undefined label: " + c.name}
	}
	return addr, nil
}

func (c labelConstant) Pos() Pos { return c.pos }

func (c labelConstant) Name() string { return c.name }

// ---- Argument --------------------------------------------------------

// Argument is one operand of a basic or non-basic instruction. The
// concrete variants mirror the operand-decode table: plain register,
// register-indirect, register-indirect-plus-literal, a handful of named
// stack/special-register forms, bracketed-constant (word-indirect), bare
// constant (word-immediate or short literal), and PUSH/POP/PEEK.
type Argument interface {
	// TypeCode returns the 6-bit operand field value this argument
	// encodes to. It never needs a resolver: a label constant always
	// takes the word-immediate or word-indirect slot regardless of what
	// it resolves to, so the operand code is resolver-independent.
	TypeCode() uint16
	// HasExtraWord reports whether this argument consumes a following
	// memory word. Like TypeCode this is resolver-free, which is what
	// lets phase 1 size a line without a completed symbol table.
	HasExtraWord() bool
	// ExtraWord returns the word to emit following the instruction word,
	// if HasExtraWord is true. Only this call needs resolution.
	ExtraWord(r Resolver) (uint16, *Diagnostic)
	Pos() Pos
}

// ArgRegister is a plain register operand: A, B, C, X, Y, Z, I, J.
type ArgRegister struct {
	Reg uint16
	P   Pos
}

func (a ArgRegister) TypeCode() uint16                        { return a.Reg }
func (a ArgRegister) HasExtraWord() bool                      { return false }
func (a ArgRegister) ExtraWord(Resolver) (uint16, *Diagnostic) { return 0, nil }
func (a ArgRegister) Pos() Pos                                 { return a.P }

// ArgRegisterIndirect is [register].
type ArgRegisterIndirect struct {
	Reg uint16
	P   Pos
}

func (a ArgRegisterIndirect) TypeCode() uint16                        { return 0x08 + a.Reg }
func (a ArgRegisterIndirect) HasExtraWord() bool                      { return false }
func (a ArgRegisterIndirect) ExtraWord(Resolver) (uint16, *Diagnostic) { return 0, nil }
func (a ArgRegisterIndirect) Pos() Pos                                 { return a.P }

// ArgRegisterOffset is [constant + register] (source order: the constant
// comes first, per the grammar's `const ['+' reg]` production).
type ArgRegisterOffset struct {
	Reg    uint16
	Offset Constant
	P      Pos
}

func (a ArgRegisterOffset) TypeCode() uint16   { return 0x10 + a.Reg }
func (a ArgRegisterOffset) HasExtraWord() bool { return true }
func (a ArgRegisterOffset) ExtraWord(r Resolver) (uint16, *Diagnostic) {
	return a.Offset.Value(r)
}
func (a ArgRegisterOffset) Pos() Pos { return a.P }

// ArgStackWord is PUSH, POP, or PEEK, each its own fixed operand code
// (0x18 POP, 0x19 PEEK, 0x1A PUSH).
type ArgStackWord struct {
	Code uint16
	P    Pos
}

func (a ArgStackWord) TypeCode() uint16                        { return a.Code }
func (a ArgStackWord) HasExtraWord() bool                      { return false }
func (a ArgStackWord) ExtraWord(Resolver) (uint16, *Diagnostic) { return 0, nil }
func (a ArgStackWord) Pos() Pos                                 { return a.P }

// ArgSpecialReg is SP, PC, or O.
type ArgSpecialReg struct {
	Code uint16 // 0x1B SP, 0x1C PC, 0x1D O
	P    Pos
}

func (a ArgSpecialReg) TypeCode() uint16                        { return a.Code }
func (a ArgSpecialReg) HasExtraWord() bool                      { return false }
func (a ArgSpecialReg) ExtraWord(Resolver) (uint16, *Diagnostic) { return 0, nil }
func (a ArgSpecialReg) Pos() Pos                                 { return a.P }

// ArgIndirect is [constant], word-indirect addressing via a following word.
type ArgIndirect struct {
	Inner Constant
	P     Pos
}

func (a ArgIndirect) TypeCode() uint16   { return 0x1E }
func (a ArgIndirect) HasExtraWord() bool { return true }
func (a ArgIndirect) ExtraWord(r Resolver) (uint16, *Diagnostic) {
	return a.Inner.Value(r)
}
func (a ArgIndirect) Pos() Pos { return a.P }

// ArgLiteral is a bare constant, either a label or a number. Short
// literals (0 to 0x1F inclusive for a resolved numeric constant) encode
// into the operand code itself with no extra word; everything else takes
// the word-immediate slot 0x1F plus a following word. Because TypeCode
// must stay resolver-free, a label constant is always treated as
// word-immediate — it cannot be known to fit in the short-literal range
// until resolved, and only a resolver-free sizing pass can tell whether
// a constant is small enough for the short-literal optimization.
type ArgLiteral struct {
	Value Constant
	P     Pos
}

func (a ArgLiteral) shortValue() (uint16, bool) {
	nc, ok := a.Value.(numericConstant)
	if !ok {
		return 0, false
	}
	if nc.value > 0x1F {
		return 0, false
	}
	return nc.value, true
}

func (a ArgLiteral) TypeCode() uint16 {
	if v, ok := a.shortValue(); ok {
		return 0x20 + v
	}
	return 0x1F
}

func (a ArgLiteral) HasExtraWord() bool {
	_, ok := a.shortValue()
	return !ok
}

func (a ArgLiteral) ExtraWord(r Resolver) (uint16, *Diagnostic) {
	return a.Value.Value(r)
}

func (a ArgLiteral) Pos() Pos { return a.P }

// ---- Statement -------------------------------------------------------

// Statement is one assembled line: a basic (two-operand) instruction, a
// non-basic (single-operand) instruction, a DAT data directive, or a RESV
// block of zeroed words.
type Statement interface {
	// SizeInMemory returns the number of words this statement occupies,
	// computable without a symbol table (phase 1).
	SizeInMemory() uint16
	// Encode emits the statement's words using a completed symbol table
	// (phase 2). Returns diagnostics for any unresolved label.
	Encode(r Resolver) ([]uint16, []Diagnostic)
	Pos() Pos
}

// BinaryStatement is a two-operand basic instruction: SET, ADD, SUB, MUL,
// DIV, MOD, SHL, SHR, AND, BOR, XOR, IFE, IFN, IFG, IFB.
type BinaryStatement struct {
	Opcode uint16
	A, B   Argument
	P      Pos
}

func (s BinaryStatement) SizeInMemory() uint16 {
	n := uint16(1)
	if s.A.HasExtraWord() {
		n++
	}
	if s.B.HasExtraWord() {
		n++
	}
	return n
}

func (s BinaryStatement) Encode(r Resolver) ([]uint16, []Diagnostic) {
	var diags []Diagnostic
	instr := s.Opcode | (s.A.TypeCode() << 4) | (s.B.TypeCode() << 10)
	words := []uint16{instr}
	if s.A.HasExtraWord() {
		w, d := s.A.ExtraWord(r)
		if d != nil {
			diags = append(diags, *d)
		}
		words = append(words, w)
	}
	if s.B.HasExtraWord() {
		w, d := s.B.ExtraWord(r)
		if d != nil {
			diags = append(diags, *d)
		}
		words = append(words, w)
	}
	return words, diags
}

func (s BinaryStatement) Pos() Pos { return s.P }

// UnaryStatement is a single-operand non-basic instruction: JSR.
type UnaryStatement struct {
	NonBasicOpcode uint16
	A              Argument
	P              Pos
}

func (s UnaryStatement) SizeInMemory() uint16 {
	n := uint16(1)
	if s.A.HasExtraWord() {
		n++
	}
	return n
}

func (s UnaryStatement) Encode(r Resolver) ([]uint16, []Diagnostic) {
	var diags []Diagnostic
	instr := (s.NonBasicOpcode << 4) | (s.A.TypeCode() << 10)
	words := []uint16{instr}
	if s.A.HasExtraWord() {
		w, d := s.A.ExtraWord(r)
		if d != nil {
			diags = append(diags, *d)
		}
		words = append(words, w)
	}
	return words, diags
}

func (s UnaryStatement) Pos() Pos { return s.P }

// DataStatement is a DAT directive: a sequence of numeric and string
// elements, each string expanding to one word per character.
type DataStatement struct {
	Elements []DataElement
	P        Pos
}

// DataElement is one comma-separated item inside a DAT directive.
type DataElement interface {
	Size() uint16
	Words(r Resolver) ([]uint16, []Diagnostic)
}

type NumericDataElement struct {
	Value Constant
}

func (e NumericDataElement) Size() uint16 { return 1 }
func (e NumericDataElement) Words(r Resolver) ([]uint16, []Diagnostic) {
	v, d := e.Value.Value(r)
	if d != nil {
		return []uint16{0}, []Diagnostic{*d}
	}
	return []uint16{v}, nil
}

type StringDataElement struct {
	Text string
}

func (e StringDataElement) Size() uint16 { return uint16(len(e.Text)) }
func (e StringDataElement) Words(Resolver) ([]uint16, []Diagnostic) {
	words := make([]uint16, len(e.Text))
	for i, ch := range []byte(e.Text) {
		words[i] = uint16(ch)
	}
	return words, nil
}

func (s DataStatement) SizeInMemory() uint16 {
	var n uint16
	for _, e := range s.Elements {
		n += e.Size()
	}
	return n
}

func (s DataStatement) Encode(r Resolver) ([]uint16, []Diagnostic) {
	var words []uint16
	var diags []Diagnostic
	for _, e := range s.Elements {
		w, d := e.Words(r)
		words = append(words, w...)
		diags = append(diags, d...)
	}
	return words, diags
}

func (s DataStatement) Pos() Pos { return s.P }

// ReserveStatement is a RESV directive reserving Count zeroed words. The
// count is a plain word known at parse time, not a Constant — unlike
// every other directive's operands, RESV's argument is never a label, so
// phase 1 can size it without deferring to the symbol table.
type ReserveStatement struct {
	Count uint16
	P     Pos
}

func (s ReserveStatement) SizeInMemory() uint16 {
	return s.Count
}

func (s ReserveStatement) Encode(Resolver) ([]uint16, []Diagnostic) {
	return make([]uint16, s.Count), nil
}

func (s ReserveStatement) Pos() Pos { return s.P }

// Line is one parsed logical source line: an optional label definition
// followed by an optional statement. Blank and comment-only lines are
// passed over; only end of input parses to a Line with neither set.
type Line struct {
	Label     string
	LabelPos  Pos
	HasLabel  bool
	Statement Statement
}
