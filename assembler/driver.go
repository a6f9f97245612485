// Package assembler drives the two-phase translation of DCPU-16 assembly
// source into a flat word vector: phase 1 walks the parsed statements to
// assign addresses and build the symbol table, phase 2 re-walks them to
// encode each statement now that every label resolves.
package assembler

import (
	"dcpu16vm/parser"
)

// Result is the outcome of an Assemble call. Words holds the encoded
// program regardless of Success — a caller that wants best-effort output
// alongside diagnostics (e.g. an editor's live-assemble-as-you-type) can
// still inspect it, though a non-successful Result's Words omits lines
// that failed to parse and holds 0 wherever a label failed to resolve.
type Result struct {
	Words       []uint16
	Diagnostics []parser.Diagnostic
	Symbols     *parser.SymbolTable
	Success     bool
}

type addressedLine struct {
	line parser.Line
	addr uint16
}

// Assemble runs both phases over src and reports every diagnostic through
// h as it is produced, in addition to returning them in the Result.
func Assemble(src []byte, h parser.Handler) Result {
	collector := &parser.CollectingHandler{}
	combined := dualHandler{a: h, b: collector}

	scanner := parser.NewScanner(src, combined)
	p := parser.NewParser(scanner, combined)

	var lines []addressedLine
	symbols := parser.NewSymbolTable()

	// Phase 1: address layout and symbol table construction. Every
	// argument's size is resolver-independent (labels always size as a
	// word-immediate), so this pass never needs to know what a label
	// resolves to — only where it is defined.
	var addr uint16
	for !p.AtEOF() {
		ln := p.ParseLine()
		if ln.HasLabel {
			if ok, otherPos := symbols.Define(ln.Label, addr, ln.LabelPos); !ok {
				parser.Report(combined, &parser.Diagnostic{
					Kind:     parser.DiagRedefinition,
					Pos:      ln.LabelPos,
					Name:     ln.Label,
					OtherPos: otherPos,
					Message:  "label redefined: " + ln.Label,
				})
			}
		}
		lines = append(lines, addressedLine{line: ln, addr: addr})
		if ln.Statement != nil {
			addr += ln.Statement.SizeInMemory()
		}
	}

	// Phase 2: encode each statement against the now-complete, read-only
	// symbol table.
	var words []uint16
	for _, al := range lines {
		if al.line.Statement == nil {
			continue
		}
		w, diags := al.line.Statement.Encode(symbols)
		for i := range diags {
			d := diags[i]
			parser.Report(combined, &d)
		}
		words = append(words, w...)
	}

	return Result{
		Words:       words,
		Diagnostics: collector.Diagnostics,
		Symbols:     symbols,
		Success:     !collector.HasErrors(),
	}
}

// dualHandler fans every diagnostic out to two Handlers: the caller's own
// (which may be nil) and an internal CollectingHandler used to compute
// Result.Success and Result.Diagnostics regardless of what the caller
// supplied.
type dualHandler struct {
	a, b parser.Handler
}

func (d dualHandler) HandleLexicalError(diag parser.Diagnostic) {
	if d.a != nil {
		d.a.HandleLexicalError(diag)
	}
	d.b.HandleLexicalError(diag)
}

func (d dualHandler) HandleSyntaxError(diag parser.Diagnostic) {
	if d.a != nil {
		d.a.HandleSyntaxError(diag)
	}
	d.b.HandleSyntaxError(diag)
}

func (d dualHandler) HandleSemanticError(diag parser.Diagnostic) {
	if d.a != nil {
		d.a.HandleSemanticError(diag)
	}
	d.b.HandleSemanticError(diag)
}

func (d dualHandler) HandleRedefinition(diag parser.Diagnostic) {
	if d.a != nil {
		d.a.HandleRedefinition(diag)
	}
	d.b.HandleRedefinition(diag)
}
