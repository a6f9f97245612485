// Command dcpu16as assembles a DCPU-16 assembly source file into a flat
// binary of little-endian 16-bit words.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"

	"dcpu16vm/assembler"
	"dcpu16vm/parser"
)

// stderrHandler reports diagnostics to stderr as they arrive, the host's
// only policy over the four diagnostic families the core reports through
// parser.Handler.
type stderrHandler struct {
	src []byte
}

func (h stderrHandler) print(kind string, pos parser.Pos, msg string) {
	line, col := parser.LineCol(h.src, pos)
	fmt.Fprintf(os.Stderr, "%d:%d: %s error: %s\n", line, col, kind, msg)
}

func (h stderrHandler) HandleLexicalError(d parser.Diagnostic) {
	h.print("lexical", d.Pos, d.Message)
}

func (h stderrHandler) HandleSyntaxError(d parser.Diagnostic) {
	h.print("syntax", d.Pos, d.Message)
}

func (h stderrHandler) HandleSemanticError(d parser.Diagnostic) {
	h.print("semantic", d.Pos, d.Message)
}

func (h stderrHandler) HandleRedefinition(d parser.Diagnostic) {
	line, col := parser.LineCol(h.src, d.Pos)
	otherLine, otherCol := parser.LineCol(h.src, d.OtherPos)
	fmt.Fprintf(os.Stderr, "%d:%d: redefinition error: label %q already defined at %d:%d\n",
		line, col, d.Name, otherLine, otherCol)
}

func main() {
	outPath := flag.String("o", "", "output binary path (default: input path with .bin suffix)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: dcpu16as [-o output] <source.asm>")
		os.Exit(2)
	}
	inPath := flag.Arg(0)

	src, err := os.ReadFile(inPath) // #nosec G304 -- path supplied by the operator invoking the CLI
	if err != nil {
		fmt.Fprintf(os.Stderr, "dcpu16as: %v\n", err)
		os.Exit(1)
	}

	result := assembler.Assemble(src, stderrHandler{src: src})
	if !result.Success {
		fmt.Fprintf(os.Stderr, "dcpu16as: assembly failed with %d diagnostic(s)\n", len(result.Diagnostics))
		os.Exit(1)
	}

	out := *outPath
	if out == "" {
		out = inPath + ".bin"
	}

	buf := make([]byte, len(result.Words)*2)
	for i, w := range result.Words {
		binary.LittleEndian.PutUint16(buf[i*2:], w)
	}

	if err := os.WriteFile(out, buf, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "dcpu16as: %v\n", err)
		os.Exit(1)
	}
}
