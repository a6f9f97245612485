package parser

// SymbolTable maps label names to their assigned memory addresses. It is
// built incrementally during phase 1 (one Define call per label
// definition, address layout already known at definition time since
// every argument's size is resolver-independent) and then used read-only
// as a Resolver during phase 2 encoding.
type SymbolTable struct {
	addrs map[string]uint16
	pos   map[string]Pos
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		addrs: make(map[string]uint16),
		pos:   make(map[string]Pos),
	}
}

// Define records name at addr, defined at pos. ok is false if name was
// already defined; in that case otherPos is the earlier definition site
// and the table is left unchanged.
func (t *SymbolTable) Define(name string, addr uint16, pos Pos) (ok bool, otherPos Pos) {
	if p, exists := t.pos[name]; exists {
		return false, p
	}
	t.addrs[name] = addr
	t.pos[name] = pos
	return true, 0
}

// Resolve implements Resolver.
func (t *SymbolTable) Resolve(name string) (uint16, bool) {
	addr, ok := t.addrs[name]
	return addr, ok
}

// DefinedAt returns the definition position of name, if any.
func (t *SymbolTable) DefinedAt(name string) (Pos, bool) {
	p, ok := t.pos[name]
	return p, ok
}

// Names returns every defined label name, in no particular order.
func (t *SymbolTable) Names() []string {
	names := make([]string, 0, len(t.addrs))
	for n := range t.addrs {
		names = append(names, n)
	}
	return names
}
