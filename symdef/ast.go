package symdef

// Op is the AST node variant tag.
type Op int

const (
	// OpSeq concatenates Left then Right.
	OpSeq Op = iota
	// OpBranch tries Left, then Right (alternation).
	OpBranch
	// OpRange matches one byte b with Lo <= b < Hi.
	OpRange
	// OpLoop repeats Left zero or more times.
	OpLoop
	// OpRef expands the pattern of Sym in place.
	OpRef
)

// Node is a symbol pattern node. Nodes are owned by the symbol whose
// definition produced them, except that OpRef holds a non-owning link into
// the symbol table, which makes the overall structure a directed graph:
// several reference nodes may point at the same symbol, including
// (indirectly) the one being defined.
type Node struct {
	Op Op

	// Left and Right are the children of OpSeq and OpBranch; Left alone is
	// the body of OpLoop.
	Left, Right *Node

	// Lo and Hi are the OpRange bounds, Lo inclusive, Hi exclusive.
	Lo, Hi int

	// Sym is the OpRef target.
	Sym *Symbol
}

func newRange(lo, hi int) *Node {
	return &Node{Op: OpRange, Lo: lo, Hi: hi}
}

func newLoop(body *Node) *Node {
	return &Node{Op: OpLoop, Left: body}
}

func newRef(sym *Symbol) *Node {
	return &Node{Op: OpRef, Sym: sym}
}

// treeBuilder accumulates a right-leaning chain of OpSeq or OpBranch nodes.
// Appending only ever attaches fresh wrapper nodes: the current rightmost
// leaf is wrapped, never rewritten, so nodes already reachable elsewhere
// stay untouched.
type treeBuilder struct {
	op   Op
	root *Node
	last *Node // deepest wrapper; its Right is the rightmost leaf
}

func (b *treeBuilder) append(n *Node) {
	if b.root == nil {
		b.root = n
		return
	}
	if b.last == nil {
		b.root = &Node{Op: b.op, Left: b.root, Right: n}
		b.last = b.root
		return
	}
	wrap := &Node{Op: b.op, Left: b.last.Right, Right: n}
	b.last.Right = wrap
	b.last = wrap
}

// MaxNameLength bounds symbol names; longer names are a parse error, never
// silently truncated.
const MaxNameLength = 128

// Symbol is one named pattern. Expr stays nil from the first reference until
// the defining statement is parsed; any symbol still undefined at the end of
// the file fails the parse.
type Symbol struct {
	Name   string
	Lexeme bool
	Expr   *Node
}

// Table is the ordered symbol collection. Insertion order is preserved and
// becomes the tie-break priority during matching.
type Table struct {
	symbols []*Symbol
	index   map[string]int
}

func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Symbols returns the symbols in definition order. The slice is shared, not
// copied; callers must not modify it.
func (t *Table) Symbols() []*Symbol {
	return t.symbols
}

func (t *Table) Len() int {
	return len(t.symbols)
}

// Lookup returns the named symbol or nil.
func (t *Table) Lookup(name string) *Symbol {
	i, has := t.index[name]
	if !has {
		return nil
	}
	return t.symbols[i]
}

// GetOrCreate returns the named symbol, creating an undefined entry at the
// end of the table if it does not exist yet. Forward references are legal,
// so references and definitions share this path.
func (t *Table) GetOrCreate(name string) *Symbol {
	i, has := t.index[name]
	if has {
		return t.symbols[i]
	}

	sym := &Symbol{Name: name}
	t.index[name] = len(t.symbols)
	t.symbols = append(t.symbols, sym)
	return sym
}

// Undefined returns the names of all symbols that were referenced but never
// defined, in table order.
func (t *Table) Undefined() []string {
	var names []string
	for _, sym := range t.symbols {
		if sym.Expr == nil {
			names = append(names, sym.Name)
		}
	}
	return names
}
