package symdef

import (
	"github.com/relexkit/relex/logger"
	"github.com/relexkit/relex/nfa"
	"github.com/relexkit/relex/source"
)

// MaxReferenceDepth bounds in-place expansion of symbol references during
// compilation. Exceeding it is the compile-time defense against cyclic
// definitions.
const MaxReferenceDepth = 256

// Build parses and compiles a symbol definition file in one step.
func Build(s *source.Source) (*nfa.Automaton, error) {
	t, e := Parse(s)
	if e != nil {
		return nil, e
	}
	return Compile(t)
}

// BuildString parses and compiles a symbol definition file in one step.
func BuildString(name, content string) (*nfa.Automaton, error) {
	return Build(source.New(name, []byte(content)))
}

// BuildBytes parses and compiles a symbol definition file in one step.
func BuildBytes(name string, content []byte) (*nfa.Automaton, error) {
	return Build(source.New(name, content))
}

// Compile translates the completed symbol table into one shared automaton.
// Symbols are compiled in table order behind a dispatch chain: failing to
// match symbol i falls through to symbol i+1, and the last symbol's failure
// edge is terminal. Each symbol's exit state carries that symbol's table
// index as its accept tag, so table order is the matching tie-break order.
//
// The table is consumed read-only and may be discarded afterwards; the
// returned automaton holds no references into it.
func Compile(t *Table) (*nfa.Automaton, error) {
	// Parse rejects undefined symbols already; a hand-built table gets the
	// same error here instead of a nil pattern further down.
	if names := t.Undefined(); len(names) > 0 {
		return nil, undefinedSymbolsError(names)
	}

	c := &compiler{au: nfa.New()}

	prev := nfa.None
	for _, sym := range t.Symbols() {
		index := c.au.AddSymbol(sym.Name, sym.Lexeme)

		dispatch := c.au.AddState()
		if prev == nfa.None {
			c.au.SetStart(dispatch)
		} else {
			c.au.SetOtherwise(prev, dispatch)
		}

		first, last, e := c.fragment(sym.Expr, sym.Name, 0)
		if e != nil {
			return nil, e
		}

		accept := c.au.AddState()
		c.au.SetAccept(accept, index)
		c.au.SetNext(dispatch, first)
		c.au.SetNext(last, accept)

		prev = dispatch
	}

	logger.Debugf("automaton built: %d states for %d symbols", c.au.Len(), c.au.SymbolCount())
	return c.au, nil
}

type compiler struct {
	au *nfa.Automaton
}

// fragment emits the automaton fragment for one AST node, Thompson style,
// returning its entry and exit states. The exit state's Next edge is always
// free for the caller to splice. symbol names the pattern being compiled,
// for error reporting; depth counts reference expansions on the way here.
func (c *compiler) fragment(n *Node, symbol string, depth int) (first, last nfa.StateID, e error) {
	switch n.Op {
	case OpRange:
		id := c.au.AddState()
		c.au.SetRange(id, n.Lo, n.Hi)
		return id, id, nil

	case OpSeq:
		first, left, e := c.fragment(n.Left, symbol, depth)
		if e != nil {
			return nfa.None, nfa.None, e
		}
		right, last, e := c.fragment(n.Right, symbol, depth)
		if e != nil {
			return nfa.None, nfa.None, e
		}
		c.au.SetNext(left, right)
		return first, last, nil

	case OpBranch:
		// Entry is an epsilon fork: try the left fragment, fall back to
		// the right one at the same input position. Both exits join one
		// shared epsilon exit.
		leftFirst, leftLast, e := c.fragment(n.Left, symbol, depth)
		if e != nil {
			return nfa.None, nfa.None, e
		}
		rightFirst, rightLast, e := c.fragment(n.Right, symbol, depth)
		if e != nil {
			return nfa.None, nfa.None, e
		}

		fork := c.au.AddState()
		c.au.SetNext(fork, leftFirst)
		c.au.SetOtherwise(fork, rightFirst)

		exit := c.au.AddState()
		c.au.SetNext(leftLast, exit)
		c.au.SetNext(rightLast, exit)
		return fork, exit, nil

	case OpLoop:
		// One fork serves as both the entry (zero occurrences skip
		// straight to the exit) and the repeat point the body exit loops
		// back to. Re-entering the body is preferred over leaving, which
		// keeps repetition greedy.
		bodyFirst, bodyLast, e := c.fragment(n.Left, symbol, depth)
		if e != nil {
			return nfa.None, nfa.None, e
		}

		exit := c.au.AddState()
		fork := c.au.AddState()
		c.au.SetNext(fork, bodyFirst)
		c.au.SetOtherwise(fork, exit)
		c.au.SetNext(bodyLast, fork)
		return fork, exit, nil

	case OpRef:
		// The referenced pattern is expanded in place: every reference
		// site gets its own fresh fragment, never a shared one. The depth
		// bound is what keeps cyclic definitions from expanding forever.
		if depth >= MaxReferenceDepth {
			return nfa.None, nfa.None, referenceDepthError(symbol)
		}
		return c.fragment(n.Sym.Expr, symbol, depth+1)

	default:
		panic("unknown AST node type")
	}
}
