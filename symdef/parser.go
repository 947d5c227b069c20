// Package symdef converts symbol definition files to automatons.
//
// A definition file is a sequence of statements of the form
//
//	@NAME expression ;
//
// where the @ prefix marks a lexeme (token-producing) symbol and a bare name
// a fragment used only inside other patterns. An expression is an alternation
// of sequences separated by |; sequence elements are quoted literals,
// [c1-c2] byte ranges, $name references to other symbols, or parenthesized
// sub-expressions, each optionally followed by * for zero-or-more repetition.
// A # starts a comment running to the end of the line.
package symdef

import (
	"github.com/relexkit/relex/logger"
	"github.com/relexkit/relex/source"
)

const (
	commentChar  = '#'
	lexemeChar   = '@'
	branchChar   = '|'
	groupStart   = '('
	groupEnd     = ')'
	stmtEndChar  = ';'
	literalChar  = '"'
	escapeChar   = '\\'
	loopChar     = '*'
	refChar      = '$'
	rangeStart   = '['
	rangeSepChar = '-'
	rangeEndChar = ']'
)

// ParseString parses a symbol definition file and returns the symbol table.
// Returns nil and *relex.Error on error.
func ParseString(name, content string) (*Table, error) {
	return Parse(source.New(name, []byte(content)))
}

// ParseBytes parses a symbol definition file and returns the symbol table.
// Returns nil and *relex.Error on error.
func ParseBytes(name string, content []byte) (*Table, error) {
	return Parse(source.New(name, content))
}

// Parse parses a symbol definition file and returns the symbol table.
// Parsing stops at the first error; there is no recovery. Returns nil and
// *relex.Error on error.
func Parse(s *source.Source) (*Table, error) {
	logger.Debugf("parsing symbol file %q", s.Name())
	p := &parser{src: s, buf: s.Content(), table: NewTable()}

	for p.skipInsignificant(); p.hasMore(); p.skipInsignificant() {
		e := p.parseSymbol()
		if e != nil {
			return nil, e
		}
	}

	names := p.table.Undefined()
	if len(names) > 0 {
		return nil, undefinedSymbolsError(names)
	}

	logger.Debugf("parsed %d symbols from %q", p.table.Len(), s.Name())
	return p.table, nil
}

type parser struct {
	src   *source.Source
	buf   []byte
	pos   int
	table *Table
}

func (p *parser) at() source.Pos {
	return source.NewPos(p.src, p.pos)
}

func (p *parser) hasMore() bool {
	return p.pos < len(p.buf)
}

func (p *parser) peek() byte {
	return p.buf[p.pos]
}

func (p *parser) skip() {
	p.pos++
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentifier(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

func (p *parser) skipWhile(pred func(byte) bool) {
	for p.hasMore() && pred(p.peek()) {
		p.skip()
	}
}

func (p *parser) skipWhitespace() {
	p.skipWhile(isWhitespace)
}

func (p *parser) skipComment() {
	for p.hasMore() && p.peek() != '\n' {
		p.skip()
	}
	if p.hasMore() {
		p.skip()
	}
}

// skipInsignificant consumes any run of whitespace and comments.
func (p *parser) skipInsignificant() {
	for {
		p.skipWhitespace()
		if !p.hasMore() || p.peek() != commentChar {
			return
		}
		p.skipComment()
	}
}

// symbolName consumes an identifier and resolves it in the table, creating
// an undefined entry on first sight. Used for both definitions and $name
// references; enforces the name length bound.
func (p *parser) symbolName(expected string) (*Symbol, error) {
	start := p.pos
	p.skipWhile(isIdentifier)
	length := p.pos - start
	if length == 0 {
		if !p.hasMore() {
			return nil, eofError(p, expected)
		}
		return nil, charError(p, expected)
	}
	if length > MaxNameLength {
		return nil, nameTooLongError(p, length)
	}

	return p.table.GetOrCreate(string(p.buf[start:p.pos])), nil
}

func (p *parser) parseSymbol() error {
	lexeme := false
	if p.peek() == lexemeChar {
		lexeme = true
		p.skip()
	}

	sym, e := p.symbolName("symbol name")
	if e != nil {
		return e
	}
	if sym.Expr != nil {
		return symbolDefinedError(p, sym.Name)
	}
	sym.Lexeme = lexeme

	p.skipInsignificant()
	if !p.hasMore() {
		return eofError(p, "symbol definition")
	}

	expr, e := p.parseBranch()
	if e != nil {
		return e
	}
	if p.peek() != stmtEndChar {
		return charError(p, "statement end")
	}
	p.skip()

	sym.Expr = expr
	logger.Debugf("defined symbol %q (lexeme: %v)", sym.Name, sym.Lexeme)
	return nil
}

// parseBranch parses an alternation of one or more sequences. On success the
// next character is the statement or group terminator.
func (p *parser) parseBranch() (*Node, error) {
	b := treeBuilder{op: OpBranch}

	for {
		n, e := p.parseSequence()
		if e != nil {
			return nil, e
		}
		b.append(n)

		if p.peek() != branchChar {
			return b.root, nil
		}
		p.skip()
	}
}

// parseSequence parses one or more loop items. On success the next character
// is a branch separator or the statement or group terminator.
func (p *parser) parseSequence() (*Node, error) {
	b := treeBuilder{op: OpSeq}

	for {
		p.skipWhitespace()
		if !p.hasMore() {
			return nil, eofError(p, "expression or statement end")
		}

		c := p.peek()
		if c == stmtEndChar || c == groupEnd || c == branchChar {
			if b.root == nil {
				return nil, charError(p, "expression")
			}
			return b.root, nil
		}

		n, e := p.parseLoopItem()
		if e != nil {
			return nil, e
		}
		b.append(n)
	}
}

func (p *parser) parseLoopItem() (*Node, error) {
	body, e := p.parseAtom()
	if e != nil {
		return nil, e
	}

	p.skipWhitespace()
	if !p.hasMore() {
		return nil, eofError(p, "loop, expression or statement end")
	}
	if p.peek() != loopChar {
		return body, nil
	}
	p.skip()

	return newLoop(body), nil
}

func (p *parser) parseAtom() (*Node, error) {
	switch p.peek() {
	case literalChar:
		return p.parseLiteral()
	case refChar:
		return p.parseReference()
	case groupStart:
		return p.parseGroup()
	case rangeStart:
		return p.parseRange()
	default:
		return nil, charError(p, "literal, range, reference or group")
	}
}

// parseLiteral turns a quoted literal into a sequence of single-byte ranges.
// A backslash makes the following byte literal; there is no control
// character translation.
func (p *parser) parseLiteral() (*Node, error) {
	p.skip()
	b := treeBuilder{op: OpSeq}

	escaped := false
	for {
		if !p.hasMore() {
			return nil, unterminatedLiteralError(p)
		}

		c := p.peek()
		switch {
		case !escaped && c == escapeChar:
			escaped = true
		case !escaped && c == literalChar:
			if b.root == nil {
				return nil, emptyLiteralError(p)
			}
			p.skip()
			return b.root, nil
		default:
			b.append(newRange(int(c), int(c)+1))
			escaped = false
		}
		p.skip()
	}
}

// parseRangeBound consumes one range bound character, honoring escapes.
func (p *parser) parseRangeBound() (int, error) {
	if !p.hasMore() {
		return 0, eofError(p, "character range bound")
	}

	c := p.peek()
	if c == escapeChar {
		p.skip()
		if !p.hasMore() {
			return 0, eofError(p, "escaped character range bound")
		}
		c = p.peek()
	} else if c == rangeEndChar || c == rangeSepChar {
		return 0, charError(p, "character range bound")
	}
	p.skip()
	return int(c), nil
}

func (p *parser) parseRange() (*Node, error) {
	p.skip()
	p.skipWhitespace()

	lo, e := p.parseRangeBound()
	if e != nil {
		return nil, e
	}

	p.skipWhitespace()
	if !p.hasMore() {
		return nil, eofError(p, "range separator")
	}
	if p.peek() != rangeSepChar {
		return nil, charError(p, "range separator")
	}
	p.skip()

	p.skipWhitespace()
	hi, e := p.parseRangeBound()
	if e != nil {
		return nil, e
	}

	p.skipWhitespace()
	if !p.hasMore() {
		return nil, eofError(p, "range end")
	}
	if p.peek() != rangeEndChar {
		return nil, charError(p, "range end")
	}
	p.skip()

	return newRange(lo, hi+1), nil
}

func (p *parser) parseReference() (*Node, error) {
	p.skip()
	sym, e := p.symbolName("referenced symbol name")
	if e != nil {
		return nil, e
	}
	return newRef(sym), nil
}

func (p *parser) parseGroup() (*Node, error) {
	p.skip()

	n, e := p.parseBranch()
	if e != nil {
		return nil, e
	}
	if p.peek() != groupEnd {
		return nil, charError(p, "group end")
	}
	p.skip()
	return n, nil
}
