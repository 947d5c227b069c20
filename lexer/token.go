package lexer

import (
	"github.com/relexkit/relex/source"
)

// Token is one lexeme fetched from a source.
type Token struct {
	symbol int
	name   string
	text   []byte
	pos    source.Pos
}

func NewToken(symbol int, name string, text []byte, pos source.Pos) *Token {
	return &Token{symbol, name, text, pos}
}

// Symbol returns the symbol table index of the matched lexeme, or
// EofSymbol.
func (t *Token) Symbol() int {
	return t.symbol
}

// Name returns the symbol name from the grammar file.
func (t *Token) Name() string {
	return t.name
}

// Text returns the matched bytes as a string.
func (t *Token) Text() string {
	return string(t.text)
}

// Len returns the matched length in bytes.
func (t *Token) Len() int {
	return len(t.text)
}

func (t *Token) Source() *source.Source {
	return t.pos.Source()
}

func (t *Token) SourceName() string {
	return t.pos.SourceName()
}

func (t *Token) Line() int {
	return t.pos.Line()
}

func (t *Token) Col() int {
	return t.pos.Col()
}

const (
	// EofSymbol is the symbol index of the token returned at end of input.
	EofSymbol = -1

	// EofName is the symbol name for EofSymbol.
	EofName = "-end-of-file-"
)

// EofToken creates the token marking the end of a source.
func EofToken(s *source.Source) *Token {
	end := 0
	if s != nil {
		end = s.Len()
	}
	return &Token{symbol: EofSymbol, name: EofName, pos: source.NewPos(s, end)}
}

// IsEof reports whether the token marks the end of a source.
func (t *Token) IsEof() bool {
	return t.symbol == EofSymbol
}
