package symdef

import (
	"strings"

	"github.com/relexkit/relex"
)

// Parse error codes:
const (
	UnexpectedEofError = relex.SymDefErrors + iota
	UnexpectedCharError
	UnterminatedLiteralError
	EmptyLiteralError
	NameTooLongError
	SymbolDefinedError
	UndefinedSymbolError
)

// Compile error codes:
const (
	ReferenceDepthError = relex.CompileErrors + iota
)

func eofError(p *parser, expected string) *relex.Error {
	return relex.FormatErrorPos(p.at(), UnexpectedEofError, "unexpected end of file, expected %s", expected)
}

func charError(p *parser, expected string) *relex.Error {
	return relex.FormatErrorPos(p.at(), UnexpectedCharError, "unexpected character %q, expected %s", p.peek(), expected)
}

func unterminatedLiteralError(p *parser) *relex.Error {
	return relex.FormatErrorPos(p.at(), UnterminatedLiteralError, "literal is never closed")
}

func emptyLiteralError(p *parser) *relex.Error {
	return relex.FormatErrorPos(p.at(), EmptyLiteralError, "empty literal")
}

func nameTooLongError(p *parser, length int) *relex.Error {
	return relex.FormatErrorPos(p.at(), NameTooLongError, "symbol name too long (%d bytes, at most %d allowed)", length, MaxNameLength)
}

func symbolDefinedError(p *parser, name string) *relex.Error {
	return relex.FormatErrorPos(p.at(), SymbolDefinedError, "multiple definitions for symbol %q", name)
}

func undefinedSymbolsError(names []string) *relex.Error {
	return relex.FormatError(UndefinedSymbolError, "undefined symbols: "+strings.Join(names, ", "))
}

func referenceDepthError(name string) *relex.Error {
	return relex.FormatError(ReferenceDepthError, "reference depth exceeded (%d) while expanding symbol %q", MaxReferenceDepth, name)
}
