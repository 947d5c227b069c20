/*
Package relex is a regular-expression lexer engine for query-language front ends.

Consists of subpackages:
  - cmd/relex: console utility checking grammar files and dumping token streams;
  - engine: holds the current automaton and republishes it atomically on reload;
  - lexer: token stream built on top of the matcher;
  - logger: asynchronous leveled log sink used by all subpackages;
  - nfa: shared-state-table automaton and the matcher interpreting it;
  - source: defines source buffer with line/column lookup;
  - symdef: converts symbol definition files to automatons.

Typical usage is:

1. Describe the tokens of the target language in a symbol definition file.
Each statement binds a name to a pattern built from literals, byte ranges,
alternation, grouping, zero-or-more repetition, and references to other symbols.
Names prefixed with @ are lexemes (produce tokens), bare names are fragments
used only inside other patterns.

2. Compile the file with symdef.Build, obtaining an nfa.Automaton. The
automaton is immutable and may be shared by any number of goroutines.

3. Feed input to lexer.Lexer for a token stream, or call Automaton.Match
directly for single maximal-munch matches.
*/
package relex

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	SymDefErrors  = 1   // used by symdef parser
	CompileErrors = 101 // used by symdef compiler
	MatchErrors   = 201 // used by nfa matcher
	LexicalErrors = 301 // used by lexer
	EngineErrors  = 401 // used by engine
)

// Error is the error type used by relex subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos and lexer.Token implement this interface.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}
