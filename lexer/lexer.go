// Package lexer defines the tokenizing front end built on the automaton
// matcher.
package lexer

import (
	"github.com/relexkit/relex"
	"github.com/relexkit/relex/nfa"
	"github.com/relexkit/relex/source"
)

// Error codes used by lexer:
const (
	// WrongCharError indicates that no symbol matches at the current
	// position.
	WrongCharError = relex.LexicalErrors + iota

	// UnexpectedEofError indicates that the source ended in the middle of a
	// possible lexeme before any symbol accepted.
	UnexpectedEofError

	// EmptyTokenError indicates that the best match at the current position
	// was a zero-length lexeme, which can make no progress.
	EmptyTokenError
)

// Lexer fetches tokens from a source using a compiled automaton. The lexer
// itself is immutable and safe for concurrent use: every call owns its
// position and its matcher state.
//
// Matches of non-lexeme (fragment) symbols are consumed silently, the way
// whitespace usually is; only lexeme symbols produce tokens.
type Lexer struct {
	au *nfa.Automaton
}

func New(au *nfa.Automaton) *Lexer {
	return &Lexer{au: au}
}

// Automaton returns the automaton the lexer reads.
func (l *Lexer) Automaton() *nfa.Automaton {
	return l.au
}

func wrongCharError(s *source.Source, pos int) *relex.Error {
	c := s.Content()[pos]
	return relex.FormatErrorPos(source.NewPos(s, pos), WrongCharError, "wrong character %q", c)
}

func unexpectedEofError(s *source.Source, pos, scanned int) *relex.Error {
	return relex.FormatErrorPos(source.NewPos(s, pos), UnexpectedEofError,
		"source ended inside a lexeme after %d bytes", scanned)
}

func emptyTokenError(s *source.Source, pos int, name string) *relex.Error {
	return relex.FormatErrorPos(source.NewPos(s, pos), EmptyTokenError,
		"symbol %q matches empty input", name)
}

// Next fetches the token starting at pos and returns it together with the
// position just past it. Returns EofToken at the end of the source. Returns
// a nil token and *relex.Error if no symbol matches, if the source ends
// mid-lexeme, or if a match attempt exceeds the backtrack budget.
func (l *Lexer) Next(s *source.Source, pos int) (*Token, int, error) {
	content := s.Content()

	for {
		if pos >= len(content) {
			return EofToken(s), pos, nil
		}

		res, e := l.au.Match(content, pos)
		if e != nil {
			return nil, pos, e
		}

		switch res.Outcome {
		case nfa.Reject:
			return nil, pos, wrongCharError(s, pos)

		case nfa.Incomplete:
			return nil, pos, unexpectedEofError(s, pos, res.Scanned)

		default:
			if res.Length == 0 {
				return nil, pos, emptyTokenError(s, pos, l.au.SymbolName(res.Symbol))
			}
			if !l.au.IsLexeme(res.Symbol) {
				pos += res.Length
				continue
			}

			t := NewToken(res.Symbol, l.au.SymbolName(res.Symbol),
				content[pos:pos+res.Length], source.NewPos(s, pos))
			return t, pos + res.Length, nil
		}
	}
}

// Scan fetches all tokens of a source up to and excluding the EoF token.
func (l *Lexer) Scan(s *source.Source) ([]*Token, error) {
	var tokens []*Token
	pos := 0
	for {
		t, next, e := l.Next(s, pos)
		if e != nil {
			return nil, e
		}
		if t.IsEof() {
			return tokens, nil
		}
		tokens = append(tokens, t)
		pos = next
	}
}
