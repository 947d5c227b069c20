// Package engine owns the hand-off point between compilation and matching.
//
// Parsing and compiling a grammar is single-threaded; the finished automaton
// is immutable. The only synchronization the system needs is the moment a
// freshly built automaton is handed to readers, and Engine is that moment:
// it stores the current automaton behind an atomic pointer, so reloading a
// grammar file publishes the new automaton in one step while concurrent
// matches keep using whichever automaton they already picked up.
package engine

import (
	"go.uber.org/atomic"

	"github.com/relexkit/relex"
	"github.com/relexkit/relex/logger"
	"github.com/relexkit/relex/nfa"
	"github.com/relexkit/relex/source"
	"github.com/relexkit/relex/symdef"
)

// Error codes used by engine:
const (
	// NotLoadedError indicates a match attempt before any grammar was
	// loaded successfully.
	NotLoadedError = relex.EngineErrors + iota
)

// Engine holds the current automaton. The zero value is an engine with no
// automaton loaded.
type Engine struct {
	current atomic.Pointer[nfa.Automaton]
}

// New creates an empty engine.
func New() *Engine {
	return &Engine{}
}

// FromSource creates an engine and loads its first grammar.
func FromSource(s *source.Source) (*Engine, error) {
	e := New()
	if err := e.Reload(s); err != nil {
		return nil, err
	}
	return e, nil
}

// Reload parses and compiles a grammar file and, on success, publishes the
// new automaton atomically. On failure the previously published automaton
// stays in place; a partial automaton is never exposed.
func (e *Engine) Reload(s *source.Source) error {
	au, err := symdef.Build(s)
	if err != nil {
		return err
	}

	e.current.Store(au)
	logger.Infof("published automaton for %q: %d states, %d symbols",
		s.Name(), au.Len(), au.SymbolCount())
	return nil
}

// Automaton returns the currently published automaton, or nil if no grammar
// has been loaded yet. The result stays valid even if another grammar is
// published later.
func (e *Engine) Automaton() *nfa.Automaton {
	return e.current.Load()
}

// Match runs one match against the current automaton.
func (e *Engine) Match(input []byte, from int) (nfa.Result, error) {
	au := e.current.Load()
	if au == nil {
		return nfa.Result{}, relex.FormatError(NotLoadedError, "no grammar loaded")
	}
	return au.Match(input, from)
}
