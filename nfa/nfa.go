// Package nfa defines the shared-state-table automaton produced by the symdef
// compiler and the matcher interpreting it.
//
// All symbols of a grammar live in one automaton. A state is either a byte
// range predicate (inclusive lower bound, exclusive upper bound) with a match
// transition and a no-match transition, or an epsilon state taken without
// consuming input. An epsilon state with a non-None Otherwise edge is a fork:
// the matcher remembers the alternative and resumes it on failure.
//
// Once built the automaton is immutable and may be shared by any number of
// concurrent matches.
package nfa

// StateID is an index into the automaton state table.
// State 0 is permanently reserved as the None sentinel and is never a real
// state, so the zero value of any transition field means "no transition".
type StateID = int

const None StateID = 0

// NoAccept marks a state carrying no accept tag.
const NoAccept = -1

// State is a single automaton state. Bounds are ints, not bytes, so that an
// exclusive upper bound of 0x100 can express a range ending at byte 0xff
// without colliding with the epsilon encoding.
type State struct {
	// Lower and Upper delimit the predicate byte range: the state matches
	// byte b iff Lower <= b < Upper. A state with Lower == Upper == 0 is an
	// epsilon state.
	Lower, Upper int

	// Next is the transition taken when the predicate matches, or
	// unconditionally for an epsilon state. None means a dead end.
	Next StateID

	// Otherwise is the transition taken without consuming input when the
	// predicate rejects. On an epsilon state a non-None Otherwise is an
	// alternative to resume if everything reachable through Next fails.
	Otherwise StateID

	// Accept holds the index of the symbol whose pattern terminates in this
	// state, or NoAccept.
	Accept int
}

// IsEpsilon reports whether the state transitions without consuming input.
func (s *State) IsEpsilon() bool {
	return s.Lower == 0 && s.Upper == 0
}

// Test reports whether byte b satisfies the predicate.
func (s *State) Test(b byte) bool {
	return int(b) >= s.Lower && int(b) < s.Upper
}

// Symbol is the name table entry for one accept tag index.
type Symbol struct {
	// Name is the symbol name from the definition file.
	Name string

	// Lexeme is true for token-producing symbols, false for fragments that
	// are only referenced inside other patterns.
	Lexeme bool
}

// Automaton is a growable state table plus the parallel symbol table mapping
// accept tags back to names. It is mutated only during compilation; matchers
// treat it as read-only.
type Automaton struct {
	states  []State
	start   StateID
	symbols []Symbol
}

// New creates an empty automaton with the sentinel state already in place.
func New() *Automaton {
	a := &Automaton{}
	a.states = append(a.states, State{Accept: NoAccept})
	return a
}

// AddState appends a fresh epsilon state with no transitions and no accept
// tag, returning its ID. IDs are stable for the automaton's lifetime.
func (a *Automaton) AddState() StateID {
	a.states = append(a.states, State{Accept: NoAccept})
	return len(a.states) - 1
}

func (a *Automaton) SetRange(id StateID, lower, upper int) {
	a.states[id].Lower = lower
	a.states[id].Upper = upper
}

func (a *Automaton) SetNext(id, to StateID) {
	a.states[id].Next = to
}

func (a *Automaton) SetOtherwise(id, to StateID) {
	a.states[id].Otherwise = to
}

func (a *Automaton) SetAccept(id StateID, symbol int) {
	a.states[id].Accept = symbol
}

func (a *Automaton) SetStart(id StateID) {
	a.start = id
}

// Start returns the start state or None for an empty automaton.
func (a *Automaton) Start() StateID {
	return a.start
}

// State returns a copy of the state with the given ID.
func (a *Automaton) State(id StateID) State {
	return a.states[id]
}

// Len returns the number of states, the reserved sentinel included.
func (a *Automaton) Len() int {
	return len(a.states)
}

// AddSymbol appends a symbol table entry and returns its index, the value
// used as the accept tag for that symbol.
func (a *Automaton) AddSymbol(name string, lexeme bool) int {
	a.symbols = append(a.symbols, Symbol{name, lexeme})
	return len(a.symbols) - 1
}

func (a *Automaton) SymbolCount() int {
	return len(a.symbols)
}

// SymbolName returns the name for an accept tag, or an empty string if the
// tag is out of range.
func (a *Automaton) SymbolName(symbol int) string {
	if symbol < 0 || symbol >= len(a.symbols) {
		return ""
	}
	return a.symbols[symbol].Name
}

// IsLexeme reports whether the symbol with the given index produces tokens.
func (a *Automaton) IsLexeme(symbol int) bool {
	return symbol >= 0 && symbol < len(a.symbols) && a.symbols[symbol].Lexeme
}
