package nfa

import (
	"github.com/relexkit/relex"
)

// Error codes used by the matcher:
const (
	// TooComplexError indicates that a match attempt exceeded the backtrack
	// stack capacity. This is a resource limit, not a match outcome.
	TooComplexError = relex.MatchErrors + iota
)

// Outcome discriminates the three ordinary match results.
type Outcome int

const (
	// Reject: no symbol accepts any prefix of the input and no explored
	// path ran out of input.
	Reject Outcome = iota

	// Match: at least one symbol accepted a prefix (possibly empty).
	Match

	// Incomplete: no accept was reached, but at least one path was still
	// alive when the input ended; more input could produce a match.
	Incomplete
)

// Result is the outcome of one match attempt.
type Result struct {
	Outcome Outcome

	// Length is the longest accepted prefix length for Match.
	Length int

	// Symbol is the accept tag of the winning symbol for Match. Ties on
	// length are broken toward the lowest symbol index.
	Symbol int

	// Scanned is the maximum number of bytes consumed on any path that ran
	// out of input, for Incomplete.
	Scanned int
}

// DefaultStackDepth bounds the backtrack stack of matches started through
// Automaton.Match. Every greedy loop iteration and every untried alternative
// holds one slot, so the bound also caps the longest token a repetition can
// consume in one attempt.
const DefaultStackDepth = 4096

type resumePoint struct {
	state StateID
	pos   int
}

// Matcher holds the transient state of match attempts: the backtrack stack
// and the best-match accumulator. A Matcher may be reused for any number of
// sequential matches, against different automatons, but must not be shared
// by concurrent calls; Automaton.Match creates a fresh one per call.
type Matcher struct {
	stack []resumePoint
	depth int
}

// NewMatcher creates a matcher with the given backtrack stack capacity.
// Non-positive values select DefaultStackDepth.
func NewMatcher(depth int) *Matcher {
	if depth <= 0 {
		depth = DefaultStackDepth
	}
	return &Matcher{depth: depth}
}

// Match runs the automaton against input[from:] and returns the best match
// per the maximal munch rule: the longest accepted prefix wins, ties break
// toward the earliest-defined symbol. Length and Scanned are relative to
// from. The only error condition is backtrack stack exhaustion.
func (m *Matcher) Match(a *Automaton, input []byte, from int) (Result, error) {
	m.stack = m.stack[:0]

	bestLen := -1
	bestSym := NoAccept
	scanned := -1

	st := a.Start()
	if st == None {
		return Result{Outcome: Reject}, nil
	}
	pos := from

	for {
		s := &a.states[st]

		if s.Accept != NoAccept && pos-from > bestLen {
			bestLen = pos - from
			bestSym = s.Accept
		}

		var next StateID
		if s.IsEpsilon() {
			if s.Otherwise != None {
				if len(m.stack) >= m.depth {
					return Result{}, relex.FormatError(TooComplexError,
						"match too complex: backtrack stack limit %d exceeded", m.depth)
				}
				m.stack = append(m.stack, resumePoint{s.Otherwise, pos})
			}
			next = s.Next
		} else if pos >= len(input) {
			// The path is still alive but the input ended before the
			// predicate could be tested.
			if pos-from > scanned {
				scanned = pos - from
			}
			next = None
		} else if s.Test(input[pos]) {
			pos++
			next = s.Next
		} else {
			next = s.Otherwise
		}

		if next == None {
			last := len(m.stack) - 1
			if last < 0 {
				break
			}
			st, pos = m.stack[last].state, m.stack[last].pos
			m.stack = m.stack[:last]
			continue
		}
		st = next
	}

	switch {
	case bestLen >= 0:
		return Result{Outcome: Match, Length: bestLen, Symbol: bestSym}, nil
	case scanned >= 0:
		return Result{Outcome: Incomplete, Scanned: scanned}, nil
	default:
		return Result{Outcome: Reject}, nil
	}
}

// Match is a convenience wrapper creating a fresh matcher with the default
// backtrack budget. Safe for concurrent use on the same automaton.
func (a *Automaton) Match(input []byte, from int) (Result, error) {
	return NewMatcher(0).Match(a, input, from)
}
