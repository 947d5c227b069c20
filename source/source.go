// Package source defines the in-memory source buffer used by the symdef
// parser and the lexer, with 1-based line/column lookup for error reporting.
package source

import (
	"bytes"

	"go.uber.org/atomic"
)

// Source is a named, fully buffered input. The whole content is read into
// memory before parsing starts; positions are byte offsets into it. A Source
// is safe for concurrent use: the content never changes and the line lookup
// cache is atomic.
type Source struct {
	name       string
	content    []byte
	lineStarts []int

	// index of the line found by the previous lookup, -1 before the first
	// one; shared by concurrent lookups, so reads take one snapshot
	prevLineIndex atomic.Int64
}

func New(name string, content []byte) *Source {
	s := &Source{name: name, content: content}
	s.prevLineIndex.Store(-1)
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s.lineStarts = make([]int, lineCnt)
	j := 1
	for i := 0; i < len(content) && j < lineCnt; i++ {
		if content[i] == '\n' {
			s.lineStarts[j] = i + 1
			j++
		}
	}

	return s
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Content() []byte {
	return s.content
}

func (s *Source) Len() int {
	return len(s.content)
}

// LineCol maps a byte offset to 1-based line and column numbers.
// Out-of-range offsets are clamped to the buffer bounds.
func (s *Source) LineCol(pos int) (line, col int) {
	var lineIndex int
	if pos < 0 {
		pos = 0
		lineIndex = 0
	} else if pos >= len(s.content) {
		pos = len(s.content)
		lineIndex = len(s.lineStarts) - 1
	} else {
		lineIndex = s.findLineIndex(pos)
	}

	return lineIndex + 1, pos - s.lineStarts[lineIndex] + 1
}

func (s *Source) findLineIndex(pos int) int {
	prev := int(s.prevLineIndex.Load())
	if prev >= 0 && s.lineStarts[prev] <= pos {
		lineIndex := prev
		last := len(s.lineStarts) - 1
		for lineIndex <= last && s.lineStarts[lineIndex] <= pos {
			lineIndex++
		}
		lineIndex--
		s.prevLineIndex.Store(int64(lineIndex))
		return lineIndex
	}

	leftIndex := 0
	rightIndex := len(s.lineStarts) - 1
	index := 0
	if prev >= 0 {
		rightIndex = prev
	}
	for leftIndex < rightIndex {
		index = (leftIndex + rightIndex + 1) >> 1
		lineStart := s.lineStarts[index]
		if lineStart == pos {
			return index
		}

		if lineStart < pos {
			leftIndex = index
		} else {
			rightIndex = index - 1
			index = rightIndex
		}
	}
	s.prevLineIndex.Store(int64(index))
	return index
}

// Pos is an immutable position within a source, used for error reporting.
type Pos struct {
	src            *Source
	pos, line, col int
}

func NewPos(s *Source, pos int) Pos {
	res := Pos{src: s, pos: pos}
	if s != nil {
		res.line, res.col = s.LineCol(pos)
	}
	return res
}

func (p Pos) Source() *Source {
	return p.src
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.Name()
}

func (p Pos) Pos() int {
	return p.pos
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}
