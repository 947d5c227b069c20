package source

import (
	"sync"
	"testing"
)

const content = "ab\ncd\n\nxyz"

func checkLineCol(t *testing.T, s *Source, pos, line, col int) {
	t.Helper()
	l, c := s.LineCol(pos)
	if l != line || c != col {
		t.Fatalf("pos %d: expected %d:%d, got %d:%d", pos, line, col, l, c)
	}
}

func TestLineCol(t *testing.T) {
	s := New("test", []byte(content))

	samples := [][3]int{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3}, // the newline belongs to the line it ends
		{3, 2, 1},
		{5, 2, 3},
		{6, 3, 1},
		{7, 4, 1},
		{9, 4, 3},
	}
	for _, sample := range samples {
		checkLineCol(t, s, sample[0], sample[1], sample[2])
	}
}

func TestLineColClamped(t *testing.T) {
	s := New("test", []byte(content))
	checkLineCol(t, s, -5, 1, 1)
	checkLineCol(t, s, len(content), 4, 4)
	checkLineCol(t, s, len(content)+10, 4, 4)
}

// lookups cache the last line; going backwards must still be correct
func TestLineColBackwards(t *testing.T) {
	s := New("test", []byte(content))
	checkLineCol(t, s, 8, 4, 2)
	checkLineCol(t, s, 3, 2, 1)
	checkLineCol(t, s, 0, 1, 1)
	checkLineCol(t, s, 9, 4, 3)
}

func slowLineCol(content string, pos int) (line, col int) {
	line, col = 1, 1
	for i := 0; i < pos && i < len(content); i++ {
		if content[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// the lookup cache is shared; interleaved lookups from several goroutines
// must still all be correct
func TestConcurrentLineCol(t *testing.T) {
	s := New("test", []byte(content))

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				pos := (i*7 + g*3) % len(content)
				line, col := s.LineCol(pos)
				expLine, expCol := slowLineCol(content, pos)
				if line != expLine || col != expCol {
					t.Errorf("pos %d: expected %d:%d, got %d:%d", pos, expLine, expCol, line, col)
					return
				}
			}
		}(g)
	}
	wg.Wait()
}

func TestEmptySource(t *testing.T) {
	s := New("empty", nil)
	if s.Len() != 0 {
		t.Fatalf("expected empty content, got %d bytes", s.Len())
	}
	checkLineCol(t, s, 0, 1, 1)
}

func TestPos(t *testing.T) {
	s := New("test", []byte(content))
	p := NewPos(s, 4)

	if p.Source() != s || p.SourceName() != "test" || p.Pos() != 4 {
		t.Fatalf("malformed position: %+v", p)
	}
	if p.Line() != 2 || p.Col() != 2 {
		t.Fatalf("expected 2:2, got %d:%d", p.Line(), p.Col())
	}
}

func TestNilPos(t *testing.T) {
	p := NewPos(nil, 3)
	if p.Source() != nil || p.SourceName() != "" || p.Line() != 0 || p.Col() != 0 {
		t.Fatalf("malformed nil position: %+v", p)
	}
}
