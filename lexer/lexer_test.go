package lexer

import (
	"strings"
	"sync"
	"testing"

	"github.com/relexkit/relex"
	"github.com/relexkit/relex/source"
	"github.com/relexkit/relex/symdef"
)

const testGrammar = `
	ws " " | "	" | "
";
	space $ws $ws*;
	@number [0-9] [0-9]*;
	@name $alpha ($alpha | [0-9])*;
	@string "'" ([a-z] | "\ ")* "'";
	alpha [a-z] | "_";
`

func testLexer(t *testing.T) *Lexer {
	t.Helper()
	au, e := symdef.BuildString("test.sym", testGrammar)
	if e != nil {
		t.Fatal("unexpected error: " + e.Error())
	}
	return New(au)
}

func checkError(t *testing.T, e error, code int) *relex.Error {
	t.Helper()
	if e == nil {
		t.Fatal("error expected, got success")
	}
	ee, is := e.(*relex.Error)
	if !is {
		t.Fatalf("*relex.Error expected, got %q", e.Error())
	}
	if ee.Code != code {
		t.Fatalf("expected error code %d, got %d (%s)", code, ee.Code, ee.Message)
	}
	return ee
}

func TestEmptySources(t *testing.T) {
	l := testLexer(t)
	for _, content := range []string{"", " ", " \t\n\t "} {
		tok, next, e := l.Next(source.New("", []byte(content)), 0)
		if e != nil {
			t.Fatalf("source %q: unexpected error: %s", content, e.Error())
		}
		if !tok.IsEof() || tok.Name() != EofName {
			t.Fatalf("source %q: expected EoF, got %q", content, tok.Name())
		}
		if next != len(content) {
			t.Fatalf("source %q: expected position %d, got %d", content, len(content), next)
		}
	}
}

func TestTokenStream(t *testing.T) {
	l := testLexer(t)
	s := source.New("query", []byte("foo 42 'a b'\nbar2"))

	expected := []struct {
		name, text string
		line, col  int
		next       int
	}{
		{"name", "foo", 1, 1, 3},
		{"number", "42", 1, 5, 6},
		{"string", "'a b'", 1, 8, 12},
		{"name", "bar2", 2, 1, 17},
	}

	pos := 0
	for i, exp := range expected {
		tok, next, e := l.Next(s, pos)
		if e != nil {
			t.Fatalf("token #%d: unexpected error: %s", i, e.Error())
		}
		if tok.Name() != exp.name || tok.Text() != exp.text {
			t.Fatalf("token #%d: expected %s %q, got %s %q", i, exp.name, exp.text, tok.Name(), tok.Text())
		}
		if tok.Line() != exp.line || tok.Col() != exp.col {
			t.Fatalf("token #%d: expected position %d:%d, got %d:%d",
				i, exp.line, exp.col, tok.Line(), tok.Col())
		}
		if next != exp.next {
			t.Fatalf("token #%d: expected next position %d, got %d", i, exp.next, next)
		}
		pos = next
	}

	tok, _, e := l.Next(s, pos)
	if e != nil {
		t.Fatal("unexpected error: " + e.Error())
	}
	if !tok.IsEof() {
		t.Fatalf("expected EoF, got %q", tok.Name())
	}
}

func TestScan(t *testing.T) {
	l := testLexer(t)
	tokens, e := l.Scan(source.New("", []byte(" x 1 y ")))
	if e != nil {
		t.Fatal("unexpected error: " + e.Error())
	}

	expected := []string{"x", "1", "y"}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, text := range expected {
		if tokens[i].Text() != text {
			t.Fatalf("token #%d: expected %q, got %q", i, text, tokens[i].Text())
		}
	}
}

// one lexer, one source, many goroutines: every scan owns its position and
// matcher state, so all of them must see the same token stream
func TestConcurrentScan(t *testing.T) {
	l := testLexer(t)
	s := source.New("query", []byte("foo 42 'a b'\nbar2 7 baz\nqux 'x' 100"))

	baseline, e := l.Scan(s)
	if e != nil {
		t.Fatal("unexpected error: " + e.Error())
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				tokens, e := l.Scan(s)
				if e != nil {
					t.Errorf("unexpected error: %s", e.Error())
					return
				}
				if len(tokens) != len(baseline) {
					t.Errorf("expected %d tokens, got %d", len(baseline), len(tokens))
					return
				}
				for j, tok := range tokens {
					exp := baseline[j]
					if tok.Text() != exp.Text() || tok.Line() != exp.Line() || tok.Col() != exp.Col() {
						t.Errorf("token #%d: expected %q at %d:%d, got %q at %d:%d",
							j, exp.Text(), exp.Line(), exp.Col(), tok.Text(), tok.Line(), tok.Col())
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}

func TestWrongChar(t *testing.T) {
	l := testLexer(t)
	_, _, e := l.Next(source.New("query", []byte("\n  !boo")), 0)
	ee := checkError(t, e, WrongCharError)
	if ee.SourceName != "query" || ee.Line != 2 || ee.Col != 3 {
		t.Fatalf("expected query line 2 col 3, got %q line %d col %d", ee.SourceName, ee.Line, ee.Col)
	}
	if !strings.Contains(ee.Message, "'!'") {
		t.Fatalf("expected the offending character in the message, got %q", ee.Message)
	}
}

func TestUnexpectedEof(t *testing.T) {
	l := testLexer(t)
	_, _, e := l.Next(source.New("", []byte("  'abc")), 0)
	checkError(t, e, UnexpectedEofError)
}

func TestEmptyToken(t *testing.T) {
	au, e := symdef.BuildString("test.sym", `@a "x"*;`)
	if e != nil {
		t.Fatal("unexpected error: " + e.Error())
	}

	_, _, err := New(au).Next(source.New("", []byte("y")), 0)
	checkError(t, err, EmptyTokenError)
}

func TestFragmentSkipping(t *testing.T) {
	au, e := symdef.BuildString("test.sym", `@word [a-z] [a-z]*; comment "#" [a-z]* "#";`)
	if e != nil {
		t.Fatal("unexpected error: " + e.Error())
	}

	tokens, err := New(au).Scan(source.New("", []byte("abc#skip#def")))
	if err != nil {
		t.Fatal("unexpected error: " + err.Error())
	}
	if len(tokens) != 2 || tokens[0].Text() != "abc" || tokens[1].Text() != "def" {
		t.Fatalf("expected tokens abc, def, got %d tokens", len(tokens))
	}
}
