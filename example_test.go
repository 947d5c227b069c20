package relex_test

import (
	"fmt"

	"github.com/relexkit/relex/lexer"
	"github.com/relexkit/relex/source"
	"github.com/relexkit/relex/symdef"
)

func Example() {
	input := `total <= 42`
	grammar := `
space " " | "	" | "
";
alpha [a-z] | [A-Z] | "_";

@name   $alpha ($alpha | [0-9])*;
@number [0-9] [0-9]*;
@op     "<=" | ">=" | "<" | ">" | "=";
`
	au, e := symdef.BuildString("example grammar", grammar)
	if e != nil {
		fmt.Println(e)
		return
	}

	tokens, e := lexer.New(au).Scan(source.New("example input", []byte(input)))
	if e != nil {
		fmt.Println(e)
		return
	}

	for _, t := range tokens {
		fmt.Printf("%s %q\n", t.Name(), t.Text())
	}
	// Output:
	// name "total"
	// op "<="
	// number "42"
}
