// Command relex checks symbol definition files and dumps token streams.
//
// Usage:
//
//	relex check grammar.sym
//	relex tokens grammar.sym query.sql
//	relex --config relex.yaml tokens -- - < query.sql
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/minio/cli"

	"github.com/relexkit/relex/engine"
	"github.com/relexkit/relex/lexer"
	"github.com/relexkit/relex/logger"
	"github.com/relexkit/relex/source"
)

var globalFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "config, C",
		Usage: "path to a YAML configuration file",
	},
	cli.StringFlag{
		Name:  "log-level",
		Value: "warning",
		Usage: "minimum log level (debug, info, warning, error)",
	},
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "relex"
	app.Usage = "symbol definition compiler and tokenizer"
	app.Flags = globalFlags
	app.Commands = []cli.Command{
		{
			Name:      "check",
			Usage:     "parse and compile a symbol definition file",
			ArgsUsage: "[GRAMMAR]",
			Action:    checkMain,
		},
		{
			Name:      "tokens",
			Usage:     "tokenize an input file (or stdin for \"-\")",
			ArgsUsage: "[GRAMMAR] INPUT",
			Action:    tokensMain,
		},
	}
	app.Before = setupLogger
	app.After = func(*cli.Context) error {
		logger.Stop()
		return nil
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatal("%s", err)
	}
}

func fatal(format string, args ...any) {
	color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "relex: "+format+"\n", args...)
	logger.Stop()
	os.Exit(1)
}

func setupLogger(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx.GlobalString("config"))
	if err != nil {
		return err
	}

	name := ctx.GlobalString("log-level")
	if !ctx.GlobalIsSet("log-level") && cfg.LogLevel != "" {
		name = cfg.LogLevel
	}
	level, err := logger.ParseLevel(name)
	if err != nil {
		return err
	}

	logger.Start(os.Stderr, level)
	return nil
}

// loadEngine compiles the grammar named by the first argument, or by the
// configuration file when the command got only its trailing arguments.
func loadEngine(ctx *cli.Context, trailing int) (*engine.Engine, []string) {
	cfg, err := loadConfig(ctx.GlobalString("config"))
	if err != nil {
		fatal("%s", err)
	}

	path := cfg.Grammar
	args := []string(ctx.Args())
	if len(args) > trailing {
		path, args = args[0], args[1:]
	}
	if path == "" {
		fatal("no grammar file given (argument or \"grammar\" configuration key)")
	}

	src, err := readSource(path)
	if err != nil {
		fatal("%s", err)
	}

	eng, err := engine.FromSource(src)
	if err != nil {
		fatal("%s", err)
	}
	return eng, args
}

func checkMain(ctx *cli.Context) {
	eng, rest := loadEngine(ctx, 0)
	if len(rest) != 0 {
		fatal("unexpected argument %q", rest[0])
	}

	au := eng.Automaton()
	lexemes := 0
	for i := 0; i < au.SymbolCount(); i++ {
		if au.IsLexeme(i) {
			lexemes++
		}
	}
	color.Green("OK")
	fmt.Printf("%d states, %d symbols (%d lexemes)\n", au.Len(), au.SymbolCount(), lexemes)
}

func tokensMain(ctx *cli.Context) {
	eng, rest := loadEngine(ctx, 1)
	if len(rest) != 1 {
		fatal("exactly one input file expected")
	}

	src, err := readSource(rest[0])
	if err != nil {
		fatal("%s", err)
	}

	l := lexer.New(eng.Automaton())
	name := color.New(color.FgCyan)
	pos := 0
	for {
		t, next, err := l.Next(src, pos)
		if err != nil {
			fatal("%s", err)
		}
		if t.IsEof() {
			return
		}
		name.Printf("%-20s", t.Name())
		fmt.Printf(" %q at %d:%d\n", t.Text(), t.Line(), t.Col())
		pos = next
	}
}

func readSource(path string) (*source.Source, error) {
	if path == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		return source.New("stdin", content), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return source.New(path, content), nil
}
