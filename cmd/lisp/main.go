package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/jacksonmowry/lisp/pkg/interpreter"
	"github.com/jacksonmowry/lisp/pkg/repl"
	"github.com/jacksonmowry/lisp/pkg/types"
)

type CLI struct {
	Eval      string `help:"Evaluate an expression and print the result." name:"eval" short:"e" placeholder:"EXPR"`
	File      string `arg:"" optional:"" help:"Script file to run." type:"existingfile"`
	PoolSize  int    `help:"Value pool capacity." default:"${pool_default}"`
	PoolStats bool   `help:"Print pool statistics after evaluation."`
	NoColor   bool   `help:"Disable colored output."`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("lisp"),
		kong.Description("A small Lisp interpreter with a pooled, reference-counted evaluation core."),
		kong.Vars{"pool_default": fmt.Sprint(types.DefaultCapacity)},
	)

	interp := interpreter.NewWithCapacity(cli.PoolSize)
	defer interp.Close()

	switch {
	case cli.Eval != "":
		run(interp, cli.Eval)
	case cli.File != "":
		content, err := os.ReadFile(cli.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		run(interp, string(content))
	default:
		if err := repl.RunWithOptions(interp, !cli.NoColor); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	if cli.PoolStats {
		pool := interp.Pool()
		fmt.Fprintf(os.Stderr, "pool: in use %d, high water %d, capacity %d\n",
			pool.InUse(), pool.HighWater(), pool.Capacity())
	}
}

func run(interp *interpreter.Interpreter, source string) {
	result, err := interp.Interpret(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(interp.FormatResult(result))
	interp.Release(result)
}
