// Package repl provides the interactive read-eval-print loop.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/jacksonmowry/lisp/pkg/interpreter"
)

const prompt = "lisp> "
const contPrompt = "....> "

// Run starts an interactive loop on the given interpreter until EOF or
// an exit command.
func Run(interp *interpreter.Interpreter) error {
	return RunWithOptions(interp, true)
}

// RunWithOptions starts a loop with colors optionally disabled.
func RunWithOptions(interp *interpreter.Interpreter, enableColors bool) error {
	if !enableColors {
		color.NoColor = true
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	printWelcome()
	formatter := NewErrorFormatter()
	resultColor := color.New(color.FgGreen)

	for {
		input, err := readExpression(rl)
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" {
			break
		}
		if input == "pool" {
			pool := interp.Pool()
			fmt.Printf("in use %d, high water %d, capacity %d\n",
				pool.InUse(), pool.HighWater(), pool.Capacity())
			continue
		}

		result, err := interp.Interpret(input)
		if err != nil {
			fmt.Println(formatter.FormatError(err))
			continue
		}
		resultColor.Println(interp.FormatResult(result))
		interp.Release(result)
	}

	fmt.Println("Goodbye!")
	return nil
}

// readExpression keeps reading lines until the parens balance, so a
// form can span multiple lines.
func readExpression(rl *readline.Instance) (string, error) {
	var sb strings.Builder
	rl.SetPrompt(prompt)
	for {
		line, err := rl.Readline()
		if err != nil {
			return "", err
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)

		if parenBalance(sb.String()) <= 0 {
			return sb.String(), nil
		}
		rl.SetPrompt(contPrompt)
	}
}

// parenBalance returns the net paren depth (opens minus closes) outside
// strings and comments.
func parenBalance(s string) int {
	depth := 0
	inString := false
	inComment := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inComment:
			if c == '\n' {
				inComment = false
			}
		case inString:
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == ';':
			inComment = true
		case c == '(':
			depth++
		case c == ')':
			depth--
		}
	}
	return depth
}

func printWelcome() {
	banner := color.New(color.FgCyan, color.Bold)
	banner.Println("Lisp REPL")
	fmt.Println("Type expressions to evaluate them, 'pool' for allocator stats,")
	fmt.Println("'exit' or 'quit' to leave.")
}
