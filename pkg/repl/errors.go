package repl

import (
	"errors"

	"github.com/fatih/color"

	"github.com/jacksonmowry/lisp/pkg/evaluator"
	"github.com/jacksonmowry/lisp/pkg/types"
)

// ErrorFormatter renders the interpreter's error taxonomy with one
// color per category.
type ErrorFormatter struct {
	prefixColor  *color.Color
	parseColor   *color.Color
	arityColor   *color.Color
	typeColor    *color.Color
	callColor    *color.Color
	fatalColor   *color.Color
	generalColor *color.Color
}

func NewErrorFormatter() *ErrorFormatter {
	return &ErrorFormatter{
		prefixColor:  color.New(color.FgRed, color.Bold),
		parseColor:   color.New(color.FgRed),
		arityColor:   color.New(color.FgMagenta),
		typeColor:    color.New(color.FgCyan),
		callColor:    color.New(color.FgYellow),
		fatalColor:   color.New(color.FgRed, color.Bold),
		generalColor: color.New(color.FgWhite),
	}
}

// FormatError categorizes err and returns a colored one-line report.
func (ef *ErrorFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	label := "Error"
	body := ef.generalColor

	var parseErr *types.ParseError
	var arityErr *evaluator.ArityError
	var typeErr *evaluator.TypeError
	var callErr *evaluator.NotCallableError
	switch {
	case errors.As(err, &parseErr):
		label = "Parse Error"
		body = ef.parseColor
	case errors.As(err, &arityErr):
		label = "Arity Error"
		body = ef.arityColor
	case errors.As(err, &typeErr):
		label = "Type Error"
		body = ef.typeColor
	case errors.As(err, &callErr):
		label = "Not Callable"
		body = ef.callColor
	case errors.Is(err, types.ErrPoolExhausted):
		label = "Fatal"
		body = ef.fatalColor
	}

	return ef.prefixColor.Sprintf("%s:", label) + body.Sprintf(" %s", err)
}
