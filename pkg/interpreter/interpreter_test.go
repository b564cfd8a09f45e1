package interpreter

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/jacksonmowry/lisp/pkg/evaluator"
	"github.com/jacksonmowry/lisp/pkg/types"
)

func interpret(t *testing.T, interp *Interpreter, src string) *types.Value {
	t.Helper()
	result, err := interp.Interpret(src)
	if err != nil {
		t.Fatalf("interpret %q: %v", src, err)
	}
	return result
}

func interpretString(t *testing.T, interp *Interpreter, src string) string {
	t.Helper()
	result := interpret(t, interp, src)
	s := interp.FormatResult(result)
	interp.Release(result)
	return s
}

func TestScenarioArithmetic(t *testing.T) {
	interp := New()
	defer interp.Close()

	result := interpret(t, interp,
		"(+ 1 2 (+ 3 4) (/ 1 2) 5 (% 15.5 0.269) (+ (+ 1 2) 1))")
	defer interp.Release(result)

	if result.Tag != types.TagNumber {
		t.Fatalf("expected a number, got %s", result)
	}
	if math.Abs(result.Number-19.667) > 1e-3 {
		t.Errorf("expected 19.667 within 1e-3, got %g", result.Number)
	}
}

func TestScenarioFactorial(t *testing.T) {
	interp := New()
	defer interp.Close()

	got := interpretString(t, interp,
		"(progn (define (factorial x) (if (> x 1) (* x (factorial (- x 1))) 1)) (factorial 5))")
	if got != "120" {
		t.Errorf("expected 120, got %s", got)
	}
}

func TestScenarioMap(t *testing.T) {
	interp := New()
	defer interp.Close()

	got := interpretString(t, interp,
		"(progn (define (map f l) (if (cdr l) (prepend (map f (cdr l)) (f (car l))) (list (f (car l))))) (define (add1 x) (+ 1 x)) (map add1 '(3 6 9)))")
	if got != "'(4 7 10)" {
		t.Errorf("expected '(4 7 10), got %s", got)
	}
}

func TestScenarioCond(t *testing.T) {
	interp := New()
	defer interp.Close()

	got := interpretString(t, interp, "(cond (f 15) ((> 15 2) 41) (t 42))")
	if got != "41" {
		t.Errorf("expected 41, got %s", got)
	}
}

func TestScenarioMacro(t *testing.T) {
	interp := New()
	defer interp.Close()

	got := interpretString(t, interp,
		"(progn (define-macro (test a b) (list 'symbol-eq (list 'quote a) (list 'quote b))) (test x x))")
	if got != "t" {
		t.Errorf("expected t, got %s", got)
	}
}

func TestScenarioRest(t *testing.T) {
	interp := New()
	defer interp.Close()

	got := interpretString(t, interp, "(progn (define (f &rest xs) xs) (f 1 2 3))")
	if got != "'(1 2 3)" {
		t.Errorf("expected '(1 2 3), got %s", got)
	}
}

func TestInterpretMultipleForms(t *testing.T) {
	interp := New()
	defer interp.Close()

	got := interpretString(t, interp, "(define x 2) (define y 3) (* x y)")
	if got != "6" {
		t.Errorf("expected 6, got %s", got)
	}
}

func TestInterpretStateSurvivesErrors(t *testing.T) {
	interp := New()
	defer interp.Close()

	interpretString(t, interp, "(define x 42)")
	if _, err := interp.Interpret("(car 5)"); err == nil {
		t.Fatal("expected an error")
	}
	if got := interpretString(t, interp, "x"); got != "42" {
		t.Errorf("state lost after error: %s", got)
	}
}

func TestInterpretParseError(t *testing.T) {
	interp := New()
	defer interp.Close()

	_, err := interp.Interpret("(+ 1")
	parseErr, ok := err.(*types.ParseError)
	if !ok {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.Kind != types.ParseUnexpectedEOF {
		t.Errorf("expected unexpected EOF, got %v", parseErr.Kind)
	}
}

func TestFormatResult(t *testing.T) {
	interp := New()
	defer interp.Close()

	tests := []struct {
		input    string
		expected string
	}{
		{"42", "42"},
		{"(+ 1 2)", "3"},
		{"'sym", "sym"},
		{"(list 1 2)", "'(1 2)"},
		{"()", "nil"},
		{`"s"`, `"s"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := interpretString(t, interp, tt.input); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestPoolConservationAcrossInterpret(t *testing.T) {
	interp := New()
	defer interp.Close()

	interpretString(t, interp, "(define (fib n) (if (< n 2) n (+ (fib (- n 1)) (fib (- n 2)))))")

	before := interp.Pool().InUse()
	for i := 0; i < 10; i++ {
		result := interpret(t, interp, "(fib 10)")
		interp.Release(result)
	}
	if after := interp.Pool().InUse(); after != before {
		t.Errorf("pool drifted across calls: %d -> %d", before, after)
	}
}

func TestPoolExhaustionIsReported(t *testing.T) {
	interp := NewWithCapacity(128)
	defer interp.Close()

	// Self-recursion without a base case allocates frames until the
	// pool runs dry.
	_, err := interp.Interpret("(progn (define (loop n) (loop (+ n 1))) (loop 0))")
	if err != types.ErrPoolExhausted {
		t.Errorf("expected ErrPoolExhausted, got %v", err)
	}
}

func TestDisplayOutput(t *testing.T) {
	interp := New()
	defer interp.Close()

	var buf bytes.Buffer
	interp.SetOutput(&buf)

	result := interpret(t, interp, `(display "hi")`)
	interp.Release(result)
	if got := strings.TrimSpace(buf.String()); got != `"hi"` {
		t.Errorf("expected \"hi\", got %q", got)
	}
}

func TestHostRegistration(t *testing.T) {
	interp := New()
	defer interp.Close()

	pool := interp.Pool()
	evaluator.RegisterBuiltin(interp.Env(), "double", 1, false,
		func(args *types.Value, env types.Environment) (*types.Value, error) {
			if args.Car.Tag != types.TagNumber {
				return nil, &evaluator.TypeError{Name: "double", Expected: types.TagNumber, Got: args.Car.Tag}
			}
			return pool.Number(args.Car.Number * 2), nil
		})

	got := interpretString(t, interp, "(double 21)")
	if got != "42" {
		t.Errorf("expected 42, got %s", got)
	}
}
