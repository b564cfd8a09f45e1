package evaluator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jacksonmowry/lisp/pkg/reader"
)

// Evaluating a closed expression and releasing its result returns the
// pool to its pre-eval level.
func TestPoolConservation(t *testing.T) {
	r := newRig()
	r.evalString(t, "(define (factorial x) (if (> x 1) (* x (factorial (- x 1))) 1))")
	r.evalString(t, "(define (f &rest xs) xs)")

	closed := []string{
		"42",
		"'(1 2 3)",
		"(+ 1 2 (+ 3 4))",
		"(cons 1 '(2 3))",
		"(append '(1 2) 3)",
		"(factorial 10)",
		"(f 1 2 3)",
		"(if (> 1 2) 'a 'b)",
		"(cond (f 1) (t 2))",
		"(and t t f)",
		"(progn 1 2 3)",
		"(eval '(+ 1 2))",
		"(list (tag 1) (tag 'x))",
	}

	for _, src := range closed {
		t.Run(src, func(t *testing.T) {
			before := r.pool.InUse()

			form, err := reader.Parse(r.pool, src)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			result, err := r.eval.Eval(form, r.env)
			if err != nil {
				t.Fatalf("eval: %v", err)
			}
			r.pool.Deref(result)
			r.pool.Deref(form)

			if after := r.pool.InUse(); after != before {
				t.Errorf("pool not conserved: %d -> %d", before, after)
			}
		})
	}
}

// Error paths must release intermediate references too.
func TestPoolConservationOnErrors(t *testing.T) {
	r := newRig()
	r.evalString(t, "(define (pair a b) (cons a b))")

	failing := []string{
		"(car 5)",
		"(+ 1 'x)",
		"(pair 1)",
		"(1 2)",
		"(+ 1 (car ()))",
		"(progn 1 (car ()) 3)",
		"(list (car ()))",
	}

	for _, src := range failing {
		t.Run(src, func(t *testing.T) {
			before := r.pool.InUse()

			form, err := reader.Parse(r.pool, src)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if _, err := r.eval.Eval(form, r.env); err == nil {
				t.Fatal("expected an error")
			}
			r.pool.Deref(form)

			if after := r.pool.InUse(); after != before {
				t.Errorf("error path leaked: %d -> %d", before, after)
			}
		})
	}
}

func TestDisplayWritesToOutput(t *testing.T) {
	r := newRig()
	var buf bytes.Buffer
	r.eval.SetOutput(&buf)

	if got := r.evalString(t, "(display (+ 1 2))"); got != "3" {
		t.Errorf("display should return its argument, got %s", got)
	}
	if out := strings.TrimSpace(buf.String()); out != "3" {
		t.Errorf("expected output 3, got %q", out)
	}
}

func TestDisplayOrderIsObservable(t *testing.T) {
	r := newRig()
	var buf bytes.Buffer
	r.eval.SetOutput(&buf)

	r.evalString(t, "(progn (display 1) (display 2) (display 3))")
	got := strings.Fields(buf.String())
	want := []string{"1", "2", "3"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestEvalBuiltinQuoteLevels(t *testing.T) {
	r := newRig()

	tests := []struct {
		input    string
		expected string
	}{
		{"(eval '(+ 1 2))", "3"},
		{"(eval ''x)", "'x"}, // one level survives
		{"(eval 1)", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := r.evalString(t, tt.input); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}
