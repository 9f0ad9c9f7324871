package main

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Syntax and evaluation errors surface as line-tagged errors, never panics.
// ---------------------------------------------------------------------------

func TestE2ESyntaxErrorWithLineInfo(t *testing.T) {
	source := "(rect 0 0 10 10)\n(rect 0 0"
	result := NewApp(nil).Evaluate(source)

	if len(result.Errors) == 0 {
		t.Fatal("expected errors for syntax error")
	}
	if len(result.Regions) != 0 {
		t.Errorf("expected no regions on error, got %d", len(result.Regions))
	}
	if result.Errors[0].Message == "" {
		t.Error("error message should not be empty")
	}
}

func TestE2EMissingPoint(t *testing.T) {
	source := `
(def p (point 0 0))
(def q (point 5 5))
(remove-point q)
(line p q)
`
	result := NewApp(nil).Evaluate(source)
	if len(result.Errors) == 0 {
		t.Fatal("expected an error for a removed point")
	}
	if !strings.Contains(result.Errors[0].Message, "missing node") {
		t.Errorf("message = %q", result.Errors[0].Message)
	}
}

func TestE2ECommentsOnly(t *testing.T) {
	source := `
;; Just a comment
; Another comment
`
	result := NewApp(nil).Evaluate(source)
	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Regions) != 0 {
		t.Errorf("expected 0 regions, got %d", len(result.Regions))
	}
}

func TestE2EArithmeticInScripts(t *testing.T) {
	source := `
(def w 40)
(def inset (/ w 4))
(rect 0 0 w w)
(rect inset inset (- w (* 2 inset)) (- w (* 2 inset)))
`
	result := NewApp(nil).Evaluate(source)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Regions) != 1 || result.Regions[0].Holes != 1 {
		t.Errorf("want one region with one hole, got %+v", result.Regions)
	}
}

func TestE2ELensOnlyHasNoRegions(t *testing.T) {
	source := `
(def a (point 0 0))
(def b (point 10 0))
(line a b)
(quad a b 5 5)
`
	result := NewApp(nil).Evaluate(source)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Regions) != 0 {
		t.Errorf("two-edge lens produced %d regions", len(result.Regions))
	}
}

// ---------------------------------------------------------------------------
// Rapid evaluation: sequential calls mixing valid and broken sources.
// ---------------------------------------------------------------------------

func TestE2ERapidEvaluationAlternating(t *testing.T) {
	// Sequential on purpose: zygomys keeps global state that is not safe for
	// concurrent sandbox creation.
	app := NewApp(nil)

	sources := []string{
		`(rect 0 0 10 10)`,
		`(rect 0 0`,
		``,
		`(line 1 2)`,
		`(polygon 0 0 5 0 5 5)`,
		`(+ 1 2)`,
		`;; just a comment`,
		`(path "M0 0 L4 0 L4 4 Z")`,
		`(undefined-func 1 2 3)`,
		`(winding :evenodd) (rect 1 1 2 2)`,
	}

	for i, source := range sources {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("iteration %d panicked on source %q: %v", i, source, r)
				}
			}()
			_ = app.Evaluate(source)
		}()
	}
}
