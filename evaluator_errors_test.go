package style

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapEvaluationErrorCarriesContext(t *testing.T) {
	base := errors.New("boom")
	err := wrapEvaluationError("expr", "8.0 * missing", EvalContext{Owner: "card", Property: "width"}, base)

	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %T", err)
	}
	if evalErr.Engine != "expr" || evalErr.Expr != "8.0 * missing" {
		t.Fatalf("unexpected metadata %+v", evalErr)
	}
	if evalErr.Owner != "card" || evalErr.Property != "width" {
		t.Fatalf("unexpected context %+v", evalErr)
	}
	if !errors.Is(err, base) {
		t.Fatalf("wrapped error should unwrap to base error")
	}
	want := `style: expr evaluator expr="8.0 * missing" owner=card property=width: boom`
	if err.Error() != want {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestWrapEvaluationErrorFillsOnlyEmptyFields(t *testing.T) {
	base := errors.New("compile failure")
	existing := &EvaluationError{Engine: "expr", Err: base}

	err := wrapEvaluationError("cel", "1.0 +", EvalContext{Owner: "label"}, existing)
	if !errors.Is(err, base) {
		t.Fatalf("expected base error to unwrap")
	}
	if existing.Engine != "expr" {
		t.Fatalf("existing engine should not be overwritten, got %q", existing.Engine)
	}
	if existing.Expr != "1.0 +" || existing.Owner != "label" {
		t.Fatalf("expected empty fields filled, got %+v", existing)
	}
	if strings.Contains(err.Error(), "property=") {
		t.Fatalf("empty property should be omitted: %q", err.Error())
	}
}

func TestWrapEvaluatorErrorKeepsPrefixedErrors(t *testing.T) {
	if err := wrapEvaluatorError("expr", nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	prefixed := errors.New("style: already described")
	if got := wrapEvaluatorError("expr", prefixed); got != prefixed {
		t.Fatalf("expected prefixed error returned as-is, got %v", got)
	}
	got := wrapEvaluatorError("cel", errors.New("raw"))
	if got.Error() != "style: cel evaluator: raw" {
		t.Fatalf("unexpected wrapped message %q", got.Error())
	}
}

func TestApplyErrorsNameTheProperty(t *testing.T) {
	v := newTestView("card", nil)
	_, err := v.style.Apply(t.Context(), map[string]any{"width": "calc(1 + )"})
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) || evalErr.Property != "width" {
		t.Fatalf("expected EvaluationError for width, got %v", err)
	}
}
