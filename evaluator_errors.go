package style

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoEvaluator indicates no calc() engine could be configured.
	ErrNoEvaluator = errors.New("style: evaluator not configured")
	// ErrUnitMismatch indicates a calc() expression combines different units.
	ErrUnitMismatch = errors.New("style: calc units do not match")
	// ErrUnterminatedFunction indicates a calc() call without its closing
	// parenthesis.
	ErrUnterminatedFunction = errors.New("style: unterminated function")
	// ErrNonNumericResult indicates the evaluator returned something other than
	// a number.
	ErrNonNumericResult = errors.New("style: calc result is not numeric")
)

// EvaluationError reports a failed calc() evaluation together with the
// engine, the normalised expression and what it was evaluated for.
type EvaluationError struct {
	Engine   string
	Expr     string
	Owner    string
	Property string
	Err      error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "style: %s evaluator", e.Engine)
	if e.Expr == "" {
		b.WriteString(" expr=<empty>")
	} else {
		fmt.Fprintf(&b, " expr=%q", e.Expr)
	}
	if e.Owner != "" {
		fmt.Fprintf(&b, " owner=%s", e.Owner)
	}
	if e.Property != "" {
		fmt.Fprintf(&b, " property=%s", e.Property)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// wrapEvaluatorError prefixes err with the engine unless it already carries
// the package prefix.
func wrapEvaluatorError(engine string, err error) error {
	var evalErr *EvaluationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &evalErr), strings.HasPrefix(err.Error(), "style:"):
		return err
	}
	return fmt.Errorf("style: %s evaluator: %w", engine, err)
}

// wrapEvaluationError attaches evaluation metadata to err. An EvaluationError
// already in the chain only has its empty fields filled.
func wrapEvaluationError(engine, expr string, ctx EvalContext, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		return &EvaluationError{
			Engine:   engine,
			Expr:     expr,
			Owner:    ctx.Owner,
			Property: ctx.Property,
			Err:      err,
		}
	}
	fill := func(field *string, value string) {
		if *field == "" {
			*field = value
		}
	}
	fill(&evalErr.Engine, engine)
	fill(&evalErr.Expr, expr)
	fill(&evalErr.Owner, ctx.Owner)
	fill(&evalErr.Property, ctx.Property)
	return evalErr
}
