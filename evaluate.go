package style

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// maxSubstitutionDepth bounds var() references nested inside variable values
// or fallbacks.
const maxSubstitutionDepth = 32

// Resolve substitutes var(--name[, fallback]) references using Variable and
// then reduces calc() segments with the configured evaluator. References that
// cannot be resolved and carry no fallback are left in place.
func (s *Style) Resolve(value string) (string, error) {
	return s.resolveValue("", value)
}

func (s *Style) resolveValue(property, value string) (string, error) {
	substituted := s.substituteVariables(strings.TrimSpace(value), 0)
	if !strings.Contains(substituted, "calc(") {
		return substituted, nil
	}
	ctx := EvalContext{Owner: s.Label(), Property: property}
	return s.reduceCalc(ctx, substituted)
}

func (s *Style) substituteVariables(value string, depth int) string {
	if depth > maxSubstitutionDepth || !strings.Contains(value, "var(") {
		return value
	}

	var out strings.Builder
	rest := value
	for {
		start := indexFunction(rest, "var")
		if start < 0 {
			out.WriteString(rest)
			break
		}
		open := start + len("var")
		end := closingParen(rest, open)
		if end < 0 {
			out.WriteString(rest)
			break
		}
		out.WriteString(rest[:start])

		name, fallback, hasFallback := splitArguments(rest[open+1 : end])
		switch resolved, ok := s.Variable(name); {
		case !strings.HasPrefix(name, "--"):
			out.WriteString(rest[start : end+1])
		case ok:
			out.WriteString(s.substituteVariables(resolved, depth+1))
		case hasFallback:
			out.WriteString(s.substituteVariables(fallback, depth+1))
		default:
			out.WriteString(rest[start : end+1])
		}
		rest = rest[end+1:]
	}
	return out.String()
}

func (s *Style) reduceCalc(ctx EvalContext, value string) (string, error) {
	for {
		start := indexFunction(value, "calc")
		if start < 0 {
			return value, nil
		}
		open := start + len("calc")
		end := closingParen(value, open)
		if end < 0 {
			return "", fmt.Errorf("%w: %q", ErrUnterminatedFunction, value)
		}
		reduced, err := s.evaluateCalc(ctx, value[open+1:end])
		if err != nil {
			return "", err
		}
		value = value[:start] + reduced + value[end+1:]
	}
}

func (s *Style) evaluateCalc(ctx EvalContext, body string) (string, error) {
	expression, unit, err := normalizeCalc(body)
	if err != nil {
		return "", err
	}
	evaluator, err := s.resolveEvaluator()
	if err != nil {
		return "", err
	}

	engine := evaluatorEngineName(evaluator)
	start := time.Now()
	result, evalErr := evaluator.Evaluate(ctx, expression)
	duration := time.Since(start)
	evalErr = wrapEvaluationError(engine, expression, ctx, evalErr)
	s.evaluatorLogger().LogEvaluation(EvaluatorLogEvent{
		Engine:   engine,
		Expr:     expression,
		Owner:    ctx.Owner,
		Property: ctx.Property,
		Duration: duration,
		Err:      evalErr,
	})
	if evalErr != nil {
		return "", evalErr
	}

	number, ok := toFloat(result)
	if !ok {
		return "", wrapEvaluationError(engine, expression, ctx,
			fmt.Errorf("%w: %T", ErrNonNumericResult, result))
	}
	return strconv.FormatFloat(number, 'f', -1, 64) + unit, nil
}

// normalizeCalc strips units from the dimensions in body, rewrites nested
// calc() groups as plain parentheses and renders every number as a floating
// literal. It returns the resulting expression and the single unit shared by
// the dimensions.
func normalizeCalc(body string) (string, string, error) {
	var out strings.Builder
	unit := ""
	runes := []rune(body)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case isNumberStart(runes, i):
			j := i
			for j < len(runes) && (unicode.IsDigit(runes[j]) || runes[j] == '.') {
				j++
			}
			j = skipExponent(runes, j)
			number, err := strconv.ParseFloat(string(runes[i:j]), 64)
			if err != nil {
				return "", "", fmt.Errorf("style: calc number %q: %w", string(runes[i:j]), err)
			}
			k := j
			for k < len(runes) && (unicode.IsLetter(runes[k]) || runes[k] == '%') {
				k++
			}
			if suffix := string(runes[j:k]); suffix != "" {
				if unit != "" && unit != suffix {
					return "", "", fmt.Errorf("%w: %s and %s", ErrUnitMismatch, unit, suffix)
				}
				unit = suffix
			}
			out.WriteString(floatLiteral(number))
			i = k
		case unicode.IsLetter(r) || r == '_':
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_' || runes[j] == '-') {
				j++
			}
			ident := string(runes[i:j])
			if ident == "calc" && j < len(runes) && runes[j] == '(' {
				ident = ""
			}
			out.WriteString(ident)
			i = j
		default:
			out.WriteRune(r)
			i++
		}
	}
	return strings.TrimSpace(out.String()), unit, nil
}

func isNumberStart(runes []rune, i int) bool {
	r := runes[i]
	if !unicode.IsDigit(r) && !(r == '.' && i+1 < len(runes) && unicode.IsDigit(runes[i+1])) {
		return false
	}
	if i == 0 {
		return true
	}
	prev := runes[i-1]
	return !unicode.IsLetter(prev) && !unicode.IsDigit(prev) && prev != '_'
}

// skipExponent returns the index past an e[+-]digits exponent starting at i,
// or i when there is none. "1em" keeps its unit.
func skipExponent(runes []rune, i int) int {
	if i >= len(runes) || (runes[i] != 'e' && runes[i] != 'E') {
		return i
	}
	j := i + 1
	if j < len(runes) && (runes[j] == '+' || runes[j] == '-') {
		j++
	}
	if j >= len(runes) || !unicode.IsDigit(runes[j]) {
		return i
	}
	for j < len(runes) && unicode.IsDigit(runes[j]) {
		j++
	}
	return j
}

func floatLiteral(number float64) string {
	literal := strconv.FormatFloat(number, 'f', -1, 64)
	if !strings.ContainsAny(literal, ".eE") {
		literal += ".0"
	}
	return literal
}

// indexFunction finds the first call of name in value, ignoring matches that
// are the tail of a longer identifier.
func indexFunction(value, name string) int {
	offset := 0
	for {
		idx := strings.Index(value[offset:], name+"(")
		if idx < 0 {
			return -1
		}
		idx += offset
		if idx == 0 {
			return idx
		}
		prev := rune(value[idx-1])
		if !unicode.IsLetter(prev) && !unicode.IsDigit(prev) && prev != '-' && prev != '_' {
			return idx
		}
		offset = idx + len(name)
	}
}

// closingParen returns the index of the parenthesis closing the one at open.
func closingParen(value string, open int) int {
	depth := 0
	for i := open; i < len(value); i++ {
		switch value[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitArguments splits the body of a var() call at its first top-level comma.
func splitArguments(body string) (string, string, bool) {
	depth := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				return strings.TrimSpace(body[:i]), strings.TrimSpace(body[i+1:]), true
			}
		}
	}
	return strings.TrimSpace(body), "", false
}

func (s *Style) resolveEvaluator() (Evaluator, error) {
	if evaluator := s.evaluator(); evaluator != nil {
		return evaluator, nil
	}
	var exprOpts []ExprEvaluatorOption
	if cache := s.programCache(); cache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(cache))
	}
	if registry := s.functionRegistry(); registry != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(registry))
	}
	defaultEvaluator := NewExprEvaluator(exprOpts...)
	if defaultEvaluator == nil {
		return nil, ErrNoEvaluator
	}
	s.withEvaluator(defaultEvaluator)
	return defaultEvaluator, nil
}

func evaluatorEngineName(e Evaluator) string {
	if named, ok := e.(Engine); ok {
		return named.Engine()
	}
	return "custom"
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}
