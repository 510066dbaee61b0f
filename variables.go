package style

import (
	"fmt"
	"strings"
)

// SetVariable stores value under name in the global or scoped namespace,
// replacing any previous value. No change notification is emitted.
func (s *Style) SetVariable(name, value string, scoped bool) {
	s.variables[variableKey(name, scoped)] = value
}

// UnsetVariable removes name from the given namespace. Missing entries are
// ignored.
func (s *Style) UnsetVariable(name string, scoped bool) {
	delete(s.variables, variableKey(name, scoped))
}

// Variable resolves name for this style. A global entry wins over a scoped
// entry at the same node; when neither exists the lookup is delegated to the
// parent view's style. The second return value is false when no style on the
// chain defines name or when the owning view has been reclaimed.
func (s *Style) Variable(name string) (string, bool) {
	return s.lookup(name, s.maxDepth(), nil, 0)
}

// ResolveWithTrace resolves name like Variable and records every key probed
// along the ancestor chain.
func (s *Style) ResolveWithTrace(name string) (string, bool, Trace) {
	trace := Trace{Name: name}
	value, ok := s.lookup(name, s.maxDepth(), &trace, 0)
	trace.Value = value
	trace.Found = ok
	return value, ok, trace
}

func (s *Style) lookup(name string, remaining int, trace *Trace, depth int) (string, bool) {
	view := s.View()
	if view == nil {
		return "", false
	}

	if value, ok := s.probe(view, name, false, trace, depth); ok {
		return value, true
	}
	if value, ok := s.probe(view, name, true, trace, depth); ok {
		return value, true
	}

	parent := view.Parent()
	if parent == nil {
		return "", false
	}
	parentStyle := parent.Style()
	if parentStyle == nil {
		return "", false
	}
	if remaining <= 0 {
		s.tracer().Write(TraceEntry{
			Message:  fmt.Sprintf("variable %q: ancestor chain of %s exceeds %d levels, treating as unresolved", name, view, s.maxDepth()),
			Category: CategoryStyle,
			Severity: SeverityWarn,
		})
		return "", false
	}
	return parentStyle.lookup(name, remaining-1, trace, depth+1)
}

func (s *Style) probe(view View, name string, scoped bool, trace *Trace, depth int) (string, bool) {
	key := variableKey(name, scoped)
	value, ok := s.variables[key]
	if trace != nil {
		trace.Steps = append(trace.Steps, Provenance{
			Owner: view.String(),
			Depth: depth,
			Key:   key,
			Scope: ScopeOf(scoped),
			Value: value,
			Found: ok,
		})
	}
	return value, ok
}

// ClearVariables removes every entry from the variable table.
func (s *Style) ClearVariables() {
	clear(s.variables)
}

// ClearScopedVariables removes only the entries of one namespace, leaving the
// other untouched.
func (s *Style) ClearScopedVariables(scoped bool) {
	for key := range s.variables {
		if strings.HasPrefix(key, scopedPrefix) == scoped {
			delete(s.variables, key)
		}
	}
}

// Variables returns a copy of the entries this style declares in one
// namespace, keyed by logical name. Ancestors are not consulted.
func (s *Style) Variables(scoped bool) map[string]string {
	out := make(map[string]string)
	for key, value := range s.variables {
		if strings.HasPrefix(key, scopedPrefix) != scoped {
			continue
		}
		out[strings.TrimPrefix(key, scopedPrefix)] = value
	}
	return out
}

// Len returns the number of entries stored locally across both namespaces.
func (s *Style) Len() int {
	return len(s.variables)
}
