package style

// VariableScope identifies which namespace of the variable table an entry
// lives in.
type VariableScope string

const (
	// ScopeGlobal entries are stored under the bare variable name and take
	// precedence at the node that declares them.
	ScopeGlobal VariableScope = "global"
	// ScopeScoped entries are stored under the "scoped:" prefix and are only
	// consulted when no global entry exists at the same node.
	ScopeScoped VariableScope = "scoped"
)

const scopedPrefix = "scoped:"

// ScopeOf maps the boolean scoped flag used by the variable operations onto a
// VariableScope.
func ScopeOf(scoped bool) VariableScope {
	if scoped {
		return ScopeScoped
	}
	return ScopeGlobal
}

// Scoped reports whether s is the scoped namespace.
func (s VariableScope) Scoped() bool {
	return s == ScopeScoped
}

func (s VariableScope) String() string {
	return string(s)
}

// ParseVariableScope converts a string into a VariableScope. The second
// return value is false for unrecognised input.
func ParseVariableScope(value string) (VariableScope, bool) {
	switch value {
	case "global", "GLOBAL", "":
		return ScopeGlobal, true
	case "scoped", "SCOPED", "local", "LOCAL":
		return ScopeScoped, true
	default:
		return "", false
	}
}

func variableKey(name string, scoped bool) string {
	if scoped {
		return scopedPrefix + name
	}
	return name
}
