package main

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	style "github.com/goliatone/go-style"
	"github.com/goliatone/go-style/pkg/activity"
	"github.com/goliatone/go-style/pkg/state"
	"github.com/goliatone/go-style/pkg/tree"
)

// TreeSpec is the YAML document describing a view tree.
type TreeSpec struct {
	Themes map[string]ThemeSpec `mapstructure:"themes"`
	Nodes  []NodeSpec           `mapstructure:"nodes"`
}

// ThemeSpec is a named set of variables stored through pkg/state.
type ThemeSpec struct {
	Global map[string]string `mapstructure:"global"`
	Scoped map[string]string `mapstructure:"scoped"`
}

// NodeSpec declares one node. Parent must name a node declared earlier.
type NodeSpec struct {
	Name       string            `mapstructure:"name"`
	ID         string            `mapstructure:"id"`
	Parent     string            `mapstructure:"parent"`
	Theme      string            `mapstructure:"theme"`
	Global     map[string]string `mapstructure:"global"`
	Scoped     map[string]string `mapstructure:"scoped"`
	Variables  []VariableSpec    `mapstructure:"variables"`
	Properties map[string]any    `mapstructure:"properties"`
}

// VariableSpec declares one variable. Unlike the global and scoped maps,
// whose keys viper lowercases, the list form keeps names as written.
type VariableSpec struct {
	Name  string              `mapstructure:"name"`
	Value string              `mapstructure:"value"`
	Scope style.VariableScope `mapstructure:"scope"`
}

// LoadTreeSpec reads a YAML tree document from path.
func LoadTreeSpec(path string) (*TreeSpec, error) {
	if path == "" {
		return nil, fmt.Errorf("--%s is required", FlagTree)
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read tree %s: %w", path, err)
	}
	return decodeTreeSpec(v.AllSettings())
}

func decodeTreeSpec(settings map[string]any) (*TreeSpec, error) {
	spec := &TreeSpec{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		Result:           spec,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(variableScopeHook()),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	return spec, nil
}

// variableScopeHook parses scope strings with style.ParseVariableScope.
func variableScopeHook() mapstructure.DecodeHookFunc {
	scopeType := reflect.TypeOf(style.VariableScope(""))
	return func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != scopeType {
			return data, nil
		}
		scope, ok := style.ParseVariableScope(data.(string))
		if !ok {
			return nil, fmt.Errorf("unknown variable scope %q", data)
		}
		return scope, nil
	}
}

// Tree is a built view tree with the property changes applied per node.
type Tree struct {
	Roots   []*tree.Node
	Themes  []string
	Changes map[string][]style.PropertyChange
	nodes   map[string]*tree.Node
	order   []string
}

// Node returns the node named name.
func (t *Tree) Node(name string) (*tree.Node, error) {
	node, ok := t.nodes[name]
	if !ok {
		return nil, fmt.Errorf("node %q not found (known: %v)", name, t.order)
	}
	return node, nil
}

// Names lists node names in declaration order.
func (t *Tree) Names() []string {
	return slices.Clone(t.order)
}

// BuildTree creates the nodes of spec, writes their themes and variables and
// then applies their property declarations. Properties are applied after
// every variable is in place so declarations can reference any ancestor.
func BuildTree(ctx context.Context, spec *TreeSpec, hooks activity.Hooks, opts ...style.Option) (*Tree, error) {
	if spec == nil || len(spec.Nodes) == 0 {
		return nil, fmt.Errorf("tree has no nodes")
	}

	store := state.NewMemoryStore[state.Variables]()
	resolver := state.Resolver{
		Store:   store,
		Emitter: activity.NewEmitter(hooks, activity.Config{Enabled: len(hooks) > 0}),
		Actor:   activity.ActorFromContext(ctx),
	}
	if err := storeThemes(ctx, resolver, spec.Themes); err != nil {
		return nil, err
	}

	nodeOpts := append(slices.Clone(opts), style.WithActivityHooks(hooks))
	t := &Tree{
		Themes:  store.Themes(),
		Changes: map[string][]style.PropertyChange{},
		nodes:   map[string]*tree.Node{},
	}
	for _, ns := range spec.Nodes {
		if ns.Name == "" {
			return nil, fmt.Errorf("node without name")
		}
		if _, dup := t.nodes[ns.Name]; dup {
			return nil, fmt.Errorf("duplicate node %q", ns.Name)
		}
		node := tree.NewNode(ns.Name, nodeOpts...)
		node.SetID(ns.ID)

		if ns.Parent == "" {
			t.Roots = append(t.Roots, node)
		} else {
			parent, ok := t.nodes[ns.Parent]
			if !ok {
				return nil, fmt.Errorf("node %q: parent %q must be declared first", ns.Name, ns.Parent)
			}
			if err := parent.AddChild(node); err != nil {
				return nil, err
			}
		}
		t.nodes[ns.Name] = node
		t.order = append(t.order, ns.Name)

		if ns.Theme != "" {
			if _, err := resolver.Apply(ctx, node.Style(), ns.Theme); err != nil {
				return nil, fmt.Errorf("node %q: %w", ns.Name, err)
			}
		}
		setVariables(node.Style(), ns)
	}

	for _, ns := range spec.Nodes {
		if len(ns.Properties) == 0 {
			continue
		}
		changes, err := t.nodes[ns.Name].Style().Apply(ctx, ns.Properties)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", ns.Name, err)
		}
		t.Changes[ns.Name] = changes
	}
	return t, nil
}

func storeThemes(ctx context.Context, resolver state.Resolver, themes map[string]ThemeSpec) error {
	for _, name := range slices.Sorted(maps.Keys(themes)) {
		theme := themes[name]
		for scope, vars := range map[style.VariableScope]map[string]string{
			style.ScopeGlobal: theme.Global,
			style.ScopeScoped: theme.Scoped,
		} {
			if len(vars) == 0 {
				continue
			}
			ref := state.Ref{Theme: name, Scope: scope}
			_, _, err := resolver.Mutate(ctx, ref, state.Meta{}, func(snapshot *state.Variables) error {
				maps.Copy(*snapshot, vars)
				return nil
			})
			if err != nil {
				return fmt.Errorf("theme %q: %w", name, err)
			}
		}
	}
	return nil
}

func setVariables(s *style.Style, ns NodeSpec) {
	for name, value := range ns.Global {
		s.SetVariable(name, value, false)
	}
	for name, value := range ns.Scoped {
		s.SetVariable(name, value, true)
	}
	for _, variable := range ns.Variables {
		s.SetVariable(variable.Name, variable.Value, variable.Scope.Scoped())
	}
}
