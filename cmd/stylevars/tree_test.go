package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	style "github.com/goliatone/go-style"
	"github.com/goliatone/go-style/pkg/activity"
)

const sampleTree = `
themes:
  dark:
    global:
      --bg: black
    scoped:
      --fg: white
nodes:
  - name: root
    id: app
    theme: dark
    global:
      --gap: 8px
  - name: panel
    parent: root
    variables:
      - name: --Accent
        value: teal
        scope: scoped
  - name: label
    parent: panel
    properties:
      color: var(--fg)
      padding-left: calc(var(--gap) * 2)
      opacity: 0.5
`

func writeTree(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tree.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write tree: %v", err)
	}
	return path
}

func TestLoadAndBuildTree(t *testing.T) {
	spec, err := LoadTreeSpec(writeTree(t, sampleTree))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(spec.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(spec.Nodes))
	}
	if spec.Nodes[1].Variables[0].Scope != style.ScopeScoped {
		t.Fatalf("expected scoped variable, got %q", spec.Nodes[1].Variables[0].Scope)
	}

	capture := &activity.CaptureHook{}
	tr, err := BuildTree(context.Background(), spec, activity.Hooks{capture})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	label, err := tr.Node("label")
	if err != nil {
		t.Fatalf("node: %v", err)
	}

	if got, ok := label.Style().Variable("--bg"); !ok || got != "black" {
		t.Fatalf("expected theme variable inherited, got %q %v", got, ok)
	}
	if got, ok := label.Style().Variable("--Accent"); !ok || got != "teal" {
		t.Fatalf("expected list variable keeps its case, got %q %v", got, ok)
	}

	props := label.Style().Properties
	if props.Color == nil || *props.Color != "white" {
		t.Fatalf("unexpected color %v", props.Color)
	}
	if props.PaddingLeft == nil || *props.PaddingLeft != "16px" {
		t.Fatalf("unexpected padding-left %v", props.PaddingLeft)
	}
	if len(tr.Changes["label"]) != 3 {
		t.Fatalf("expected 3 changes, got %+v", tr.Changes["label"])
	}

	verbs := capture.Verbs()
	if len(verbs) != 4 || verbs[0] != activity.VerbVariablesApplied {
		t.Fatalf("unexpected activity %v", verbs)
	}
	if len(tr.Themes) != 1 || tr.Themes[0] != "dark" {
		t.Fatalf("unexpected themes %v", tr.Themes)
	}
	if len(tr.Roots) != 1 || tr.Roots[0].String() != "root<app>" {
		t.Fatalf("unexpected roots %v", tr.Roots)
	}
}

func TestDecodeTreeSpecRejectsUnknownKeys(t *testing.T) {
	_, err := decodeTreeSpec(map[string]any{
		"nodes": []any{map[string]any{"name": "root", "colour": "red"}},
	})
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestDecodeTreeSpecRejectsUnknownScope(t *testing.T) {
	_, err := decodeTreeSpec(map[string]any{
		"nodes": []any{map[string]any{
			"name":      "root",
			"variables": []any{map[string]any{"name": "--a", "value": "1", "scope": "cascade"}},
		}},
	})
	if err == nil {
		t.Fatal("expected error for unknown scope")
	}
}

func TestBuildTreeErrors(t *testing.T) {
	cases := map[string]*TreeSpec{
		"empty":          {},
		"unknown parent": {Nodes: []NodeSpec{{Name: "a", Parent: "missing"}}},
		"duplicate":      {Nodes: []NodeSpec{{Name: "a"}, {Name: "a"}}},
		"missing theme":  {Nodes: []NodeSpec{{Name: "a", Theme: "nope"}}},
		"bad property":   {Nodes: []NodeSpec{{Name: "a", Properties: map[string]any{"colour": "red"}}}},
	}
	for name, spec := range cases {
		if _, err := BuildTree(context.Background(), spec, nil); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestTreeNodeLookup(t *testing.T) {
	tr, err := BuildTree(context.Background(), &TreeSpec{Nodes: []NodeSpec{{Name: "a"}, {Name: "b", Parent: "a"}}}, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, err := tr.Node("zzz"); err == nil {
		t.Fatal("expected error for unknown node")
	}
	if names := tr.Names(); len(names) != 2 || names[1] != "b" {
		t.Fatalf("unexpected names %v", names)
	}
}
