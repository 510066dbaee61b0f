package tree

import (
	"errors"
	"testing"
)

func TestAddChildLinksParentAndStyleChain(t *testing.T) {
	root := NewNode("root")
	child := NewNode("child")
	if err := root.AddChild(child); err != nil {
		t.Fatalf("add child: %v", err)
	}

	if child.Parent() != root {
		t.Fatalf("expected root as parent")
	}
	root.Style().SetVariable("--accent", "teal", false)
	if got, ok := child.Style().Variable("--accent"); !ok || got != "teal" {
		t.Fatalf("expected inherited variable, got %q %v", got, ok)
	}
}

func TestRootParentIsUntypedNil(t *testing.T) {
	if NewNode("root").Parent() != nil {
		t.Fatalf("expected nil parent interface for root")
	}
}

func TestAddChildRejectsCycles(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	if err := a.AddChild(b); err != nil {
		t.Fatalf("add child: %v", err)
	}
	if err := b.AddChild(a); !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
	if err := a.AddChild(a); !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle for self, got %v", err)
	}
	if err := a.AddChild(nil); !errors.Is(err, ErrNilNode) {
		t.Fatalf("expected ErrNilNode, got %v", err)
	}
}

func TestAddChildReparents(t *testing.T) {
	first := NewNode("first")
	second := NewNode("second")
	child := NewNode("child")
	_ = first.AddChild(child)
	_ = second.AddChild(child)

	if len(first.Children()) != 0 {
		t.Fatalf("expected child removed from previous parent")
	}
	if child.ParentNode() != second {
		t.Fatalf("expected second as parent")
	}
}

func TestRemoveChild(t *testing.T) {
	root := NewNode("root")
	child := NewNode("child")
	_ = root.AddChild(child)

	if !root.RemoveChild(child) {
		t.Fatalf("expected child removed")
	}
	if root.RemoveChild(child) {
		t.Fatalf("expected second removal to report false")
	}
	if child.Parent() != nil {
		t.Fatalf("expected detached child")
	}
}

func TestFindAndWalk(t *testing.T) {
	root := NewNode("root")
	panel := NewNode("panel")
	label := NewNode("label")
	_ = root.AddChild(panel)
	_ = panel.AddChild(label)

	if root.Find("label") != label {
		t.Fatalf("expected to find label")
	}
	if root.Find("missing") != nil {
		t.Fatalf("expected nil for missing node")
	}

	var names []string
	root.Walk(func(n *Node) bool {
		names = append(names, n.Name())
		return true
	})
	if len(names) != 3 || names[2] != "label" {
		t.Fatalf("unexpected walk order: %v", names)
	}
}

func TestStringIncludesID(t *testing.T) {
	n := NewNode("Button")
	if n.String() != "Button" {
		t.Fatalf("unexpected label %q", n.String())
	}
	n.SetID("submit")
	if n.String() != "Button<submit>" {
		t.Fatalf("unexpected label %q", n.String())
	}
	if n.Style().String() != "Button<submit>.style" {
		t.Fatalf("unexpected style label %q", n.Style().String())
	}
}
