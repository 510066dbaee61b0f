// Package tree provides a minimal view hierarchy for hosting styles outside a
// UI toolkit: a named node with a parent pointer, children and a style.
package tree

import (
	"errors"
	"fmt"
	"slices"

	style "github.com/goliatone/go-style"
)

var (
	ErrNilNode = errors.New("tree: node is nil")
	ErrCycle   = errors.New("tree: adding node would create a cycle")
)

// Node is a view in a tree. Its style holds only a weak reference back to it.
type Node struct {
	name     string
	id       string
	parent   *Node
	children []*Node
	style    *style.Style
}

var _ style.View = (*Node)(nil)

// NewNode creates a detached node named name together with its style.
func NewNode(name string, opts ...style.Option) *Node {
	n := &Node{name: name}
	n.style = style.New(n, opts...)
	return n
}

// Name returns the node name.
func (n *Node) Name() string {
	return n.name
}

// SetID assigns the id attribute shown by String.
func (n *Node) SetID(id string) {
	n.id = id
}

// Parent returns the parent view, or nil for a root node.
func (n *Node) Parent() style.View {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// ParentNode returns the parent node, or nil for a root node.
func (n *Node) ParentNode() *Node {
	return n.parent
}

// Style returns the node's style.
func (n *Node) Style() *style.Style {
	return n.style
}

func (n *Node) String() string {
	if n.id != "" {
		return fmt.Sprintf("%s<%s>", n.name, n.id)
	}
	return n.name
}

// AddChild attaches child as the last child of n, detaching it from any
// previous parent first.
func (n *Node) AddChild(child *Node) error {
	if n == nil || child == nil {
		return ErrNilNode
	}
	for ancestor := n; ancestor != nil; ancestor = ancestor.parent {
		if ancestor == child {
			return fmt.Errorf("%w: %s under %s", ErrCycle, child, n)
		}
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// RemoveChild detaches child from n. It reports whether child was attached.
func (n *Node) RemoveChild(child *Node) bool {
	idx := slices.Index(n.children, child)
	if idx < 0 {
		return false
	}
	n.children = slices.Delete(n.children, idx, idx+1)
	child.parent = nil
	return true
}

// Children returns a copy of the node's children.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// Find returns the first node named name in depth-first order, starting with
// n itself.
func (n *Node) Find(name string) *Node {
	if n == nil {
		return nil
	}
	if n.name == name {
		return n
	}
	for _, child := range n.children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits n and its descendants depth-first until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil || !fn(n) {
		return false
	}
	for _, child := range n.children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}
