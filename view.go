package style

// View is the node that owns a Style. Parent must return an untyped nil at
// the root of the tree and Style may return nil for views that carry no style.
type View interface {
	Parent() View
	Style() *Style
	String() string
}
