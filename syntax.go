package syntree

import (
	"github.com/npillmayer/syntree/rawsyntax"
)

// Kind is the tag discriminating node variants; see package rawsyntax.
type Kind = rawsyntax.Kind

// Syntax is a raw syntax node bound to its position within a tree. It is the
// vantage point from which clients navigate: down to children, up to parents,
// and, after an edit, over to the corresponding position in the new tree.
//
// Syntax is a small value type. Copying it is cheap and never copies tree
// structure; all tree structure lives in immutable raw nodes, which any
// number of Syntax values (and goroutines) may reference concurrently.
type Syntax struct {
	raw    *rawsyntax.Node
	parent *Syntax
	index  int // slot within parent's layout
}

// Root binds a raw node as the root of a tree.
func Root(raw *rawsyntax.Node) Syntax {
	assertThat(raw != nil, "cannot root a tree at a nil node")
	return Syntax{raw: raw}
}

// Raw returns the raw node backing this position.
func (s Syntax) Raw() *rawsyntax.Node {
	return s.raw
}

// Kind returns the kind tag of the node at this position.
func (s Syntax) Kind() Kind {
	return s.raw.Kind()
}

// Present returns whether the node spans real source content, as opposed to
// being a placeholder for missing content.
func (s Syntax) Present() bool {
	return s.raw.Presence() == rawsyntax.Present
}

// IsToken returns true if the node at this position is a token, i.e. a leaf
// carrying source text.
func (s Syntax) IsToken() bool {
	return s.raw.IsToken()
}

// Text returns the source text of a token node, and "" for layout nodes.
func (s Syntax) Text() string {
	return s.raw.Text()
}

// Length returns the total source length of the subtree at this position,
// in bytes.
func (s Syntax) Length() int {
	return s.raw.Length()
}

// NumChildren returns the number of child slots of the node at this position.
func (s Syntax) NumChildren() int {
	return s.raw.NumChildren()
}

// Child returns the child at slot i, bound to its position below this node.
// Children are wrapped lazily, on access; nothing is cached.
//
// Precondition: 0 ≤ i < NumChildren()
func (s Syntax) Child(i int) Syntax {
	assertThat(i >= 0 && i < s.raw.NumChildren(), "child index out of bounds: %d with %d children", i, s.raw.NumChildren())
	parent := s
	return Syntax{raw: s.raw.Child(i), parent: &parent, index: i}
}

// Parent returns the position this node is a child of, with ok=false at the
// root of a tree.
func (s Syntax) Parent() (Syntax, bool) {
	if s.parent == nil {
		return Syntax{}, false
	}
	return *s.parent, true
}

// IndexInParent returns the child slot this node occupies within its parent,
// and 0 for the root of a tree.
func (s Syntax) IndexInParent() int {
	return s.index
}

// TreeRoot walks up to the root of the tree this position is part of. For a
// freshly edited node this is the way to obtain the complete new tree.
func (s Syntax) TreeRoot() Syntax {
	root := s
	for root.parent != nil {
		root = *root.parent
	}
	return root
}

// Position returns the byte offset of this node's source text within its
// tree. Memoized subtree lengths make this cheap to compute, one addition
// per sibling along the ancestor chain.
func (s Syntax) Position() int {
	if s.parent == nil {
		return 0
	}
	pos := s.parent.Position()
	for i := 0; i < s.index; i++ {
		pos += s.parent.raw.Child(i).Length()
	}
	return pos
}

// Depth returns the number of ancestors above this position. Roots are at
// depth 0.
func (s Syntax) Depth() int {
	if s.parent == nil {
		return 0
	}
	return s.parent.Depth() + 1
}

// HasSameIdentityAs reports whether both positions reference the exact same
// raw node allocation. This is identity, not structural equality: two
// independently built trees with identical content never share identity.
func (s Syntax) HasSameIdentityAs(other Syntax) bool {
	return s.raw != nil && s.raw == other.raw
}

// ReplacingSelf returns the position of newRaw in a tree in which newRaw has
// taken this node's place. The chain of ancestors is rebuilt bottom-up, each
// ancestor getting a copy with one child slot rewired, while every subtree
// off the edited path is shared between the old and the new tree.
func (s Syntax) ReplacingSelf(newRaw *rawsyntax.Node) Syntax {
	assertThat(newRaw != nil, "replacement node may not be nil")
	if s.parent == nil {
		tracer().Debugf("replaced tree root by %s", newRaw)
		return Syntax{raw: newRaw}
	}
	cow := s.parent.raw.ReplacingChild(s.index, newRaw)
	newParent := s.parent.ReplacingSelf(cow)
	return newParent.Child(s.index)
}

func (s Syntax) String() string {
	return s.raw.String()
}
