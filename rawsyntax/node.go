package rawsyntax

import (
	"fmt"
	"strings"
)

// Node is an immutable raw syntax node. Nodes come in two flavours: layout
// nodes own an ordered list of children, token nodes own a fragment of source
// text. Both variants carry a kind tag, a presence flag and a memoized total
// source length, and both record the arena they were allocated in.
//
// Node values are never handed out; clients always deal in *Node references
// obtained from a factory. Two nodes are "the same" exactly if their
// references are equal. The factories never intern, so every factory call
// yields a distinct identity, even for identical content.
type Node struct {
	kind     Kind
	presence Presence
	token    bool
	children []*Node // layout nodes: ordered children; nil for tokens
	text     string  // token nodes: source text
	length   int     // memoized total source length in bytes
	arena    *Arena
}

// MakeNode builds a layout node of the given kind from an ordered child list,
// memoizing the total source length of the children. The layout slice is
// copied; the caller keeps ownership of the slice it passed in. Children may
// not be nil. The node is allocated within arena, which may not be nil.
func MakeNode(kind Kind, layout []*Node, presence Presence, arena *Arena) *Node {
	assertThat(arena != nil, "nodes must be allocated within an arena")
	children := make([]*Node, len(layout))
	copy(children, layout)
	length := 0
	for _, ch := range children {
		assertThat(ch != nil, "node layout may not contain nil children")
		length += ch.length
	}
	return arena.alloc(Node{
		kind:     kind,
		presence: presence,
		children: children,
		length:   length,
		arena:    arena,
	})
}

// MakeToken builds a token node of the given kind carrying a fragment of
// source text. Its memoized length is the byte length of the text. The node
// is allocated within arena, which may not be nil.
func MakeToken(kind Kind, text string, presence Presence, arena *Arena) *Node {
	assertThat(arena != nil, "nodes must be allocated within an arena")
	return arena.alloc(Node{
		kind:     kind,
		presence: presence,
		token:    true,
		text:     text,
		length:   len(text),
		arena:    arena,
	})
}

// --- Accessors -------------------------------------------------------------

// Kind returns the kind tag of a node.
func (n *Node) Kind() Kind {
	return n.kind
}

// Presence returns whether a node spans real source content or is a
// placeholder.
func (n *Node) Presence() Presence {
	return n.presence
}

// IsToken returns true for token nodes, i.e. leafs carrying source text.
func (n *Node) IsToken() bool {
	return n.token
}

// Text returns the source text of a token node, and "" for layout nodes.
func (n *Node) Text() string {
	return n.text
}

// Length returns the memoized total source length of the subtree below this
// node, in bytes. It has been calculated once, at node construction.
func (n *Node) Length() int {
	return n.length
}

// Arena returns the arena this node has been allocated in.
func (n *Node) Arena() *Arena {
	return n.arena
}

// NumChildren returns the number of child slots of a node's layout. Token
// nodes have none.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Child returns the child reference at slot i.
//
// Precondition: 0 ≤ i < NumChildren()
func (n *Node) Child(i int) *Node {
	assertThat(i >= 0 && i < len(n.children), "child index out of bounds: %d with %d children", i, len(n.children))
	return n.children[i]
}

// Layout returns the ordered child references of a node as a fresh slice.
// Callers may modify the returned slice freely; the node is unaffected.
func (n *Node) Layout() []*Node {
	layout := make([]*Node, len(n.children))
	copy(layout, n.children)
	return layout
}

// --- Child replacement -----------------------------------------------------

// ReplacingChild builds a new node identical to n except that the child at
// slot i is replaced by ch. All other children are shared between n and the
// new node. This is the primitive the position layer rebuilds tree spines
// with after an edit.
//
// Precondition: 0 ≤ i < NumChildren()
func (n *Node) ReplacingChild(i int, ch *Node) *Node {
	assertThat(i >= 0 && i < len(n.children), "child index out of bounds: %d with %d children", i, len(n.children))
	assertThat(ch != nil, "replacement child may not be nil")
	cow := make([]*Node, len(n.children))
	copy(cow, n.children)
	cow[i] = ch
	tracer().Debugf("replacing child %d of %s", i, n)
	return MakeNode(n.kind, cow, n.presence, n.arena)
}

// --- Stringer --------------------------------------------------------------

func (n *Node) String() string {
	if n == nil {
		return "(nil)"
	}
	if n.token {
		return fmt.Sprintf("(%s %q)", n.kind, n.text)
	}
	b := strings.Builder{}
	b.WriteByte('(')
	b.WriteString(n.kind.String())
	b.WriteString(" [")
	for i, ch := range n.children {
		if i > 0 {
			b.WriteByte(',')
		}
		if ch.token {
			b.WriteString("•")
		} else {
			b.WriteString("▪︎")
		}
	}
	b.WriteString("])")
	return b.String()
}
