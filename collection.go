package syntree

import (
	"fmt"

	"github.com/npillmayer/syntree/rawsyntax"
)

// Element is the constraint for the element type of a collection. Anything
// backed by a raw node qualifies; in practice elements are small wrapper
// types embedding Syntax, which satisfy Element for free. Collections
// themselves satisfy Element, so collections nest.
type Element interface {
	Raw() *rawsyntax.Node
}

// KindTag binds one collection kind to one element type, at compile time.
// Engines declare a zero-size tag type per concrete collection of their
// grammar:
//
//	type StmtListOf struct{}
//
//	func (StmtListOf) Kind() syntree.Kind       { return KindStmtList }
//	func (StmtListOf) Wrap(s syntree.Syntax) Stmt { return Stmt{s} }
//
//	type StmtList = syntree.Collection[StmtListOf, Stmt]
//
// The tag never exists as a value of interest; the generic code conjures a
// zero instance wherever it needs the kind or an element wrapped. Tags must
// be declared with value receivers for this to work.
type KindTag[E Element] interface {
	Kind() Kind
	Wrap(Syntax) E
}

// Collection is a persistent, kind-tagged sequence of syntax nodes: the
// statement lists, parameter lists and the like of a full-fidelity syntax
// tree. A collection is a view of one raw layout node whose kind is fixed by
// the tag K and whose children are exposed as elements of type E.
//
// Collections have value semantics with copy-on-write behaviour: each edit
// operation (Appending, Inserting, Removing, …) builds a new collection,
// leaving the receiver unmodified. Old and new collection share all unedited
// structure (the elements themselves and everything outside the edited
// tree path) while the edited node's own child list is rebuilt. Edits on a
// collection positioned inside a larger tree rebuild the ancestor spine via
// Syntax.ReplacingSelf, so the result is the same position in a new tree.
//
// Collections are inherently concurrency-safe: any number of goroutines may
// read and "edit" the same collection value without coordination.
type Collection[K KindTag[E], E Element] struct {
	Syntax
}

// NewCollection builds a root collection of tag K from a literal list of
// elements, allocating within arena. The elements' raw nodes become the
// children of a fresh, Present layout node.
func NewCollection[K KindTag[E], E Element](arena *rawsyntax.Arena, elems ...E) Collection[K, E] {
	var k K
	layout := make([]*rawsyntax.Node, 0, len(elems))
	for _, e := range elems {
		layout = append(layout, e.Raw())
	}
	raw := rawsyntax.MakeNode(k.Kind(), layout, rawsyntax.Present, arena)
	return Collection[K, E]{Root(raw)}
}

// --- Reading ---------------------------------------------------------------

// Len returns the number of elements in the collection. O(1).
func (c Collection[K, E]) Len() int {
	return c.NumChildren()
}

// IsEmpty returns true iff the collection has no elements.
func (c Collection[K, E]) IsEmpty() bool {
	return c.Len() == 0
}

// At returns the element at position i, wrapping the i-th child with its
// position. Elements are created lazily per access; two calls return two
// (equivalent) wrappers.
//
// Precondition: 0 ≤ i < Len()
func (c Collection[K, E]) At(i int) E {
	assertThat(!c.IsEmpty(), "attempt to index into an empty collection")
	assertThat(i >= 0 && i < c.Len(), "collection index out of bounds: %d with length %d", i, c.Len())
	var k K
	return k.Wrap(c.Child(i))
}

// Elements returns all elements as a fresh slice, in order.
func (c Collection[K, E]) Elements() []E {
	var k K
	elems := make([]E, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		elems = append(elems, k.Wrap(c.Child(i)))
	}
	return elems
}

// HasSameIdentityAs reports whether both collections reference the exact
// same raw node allocation. Content-equal collections built separately, or
// derived from one another by edits, never share identity.
func (c Collection[K, E]) HasSameIdentityAs(other Collection[K, E]) bool {
	return c.Syntax.HasSameIdentityAs(other.Syntax)
}

// --- Editing ---------------------------------------------------------------

// Every edit operation reads the receiver's child references, computes a new
// ordered child list, asks the raw node factory for a new node of the same
// kind, presence and arena, and re-wires it into the receiver's tree
// position. None of them touches the receiver.

// rebuild finishes an edit: it builds the replacement raw node from the new
// layout and returns it as a collection at the receiver's tree position.
func (c Collection[K, E]) rebuild(layout []*rawsyntax.Node) Collection[K, E] {
	var k K
	raw := rawsyntax.MakeNode(k.Kind(), layout, c.raw.Presence(), c.raw.Arena())
	tracer().Debugf("rebuilt %s collection with %d children", k.Kind(), len(layout))
	return Collection[K, E]{c.ReplacingSelf(raw)}
}

// Appending returns a new collection with e added at the end.
func (c Collection[K, E]) Appending(e E) Collection[K, E] {
	n := c.Len()
	layout := make([]*rawsyntax.Node, 0, n+1)
	for i := 0; i < n; i++ {
		layout = append(layout, c.raw.Child(i))
	}
	layout = append(layout, e.Raw())
	return c.rebuild(layout)
}

// Prepending returns a new collection with e added at the front.
func (c Collection[K, E]) Prepending(e E) Collection[K, E] {
	n := c.Len()
	layout := make([]*rawsyntax.Node, 0, n+1)
	layout = append(layout, e.Raw())
	for i := 0; i < n; i++ {
		layout = append(layout, c.raw.Child(i))
	}
	return c.rebuild(layout)
}

// Inserting returns a new collection with e spliced in at position i,
// shifting the elements at later positions.
//
// Precondition: 0 ≤ i ≤ Len()
func (c Collection[K, E]) Inserting(i int, e E) Collection[K, E] {
	n := c.Len()
	assertThat(i >= 0 && i <= n, "insertion index out of bounds: %d with length %d", i, n)
	layout := make([]*rawsyntax.Node, 0, n+1)
	for j := 0; j < i; j++ {
		layout = append(layout, c.raw.Child(j))
	}
	layout = append(layout, e.Raw())
	for j := i; j < n; j++ {
		layout = append(layout, c.raw.Child(j))
	}
	return c.rebuild(layout)
}

// Removing returns a new collection with the element at position i dropped.
//
// Precondition: 0 ≤ i < Len(). Removing at position Len() is a contract
// violation like any other out-of-bounds index, not a no-op.
func (c Collection[K, E]) Removing(i int) Collection[K, E] {
	n := c.Len()
	assertThat(i >= 0 && i < n, "removal index out of bounds: %d with length %d", i, n)
	layout := make([]*rawsyntax.Node, 0, n-1)
	for j := 0; j < n; j++ {
		if j != i {
			layout = append(layout, c.raw.Child(j))
		}
	}
	return c.rebuild(layout)
}

// Replacing returns a new collection with the element at position i replaced
// by e.
//
// Precondition: 0 ≤ i < Len()
func (c Collection[K, E]) Replacing(i int, e E) Collection[K, E] {
	n := c.Len()
	assertThat(i >= 0 && i < n, "replacement index out of bounds: %d with length %d", i, n)
	layout := make([]*rawsyntax.Node, 0, n)
	for j := 0; j < n; j++ {
		if j == i {
			layout = append(layout, e.Raw())
		} else {
			layout = append(layout, c.raw.Child(j))
		}
	}
	return c.rebuild(layout)
}

// RemovingFirst returns a new collection with the front element dropped.
//
// Precondition: !IsEmpty()
func (c Collection[K, E]) RemovingFirst() Collection[K, E] {
	assertThat(!c.IsEmpty(), "attempt to remove item from empty collection")
	return c.Removing(0)
}

// RemovingLast returns a new collection with the last element dropped.
//
// Precondition: !IsEmpty()
func (c Collection[K, E]) RemovingLast() Collection[K, E] {
	assertThat(!c.IsEmpty(), "attempt to remove item from empty collection")
	return c.Removing(c.Len() - 1)
}

// Cleared returns a new, empty collection of the same kind, presence and
// arena. Note that even clearing an already-empty collection yields a fresh
// identity.
func (c Collection[K, E]) Cleared() Collection[K, E] {
	return c.rebuild(nil)
}

func (c Collection[K, E]) String() string {
	var k K
	return fmt.Sprintf("(%s len=%d)", k.Kind(), c.Len())
}
