package syntree

// Iterator walks a collection front to back. Iterators are immutable values,
// like everything else here: Next returns an advanced copy. The canonical
// loop reads
//
//	for it := list.Begin(); !it.Equal(list.End()); it = it.Next() {
//	    e := it.Element()
//	    …
//	}
//
// Two iterators are equal iff they refer to the identical collection (raw
// node identity, not content equality) at the same position. An iterator
// over a collection therefore never equals one over an edited derivative,
// even when both hold the same elements.
type Iterator[K KindTag[E], E Element] struct {
	col Collection[K, E]
	pos int
}

// Begin returns an iterator positioned at the first element.
func (c Collection[K, E]) Begin() Iterator[K, E] {
	return Iterator[K, E]{col: c, pos: 0}
}

// End returns the past-the-end iterator, the loop sentinel. It holds no
// element.
func (c Collection[K, E]) End() Iterator[K, E] {
	return Iterator[K, E]{col: c, pos: c.Len()}
}

// Done reports whether the iterator is at or past the end position.
func (it Iterator[K, E]) Done() bool {
	return it.pos >= it.col.Len()
}

// Element returns the element at the iterator's position.
//
// Precondition: !Done()
func (it Iterator[K, E]) Element() E {
	assertThat(!it.Done(), "attempt to dereference past-the-end iterator")
	return it.col.At(it.pos)
}

// Index returns the iterator's position within its collection.
func (it Iterator[K, E]) Index() int {
	return it.pos
}

// Next returns an iterator advanced by one position. Advancing itself is not
// bounds-checked; dereferencing an iterator advanced past the end is, like
// any out-of-bounds access.
func (it Iterator[K, E]) Next() Iterator[K, E] {
	return Iterator[K, E]{col: it.col, pos: it.pos + 1}
}

// Equal reports whether both iterators point into the identical collection
// at the same position.
func (it Iterator[K, E]) Equal(other Iterator[K, E]) bool {
	return it.col.HasSameIdentityAs(other.col) && it.pos == other.pos
}
