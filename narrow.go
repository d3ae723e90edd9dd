package syntree

// Dynamic narrowing. A Syntax carries its concrete kind at runtime, and
// clients holding an untyped node will want to recover the typed collection
// view, much like a type assertion recovers a concrete type from an
// interface. AsCollection is that assertion for collections; it uses the
// comma-ok idiom rather than error returns, as failure to narrow is a normal
// outcome of inspecting a node, not an operational fault.

// KindOf reports whether kind is the collection kind bound by the tag K. It
// answers the question at the level of bare kind tags; IsInstance asks it
// for a concrete node.
func KindOf[K KindTag[E], E Element](kind Kind) bool {
	var k K
	return kind == k.Kind()
}

// IsInstance reports whether s is a node of the collection kind tagged by K.
// It inspects the raw node's kind only; no element typing is checked (the
// tag vouches for that statically).
func IsInstance[K KindTag[E], E Element](s Syntax) bool {
	return KindOf[K, E](s.Kind())
}

// AsCollection narrows an untyped node to a typed collection view. The
// second return value reports success; on failure the returned collection
// is the zero value and must not be used.
//
//	if list, ok := syntree.AsCollection[StmtListOf, Stmt](node); ok {
//	    list = list.Appending(stmt)
//	    …
//	}
func AsCollection[K KindTag[E], E Element](s Syntax) (Collection[K, E], bool) {
	if !IsInstance[K, E](s) {
		return Collection[K, E]{}, false
	}
	return Collection[K, E]{s}, true
}
