/*
Package syntree provides persistent building blocks for full-fidelity syntax
trees, to be used by source tooling: compilers, formatters, refactoring
engines, incremental reparsers.

Overview

Trees in source tooling lead a double life. Many clients read them
concurrently (a formatter renders a function while a linter inspects it),
and at the same time some client "edits" them: inserts a statement, removes a
parameter. This package resolves the tension the way persistent data
structures do: nodes are immutable, and every edit is a pure function
returning a new tree value which shares all untouched structure with the old
one. Holders of the pre-edit tree keep observing it, unchanged, for as long
as they care to; no locks, no defensive copies.

The package splits a tree into two layers. Raw nodes (package
syntree/rawsyntax) carry structure only: kind, children, source length.
Type Syntax binds a raw node to its position in a tree and knows how to
rebuild the spine of ancestors when a descendant is replaced. On top of both
sits the core of this package: Collection, a generic, kind-tagged, persistent
sequence of syntax nodes with the usual reading operations and a family of
edit operations (Appending, Inserting, Removing, …) which each return a new
collection value.

In a fully object oriented programming language every concrete collection in
a tree (statement list, parameter list) would be a subclass of an abstract
collection, discriminated by virtual dispatch. In Go we resort to a kind tag
stored in the raw node itself, paired with compile-time tag types: a
zero-size type implementing KindTag binds one collection kind to one element
type, and narrowing a generic node to a concrete collection is a plain tag
comparison. One engine declares a handful of tag types and gets every
concrete collection of its tree from a single generic implementation.

Identity

Collections distinguish identity from content. Every edit yields a fresh
identity, even if the resulting content happens to equal the receiver's:
appending an element and removing it again produces a collection which is
content-equal, but never identical, to the original. Identity is what
iterators compare, and what clients use to detect whether an edit actually
touched a value they hold.

Preconditions

Operations document their preconditions (index bounds, non-emptiness).
Violating a precondition is a programmer error: operations panic with a
diagnostic, uniformly across the module. There are no checked variants.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package syntree

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'syntree.syntax'.
func tracer() tracing.Trace {
	return tracing.Select("syntree.syntax")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("syntree: "+msg, msgargs...)
		panic(msg)
	}
}
