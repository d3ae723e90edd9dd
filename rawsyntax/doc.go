/*
Package rawsyntax implements the raw node store of a full-fidelity syntax tree.

Overview

Raw nodes are the structure-only backbone of a syntax tree: a kind tag, an
ordered list of children (or a text fragment, for tokens), a presence flag and
a memoized source length. They carry no information about their position in a
larger tree; that is the job of the layers built on top of this package.

Raw nodes are immutable. There is no way to modify a node after it has been
built; every "change" to a tree is expressed by building a brand-new node and
re-wiring it into a new tree spine. Because every child necessarily exists
before the node referencing it, raw trees can never contain cycles, and any
number of trees may share any number of subtrees. This is what makes edits on
syntax trees cheap: old and new tree observe the same unedited substructure.

Nodes are built exclusively through the factory functions MakeNode and
MakeToken, and are allocated within an Arena. The arena owns its nodes in
bulk and hands out stable references; identity of a node is the identity of
its arena slot. Arenas are safe for concurrent use, and nodes, being
immutable, may be read by any number of goroutines without locking.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package rawsyntax

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'syntree.nodes'.
func tracer() tracing.Trace {
	return tracing.Select("syntree.nodes")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("rawsyntax: "+msg, msgargs...)
		panic(msg)
	}
}
