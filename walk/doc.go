/*
Package walk provides concurrent traversal over syntax trees.

Trees in this module are immutable values, so any number of goroutines may
inspect the same tree without coordination. This package leans into that:
tree queries are performed by pipelines of concurrent filter stages. Clients
chain a couple of search and filter functions, which you may think of as a
small Domain Specific Language (DSL), similar in concept to JQuery. Chaining
is done transparently for the client, only reflected by getting a promise
(https://en.wikipedia.org/wiki/Futures_and_promises) as a return type.

Navigation functions:

	Parent()                     // find the parent of selected nodes
	AncestorWith(predicate)      // find ancestors with a given predicate
	DescendentsWith(predicate)   // find descendents with a given predicate
	AllDescendents()             // find all descendents
	TopDown(action)              // traverse all nodes, parents first

Filter functions:

	Filter(predicate)            // apply a client-provided filter function

A typical usage looks like this, selecting all token leafs of a tree:

	future := walk.NewWalker(root).DescendentsWith(walk.NodeIsToken()).Promise()
	tokens, err := future()

For small trees the overhead of concurrency may hurt, from a performance
point of view. This package is meant for fairly large syntax trees, where
source tooling wants to query many nodes at once.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package walk

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'syntree.walk'.
func tracer() tracing.Trace {
	return tracing.Select("syntree.walk")
}
