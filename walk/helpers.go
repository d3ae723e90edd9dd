package walk

import (
	"github.com/npillmayer/syntree"
	"github.com/npillmayer/syntree/rawsyntax"
)

// ordKey orders nodes by document position: source byte offset first, tree
// depth second. Along a chain of equal offsets (a node and its leftmost
// descendents) the depth puts parents first.
type ordKey struct {
	pos   int
	depth int
}

func ordOf(s syntree.Syntax) ordKey {
	return ordKey{pos: s.Position(), depth: s.Depth()}
}

func (o ordKey) less(p ordKey) bool {
	if o.pos != p.pos {
		return o.pos < p.pos
	}
	return o.depth < p.depth
}

// nodeKey identifies a positioned node for duplicate suppression. Shared raw
// nodes may back several positions of one tree, so the order key is part of
// the identity.
type nodeKey struct {
	raw *rawsyntax.Node
	ord ordKey
}

func keyOf(pkg nodePackage) nodeKey {
	return nodeKey{raw: pkg.node.Raw(), ord: pkg.ord}
}

// --------------------------------------------------------------------------------

// a helper struct for ordering the resulting nodes by their order keys
type resultSlices struct {
	nodes []syntree.Syntax
	ords  []ordKey
}

func (rs resultSlices) Len() int           { return len(rs.nodes) }
func (rs resultSlices) Less(i, j int) bool { return rs.ords[i].less(rs.ords[j]) }
func (rs resultSlices) Swap(i, j int) {
	rs.nodes[i], rs.nodes[j] = rs.nodes[j], rs.nodes[i]
	rs.ords[i], rs.ords[j] = rs.ords[j], rs.ords[i]
}
