package rawsyntax

import (
	"fmt"
	"sync"
)

// Kind is a tag discriminating the node variants of a syntax tree. The set of
// kinds is not fixed by this package: a language engine declares its own tags
// (statement lists, parameter lists, identifiers, …) and instantiates the
// generic layers with them. Kinds enable checking and narrowing of generic
// tree nodes without any dynamic dispatch machinery; the tag is stored in the
// raw node itself.
type Kind uint16

// Unknown is the kind of nodes which no engine has claimed. It is the zero
// value of Kind; engines start their own tags above it.
const Unknown Kind = 0

// --- Kind names ------------------------------------------------------------

// Kinds are plain numbers at runtime. For diagnostics and debugging output we
// keep a registry of display names, fed by the engines declaring the kinds.

var kindNames = struct {
	sync.RWMutex
	names map[Kind]string
}{
	names: map[Kind]string{Unknown: "Unknown"},
}

// RegisterKindNames registers display names for kind tags, to be used by
// diagnostics and debugging output. Engines will usually do this once during
// setup for all the kinds they declare. Registering a name for an
// already-named kind replaces the previous name.
//
// RegisterKindNames is concurrency-safe.
func RegisterKindNames(names map[Kind]string) {
	kindNames.Lock()
	defer kindNames.Unlock()
	for k, name := range names {
		kindNames.names[k] = name
	}
}

func (k Kind) String() string {
	kindNames.RLock()
	defer kindNames.RUnlock()
	if name, ok := kindNames.names[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint16(k))
}

// --- Collection kinds -------------------------------------------------------

// Typed collection views vouch for element types statically, but untyped
// tooling (walkers, tree dumps) sometimes needs to know whether a given kind
// denotes a collection. Engines may announce their collection kinds here.

var collectionKinds = struct {
	sync.RWMutex
	kinds map[Kind]bool
}{
	kinds: make(map[Kind]bool),
}

// RegisterCollectionKinds marks kind tags as denoting collections. The
// registry is advisory and feeds kind predicates and debugging output only;
// narrowing to typed collection views does not consult it.
//
// RegisterCollectionKinds is concurrency-safe.
func RegisterCollectionKinds(kinds ...Kind) {
	collectionKinds.Lock()
	defer collectionKinds.Unlock()
	for _, k := range kinds {
		collectionKinds.kinds[k] = true
	}
}

// IsCollection reports whether k has been registered as a collection kind.
func (k Kind) IsCollection() bool {
	collectionKinds.RLock()
	defer collectionKinds.RUnlock()
	return collectionKinds.kinds[k]
}

// --- Presence --------------------------------------------------------------

// Presence marks whether a tree slot holds real source content or a
// placeholder. Parsers of broken input produce Missing nodes where the
// grammar expects content which the source does not provide; tooling then
// still sees a structurally complete tree.
type Presence uint8

const (
	// Present marks nodes spanning real source content.
	Present Presence = iota
	// Missing marks placeholder nodes without source content.
	Missing
)

func (p Presence) String() string {
	if p == Missing {
		return "Missing"
	}
	return "Present"
}
