package rawsyntax

import (
	"fmt"
	"sync"
)

// Nodes are allocated in chunks of fixed capacity. Chunks never grow beyond
// their capacity, thus node addresses handed out stay stable for the lifetime
// of the arena.
const chunkSize = 256

// Arena is a bulk owner of raw syntax nodes. All nodes of a tree (or of many
// trees) are allocated from an arena and released together with it; there is
// no per-node bookkeeping. Since raw trees are acyclic (children always
// pre-date their parents), plain garbage collection of the arena reclaims
// everything once the last tree referencing it is dropped.
//
// An arena is safe for concurrent use by multiple goroutines.
type Arena struct {
	mu     sync.Mutex
	chunks [][]Node
	count  int
}

// NewArena creates an empty arena, ready for allocation.
func NewArena() *Arena {
	return &Arena{}
}

// alloc places a node into the arena and returns its stable reference. Nodes
// enter the arena exclusively through the package factories.
func (a *Arena) alloc(n Node) *Node {
	a.mu.Lock()
	defer a.mu.Unlock()
	last := len(a.chunks) - 1
	if last < 0 || len(a.chunks[last]) == cap(a.chunks[last]) {
		a.chunks = append(a.chunks, make([]Node, 0, chunkSize))
		last++
		tracer().Debugf("arena grows to %d chunks", len(a.chunks))
	}
	a.chunks[last] = append(a.chunks[last], n)
	a.count++
	return &a.chunks[last][len(a.chunks[last])-1]
}

// NodeCount returns the number of nodes allocated in this arena so far.
// Edits on persistent trees allocate new nodes only along the edited path;
// watching the node count is a cheap way to observe structural sharing at
// work.
func (a *Arena) NodeCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.count
}

func (a *Arena) String() string {
	return fmt.Sprintf("(arena #nodes=%d)", a.NodeCount())
}
