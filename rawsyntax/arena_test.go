package rawsyntax

import (
	"fmt"
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestArenaAddressesAreStable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.nodes")
	defer teardown()
	//
	arena := NewArena()
	first := MakeToken(tkIdent, "first", Present, arena)
	for i := 0; i < chunkSize*2; i++ { // force a couple of chunk growths
		MakeToken(tkIdent, fmt.Sprintf("t%d", i), Present, arena)
	}
	if arena.NodeCount() != chunkSize*2+1 {
		t.Errorf("expected node count %d, is %d", chunkSize*2+1, arena.NodeCount())
	}
	if first.Text() != "first" {
		t.Error("expected early node reference to stay valid after arena growth, doesn't")
	}
}

func TestArenaConcurrentAllocation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.nodes")
	defer teardown()
	//
	arena := NewArena()
	const goroutines = 8
	const perG = 200
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perG; i++ {
				MakeToken(tkIdent, "x", Present, arena)
			}
		}(g)
	}
	wg.Wait()
	if arena.NodeCount() != goroutines*perG {
		t.Errorf("expected %d nodes after concurrent allocation, have %d", goroutines*perG, arena.NodeCount())
	}
}
