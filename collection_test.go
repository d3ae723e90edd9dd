package syntree

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/syntree/rawsyntax"
)

// --- Test grammar ----------------------------------------------------------

// A miniature grammar for testing: phrases containing lists of word tokens.
const (
	kWord Kind = 900 + iota
	kWordList
	kPhrase
)

func init() {
	rawsyntax.RegisterKindNames(map[rawsyntax.Kind]string{
		kWord:     "Word",
		kWordList: "WordList",
		kPhrase:   "Phrase",
	})
}

type word struct {
	Syntax
}

type wordListOf struct{}

func (wordListOf) Kind() Kind         { return kWordList }
func (wordListOf) Wrap(s Syntax) word { return word{s} }

type wordList = Collection[wordListOf, word]

func mkWord(arena *rawsyntax.Arena, text string) word {
	return word{Root(rawsyntax.MakeToken(kWord, text, rawsyntax.Present, arena))}
}

func expectWords(t *testing.T, c wordList, want ...string) {
	t.Helper()
	if c.Len() != len(want) {
		t.Fatalf("collection has %d words, expected %d", c.Len(), len(want))
	}
	for i, w := range want {
		if got := c.At(i).Text(); got != w {
			t.Errorf("word #%d is %q, expected %q", i, got, w)
		}
	}
}

func mustPanic(t *testing.T, msg string, f func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic: %s", msg)
		}
	}()
	f()
}

// --- Tests -----------------------------------------------------------------

func TestCollectionEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.syntax")
	defer teardown()
	//
	arena := rawsyntax.NewArena()
	list := NewCollection[wordListOf, word](arena)
	if !list.IsEmpty() || list.Len() != 0 {
		t.Errorf("fresh collection not empty, has length %d", list.Len())
	}
}

func TestCollectionLiteral(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.syntax")
	defer teardown()
	//
	arena := rawsyntax.NewArena()
	x, y, z := mkWord(arena, "x"), mkWord(arena, "y"), mkWord(arena, "z")
	list := NewCollection[wordListOf, word](arena, x, y, z)
	expectWords(t, list, "x", "y", "z")
	if list.At(0).Raw() != x.Raw() || list.At(2).Raw() != z.Raw() {
		t.Errorf("collection does not reference the given element nodes")
	}
	if list.Length() != 3 {
		t.Errorf("source length is %d, expected 3", list.Length())
	}
}

func TestAppending(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.syntax")
	defer teardown()
	//
	arena := rawsyntax.NewArena()
	a, b := mkWord(arena, "a"), mkWord(arena, "b")
	list := NewCollection[wordListOf, word](arena, a)
	longer := list.Appending(b)
	expectWords(t, longer, "a", "b")
	expectWords(t, list, "a")
	if longer.At(1).Raw() != b.Raw() {
		t.Errorf("appended element is not at the final position")
	}
	if longer.At(0).Raw() != list.At(0).Raw() {
		t.Errorf("unedited element not shared between old and new collection")
	}
}

func TestPrepending(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.syntax")
	defer teardown()
	//
	arena := rawsyntax.NewArena()
	a, b := mkWord(arena, "a"), mkWord(arena, "b")
	list := NewCollection[wordListOf, word](arena, a)
	longer := list.Prepending(b)
	expectWords(t, longer, "b", "a")
	if longer.At(1).Raw() != a.Raw() {
		t.Errorf("existing element did not shift to position 1")
	}
}

func TestInsertRemoveRoundtrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.syntax")
	defer teardown()
	//
	arena := rawsyntax.NewArena()
	list := NewCollection[wordListOf, word](arena,
		mkWord(arena, "a"), mkWord(arena, "b"), mkWord(arena, "c"))
	e := mkWord(arena, "e")
	for i := 0; i <= list.Len(); i++ {
		back := list.Inserting(i, e).Removing(i)
		expectWords(t, back, "a", "b", "c")
		if back.HasSameIdentityAs(list) {
			t.Errorf("roundtrip at %d returned the identical collection", i)
		}
	}
}

func TestInserting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.syntax")
	defer teardown()
	//
	arena := rawsyntax.NewArena()
	list := NewCollection[wordListOf, word](arena,
		mkWord(arena, "a"), mkWord(arena, "c"))
	mid := list.Inserting(1, mkWord(arena, "b"))
	expectWords(t, mid, "a", "b", "c")
	front := list.Inserting(0, mkWord(arena, "x"))
	expectWords(t, front, "x", "a", "c")
	back := list.Inserting(2, mkWord(arena, "y"))
	expectWords(t, back, "a", "c", "y")
}

func TestRemoving(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.syntax")
	defer teardown()
	//
	arena := rawsyntax.NewArena()
	list := NewCollection[wordListOf, word](arena,
		mkWord(arena, "a"), mkWord(arena, "b"), mkWord(arena, "c"))
	expectWords(t, list.Removing(1), "a", "c")
	expectWords(t, list.RemovingFirst(), "b", "c")
	expectWords(t, list.RemovingLast(), "a", "b")
	expectWords(t, list, "a", "b", "c")
}

func TestReplacing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.syntax")
	defer teardown()
	//
	arena := rawsyntax.NewArena()
	list := NewCollection[wordListOf, word](arena,
		mkWord(arena, "a"), mkWord(arena, "b"), mkWord(arena, "c"))
	swapped := list.Replacing(1, mkWord(arena, "x"))
	expectWords(t, swapped, "a", "x", "c")
	if swapped.At(0).Raw() != list.At(0).Raw() || swapped.At(2).Raw() != list.At(2).Raw() {
		t.Errorf("replacement did not share the untouched elements")
	}
}

func TestCleared(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.syntax")
	defer teardown()
	//
	arena := rawsyntax.NewArena()
	list := NewCollection[wordListOf, word](arena, mkWord(arena, "a"))
	empty := list.Cleared()
	if !empty.IsEmpty() {
		t.Errorf("cleared collection has length %d", empty.Len())
	}
	expectWords(t, list, "a")
	again := empty.Cleared()
	if again.HasSameIdentityAs(empty) {
		t.Errorf("clearing an empty collection did not mint a fresh node")
	}
}

func TestContentVersusIdentity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.syntax")
	defer teardown()
	//
	arena := rawsyntax.NewArena()
	a, b := mkWord(arena, "a"), mkWord(arena, "b")
	list := NewCollection[wordListOf, word](arena, a)
	roundtrip := list.Appending(b).RemovingLast()
	expectWords(t, roundtrip, "a")
	if roundtrip.HasSameIdentityAs(list) {
		t.Errorf("append/remove roundtrip preserved node identity")
	}
	if !roundtrip.HasSameIdentityAs(roundtrip) {
		t.Errorf("collection does not have its own identity")
	}
}

// Two editors start from the same collection and diverge; neither sees the
// other's edit, and the shared original stays put.
func TestEditDivergence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.syntax")
	defer teardown()
	//
	arena := rawsyntax.NewArena()
	a, b, c := mkWord(arena, "A"), mkWord(arena, "B"), mkWord(arena, "C")
	base := NewCollection[wordListOf, word](arena, a)
	withB := base.Appending(b)
	withC := base.Prepending(c)
	expectWords(t, base, "A")
	expectWords(t, withB, "A", "B")
	expectWords(t, withC, "C", "A")
	if withB.At(0).Raw() != withC.At(1).Raw() {
		t.Errorf("diverging edits do not share the common element")
	}
}

// A longer editing session: grow at both ends, remove in the middle, clear.
func TestEditSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.syntax")
	defer teardown()
	//
	arena := rawsyntax.NewArena()
	a, b, c := mkWord(arena, "A"), mkWord(arena, "B"), mkWord(arena, "C")
	list := NewCollection[wordListOf, word](arena)
	list = list.Appending(a)
	expectWords(t, list, "A")
	list = list.Appending(b)
	expectWords(t, list, "A", "B")
	list = list.Prepending(c)
	expectWords(t, list, "C", "A", "B")
	list = list.Removing(1)
	expectWords(t, list, "C", "B")
	list = list.Cleared()
	if !list.IsEmpty() || list.Len() != 0 {
		t.Errorf("cleared collection has length %d", list.Len())
	}
}

func TestLiteralVersusAppends(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.syntax")
	defer teardown()
	//
	arena := rawsyntax.NewArena()
	x, y, z := mkWord(arena, "x"), mkWord(arena, "y"), mkWord(arena, "z")
	literal := NewCollection[wordListOf, word](arena, x, y, z)
	grown := NewCollection[wordListOf, word](arena).Appending(x).Appending(y).Appending(z)
	expectWords(t, grown, "x", "y", "z")
	if literal.HasSameIdentityAs(grown) {
		t.Errorf("differently built collections share node identity")
	}
	for i := 0; i < 3; i++ {
		if literal.At(i).Raw() != grown.At(i).Raw() {
			t.Errorf("element #%d not shared between equal collections", i)
		}
	}
}

// Each edit of a flat collection allocates exactly one node, the replacement
// list node. All elements are reused.
func TestEditAllocatesOneNode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.syntax")
	defer teardown()
	//
	arena := rawsyntax.NewArena()
	list := NewCollection[wordListOf, word](arena,
		mkWord(arena, "a"), mkWord(arena, "b"))
	c := mkWord(arena, "c")
	before := arena.NodeCount()
	longer := list.Appending(c)
	if d := arena.NodeCount() - before; d != 1 {
		t.Errorf("append allocated %d nodes, expected 1", d)
	}
	before = arena.NodeCount()
	longer = longer.Removing(0)
	if d := arena.NodeCount() - before; d != 1 {
		t.Errorf("remove allocated %d nodes, expected 1", d)
	}
	expectWords(t, longer, "b", "c")
}

// A collection sitting inside a larger tree: editing it rebuilds the spine
// up to a new root while sharing the untouched siblings.
func TestEditInsideTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.syntax")
	defer teardown()
	//
	arena := rawsyntax.NewArena()
	a, b := mkWord(arena, "a"), mkWord(arena, "b")
	listRaw := rawsyntax.MakeNode(kWordList, []*rawsyntax.Node{a.Raw()}, rawsyntax.Present, arena)
	tail := rawsyntax.MakeToken(kWord, ".", rawsyntax.Present, arena)
	phrase := rawsyntax.MakeNode(kPhrase, []*rawsyntax.Node{listRaw, tail}, rawsyntax.Present, arena)
	root := Root(phrase)
	list, ok := AsCollection[wordListOf, word](root.Child(0))
	if !ok {
		t.Fatalf("cannot narrow child 0 to a word list")
	}
	edited := list.Appending(b)
	expectWords(t, edited, "a", "b")
	newRoot := edited.TreeRoot()
	if newRoot.Raw() == root.Raw() {
		t.Errorf("edit inside tree did not produce a new root")
	}
	if newRoot.Kind() != kPhrase {
		t.Errorf("new root is a %s, expected a phrase", newRoot.Kind())
	}
	if newRoot.Raw().Child(1) != tail {
		t.Errorf("unedited sibling not shared with the new tree")
	}
	if root.Raw().Child(0).NumChildren() != 1 {
		t.Errorf("edit modified the original tree")
	}
	if newRoot.Length() != root.Length()+1 {
		t.Errorf("new tree spans %d bytes, expected %d", newRoot.Length(), root.Length()+1)
	}
}

func TestElements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.syntax")
	defer teardown()
	//
	arena := rawsyntax.NewArena()
	list := NewCollection[wordListOf, word](arena,
		mkWord(arena, "a"), mkWord(arena, "b"))
	elems := list.Elements()
	if len(elems) != 2 || elems[0].Text() != "a" || elems[1].Text() != "b" {
		t.Errorf("Elements returned %v", elems)
	}
}

// --- Preconditions ---------------------------------------------------------

func TestIndexPreconditions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.syntax")
	defer teardown()
	//
	arena := rawsyntax.NewArena()
	empty := NewCollection[wordListOf, word](arena)
	list := NewCollection[wordListOf, word](arena, mkWord(arena, "a"))
	e := mkWord(arena, "e")
	mustPanic(t, "At on empty collection", func() { empty.At(0) })
	mustPanic(t, "At out of bounds", func() { list.At(1) })
	mustPanic(t, "At with negative index", func() { list.At(-1) })
	mustPanic(t, "Inserting past the gap positions", func() { list.Inserting(2, e) })
	mustPanic(t, "Inserting with negative index", func() { list.Inserting(-1, e) })
	mustPanic(t, "Removing at length", func() { list.Removing(list.Len()) })
	mustPanic(t, "Removing with negative index", func() { list.Removing(-1) })
	mustPanic(t, "Replacing at length", func() { list.Replacing(1, e) })
	mustPanic(t, "RemovingFirst on empty collection", func() { empty.RemovingFirst() })
	mustPanic(t, "RemovingLast on empty collection", func() { empty.RemovingLast() })
}
