package syntree

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/syntree/rawsyntax"
	"github.com/stretchr/testify/require"
)

func TestNarrowing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.syntax")
	defer teardown()
	//
	arena := rawsyntax.NewArena()
	list := NewCollection[wordListOf, word](arena, mkWord(arena, "a"))
	node := list.Syntax
	require.True(t, KindOf[wordListOf, word](kWordList))
	require.False(t, KindOf[wordListOf, word](kWord))
	require.True(t, IsInstance[wordListOf, word](node))
	narrowed, ok := AsCollection[wordListOf, word](node)
	require.True(t, ok, "narrowing to the matching kind must succeed")
	require.True(t, narrowed.HasSameIdentityAs(list), "narrowing must preserve identity")
	require.Equal(t, 1, narrowed.Len())
}

func TestNarrowingMismatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.syntax")
	defer teardown()
	//
	arena := rawsyntax.NewArena()
	token := Root(rawsyntax.MakeToken(kWord, "a", rawsyntax.Present, arena))
	require.False(t, IsInstance[wordListOf, word](token))
	_, ok := AsCollection[wordListOf, word](token)
	require.False(t, ok, "narrowing a token to a collection must fail")
}
