package htmltree

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/syntree/rawsyntax"
	"github.com/npillmayer/syntree/syndbg"
	"github.com/npillmayer/syntree/walk"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const testDoc = `<!DOCTYPE html><html><head></head><body><p class="intro">Hello</p><!--note--></body></html>`

// parse the canonical test document and hand out the p element.
func parseTestDoc(t *testing.T) (Document, Markup) {
	t.Helper()
	doc, err := Parse(strings.NewReader(testDoc))
	require.NoError(t, err)
	htm := doc.Content().At(1)
	body := mustChildren(t, htm).At(1)
	p := mustChildren(t, body).At(0)
	return doc, p
}

func mustChildren(t *testing.T, m Markup) MarkupList {
	t.Helper()
	list, ok := m.Children()
	require.True(t, ok, "markup %v has no content list", m)
	return list
}

func TestParseDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.html")
	defer teardown()
	//
	doc, err := Parse(strings.NewReader(testDoc))
	require.NoError(t, err)
	t.Logf("parsed document:\n%s", syndbg.Print(doc.Syntax))
	require.Equal(t, KindDocument, doc.Kind())
	content := doc.Content()
	require.Equal(t, 2, content.Len(), "expected a doctype and the html element")
	doctype := content.At(0)
	require.Equal(t, KindDoctype, doctype.Kind())
	require.Equal(t, "html", doctype.Text())
	htm := content.At(1)
	require.True(t, htm.IsElement())
	require.Equal(t, "html", htm.TagName())
	require.Equal(t, 2, mustChildren(t, htm).Len(), "expected head and body")
	body := mustChildren(t, htm).At(1)
	require.Equal(t, "body", body.TagName())
}

func TestParseMarkupDetail(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.html")
	defer teardown()
	//
	_, p := parseTestDoc(t)
	require.Equal(t, "p", p.TagName())
	attrs, ok := p.Attributes()
	require.True(t, ok)
	require.Equal(t, 1, attrs.Len())
	require.Equal(t, "class", attrs.At(0).Name())
	require.Equal(t, "intro", attrs.At(0).Value())
	kids := mustChildren(t, p)
	require.Equal(t, 1, kids.Len())
	text := kids.At(0)
	require.False(t, text.IsElement())
	require.Equal(t, KindText, text.Kind())
	require.Equal(t, "Hello", text.Text())
}

func TestTokenLengths(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.html")
	defer teardown()
	//
	_, p := parseTestDoc(t)
	// "p" + ("class" + "intro") + "Hello"
	require.Equal(t, 16, p.Length())
	kids := mustChildren(t, p)
	require.Equal(t, 5, kids.At(0).Length())
}

func TestNarrowing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.html")
	defer teardown()
	//
	doc, p := parseTestDoc(t)
	_, ok := AsMarkupList(doc.Child(0))
	require.True(t, ok, "document content must narrow to a markup list")
	_, ok = AsAttrList(doc.Child(0))
	require.False(t, ok, "a markup list must not narrow to an attribute list")
	_, ok = AsAttrList(p.Child(1))
	require.True(t, ok, "element attributes must narrow to an attribute list")
}

// Appending an attribute builds a new document tree; the old one is
// untouched, and everything outside the edited path is shared.
func TestPersistentAttributeEdit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.html")
	defer teardown()
	//
	doc, p := parseTestDoc(t)
	body := mustChildren(t, mustChildren(t, doc.Content().At(1)).At(1))
	oldComment := body.At(1)
	require.Equal(t, KindComment, oldComment.Kind())

	p2 := p.WithAttribute("id", "first")
	attrs2, _ := p2.Attributes()
	require.Equal(t, 2, attrs2.Len())
	require.Equal(t, "id", attrs2.At(1).Name())
	require.Equal(t, "first", attrs2.At(1).Value())

	attrs, _ := p.Attributes()
	require.Equal(t, 1, attrs.Len(), "the original element must keep its attribute list")

	newRoot := p2.TreeRoot()
	require.Equal(t, KindDocument, newRoot.Kind())
	require.False(t, newRoot.HasSameIdentityAs(doc.Syntax), "the edit must build a new document")
	newDoc := Document{newRoot}
	newBody := mustChildren(t, mustChildren(t, newDoc.Content().At(1)).At(1))
	require.Same(t, oldComment.Raw(), newBody.At(1).Raw(), "siblings off the edited path must be shared")
}

func TestFromHTMLFragment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.html")
	defer teardown()
	//
	span := &html.Node{Type: html.ElementNode, Data: "span"}
	span.AppendChild(&html.Node{Type: html.TextNode, Data: "x"})
	doc := FromHTML(span, rawsyntax.NewArena())
	require.Equal(t, 1, doc.Content().Len())
	require.Equal(t, "span", doc.Content().At(0).TagName())
}

func TestParseReadError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.html")
	defer teardown()
	//
	bogus := errors.New("broken pipe")
	_, err := Parse(iotest.ErrReader(bogus))
	require.ErrorIs(t, err, bogus)
}

// The walker composes with the HTML grammar: collect all text tokens.
func TestFindTextNodes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "syntree.walk")
	defer teardown()
	//
	doc, _ := parseTestDoc(t)
	nodes, err := walk.NewWalker(doc.Syntax).DescendentsWith(walk.NodeIsKind(KindText)).Promise()()
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	require.Equal(t, "Hello", nodes[0].Text())
}
