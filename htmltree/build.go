package htmltree

import (
	"io"

	"github.com/npillmayer/syntree"
	"github.com/npillmayer/syntree/rawsyntax"
	"golang.org/x/net/html"
)

// Parse reads HTML from r and builds the syntax tree for it, allocating
// within a fresh arena. Parsing is done by the tolerant HTML5 parser of
// golang.org/x/net/html, which repairs almost any input; errors returned
// here stem from reading r.
func Parse(r io.Reader) (Document, error) {
	h, err := html.Parse(r)
	if err != nil {
		return Document{}, err
	}
	return FromHTML(h, rawsyntax.NewArena()), nil
}

// FromHTML carries an HTML parse tree over into a syntax tree, allocating
// within arena. h will usually be a document node, as returned by
// html.Parse; element, text, comment and doctype nodes are accepted as well
// and treated as a one-piece document.
func FromHTML(h *html.Node, arena *rawsyntax.Arena) Document {
	assertThat(h != nil, "cannot build a document from a nil parse tree")
	var kids []*rawsyntax.Node
	if h.Type == html.DocumentNode {
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			if n := markupNode(c, arena); n != nil {
				kids = append(kids, n)
			}
		}
	} else if n := markupNode(h, arena); n != nil {
		kids = append(kids, n)
	}
	list := rawsyntax.MakeNode(KindMarkupList, kids, rawsyntax.Present, arena)
	root := rawsyntax.MakeNode(KindDocument, []*rawsyntax.Node{list}, rawsyntax.Present, arena)
	tracer().Debugf("built document with %d top-level markup nodes", len(kids))
	return Document{syntree.Root(root)}
}

// markupNode translates one HTML parse node. Error nodes do not occur in
// parser output and translate to nil.
func markupNode(h *html.Node, arena *rawsyntax.Arena) *rawsyntax.Node {
	switch h.Type {
	case html.TextNode:
		return rawsyntax.MakeToken(KindText, h.Data, rawsyntax.Present, arena)
	case html.CommentNode:
		return rawsyntax.MakeToken(KindComment, h.Data, rawsyntax.Present, arena)
	case html.DoctypeNode:
		return rawsyntax.MakeToken(KindDoctype, h.Data, rawsyntax.Present, arena)
	case html.ElementNode:
		tag := rawsyntax.MakeToken(KindTagName, h.Data, rawsyntax.Present, arena)
		attrs := make([]*rawsyntax.Node, 0, len(h.Attr))
		for _, a := range h.Attr {
			attrs = append(attrs, attributeNode(a.Key, a.Val, arena))
		}
		attrlist := rawsyntax.MakeNode(KindAttrList, attrs, rawsyntax.Present, arena)
		var content []*rawsyntax.Node
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			if n := markupNode(c, arena); n != nil {
				content = append(content, n)
			}
		}
		contentlist := rawsyntax.MakeNode(KindMarkupList, content, rawsyntax.Present, arena)
		return rawsyntax.MakeNode(KindMarkup, []*rawsyntax.Node{tag, attrlist, contentlist}, rawsyntax.Present, arena)
	}
	return nil
}

func attributeNode(key, value string, arena *rawsyntax.Arena) *rawsyntax.Node {
	name := rawsyntax.MakeToken(KindAttrName, key, rawsyntax.Present, arena)
	val := rawsyntax.MakeToken(KindAttrValue, value, rawsyntax.Present, arena)
	return rawsyntax.MakeNode(KindAttribute, []*rawsyntax.Node{name, val}, rawsyntax.Present, arena)
}

// --- Construction and editing -----------------------------------------------

// NewText creates a standalone text markup, ready to be inserted into a
// markup list.
func NewText(arena *rawsyntax.Arena, text string) Markup {
	return Markup{syntree.Root(rawsyntax.MakeToken(KindText, text, rawsyntax.Present, arena))}
}

// NewAttribute creates a standalone attribute, ready to be inserted into an
// attribute list.
func NewAttribute(arena *rawsyntax.Arena, name, value string) Attribute {
	return Attribute{syntree.Root(attributeNode(name, value, arena))}
}

// WithAttribute returns this element with an attribute appended to its
// attribute list. The receiver and the tree it sits in stay untouched; the
// result is the same element position in a new tree.
//
// Precondition: m.IsElement()
func (m Markup) WithAttribute(name, value string) Markup {
	assertThat(m.IsElement(), "cannot set an attribute on %s markup", m.Kind())
	attrs, _ := m.Attributes()
	edited := attrs.Appending(NewAttribute(m.Raw().Arena(), name, value))
	parent, _ := edited.Parent()
	return Markup{parent}
}
