package htmltree

import (
	"github.com/npillmayer/syntree"
	"github.com/npillmayer/syntree/rawsyntax"
)

// The kind tags of the HTML grammar. Token kinds carry source text; layout
// kinds structure it.
const (
	KindText syntree.Kind = 300 + iota // text content token
	KindComment                        // comment content token
	KindDoctype                        // doctype name token
	KindTagName                        // element tag name token
	KindAttrName                       // attribute name token
	KindAttrValue                      // attribute value token
	KindMarkup                         // element: [ tag name, attribute list, content list ]
	KindAttribute                      // attribute: [ name, value ]
	KindMarkupList                     // collection of markup
	KindAttrList                       // collection of attributes
	KindDocument                       // document root: [ content list ]
)

func init() {
	rawsyntax.RegisterKindNames(map[rawsyntax.Kind]string{
		KindText:       "Text",
		KindComment:    "Comment",
		KindDoctype:    "Doctype",
		KindTagName:    "TagName",
		KindAttrName:   "AttrName",
		KindAttrValue:  "AttrValue",
		KindMarkup:     "Markup",
		KindAttribute:  "Attribute",
		KindMarkupList: "MarkupList",
		KindAttrList:   "AttrList",
		KindDocument:   "Document",
	})
	rawsyntax.RegisterCollectionKinds(KindMarkupList, KindAttrList)
}

// --- Typed nodes ------------------------------------------------------------

// Markup is one piece of markup: an element, a run of text, a comment or a
// doctype. Which one it is shows in the node's kind.
type Markup struct {
	syntree.Syntax
}

// IsElement reports whether this markup is an element node, i.e. has a tag
// name, attributes and content.
func (m Markup) IsElement() bool {
	return m.Kind() == KindMarkup
}

// TagName returns the tag name of an element markup, and "" for text,
// comments and doctypes.
func (m Markup) TagName() string {
	if !m.IsElement() {
		return ""
	}
	return m.Child(0).Text()
}

// Attributes returns the attribute list of an element markup. ok is false
// for non-element markup.
func (m Markup) Attributes() (AttrList, bool) {
	if !m.IsElement() {
		return AttrList{}, false
	}
	return AsAttrList(m.Child(1))
}

// Children returns the content list of an element markup. ok is false for
// non-element markup.
func (m Markup) Children() (MarkupList, bool) {
	if !m.IsElement() {
		return MarkupList{}, false
	}
	return AsMarkupList(m.Child(2))
}

// Attribute is one key/value attribute of an element.
type Attribute struct {
	syntree.Syntax
}

// Name returns the attribute's name.
func (a Attribute) Name() string {
	return a.Child(0).Text()
}

// Value returns the attribute's value.
func (a Attribute) Value() string {
	return a.Child(1).Text()
}

// Document is the root of an HTML syntax tree.
type Document struct {
	syntree.Syntax
}

// Content returns the top-level markup of the document, usually a doctype
// and the html element.
func (d Document) Content() MarkupList {
	list, ok := AsMarkupList(d.Child(0))
	assertThat(ok, "document root lost its content list")
	return list
}

// --- Collection tags --------------------------------------------------------

// MarkupListOf tags collections of markup.
type MarkupListOf struct{}

// Kind returns KindMarkupList.
func (MarkupListOf) Kind() syntree.Kind { return KindMarkupList }

// Wrap wraps a node as Markup.
func (MarkupListOf) Wrap(s syntree.Syntax) Markup { return Markup{s} }

// AttrListOf tags collections of attributes.
type AttrListOf struct{}

// Kind returns KindAttrList.
func (AttrListOf) Kind() syntree.Kind { return KindAttrList }

// Wrap wraps a node as Attribute.
func (AttrListOf) Wrap(s syntree.Syntax) Attribute { return Attribute{s} }

// MarkupList is a persistent collection of markup nodes.
type MarkupList = syntree.Collection[MarkupListOf, Markup]

// AttrList is a persistent collection of element attributes.
type AttrList = syntree.Collection[AttrListOf, Attribute]

// AsMarkupList narrows an untyped node to a markup list.
func AsMarkupList(s syntree.Syntax) (MarkupList, bool) {
	return syntree.AsCollection[MarkupListOf, Markup](s)
}

// AsAttrList narrows an untyped node to an attribute list.
func AsAttrList(s syntree.Syntax) (AttrList, bool) {
	return syntree.AsCollection[AttrListOf, Attribute](s)
}
