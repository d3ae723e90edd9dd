/*
Package htmltree builds full-fidelity syntax trees from HTML input.

This package is the workbench engine for the syntree module: it shows how a
concrete grammar binds the generic tree layers. HTML markup is parsed with
the golang.org/x/net/html parser, and the resulting parse tree is carried
over into an immutable syntax tree, where the children of elements and the
attributes of tags are persistent collections. Tag names, text content,
comments, doctypes and attribute names/values all become tokens, so source
lengths and positions are meaningful throughout the tree.

Clients get value semantics for free: "editing" a document produces a new
document sharing all untouched structure with the old one.

	doc, err := htmltree.Parse(strings.NewReader(input))
	…
	body := doc.Content().At(0)
	linked := body.WithAttribute("class", "linked") // doc is unchanged

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package htmltree

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'syntree.html'.
func tracer() tracing.Trace {
	return tracing.Select("syntree.html")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("htmltree: "+msg, msgargs...)
		panic(msg)
	}
}
