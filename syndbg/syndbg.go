/*
Package syndbg implements helpers to debug syntax trees.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>


*/
package syndbg

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"text/template"

	"github.com/npillmayer/syntree"
	tp "github.com/xlab/treeprint"
)

// Print returns a terminal-friendly dump of the tree below root. Every line
// shows a node's kind, token text for tokens, and the source span the node
// covers. Kind names come from the rawsyntax name registry.
func Print(root syntree.Syntax) string {
	printer := tp.New()
	printNode(printer, root)
	return printer.String()
}

// Fprint writes the dump of Print to w.
func Fprint(w io.Writer, root syntree.Syntax) error {
	_, err := io.WriteString(w, Print(root))
	return err
}

func printNode(printer tp.Tree, s syntree.Syntax) {
	if s.NumChildren() == 0 {
		printer.AddNode(label(s))
		return
	}
	branch := printer.AddBranch(label(s))
	for i := 0; i < s.NumChildren(); i++ {
		printNode(branch, s.Child(i))
	}
}

func label(s syntree.Syntax) string {
	pos := s.Position()
	l := fmt.Sprintf("%s  %d…%d", s.Kind(), pos, pos+s.Length())
	if s.IsToken() {
		l = fmt.Sprintf("%s %q  %d…%d", s.Kind(), s.Text(), pos, pos+s.Length())
	}
	if !s.Present() {
		l += "  (missing)"
	}
	return l
}

// --- GraphViz diagrams ------------------------------------------------------

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	NodeTmpl *template.Template
	EdgeTmpl *template.Template
}

// ToGraphViz outputs a diagram for a syntax tree. The diagram is in GraphViz
// (DOT) format. Clients provide the root node of the tree and a Writer.
// Tokens are drawn as boxes showing their text, layout nodes as ellipses
// showing their kind; missing nodes are dashed.
func ToGraphViz(root syntree.Syntax, w io.Writer) {
	tmpl, err := template.New("syntax").Parse(graphHeadTmpl)
	if err != nil {
		panic(err)
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl, _ = template.New("synnode").Funcs(
		template.FuncMap{
			"shortstring": shortText,
		}).Parse(synNodeTmpl)
	gparams.EdgeTmpl = template.Must(template.New("synedge").Parse(synEdgeTmpl))
	err = tmpl.Execute(w, gparams)
	if err != nil {
		panic(err)
	}
	serial := 0
	writeNodes(w, root, &serial, &gparams)
	w.Write([]byte("}\n"))
}

// Dotty is a helper for testing. Given a syntax node and a testing.T, it
// will create a GraphViz image of the tree under root and write it to a file
// in the current folder, choosing a unique file name. The image is in SVG
// format.
//
// If an error occurs, t.Error(…) will be set, causing the test to fail.
func Dotty(root syntree.Syntax, t *testing.T) {
	tmpfile, err := os.CreateTemp(".", "syntax.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name()) // clean up
	}()
	t.Logf("writing syntax digraph to %s\n", tmpfile.Name())
	ToGraphViz(root, tmpfile)
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	t.Log("writing syntax tree image\n")
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

type node struct {
	S    syntree.Syntax
	Name string
}

type edge struct {
	N1, N2 node
}

// writeNodes writes the node statements for the subtree at s, depth first,
// and returns the DOT name assigned to s. Names are assigned per position;
// a raw node shared between several positions gets several names.
func writeNodes(w io.Writer, s syntree.Syntax, serial *int, gparams *graphParamsType) string {
	*serial++
	name := fmt.Sprintf("node%05d", *serial)
	if err := gparams.NodeTmpl.Execute(w, &node{s, name}); err != nil {
		panic(err)
	}
	for i := 0; i < s.NumChildren(); i++ {
		ch := s.Child(i)
		chname := writeNodes(w, ch, serial, gparams)
		e := edge{node{s, name}, node{ch, chname}}
		if err := gparams.EdgeTmpl.Execute(w, e); err != nil {
			panic(err)
		}
	}
	return name
}

// shortText returns a quoted, possibly truncated version of the token text
// of s, for use in DOT labels. Truncation counts runes, not bytes.
func shortText(s syntree.Syntax) string {
	text := s.Text()
	str := "\"\\\""
	if runes := []rune(text); len(runes) > 10 {
		str += string(runes[:10]) + "...\\\"\""
	} else {
		str += text + "\\\"\""
	}
	str = strings.Replace(str, "\n", `\\n`, -1)
	str = strings.Replace(str, "\t", `\\t`, -1)
	str = strings.Replace(str, " ", "␣", -1)
	return str
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "TB"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const synNodeTmpl = `{{ if .S.IsToken }}
{{ .Name }}	[ label={{ shortstring .S }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else if .S.Present }}
{{ .Name }}	[ label={{ printf "%q" .S.Kind }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ else }}
{{ .Name }}	[ label={{ printf "%q" .S.Kind }} shape=ellipse style="filled,dashed" fillcolor=mistyrose ] ;
{{ end }}
`

const synEdgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [weight=1] ;
`
