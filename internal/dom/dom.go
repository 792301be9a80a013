// Package dom wraps a parsed HTML document with the small set of structural
// operations the report view needs: lookup, class toggling, attribute access,
// node moves and inner-content replacement.
//
// The document is the single source of truth for table layout. Callers read
// structure from it on every pass and never hold node references across a
// ReplaceInner call.
//
// Tests use testify, matching the report engine that builds on this package.
package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNotFound is returned when an element id does not exist in the document.
var ErrNotFound = errors.New("element not found")

// Document is a parsed page.
type Document struct {
	root *html.Node
}

// Parse reads a complete HTML page.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString parses markup held in memory.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Body returns the <body> element. The HTML parser always synthesizes one.
func (d *Document) Body() *html.Node {
	return FindFirst(d.root, Tag("body"))
}

// ByID returns the element with the given id, or nil.
func (d *Document) ByID(id string) *html.Node {
	if id == "" {
		return nil
	}
	return FindFirst(d.root, ID(id))
}

// ReplaceInner swaps the children of the element identified by id with the
// parsed markup, like assigning innerHTML.
func (d *Document) ReplaceInner(id, markup string) error {
	target := d.ByID(id)
	if target == nil {
		return fmt.Errorf("replace %q: %w", id, ErrNotFound)
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), target)
	if err != nil {
		return fmt.Errorf("parse fragment for %q: %w", id, err)
	}
	Empty(target)
	for _, n := range nodes {
		target.AppendChild(n)
	}
	return nil
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// NewElement builds a detached element carrying the given classes.
func NewElement(tag string, classes ...string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	if len(classes) > 0 {
		SetAttr(n, "class", strings.Join(classes, " "))
	}
	return n
}

// NewText builds a detached text node.
func NewText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// SetText replaces the children of n with a single text node.
func SetText(n *html.Node, text string) {
	Empty(n)
	n.AppendChild(NewText(text))
}

// Empty removes every child of n.
func Empty(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}
