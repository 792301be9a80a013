package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Matcher reports whether a node satisfies a condition.
type Matcher func(*html.Node) bool

// Tag matches elements by tag name.
func Tag(name string) Matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == name
	}
}

// Class matches elements carrying a class.
func Class(name string) Matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && HasClass(n, name)
	}
}

// ID matches the element with the given id attribute.
func ID(id string) Matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && Attr(n, "id") == id
	}
}

// WithAttr matches elements that declare a non-empty attribute.
func WithAttr(key string) Matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && Attr(n, key) != ""
	}
}

// AttrEquals matches elements whose attribute equals val.
func AttrEquals(key, val string) Matcher {
	return func(n *html.Node) bool {
		v, ok := LookupAttr(n, key)
		return n.Type == html.ElementNode && ok && v == val
	}
}

// All matches when every matcher matches.
func All(ms ...Matcher) Matcher {
	return func(n *html.Node) bool {
		for _, m := range ms {
			if !m(n) {
				return false
			}
		}
		return true
	}
}

// Any matches when at least one matcher matches.
func Any(ms ...Matcher) Matcher {
	return func(n *html.Node) bool {
		for _, m := range ms {
			if m(n) {
				return true
			}
		}
		return false
	}
}

// Find returns the descendants of n (excluding n) matching m, in document order.
func Find(n *html.Node, m Matcher) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if m(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return out
}

// FindFirst returns the first descendant of n matching m, or nil.
func FindFirst(n *html.Node, m Matcher) *html.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m(c) {
			return c
		}
		if found := FindFirst(c, m); found != nil {
			return found
		}
	}
	return nil
}

// ChildElements returns the element children of n that match m. A nil
// matcher selects every element child.
func ChildElements(n *html.Node, m Matcher) []*html.Node {
	if n == nil {
		return nil
	}
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if m == nil || m(c) {
			out = append(out, c)
		}
	}
	return out
}

// Closest returns n or its nearest ancestor matching m.
func Closest(n *html.Node, m Matcher) *html.Node {
	for p := n; p != nil; p = p.Parent {
		if m(p) {
			return p
		}
	}
	return nil
}

// Contains reports whether n is ancestor or equal to child.
func Contains(n, child *html.Node) bool {
	for p := child; p != nil; p = p.Parent {
		if p == n {
			return true
		}
	}
	return false
}

// Index returns the position of n among its element siblings, or -1 when it
// is detached.
func Index(n *html.Node) int {
	if n == nil || n.Parent == nil {
		return -1
	}
	idx := 0
	for c := n.Parent.FirstChild; c != nil; c = c.NextSibling {
		if c == n {
			return idx
		}
		if c.Type == html.ElementNode {
			idx++
		}
	}
	return -1
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	return TextExcluding(n, nil)
}

// TextExcluding returns the text content of n, skipping subtrees whose root
// matches skip.
func TextExcluding(n *html.Node, skip Matcher) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		if p.Type == html.TextNode {
			b.WriteString(p.Data)
			return
		}
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if skip != nil && skip(c) {
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// Attr returns the value of an attribute, or "" when absent.
func Attr(n *html.Node, key string) string {
	v, _ := LookupAttr(n, key)
	return v
}

// LookupAttr returns an attribute value and whether it was present.
func LookupAttr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr creates or overwrites an attribute.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes an attribute if present.
func RemoveAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

// Classes returns the class list of n.
func Classes(n *html.Node) []string {
	return strings.Fields(Attr(n, "class"))
}

// HasClass reports whether n carries class c.
func HasClass(n *html.Node, c string) bool {
	for _, have := range Classes(n) {
		if have == c {
			return true
		}
	}
	return false
}

// AddClass adds class c to n. Adding a present class is a no-op.
func AddClass(n *html.Node, c string) {
	if n == nil || HasClass(n, c) {
		return
	}
	SetAttr(n, "class", strings.Join(append(Classes(n), c), " "))
}

// RemoveClass removes each listed class from n.
func RemoveClass(n *html.Node, classes ...string) {
	if n == nil {
		return
	}
	drop := make(map[string]struct{}, len(classes))
	for _, c := range classes {
		drop[c] = struct{}{}
	}
	var kept []string
	changed := false
	for _, have := range Classes(n) {
		if _, ok := drop[have]; ok {
			changed = true
			continue
		}
		kept = append(kept, have)
	}
	if !changed {
		return
	}
	if len(kept) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

// ToggleClass adds c when on is true and removes it otherwise.
func ToggleClass(n *html.Node, c string, on bool) {
	if on {
		AddClass(n, c)
		return
	}
	RemoveClass(n, c)
}

// Detach removes n from its parent.
func Detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Append moves n to the end of parent's children.
func Append(parent, n *html.Node) {
	if parent == nil || n == nil {
		return
	}
	Detach(n)
	parent.AppendChild(n)
}

// InsertBefore moves n to immediately before ref.
func InsertBefore(ref, n *html.Node) {
	if ref == nil || n == nil || ref == n || ref.Parent == nil {
		return
	}
	Detach(n)
	ref.Parent.InsertBefore(n, ref)
}

// InsertAfter moves n to immediately after ref.
func InsertAfter(ref, n *html.Node) {
	if ref == nil || n == nil || ref == n || ref.Parent == nil {
		return
	}
	Detach(n)
	ref.Parent.InsertBefore(n, ref.NextSibling)
}
