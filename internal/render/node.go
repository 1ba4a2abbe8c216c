package render

import (
	"html"
	"io"
	"strings"
)

// Attr is a single element attribute. Attributes keep insertion order so
// serialized output is deterministic.
type Attr struct {
	Key string
	Val string
}

// Node is a framework-agnostic element tree.
//
// An element has a Tag. A node without a Tag is either escaped Text or
// trusted, already sanitized Raw HTML.
type Node struct {
	Tag      string
	Attrs    []Attr
	Children []*Node
	Text     string
	Raw      string
}

var voidElements = map[string]bool{
	"area": true, "br": true, "col": true, "embed": true, "hr": true,
	"img": true, "input": true, "link": true, "meta": true, "source": true, "track": true, "wbr": true,
}

// El creates an element node
func El(tag string, attrs ...Attr) *Node {
	return &Node{Tag: tag, Attrs: attrs}
}

// A builds an attribute
func A(key, val string) Attr {
	return Attr{Key: key, Val: val}
}

// Class builds a class attribute
func Class(names ...string) Attr {
	return Attr{Key: "class", Val: strings.Join(names, " ")}
}

// Text creates an escaped text node
func Text(s string) *Node {
	return &Node{Text: s}
}

// Raw creates a node holding trusted HTML
func Raw(s string) *Node {
	return &Node{Raw: s}
}

// Append adds children, skipping nil ones, and returns the node
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Attr returns the value of an attribute
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute
func (n *Node) SetAttr(key, val string) *Node {
	for i, a := range n.Attrs {
		if a.Key == key {
			n.Attrs[i].Val = val
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Val: val})
	return n
}

// Find returns the first node in depth-first order matching fn
func (n *Node) Find(fn func(*Node) bool) *Node {
	if fn(n) {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(fn); found != nil {
			return found
		}
	}
	return nil
}

// HTML serializes the tree
func (n *Node) HTML() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

// WriteTo serializes the tree into w
func (n *Node) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	n.write(&b)
	written, err := io.WriteString(w, b.String())
	return int64(written), err
}

func (n *Node) write(b *strings.Builder) {
	if n == nil {
		return
	}
	if n.Tag == "" {
		if n.Raw != "" {
			b.WriteString(n.Raw)
		} else {
			b.WriteString(html.EscapeString(n.Text))
		}
		return
	}

	b.WriteByte('<')
	b.WriteString(n.Tag)
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		if a.Val != "" {
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(a.Val))
			b.WriteByte('"')
		}
	}
	b.WriteByte('>')
	if voidElements[n.Tag] {
		return
	}
	for _, c := range n.Children {
		c.write(b)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}
