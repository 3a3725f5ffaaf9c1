package doctree

import "strings"

// Node is one node of a parsed markup document.
type Node struct {
	Tag      string  // Lower-case element name; empty for text nodes
	Text     string  // Raw character data of a text node
	Children []*Node // Ordered child nodes

	parent *Node
}

// NewElement returns an element node with the given children attached.
func NewElement(tag string, children ...*Node) *Node {
	n := &Node{Tag: strings.ToLower(tag)}
	n.Append(children...)
	return n
}

// NewText returns a text node.
func NewText(s string) *Node {
	return &Node{Text: s}
}

// Append attaches children to n in order.
func (n *Node) Append(children ...*Node) {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.parent = n
		n.Children = append(n.Children, c)
	}
}

// IsElement reports whether n is an element rather than a text node.
func (n *Node) IsElement() bool {
	return n.Tag != ""
}

func (n *Node) Parent() *Node {
	return n.parent
}

// TextContent concatenates all descendant text in document order, untrimmed.
func (n *Node) TextContent() string {
	if !n.IsElement() {
		return n.Text
	}
	var buf strings.Builder
	var collect func(*Node)
	collect = func(n *Node) {
		if !n.IsElement() {
			buf.WriteString(n.Text)
			return
		}
		for _, c := range n.Children {
			collect(c)
		}
	}
	collect(n)
	return buf.String()
}

// TrimmedText is TextContent with surrounding whitespace removed.
func (n *Node) TrimmedText() string {
	return strings.TrimSpace(n.TextContent())
}

// NextElementSibling returns the next element after n under the same parent,
// skipping text nodes, or nil.
func (n *Node) NextElementSibling() *Node {
	siblings, idx := n.position()
	if idx < 0 {
		return nil
	}
	for _, s := range siblings[idx+1:] {
		if s.IsElement() {
			return s
		}
	}
	return nil
}

// PrevElementSibling returns the closest preceding element under the same
// parent, skipping text nodes, or nil.
func (n *Node) PrevElementSibling() *Node {
	siblings, idx := n.position()
	for i := idx - 1; i >= 0; i-- {
		if siblings[i].IsElement() {
			return siblings[i]
		}
	}
	return nil
}

func (n *Node) position() ([]*Node, int) {
	if n.parent == nil {
		return nil, -1
	}
	for i, s := range n.parent.Children {
		if s == n {
			return n.parent.Children, i
		}
	}
	return nil, -1
}

// Walk visits every descendant element of n in document (pre-)order.
// n itself is not visited.
func (n *Node) Walk(fn func(*Node)) {
	for _, c := range n.Children {
		if !c.IsElement() {
			continue
		}
		fn(c)
		c.Walk(fn)
	}
}

// FindFirst returns the first descendant element with the given tag.
func (n *Node) FindFirst(tag string) *Node {
	for _, c := range n.Children {
		if !c.IsElement() {
			continue
		}
		if c.Tag == tag {
			return c
		}
		if found := c.FindFirst(tag); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant element whose tag is one of tags, in
// document order.
func (n *Node) FindAll(tags ...string) []*Node {
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}
	var out []*Node
	n.Walk(func(e *Node) {
		if want[e.Tag] {
			out = append(out, e)
		}
	})
	return out
}

// HeadingLevel returns 1-6 for h1-h6 tags and 0 otherwise.
func HeadingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}
