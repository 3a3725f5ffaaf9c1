package doctree

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// FromHTML parses an HTML document or fragment and returns a tree rooted at
// a synthetic "body" element holding the document body's content.
func FromHTML(r io.Reader) (*Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	root := NewElement("body")
	src := findBody(doc)
	if src == nil {
		src = doc
	}
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		root.Append(fromHTMLNode(c))
	}
	return root, nil
}

// FromHTMLString is FromHTML over an in-memory string.
func FromHTMLString(s string) (*Node, error) {
	return FromHTML(strings.NewReader(s))
}

func fromHTMLNode(n *html.Node) *Node {
	switch n.Type {
	case html.TextNode:
		return NewText(n.Data)
	case html.ElementNode:
		// Skip non-content elements.
		switch n.Data {
		case "script", "style", "template":
			return nil
		}
		e := NewElement(n.Data)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			e.Append(fromHTMLNode(c))
		}
		return e
	}
	// Comments, doctypes and raw nodes carry no document text.
	return nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
