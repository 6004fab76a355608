package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Component renders an MDX element from its attributes. Names are matched
// case-insensitively against the element tag.
type Component func(attrs map[string]string) (string, error)

// Components maps lower-case tag names to their renderers.
type Components map[string]Component

// DefaultComponents returns the components available to every article.
func DefaultComponents() Components {
	return Components{
		"highlightednote": HighlightedNote,
	}
}

const noteIcon = `<svg class="note-icon" viewBox="0 0 24 24" xmlns="http://www.w3.org/2000/svg"><g fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><path d="M16 12C15.333 12.667 15 14 15 16L15 17 9 17 9 16C9 14 8.667 12.667 8 12 5.674 9.674 5.414 6.1 7.757 3.757 10.1 1.414 13.9 1.414 16.243 3.757 18.586 6.1 18.407 9.593 16 12zM10 21L14 21"/></g></svg>`

// HighlightedNote renders a call-out box showing the content attribute.
func HighlightedNote(attrs map[string]string) (string, error) {
	content, ok := attrs["content"]
	if !ok {
		return "", fmt.Errorf("highlightednote: missing content attribute")
	}
	return `<div class="note"><div class="note-row">` + noteIcon +
		`<span class="note-text">` + html.EscapeString(content) + `</span></div></div>`, nil
}

// Expand rewrites every registered element in fragment with its component
// output. Children of a replaced element are kept and placed after it, since
// self-closing MDX tags are parsed as open elements that swallow what follows.
func (c Components) Expand(fragment []byte) ([]byte, error) {
	if len(c) == 0 || !c.mentioned(fragment) {
		return fragment, nil
	}
	root := containerNode()
	nodes, err := html.ParseFragment(bytes.NewReader(fragment), containerNode())
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	if err := c.expand(root); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	for n := root.FirstChild; n != nil; n = n.NextSibling {
		if err := html.Render(&buf, n); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// mentioned reports whether any component tag can appear in fragment.
func (c Components) mentioned(fragment []byte) bool {
	lower := bytes.ToLower(fragment)
	for name := range c {
		if bytes.Contains(lower, []byte("<"+name)) {
			return true
		}
	}
	return false
}

func (c Components) expand(parent *html.Node) error {
	for n := parent.FirstChild; n != nil; {
		comp, ok := c.lookup(n)
		if !ok {
			if err := c.expand(n); err != nil {
				return err
			}
			n = n.NextSibling
			continue
		}
		after := n.NextSibling
		for child := n.FirstChild; child != nil; {
			next := child.NextSibling
			n.RemoveChild(child)
			parent.InsertBefore(child, after)
			child = next
		}
		out, err := comp(attrMap(n))
		if err != nil {
			return fmt.Errorf("<%s>: %w", n.Data, err)
		}
		replacement, err := html.ParseFragment(strings.NewReader(out), containerNode())
		if err != nil {
			return err
		}
		for _, r := range replacement {
			parent.InsertBefore(r, n)
		}
		next := n.NextSibling
		parent.RemoveChild(n)
		n = next
	}
	return nil
}

func (c Components) lookup(n *html.Node) (Component, bool) {
	if n.Type != html.ElementNode {
		return nil, false
	}
	comp, ok := c[strings.ToLower(n.Data)]
	return comp, ok
}

func attrMap(n *html.Node) map[string]string {
	m := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		m[a.Key] = a.Val
	}
	return m
}

func containerNode() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
}
