package brandctx

import "regexp"

// Anchor is an <a> element carrying an href attribute.
type Anchor struct {
	Href string
	Text string
}

// Node is a queryable element of a parsed HTML page. The document itself is
// the root Node.
type Node interface {
	// FindClass returns all descendants whose class attribute matches re,
	// in document order.
	FindClass(re *regexp.Regexp) []Node

	// FirstClass returns the first descendant whose class attribute matches
	// re, or nil.
	FirstClass(re *regexp.Regexp) Node

	// First returns the first descendant with the given tag name, or nil.
	First(tag string) Node

	// Attr returns the value of the named attribute.
	Attr(name string) (string, bool)

	// Text returns the visible text with whitespace normalized and element
	// boundaries collapsed to single spaces.
	Text() string

	// Anchors returns every descendant anchor that carries an href.
	Anchors() []Anchor
}

// Parser builds a Node tree from raw markup.
type Parser interface {
	// Parse never fails: malformed markup produces a best-effort tree and
	// unreadable input produces an empty document.
	Parse(html string) Node
}
