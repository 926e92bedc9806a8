// Package goquery implements brandctx.Parser and brandctx.Node on top of
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/brandctx"
	"golang.org/x/net/html"
)

// Ensure Parser implements brandctx.Parser at compile time.
var _ brandctx.Parser = (*Parser)(nil)

// Parser parses HTML into goquery-backed nodes.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse builds a document from raw markup. The HTML5 parsing algorithm
// recovers from malformed markup; a reader error yields an empty document.
func (p *Parser) Parse(raw string) brandctx.Node {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		doc = goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})
	}
	return &Node{sel: doc.Selection}
}

// Ensure Node implements brandctx.Node at compile time.
var _ brandctx.Node = (*Node)(nil)

// Node wraps a goquery selection of exactly one element (or the document).
type Node struct {
	sel *goquery.Selection
}

// FindClass returns all descendants whose class attribute matches re.
func (n *Node) FindClass(re *regexp.Regexp) []brandctx.Node {
	var nodes []brandctx.Node
	n.sel.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		if classMatches(s, re) {
			nodes = append(nodes, &Node{sel: s})
		}
	})
	return nodes
}

// FirstClass returns the first descendant whose class attribute matches re.
func (n *Node) FirstClass(re *regexp.Regexp) brandctx.Node {
	var found *goquery.Selection
	n.sel.Find("[class]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if classMatches(s, re) {
			found = s
			return false
		}
		return true
	})
	if found == nil {
		return nil
	}
	return &Node{sel: found}
}

// First returns the first descendant with the given tag name.
func (n *Node) First(tag string) brandctx.Node {
	s := n.sel.Find(tag).First()
	if s.Length() == 0 {
		return nil
	}
	return &Node{sel: s}
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

// Text returns the visible text of the node.
func (n *Node) Text() string {
	var parts []string
	for _, node := range n.sel.Nodes {
		collectText(node, &parts)
	}
	return strings.Join(parts, " ")
}

// Anchors returns every descendant anchor that carries an href.
func (n *Node) Anchors() []brandctx.Anchor {
	var anchors []brandctx.Anchor
	n.sel.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		anchors = append(anchors, brandctx.Anchor{
			Href: href,
			Text: (&Node{sel: s}).Text(),
		})
	})
	return anchors
}

// classMatches tests the whole class attribute and each class token.
func classMatches(s *goquery.Selection, re *regexp.Regexp) bool {
	class, ok := s.Attr("class")
	if !ok {
		return false
	}
	if re.MatchString(class) {
		return true
	}
	for _, token := range strings.Fields(class) {
		if re.MatchString(token) {
			return true
		}
	}
	return false
}

// collectText appends the normalized text of every visible text node under n.
func collectText(n *html.Node, parts *[]string) {
	switch n.Type {
	case html.TextNode:
		if text := strings.Join(strings.Fields(n.Data), " "); text != "" {
			*parts = append(*parts, text)
		}
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript", "template":
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}
