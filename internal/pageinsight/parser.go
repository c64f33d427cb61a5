package pageinsight

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/Bahjat/site-audit-tool/internal/audit"
)

// Document implements audit.Document on top of a goquery tree.
type Document struct {
	doc *goquery.Document
}

// ParseDocument builds a Document from page text. The HTML5 parsing
// algorithm recovers from any malformed markup, so it never fails; an
// unexpected tokenizer error yields an empty document.
func ParseDocument(text string) *Document {
	root, err := html.Parse(strings.NewReader(text))
	if err != nil {
		root = &html.Node{Type: html.DocumentNode}
	}
	return &Document{doc: goquery.NewDocumentFromNode(root)}
}

// Title returns the text of the first <title> element.
func (d *Document) Title() string {
	return d.doc.Find("title").First().Text()
}

// FindAll returns elements matching any of the given tag names.
func (d *Document) FindAll(tags ...string) []audit.Element {
	if len(tags) == 0 {
		return nil
	}
	return elements(d.doc.Find(strings.Join(tags, ", ")))
}

// FindWithAttr returns elements carrying at least one of the given attributes.
func (d *Document) FindWithAttr(attrs ...string) []audit.Element {
	if len(attrs) == 0 {
		return nil
	}
	selectors := make([]string, len(attrs))
	for i, a := range attrs {
		selectors[i] = "[" + a + "]"
	}
	return elements(d.doc.Find(strings.Join(selectors, ", ")))
}

// elements splits a selection into single-node selections; goquery keeps
// multi-selector results in document order without duplicates.
func elements(sel *goquery.Selection) []audit.Element {
	out := make([]audit.Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, s)
	})
	return out
}
