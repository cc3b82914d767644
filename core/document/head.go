// Package document keeps the host page's head: the stylesheet links
// inserted for remotes, in insertion order.
package document

import (
	"context"
	"html/template"
	"strings"
	"sync"

	"remote-loader/core/remote"
)

// Head is the ordered list of stylesheet links inserted into the host page.
type Head struct {
	mu    sync.RWMutex
	links []remote.Link
}

// NewHead creates an empty head.
func NewHead() *Head {
	return &Head{}
}

// Append adds a link node.
func (h *Head) Append(link remote.Link) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.links = append(h.links, link)
}

// Links returns a copy of the inserted links.
func (h *Head) Links() []remote.Link {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]remote.Link, len(h.links))
	copy(out, h.links)
	return out
}

// Render returns one <link rel="stylesheet"> tag per inserted link.
func (h *Head) Render() template.HTML {
	var b strings.Builder
	for _, l := range h.Links() {
		b.WriteString(`<link rel="stylesheet" href="`)
		b.WriteString(template.HTMLEscapeString(l.Href))
		b.WriteString(`" data-remote-style="`)
		b.WriteString(template.HTMLEscapeString(l.Key))
		b.WriteString("\">\n")
	}
	return template.HTML(b.String())
}

// Checker checks that a stylesheet URL is loadable.
type Checker interface {
	Check(ctx context.Context, url string) error
}

// Inserter implements remote.StylesheetInserter on top of a Head.
type Inserter struct {
	head    *Head
	checker Checker
}

// Inserter returns a remote.StylesheetInserter appending to h. A nil checker
// treats every link as loaded.
func (h *Head) Inserter(checker Checker) *Inserter {
	return &Inserter{head: h, checker: checker}
}

// Insert appends the link node, then waits for its load signal. The node
// stays in the head when loading fails.
func (i *Inserter) Insert(ctx context.Context, link remote.Link) error {
	i.head.Append(link)
	if i.checker == nil {
		return nil
	}
	return i.checker.Check(ctx, link.Href)
}
