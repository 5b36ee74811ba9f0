package dom

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// FocusableSelector is the selector union for elements eligible to receive
// keyboard focus. Elements matched only through [tabindex] are further
// restricted to non-negative values.
const FocusableSelector = "button, [href], input, select, textarea, [tabindex]"

// nativeFocusableSelector matches elements that are focusable regardless
// of their tabindex.
const nativeFocusableSelector = "button, [href], input, select, textarea"

// ErrNotInDocument is returned when a mutation references an element that
// has been removed from its document.
var ErrNotInDocument = errors.New("element is not attached to the document")

// Document is a parsed HTML document with an active element.
type Document struct {
	doc      *goquery.Document
	elements map[*html.Node]*Element
	active   *Element
}

// Parse reads an HTML document or fragment from r.
func Parse(r io.Reader) (*Document, error) {
	gq, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{
		doc:      gq,
		elements: make(map[*html.Node]*Element),
	}, nil
}

// ParseString parses an HTML document or fragment held in a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// wrap returns the unique Element for an element node.
func (d *Document) wrap(n *html.Node) *Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	if el, ok := d.elements[n]; ok {
		return el
	}
	el := &Element{node: n, doc: d}
	d.elements[n] = el
	return el
}

func (d *Document) wrapSelection(sel *goquery.Selection) []*Element {
	out := make([]*Element, 0, sel.Length())
	for _, n := range sel.Nodes {
		if el := d.wrap(n); el != nil {
			out = append(out, el)
		}
	}
	return out
}

// Root returns the body element, which holds parsed fragments.
func (d *Document) Root() *Element {
	body := d.doc.Find("body").First()
	if body.Length() == 0 {
		return nil
	}
	return d.wrap(body.Nodes[0])
}

// ElementByID returns the first element whose id attribute equals id, or
// nil.
func (d *Document) ElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	match := d.doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("id")
		return v == id
	}).First()
	if match.Length() == 0 {
		return nil
	}
	return d.wrap(match.Nodes[0])
}

// Query returns all elements matching a CSS selector, in document order.
func (d *Document) Query(selector string) []*Element {
	return d.wrapSelection(d.doc.Find(selector))
}

// FocusableDescendants returns the descendants of boundary that match
// FocusableSelector, in document order. Disabled elements are included;
// filtering them is the caller's concern.
func (d *Document) FocusableDescendants(boundary *Element) []*Element {
	if boundary == nil || !d.contains(boundary) {
		return nil
	}
	// cascadia walks the subtree depth-first, so Find preserves document
	// order.
	matches := d.selection(boundary).Find(FocusableSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return tabbable(s)
	})
	return d.wrapSelection(matches)
}

// tabbable reports whether a selector candidate is eligible: native
// focusables always are, [tabindex] matches need a non-negative index.
func tabbable(s *goquery.Selection) bool {
	if s.Is(nativeFocusableSelector) {
		return true
	}
	raw, ok := s.Attr("tabindex")
	if !ok {
		return false
	}
	idx, err := strconv.Atoi(strings.TrimSpace(raw))
	return err == nil && idx >= 0
}

// ActiveElement returns the focused element, or nil.
func (d *Document) ActiveElement() *Element {
	if d.active != nil && !d.contains(d.active) {
		d.active = nil
	}
	return d.active
}

// Focus moves focus to el. A nil or detached element blurs the document.
func (d *Document) Focus(el *Element) {
	if el == nil || el.doc != d || !d.contains(el) {
		d.active = nil
		return
	}
	d.active = el
}

// Blur clears the active element.
func (d *Document) Blur() {
	d.active = nil
}

// InsertAfter parses fragment in the context of ref's parent and inserts
// the resulting nodes directly after ref. It returns the inserted
// elements.
func (d *Document) InsertAfter(ref *Element, fragment string) ([]*Element, error) {
	if ref == nil || !d.contains(ref) || ref.node.Parent == nil {
		return nil, ErrNotInDocument
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ref.node.Parent)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fragment: %w", err)
	}
	next := ref.node.NextSibling
	var inserted []*Element
	for _, n := range nodes {
		ref.node.Parent.InsertBefore(n, next)
		if el := d.wrap(n); el != nil {
			inserted = append(inserted, el)
		}
	}
	return inserted, nil
}

// AppendHTML parses fragment in the context of parent and appends the
// resulting nodes as its last children.
func (d *Document) AppendHTML(parent *Element, fragment string) ([]*Element, error) {
	if parent == nil || !d.contains(parent) {
		return nil, ErrNotInDocument
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), parent.node)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fragment: %w", err)
	}
	var appended []*Element
	for _, n := range nodes {
		parent.node.AppendChild(n)
		if el := d.wrap(n); el != nil {
			appended = append(appended, el)
		}
	}
	return appended, nil
}

// Remove detaches el from the document. Focus inside the removed subtree
// is cleared.
func (d *Document) Remove(el *Element) error {
	if el == nil || !d.contains(el) || el.node.Parent == nil {
		return ErrNotInDocument
	}
	el.node.Parent.RemoveChild(el.node)
	if d.active != nil && !d.contains(d.active) {
		d.active = nil
	}
	return nil
}

// HTML renders the body's children back to markup.
func (d *Document) HTML() (string, error) {
	body := d.doc.Find("body").First()
	if body.Length() == 0 {
		return "", nil
	}
	return body.Html()
}

func (d *Document) selection(el *Element) *goquery.Selection {
	return d.doc.Selection.FindNodes(el.node)
}

// contains reports whether el is still reachable from the document root.
func (d *Document) contains(el *Element) bool {
	if el == nil || el.doc != d {
		return false
	}
	root := d.doc.Nodes[0]
	for n := el.node; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}
