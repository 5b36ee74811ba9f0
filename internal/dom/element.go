package dom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// formControls are the elements whose disabled attribute takes effect.
var formControls = map[string]bool{
	"button":   true,
	"input":    true,
	"select":   true,
	"textarea": true,
	"option":   true,
	"optgroup": true,
	"fieldset": true,
}

// Element is an element node in a Document. The same node always maps to
// the same *Element, so elements can be compared with ==.
type Element struct {
	node *html.Node
	doc  *Document
}

func (e *Element) sel() *goquery.Selection {
	return e.doc.selection(e)
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// ID returns the id attribute, or "".
func (e *Element) ID() string {
	v, _ := e.Attr("id")
	return v
}

// Attr returns the value of an attribute and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, replacing any existing value.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr removes an attribute if present.
func (e *Element) RemoveAttr(name string) {
	attrs := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		attrs = append(attrs, a)
	}
	e.node.Attr = attrs
}

// Disabled reports a native disabled attribute on a form control or
// aria-disabled="true" on any element.
func (e *Element) Disabled() bool {
	if v, ok := e.Attr("aria-disabled"); ok && strings.EqualFold(strings.TrimSpace(v), "true") {
		return true
	}
	if _, ok := e.Attr("disabled"); ok && formControls[e.Tag()] {
		return true
	}
	return false
}

// Focusable reports whether the element matches the focusable selector
// union and is not disabled.
func (e *Element) Focusable() bool {
	s := e.sel()
	return s.Is(FocusableSelector) && tabbable(s) && !e.Disabled()
}

// Text returns the element's text content with whitespace collapsed.
func (e *Element) Text() string {
	return strings.Join(strings.Fields(e.sel().Text()), " ")
}

// Label returns the element's accessible name: aria-label, then text
// content, then value, placeholder, title and alt.
func (e *Element) Label() string {
	if v, ok := e.Attr("aria-label"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if text := e.Text(); text != "" {
		return text
	}
	for _, name := range []string{"value", "placeholder", "title", "alt"} {
		if v, ok := e.Attr(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Parent returns the parent element, or nil at the root.
func (e *Element) Parent() *Element {
	return e.doc.wrap(e.node.Parent)
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	if other == nil || other.doc != e.doc {
		return false
	}
	for n := other.node; n != nil; n = n.Parent {
		if n == e.node {
			return true
		}
	}
	return false
}

// OuterHTML renders the element and its subtree.
func (e *Element) OuterHTML() (string, error) {
	return goquery.OuterHtml(e.sel())
}

// String describes the element as tag#id "label", for logs and tests.
func (e *Element) String() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(e.Tag())
	if id := e.ID(); id != "" {
		b.WriteString("#" + id)
	}
	if label := e.Label(); label != "" {
		if len(label) > 32 {
			label = label[:29] + "..."
		}
		fmt.Fprintf(&b, " %q", label)
	}
	return b.String()
}
