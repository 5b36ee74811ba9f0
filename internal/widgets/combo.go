package widgets

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// ComboBox is a search field that looks like a button until activated.
type ComboBox struct {
	options []string
	input   string
	editing bool
}

// NewComboBox returns a combo box offering options.
func NewComboBox(options ...string) *ComboBox {
	c := &ComboBox{options: make([]string, len(options))}
	copy(c.options, options)
	return c
}

// Click enters edit mode.
func (c *ComboBox) Click() { c.editing = true }

// Focus enters edit mode.
func (c *ComboBox) Focus() { c.editing = true }

// KeyDown enters edit mode on Enter or Space and reports whether the key
// was consumed.
func (c *ComboBox) KeyDown(key string) bool {
	switch key {
	case "Enter", " ", "Spacebar", "space":
		c.editing = true
		return true
	}
	return false
}

// Editing reports whether the search input is shown.
func (c *ComboBox) Editing() bool { return c.editing }

// SetInput replaces the search text.
func (c *ComboBox) SetInput(s string) { c.input = s }

// Input returns the search text.
func (c *ComboBox) Input() string { return c.input }

// Clickable reports whether the search button is enabled.
func (c *ComboBox) Clickable() bool { return strings.TrimSpace(c.input) != "" }

// Clear empties the search text and stays in edit mode.
func (c *ComboBox) Clear() {
	c.input = ""
	c.editing = true
}

// Exit leaves edit mode, keeping the text.
func (c *ComboBox) Exit() { c.editing = false }

// Matches returns the options ranked against the search text. An empty
// search returns every option in order.
func (c *ComboBox) Matches() []string {
	q := strings.TrimSpace(c.input)
	if q == "" {
		out := make([]string, len(c.options))
		copy(out, c.options)
		return out
	}
	found := fuzzy.Find(q, c.options)
	out := make([]string, 0, len(found))
	for _, m := range found {
		out = append(out, m.Str)
	}
	return out
}
