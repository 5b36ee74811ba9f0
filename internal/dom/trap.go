package dom

import "github.com/muurk/wcagdemo/internal/focustrap"

// TrapDocument adapts d to focustrap.Document.
func (d *Document) TrapDocument() focustrap.Document {
	return trapDocument{d: d}
}

// TrapHost returns el as a focustrap.Element, mapping nil to an untyped
// nil so the trap's nil checks hold.
func TrapHost(el *Element) focustrap.Element {
	if el == nil {
		return nil
	}
	return el
}

// FromTrap converts a trap element back to a dom element.
func FromTrap(el focustrap.Element) *Element {
	if e, ok := el.(*Element); ok {
		return e
	}
	return nil
}

type trapDocument struct {
	d *Document
}

func (t trapDocument) ElementByID(id string) focustrap.Element {
	return TrapHost(t.d.ElementByID(id))
}

func (t trapDocument) FocusableDescendants(boundary focustrap.Element) []focustrap.Element {
	els := t.d.FocusableDescendants(FromTrap(boundary))
	out := make([]focustrap.Element, len(els))
	for i, el := range els {
		out[i] = el
	}
	return out
}

func (t trapDocument) ActiveElement() focustrap.Element {
	return TrapHost(t.d.ActiveElement())
}

func (t trapDocument) Focus(el focustrap.Element) {
	t.d.Focus(FromTrap(el))
}
