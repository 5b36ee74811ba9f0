package dom

// TabOrder returns the elements sequential navigation visits, in document
// order. Disabled form controls are skipped; aria-disabled elements stay
// reachable, as they do in a browser.
func (d *Document) TabOrder() []*Element {
	var out []*Element
	for _, el := range d.FocusableDescendants(d.Root()) {
		if _, ok := el.Attr("disabled"); ok && formControls[el.Tag()] {
			continue
		}
		out = append(out, el)
	}
	return out
}

// NextTabStop returns where an untrapped Tab (or Shift+Tab when backward)
// moves focus from the active element, wrapping at the ends of the
// document. With nothing focused it starts from the first or last stop.
func (d *Document) NextTabStop(backward bool) *Element {
	order := d.TabOrder()
	if len(order) == 0 {
		return nil
	}
	current := -1
	if active := d.ActiveElement(); active != nil {
		for i, el := range order {
			if el == active {
				current = i
				break
			}
		}
	}
	switch {
	case current < 0 && backward:
		return order[len(order)-1]
	case current < 0:
		return order[0]
	case backward:
		return order[(current-1+len(order))%len(order)]
	default:
		return order[(current+1)%len(order)]
	}
}
