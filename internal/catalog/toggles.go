package catalog

import "sort"

// Toggles tracks which cases or panels are expanded.
type Toggles struct {
	open map[string]bool
}

// NewToggles returns a set with the given ids open.
func NewToggles(ids ...string) *Toggles {
	t := &Toggles{open: make(map[string]bool)}
	t.Restore(ids)
	return t
}

// Toggle flips id and returns whether it is now open.
func (t *Toggles) Toggle(id string) bool {
	if t.open[id] {
		delete(t.open, id)
		return false
	}
	t.open[id] = true
	return true
}

// IsOpen reports whether id is expanded.
func (t *Toggles) IsOpen(id string) bool {
	return t.open[id]
}

// Open expands id.
func (t *Toggles) Open(id string) {
	t.open[id] = true
}

// Close collapses id.
func (t *Toggles) Close(id string) {
	delete(t.open, id)
}

// IDs returns the open ids in sorted order.
func (t *Toggles) IDs() []string {
	ids := make([]string, 0, len(t.open))
	for id := range t.open {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Restore replaces the open set. Empty ids are skipped.
func (t *Toggles) Restore(ids []string) {
	t.open = make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" {
			t.open[id] = true
		}
	}
}
