package widgets

import "time"

// ReadyDelay is how long the destination dialog waits before showing
// results, so screen readers announce the dialog before its content.
const ReadyDelay = 500 * time.Millisecond

// Dialog identifies one of the filter bar dialogs.
type Dialog string

const (
	DialogDestination Dialog = "destination"
	DialogPassengers  Dialog = "passengers"
	DialogOther       Dialog = "other"
)

// Passenger is a passenger counter.
type Passenger string

const (
	Adults   Passenger = "adults"
	Children Passenger = "children"
	Infants  Passenger = "infants"
)

// Passengers lists the counters in display order.
var Passengers = []Passenger{Adults, Children, Infants}

// Initial focus targets, by element id.
const (
	FocusDestinationInput = "destination-input"
	FocusOtherClose       = "other-close"
)

// DestinationFilter is a filter bar whose buttons open modal dialogs.
type DestinationFilter struct {
	open   map[Dialog]bool
	counts map[Passenger]int
	ready  bool
	gen    int
}

// NewDestinationFilter returns a filter with every dialog closed.
func NewDestinationFilter() *DestinationFilter {
	return &DestinationFilter{
		open:   make(map[Dialog]bool),
		counts: make(map[Passenger]int),
	}
}

// Open opens d and returns the id of the element that should receive
// focus. For the destination dialog, results stay hidden until MarkReady
// is called with the returned generation after ReadyDelay.
func (f *DestinationFilter) Open(d Dialog) string {
	f.open[d] = true
	switch d {
	case DialogDestination:
		f.gen++
		f.ready = false
		return FocusDestinationInput
	case DialogPassengers:
		return f.firstEnabledCounter()
	default:
		return FocusOtherClose
	}
}

// Generation identifies the current opening of the destination dialog.
func (f *DestinationFilter) Generation() int { return f.gen }

// MarkReady shows destination results. Calls for an earlier opening, or
// after the dialog closed, are ignored.
func (f *DestinationFilter) MarkReady(gen int) bool {
	if !f.open[DialogDestination] || gen != f.gen {
		return false
	}
	f.ready = true
	return true
}

// Ready reports whether destination results are visible.
func (f *DestinationFilter) Ready() bool { return f.ready }

// Close closes d. Closing the passengers dialog resets the counters.
func (f *DestinationFilter) Close(d Dialog) {
	delete(f.open, d)
	switch d {
	case DialogDestination:
		f.ready = false
	case DialogPassengers:
		f.counts = make(map[Passenger]int)
	}
}

// IsOpen reports whether d is open.
func (f *DestinationFilter) IsOpen(d Dialog) bool { return f.open[d] }

// Count returns the value of a passenger counter.
func (f *DestinationFilter) Count(p Passenger) int { return f.counts[p] }

// Increase adds one to p.
func (f *DestinationFilter) Increase(p Passenger) { f.counts[p]++ }

// Decrease subtracts one from p and reports whether it changed. Counters
// never go below zero.
func (f *DestinationFilter) Decrease(p Passenger) bool {
	if !f.CanDecrease(p) {
		return false
	}
	f.counts[p]--
	return true
}

// CanDecrease reports whether p is above zero.
func (f *DestinationFilter) CanDecrease(p Passenger) bool { return f.counts[p] > 0 }

// DecreaseAriaDisabled returns the aria-disabled value of p's minus button.
func (f *DestinationFilter) DecreaseAriaDisabled(p Passenger) string {
	if f.CanDecrease(p) {
		return "false"
	}
	return "true"
}

// Total returns the sum of all passenger counters.
func (f *DestinationFilter) Total() int {
	n := 0
	for _, c := range f.counts {
		n += c
	}
	return n
}

// CounterButtonID returns the element id of a counter button.
func CounterButtonID(p Passenger, increase bool) string {
	if increase {
		return string(p) + "-increase"
	}
	return string(p) + "-decrease"
}

// firstEnabledCounter returns the first counter button in document order
// that is not aria-disabled. Each row renders its minus button first.
func (f *DestinationFilter) firstEnabledCounter() string {
	first := Passengers[0]
	if f.CanDecrease(first) {
		return CounterButtonID(first, false)
	}
	return CounterButtonID(first, true)
}
