// Package focustrap confines keyboard navigation to a bounded region of an
// element tree.
//
// A Trap is attached to a host element and scans a boundary (an element
// resolved by id, or the host itself) for focusable descendants. Tab on the
// last element wraps to the first and Shift+Tab on the first wraps to the
// last. In ModeTabAndArrowKeys, ArrowDown and ArrowUp step through the same
// sequence cyclically.
//
// # Capabilities
//
// The trap never touches global state. Everything it needs comes through
// the Document interface:
//
//   - ElementByID resolves the boundary reference
//   - FocusableDescendants returns candidates in document order
//   - ActiveElement and Focus read and move input focus
//
// The internal/dom package implements Document over parsed HTML; tests use
// a small in-memory fake.
//
// # Rescanning
//
// The focusable set is recomputed before every key event, so elements
// inserted or removed between keystrokes are honored. Configure defers its
// rescan through a Scheduler so a boundary that is rendered after the
// configuration call is still found:
//
//	queue := &focustrap.Queue{}
//	trap := focustrap.New(host, doc, focustrap.WithScheduler(queue))
//	trap.Configure("dialog", focustrap.ModeTabAndArrowKeys)
//	// ... render the dialog ...
//	queue.Flush()
//
// # Failure Semantics
//
// No operation returns an error. A missing boundary or an empty set turns
// every key event into a pass-through, and focus found outside the set is
// pulled back to the first element.
package focustrap
