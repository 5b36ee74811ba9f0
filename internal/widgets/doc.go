// Package widgets models the state of the accessible controls used by the
// keyboard demos: a checkbox, a stepper, a week calendar, a filter bar with
// three dialogs, a combo box and a tooltip.
//
// The types hold state and ARIA attribute values only. Rendering lives in
// the tui package, which wraps the dialogs and the calendar in focus traps.
package widgets
