// Package tui implements the interactive keyboard accessibility demo.
//
// The program is a Bubble Tea application. AppModel coordinates four
// screens and routes messages to the active one:
//   - Catalog: WCAG cases in a bubbles/list, filterable with / and by
//     principle with p. Enter expands a case, → opens it.
//   - Detail: both examples side by side in a viewport, with highlighting
//     and the explanation rendered as markdown.
//   - Playground: a dialog snippet parsed into a dom.Document with a
//     focustrap.Trap attached. Tab, Shift+Tab and the arrow keys go through
//     the trap; m toggles the mode, a inserts a button, d toggles
//     aria-disabled and x moves focus outside the dialog.
//   - Widgets: keyboard operable controls from the widgets package. Tab
//     between them is driven by a trap over the screen's own markup, and
//     opening a dialog moves the trap boundary into it.
//
// The trap's deferred rescans are queued on a focustrap.Queue and flushed
// by a tea.Cmd, so the first scan happens after the first render.
//
// # Usage
//
//	cat := catalog.Default()
//	if err := tui.Run(cfg, cat); err != nil {
//	    return err
//	}
//
// Run persists the expanded cases, the last selected case and the trap
// mode to the config file when the program exits.
package tui
