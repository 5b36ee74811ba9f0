// Package dom provides a small mutable HTML document model with focus
// tracking.
//
// Documents are parsed with goquery (golang.org/x/net/html underneath), so
// the WCAG example snippets can be loaded as-is and queried with CSS
// selectors. The package is the "rendering layer" collaborator for the
// focus trap: it resolves elements by id, lists focusable descendants in
// document order, and owns the notion of the active element.
//
//	doc, err := dom.ParseString(`<div id="dialog"><button>OK</button></div>`)
//	if err != nil {
//	    return err
//	}
//	trap := focustrap.New(doc.Root(), doc.TrapDocument())
//	trap.Configure("dialog", focustrap.ModeTab)
//
// A Document is not safe for concurrent use.
package dom
