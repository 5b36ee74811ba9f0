package dom

import (
	"errors"
	"strings"
	"testing"

	"github.com/muurk/wcagdemo/internal/focustrap"
)

const dialogHTML = `
<button id="open">Open</button>
<div id="dialog" role="dialog" aria-modal="true">
  <h2>Passengers</h2>
  <a id="help" href="#help">Help</a>
  <span id="plain">not focusable</span>
  <input id="name" placeholder="Name">
  <div id="custom" tabindex="0">Custom</div>
  <div id="skipped" tabindex="-1">Skipped</div>
  <div id="negative" tabindex="-4">Negative</div>
  <select id="cabin"><option>Economy</option></select>
  <button id="minus" aria-disabled="true">-</button>
  <button id="off" disabled>Off</button>
  <textarea id="notes"></textarea>
  <button id="close">Close</button>
</div>
<a id="footer" href="/">Footer</a>
`

func mustParse(t *testing.T, s string) *Document {
	t.Helper()
	doc, err := ParseString(s)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	return doc
}

func ids(els []*Element) []string {
	out := make([]string, len(els))
	for i, el := range els {
		out[i] = el.ID()
	}
	return out
}

func TestFocusableDescendantsDocumentOrder(t *testing.T) {
	doc := mustParse(t, dialogHTML)
	dialog := doc.ElementByID("dialog")
	if dialog == nil {
		t.Fatal("ElementByID(dialog) = nil")
	}

	got := ids(doc.FocusableDescendants(dialog))
	want := []string{"help", "name", "custom", "cabin", "minus", "off", "notes", "close"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("FocusableDescendants() = %v, want %v", got, want)
	}
}

func TestFocusableDescendantsNilBoundary(t *testing.T) {
	doc := mustParse(t, dialogHTML)
	if got := doc.FocusableDescendants(nil); len(got) != 0 {
		t.Errorf("FocusableDescendants(nil) = %v, want empty", got)
	}
}

func TestDisabled(t *testing.T) {
	doc := mustParse(t, dialogHTML+`<a id="fake-disabled" href="#" disabled>Link</a>`)
	tests := []struct {
		id   string
		want bool
	}{
		{"minus", true},
		{"off", true},
		{"close", false},
		{"fake-disabled", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			el := doc.ElementByID(tt.id)
			if el == nil {
				t.Fatalf("ElementByID(%q) = nil", tt.id)
			}
			if got := el.Disabled(); got != tt.want {
				t.Errorf("Disabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestElementIdentityIsStable(t *testing.T) {
	doc := mustParse(t, dialogHTML)
	a := doc.ElementByID("close")
	b := doc.Query("#close")[0]
	if a != b {
		t.Error("same node produced two *Element values")
	}
}

func TestLabelAndString(t *testing.T) {
	doc := mustParse(t, `<button id="x" aria-label="Close dialog">×</button><input id="q" placeholder="Search">`)
	if got := doc.ElementByID("x").Label(); got != "Close dialog" {
		t.Errorf("Label() = %q", got)
	}
	if got := doc.ElementByID("q").Label(); got != "Search" {
		t.Errorf("Label() = %q", got)
	}
	if got := doc.ElementByID("x").String(); got != `button#x "Close dialog"` {
		t.Errorf("String() = %q", got)
	}
}

func TestFocusAndRemove(t *testing.T) {
	doc := mustParse(t, dialogHTML)
	closeBtn := doc.ElementByID("close")
	doc.Focus(closeBtn)
	if doc.ActiveElement() != closeBtn {
		t.Fatal("Focus() did not set the active element")
	}

	if err := doc.Remove(doc.ElementByID("dialog")); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if doc.ActiveElement() != nil {
		t.Error("active element inside removed subtree should be cleared")
	}
	if doc.ElementByID("close") != nil {
		t.Error("removed element still resolvable by id")
	}
	if err := doc.Remove(closeBtn); !errors.Is(err, ErrNotInDocument) {
		t.Errorf("Remove(detached) error = %v, want ErrNotInDocument", err)
	}

	doc.Focus(closeBtn)
	if doc.ActiveElement() != nil {
		t.Error("focusing a detached element should blur")
	}
}

func TestInsertAfterAndAppend(t *testing.T) {
	doc := mustParse(t, `<div id="list"><button id="a">A</button><button id="b">B</button></div>`)
	list := doc.ElementByID("list")

	inserted, err := doc.InsertAfter(doc.ElementByID("a"), `<button id="c">C</button>`)
	if err != nil {
		t.Fatalf("InsertAfter() error = %v", err)
	}
	if len(inserted) != 1 || inserted[0].ID() != "c" {
		t.Fatalf("InsertAfter() = %v", inserted)
	}
	if _, err := doc.AppendHTML(list, `<a id="d" href="#">D</a>`); err != nil {
		t.Fatalf("AppendHTML() error = %v", err)
	}

	got := strings.Join(ids(doc.FocusableDescendants(list)), ",")
	if got != "a,c,b,d" {
		t.Errorf("order after mutation = %s, want a,c,b,d", got)
	}

	markup, err := doc.HTML()
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	if !strings.Contains(markup, `<button id="c">C</button>`) {
		t.Errorf("HTML() = %s, missing inserted button", markup)
	}
}

func TestAttributes(t *testing.T) {
	doc := mustParse(t, `<button id="a">A</button>`)
	a := doc.ElementByID("a")
	a.SetAttr("aria-disabled", "true")
	if !a.Disabled() || a.Focusable() {
		t.Error("aria-disabled=true should disable the element")
	}
	a.SetAttr("aria-disabled", "false")
	if a.Disabled() || !a.Focusable() {
		t.Error("aria-disabled=false should enable the element")
	}
	a.RemoveAttr("aria-disabled")
	if _, ok := a.Attr("aria-disabled"); ok {
		t.Error("RemoveAttr() left the attribute in place")
	}
}

func TestTrapOverParsedHTML(t *testing.T) {
	doc := mustParse(t, dialogHTML)
	trap := focustrap.New(TrapHost(doc.Root()), doc.TrapDocument())
	trap.Configure("dialog", focustrap.ModeTabAndArrowKeys)

	// Focus starts on the opener outside the dialog.
	doc.Focus(doc.ElementByID("open"))
	res := trap.HandleKeyDown(focustrap.KeyEvent{Key: focustrap.KeyTab})
	if res.Action != focustrap.ActionHealed || doc.ActiveElement().ID() != "help" {
		t.Fatalf("heal: action=%v active=%v", res.Action, doc.ActiveElement())
	}

	trap.HandleKeyDown(focustrap.KeyEvent{Key: focustrap.KeyTab, Shift: true})
	if got := doc.ActiveElement().ID(); got != "close" {
		t.Errorf("Shift+Tab from first = %q, want close", got)
	}

	// ArrowUp from close skips the disabled buttons.
	trap.HandleKeyDown(focustrap.KeyEvent{Key: focustrap.KeyArrowUp})
	if got := doc.ActiveElement().ID(); got != "notes" {
		t.Errorf("ArrowUp from close = %q, want notes", got)
	}
	trap.HandleKeyDown(focustrap.KeyEvent{Key: focustrap.KeyArrowUp})
	if got := doc.ActiveElement().ID(); got != "cabin" {
		t.Errorf("ArrowUp from notes = %q, want cabin", got)
	}
}

func TestTrapDynamicInsert(t *testing.T) {
	doc := mustParse(t, `<div id="box"><button id="A">A</button><button id="B">B</button></div>`)
	trap := focustrap.New(nil, doc.TrapDocument())
	trap.Configure("box", focustrap.ModeTab)

	if _, err := doc.InsertAfter(doc.ElementByID("A"), `<button id="C">C</button>`); err != nil {
		t.Fatalf("InsertAfter() error = %v", err)
	}

	doc.Focus(doc.ElementByID("B"))
	trap.HandleKeyDown(focustrap.KeyEvent{Key: focustrap.KeyTab})
	if got := doc.ActiveElement().ID(); got != "A" {
		t.Errorf("Tab from B = %q, want A", got)
	}

	doc.Focus(doc.ElementByID("C"))
	if res := trap.HandleKeyDown(focustrap.KeyEvent{Key: focustrap.KeyTab}); res.Handled {
		t.Errorf("Tab from C should not wrap, got %+v", res)
	}
	var order []string
	for _, el := range trap.Focusable() {
		order = append(order, FromTrap(el).ID())
	}
	if strings.Join(order, ",") != "A,C,B" {
		t.Errorf("focusable order = %v, want A,C,B", order)
	}
}

func TestTabOrder(t *testing.T) {
	doc := mustParse(t, dialogHTML)
	want := "open,help,name,custom,cabin,minus,notes,close,footer"
	if got := strings.Join(ids(doc.TabOrder()), ","); got != want {
		t.Errorf("TabOrder() = %s, want %s", got, want)
	}

	if got := doc.NextTabStop(true); got.ID() != "footer" {
		t.Errorf("NextTabStop(backward) with nothing focused = %s, want footer", got)
	}
	doc.Focus(doc.ElementByID("close"))
	if got := doc.NextTabStop(false); got.ID() != "footer" {
		t.Errorf("NextTabStop() from close = %s, want footer", got)
	}
	doc.Focus(doc.ElementByID("footer"))
	if got := doc.NextTabStop(false); got.ID() != "open" {
		t.Errorf("NextTabStop() from footer = %s, want open", got)
	}
}
