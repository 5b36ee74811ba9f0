package ui

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/muurk/wcagdemo/internal/catalog"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string {
	return ansi.ReplaceAllString(s, "")
}

func TestHighlightPreservesText(t *testing.T) {
	code := "<button type=\"button\" id=\"save\">Save</button>\n<!-- note -->\n<a href=\"#\">Link</a>"
	got := plain(HighlightHTML(code))
	if got != code {
		t.Errorf("HighlightHTML() text = %q, want %q", got, code)
	}
	if Highlight("", "html") != "" {
		t.Error("Highlight(\"\") should be empty")
	}
	if got := plain(Highlight("plain words", "no-such-language")); got != "plain words" {
		t.Errorf("Highlight(unknown) = %q", got)
	}
}

func TestRenderMarkdownPlain(t *testing.T) {
	got := plain(RenderMarkdown("Use a `<label for>` element.", 60, false))
	if !strings.Contains(got, "label for") {
		t.Errorf("RenderMarkdown() = %q, want the label text", got)
	}
}

func TestRenderCaseLine(t *testing.T) {
	c, err := catalog.Default().Get("wcag-2-1-2")
	if err != nil {
		t.Fatal(err)
	}
	line := plain(RenderCaseLine(c))
	for _, want := range []string{"2.1.2", "No keyboard trap", "operable"} {
		if !strings.Contains(line, want) {
			t.Errorf("RenderCaseLine() = %q, missing %q", line, want)
		}
	}
}

func TestRenderCaseList(t *testing.T) {
	out := plain(RenderCaseList(catalog.Default().All()))
	idx := -1
	for _, p := range catalog.Pillars {
		i := strings.Index(out, p.Title())
		if i < 0 {
			t.Fatalf("missing heading %s", p.Title())
		}
		if i < idx {
			t.Errorf("heading %s out of order", p.Title())
		}
		idx = i
	}
}

func TestRenderCase(t *testing.T) {
	c, err := catalog.Default().Get("wcag-1-1-1")
	if err != nil {
		t.Fatal(err)
	}
	out := plain(RenderCase(c, CaseOptions{Width: 80, ShowExplanation: true}))
	for _, want := range []string{"NON-TEXT CONTENT", "Inaccessible", "Accessible", "alt=\"XYZ company logo\"", "Criterion: 1.1.1"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderCase() missing %q", want)
		}
	}

	noExplain := plain(RenderCase(c, CaseOptions{Width: 80}))
	if strings.Contains(noExplain, "describes the image") {
		t.Error("explanation rendered although ShowExplanation is false")
	}
}

func TestRenderFocusStep(t *testing.T) {
	got := plain(RenderFocusStep(3, "Tab", true, "wrapped", "button#close"))
	for _, want := range []string{"3", "Shift+Tab", "wrapped", FocusMarker, "button#close"} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderFocusStep() = %q, missing %q", got, want)
		}
	}
	if got := plain(RenderFocusStep(1, "Tab", false, "none", "a")); !strings.Contains(got, "native") {
		t.Errorf("unhandled step should read native, got %q", got)
	}
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf).WithWidth(70)
	if p.Width() != 70 {
		t.Errorf("Width() = %d, want 70", p.Width())
	}
	p.PrintHeader("Focus trap", "wcagdemo trap", map[string]string{"Mode": "tab", "Boundary": "dialog"})
	p.PrintSuccess("Done", map[string]string{"Steps": "4"})
	p.PrintError("Load failed", errors.New("no such file"), []string{"Check the path"})

	out := plain(buf.String())
	for _, want := range []string{"FOCUS TRAP", "Boundary: dialog", "Done", "Error: no such file", "Check the path"} {
		if !strings.Contains(out, want) {
			t.Errorf("printer output missing %q", want)
		}
	}
	if strings.Index(out, "Boundary") > strings.Index(out, "Mode") {
		t.Error("header params should be sorted")
	}

	if NewPrinter(nil).WithWidth(10).Width() != MinTerminalWidth {
		t.Error("WithWidth should clamp to MinTerminalWidth")
	}
}
