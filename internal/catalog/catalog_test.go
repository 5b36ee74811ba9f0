package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/muurk/wcagdemo/internal/dom"
)

func TestPillarFromCriterion(t *testing.T) {
	tests := []struct {
		criterion string
		want      Pillar
	}{
		{"1.1.1", PillarPerceivable},
		{"2.4.7", PillarOperable},
		{"3.3.1", PillarUnderstandable},
		{"4.1.2", PillarRobust},
		{" 2.1.1 ", PillarOperable},
		{"9.9.9", PillarPerceivable},
		{"", PillarPerceivable},
	}
	for _, tt := range tests {
		if got := PillarFromCriterion(tt.criterion); got != tt.want {
			t.Errorf("PillarFromCriterion(%q) = %v, want %v", tt.criterion, got, tt.want)
		}
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if c.Len() == 0 {
		t.Fatal("Default() catalog is empty")
	}

	all := c.All()
	for i := 1; i < len(all); i++ {
		if CompareCriteria(all[i-1].Criterion, all[i].Criterion) > 0 {
			t.Errorf("cases out of order: %s before %s", all[i-1].Criterion, all[i].Criterion)
		}
	}

	counts := c.Counts()
	for _, p := range Pillars {
		if counts[p] == 0 {
			t.Errorf("no cases for pillar %s", p)
		}
	}

	// Every snippet must parse, since the playground and server load them.
	for _, wc := range all {
		for _, v := range []Variant{VariantInaccessible, VariantAccessible} {
			if _, err := dom.ParseString(wc.Example(v)); err != nil {
				t.Errorf("%s: %v", wc.TemplateKey(v), err)
			}
		}
	}
}

func TestCatalogLookup(t *testing.T) {
	c := Default()

	wc, err := c.Get("wcag-2-1-2")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if wc.Pillar != PillarOperable {
		t.Errorf("Pillar = %v, want operable", wc.Pillar)
	}
	if wc.InaccessibleKey() != "wcag-2-1-2/inaccessible" || wc.AccessibleKey() != "wcag-2-1-2/accessible" {
		t.Errorf("template keys = %q, %q", wc.InaccessibleKey(), wc.AccessibleKey())
	}

	if _, err := c.Get("nope"); !errors.Is(err, ErrCaseNotFound) {
		t.Errorf("Get(nope) error = %v, want ErrCaseNotFound", err)
	}

	byCriterion, err := c.Find("4.1.2")
	if err != nil || byCriterion.ID != "wcag-4-1-2" {
		t.Errorf("Find(4.1.2) = %v, %v", byCriterion, err)
	}

	for _, wc := range c.ByPillar(PillarRobust) {
		if !strings.HasPrefix(wc.Criterion, "4.") {
			t.Errorf("ByPillar(robust) returned %s", wc.Criterion)
		}
	}
	if len(c.ByPillar("")) != c.Len() {
		t.Error("ByPillar(\"\") should return every case")
	}
}

func TestSearch(t *testing.T) {
	c := Default()
	results := c.Search("keyboard trap")
	if len(results) == 0 {
		t.Fatal("Search(keyboard trap) returned nothing")
	}
	found := false
	for _, wc := range results {
		if wc.ID == "wcag-2-1-2" {
			found = true
		}
	}
	if !found {
		t.Error("Search(keyboard trap) did not return wcag-2-1-2")
	}
	if got := c.Search("zzzzqqq"); len(got) != 0 {
		t.Errorf("Search(zzzzqqq) = %d results, want 0", len(got))
	}
	if got := len(c.Search("  ")); got != c.Len() {
		t.Errorf("empty search returned %d cases, want %d", got, c.Len())
	}
}

func TestCompareCriteria(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.4.4", "1.4.10", -1},
		{"1.4.10", "1.4.4", 1},
		{"2.1.1", "2.1.1", 0},
		{"3.1", "3.1.1", -1},
	}
	for _, tt := range tests {
		got := CompareCriteria(tt.a, tt.b)
		if (got < 0 && tt.want >= 0) || (got > 0 && tt.want <= 0) || (got == 0 && tt.want != 0) {
			t.Errorf("CompareCriteria(%s, %s) = %d, want sign %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad version", "version: 2\ncases: []\n"},
		{"bad criterion", "version: 1\ncases:\n  - {id: a, criterion: '1.1', name: A, inaccessible: x, accessible: y}\n"},
		{"missing example", "version: 1\ncases:\n  - {id: a, criterion: 1.1.1, name: A, inaccessible: x}\n"},
		{"duplicate id", "version: 1\ncases:\n" +
			"  - {id: a, criterion: 1.1.1, name: A, inaccessible: x, accessible: y}\n" +
			"  - {id: a, criterion: 1.1.2, name: B, inaccessible: x, accessible: y}\n"},
		{"not yaml", "version: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("Parse() should fail")
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry[string]()
	r.Register("", "ignored")
	if len(r.Keys()) != 0 {
		t.Fatal("empty key should be ignored")
	}

	r.Register("wcag-2-1-2/accessible", "v1")
	if !r.Has("wcag-2-1-2/accessible") {
		t.Fatal("Has() = false after Register")
	}

	// A newer owner replaces the entry; the old owner's cleanup must not
	// remove it.
	r.Register("wcag-2-1-2/accessible", "v2")
	r.Unregister("wcag-2-1-2/accessible", "v1")
	if v, ok := r.Get("wcag-2-1-2/accessible"); !ok || v != "v2" {
		t.Errorf("Get() = %q, %v, want v2", v, ok)
	}

	r.Unregister("wcag-2-1-2/accessible", "v2")
	if r.Has("wcag-2-1-2/accessible") {
		t.Error("Has() = true after owner Unregister")
	}
	if _, ok := r.Get(""); ok {
		t.Error("Get(\"\") should miss")
	}
}

func TestToggles(t *testing.T) {
	tg := NewToggles("b", "", "a")
	if !tg.IsOpen("a") || !tg.IsOpen("b") {
		t.Fatal("restored ids should be open")
	}
	if tg.Toggle("a") {
		t.Error("Toggle(a) should close an open id")
	}
	if !tg.Toggle("c") {
		t.Error("Toggle(c) should open a closed id")
	}
	tg.Close("b")
	tg.Open("d")
	if got := strings.Join(tg.IDs(), ","); got != "c,d" {
		t.Errorf("IDs() = %s, want c,d", got)
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cases.yaml")
	first := "version: 1\ncases:\n  - {id: a, criterion: 1.1.1, name: A, inaccessible: x, accessible: y}\n"
	if err := os.WriteFile(path, []byte(first), 0o600); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Catalog, 4)
	w, err := Watch(path, func(c *Catalog, err error) {
		if err == nil {
			reloaded <- c
		}
	}, nil)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Close()

	second := first + "  - {id: b, criterion: 2.1.1, name: B, inaccessible: x, accessible: y}\n"
	if err := os.WriteFile(path, []byte(second), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-reloaded:
		if c.Len() != 2 {
			t.Errorf("reloaded catalog has %d cases, want 2", c.Len())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
