package focustrap

import (
	"errors"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeTab, false},
		{"tab", ModeTab, false},
		{"TAB", ModeTab, false},
		{"tab_and_arrow_keys", ModeTabAndArrowKeys, false},
		{"tab-and-arrow-keys", ModeTabAndArrowKeys, false},
		{"arrows", ModeTabAndArrowKeys, false},
		{"spiral", ModeTab, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnknownMode) {
				t.Errorf("ParseMode(%q) error = %v, want ErrUnknownMode", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestModeText(t *testing.T) {
	var m Mode
	if err := m.UnmarshalText([]byte("tab_and_arrow_keys")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if m != ModeTabAndArrowKeys {
		t.Errorf("UnmarshalText() = %v", m)
	}
	text, err := m.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(text) != "tab_and_arrow_keys" {
		t.Errorf("MarshalText() = %q", text)
	}
	if _, err := Mode(7).MarshalText(); err == nil {
		t.Error("MarshalText() on invalid mode should fail")
	}
	if ModeTab.Toggle() != ModeTabAndArrowKeys || ModeTabAndArrowKeys.Toggle() != ModeTab {
		t.Error("Toggle() does not flip modes")
	}
}

func TestQueueFlushOrder(t *testing.T) {
	q := &Queue{}
	var got []int
	q.Schedule(func() { got = append(got, 1) })
	q.Schedule(nil)
	q.Schedule(func() {
		got = append(got, 2)
		q.Schedule(func() { got = append(got, 3) })
	})

	if n := q.Flush(); n != 2 {
		t.Errorf("Flush() = %d, want 2", n)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("after first flush got = %v", got)
	}
	if q.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", q.Pending())
	}
	q.Flush()
	if len(got) != 3 {
		t.Errorf("after second flush got = %v", got)
	}
}
