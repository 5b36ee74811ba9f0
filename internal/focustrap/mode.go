package focustrap

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned by ParseMode for unrecognized mode names.
var ErrUnknownMode = errors.New("unknown focus trap mode")

// Mode selects which keys the trap intercepts.
type Mode int

const (
	// ModeTab confines Tab and Shift+Tab cycling.
	ModeTab Mode = iota

	// ModeTabAndArrowKeys additionally maps ArrowUp/ArrowDown to
	// previous/next focusable element.
	ModeTabAndArrowKeys
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeTab:
		return "tab"
	case ModeTabAndArrowKeys:
		return "tab_and_arrow_keys"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses a mode name. Matching is case-insensitive and accepts
// "arrows" as shorthand for tab_and_arrow_keys.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tab":
		return ModeTab, nil
	case "tab_and_arrow_keys", "tab-and-arrow-keys", "arrows":
		return ModeTabAndArrowKeys, nil
	default:
		return ModeTab, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m != ModeTab && m != ModeTabAndArrowKeys {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeTabAndArrowKeys {
		return ModeTab
	}
	return ModeTabAndArrowKeys
}
