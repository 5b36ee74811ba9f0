package focustrap

import (
	"go.uber.org/zap"
)

// Element is a node that may receive focus. Implementations must be
// comparable (pointer types in practice): the trap locates the active
// element in its focusable set with ==.
type Element interface {
	// Disabled reports a native disabled state or aria-disabled="true".
	Disabled() bool
}

// Document is the host environment the trap works against.
type Document interface {
	// ElementByID returns the element with the given id, or nil.
	ElementByID(id string) Element

	// FocusableDescendants returns the descendants of boundary that match
	// the focusable selector union, in document order.
	FocusableDescendants(boundary Element) []Element

	// ActiveElement returns the element that currently has input focus,
	// or nil.
	ActiveElement() Element

	// Focus moves input focus to el.
	Focus(el Element)
}

// Key names understood by the trap.
const (
	KeyTab       = "Tab"
	KeyArrowUp   = "ArrowUp"
	KeyArrowDown = "ArrowDown"
)

// KeyEvent is a keyboard event delivered to the trap's host.
type KeyEvent struct {
	Key   string
	Shift bool
}

// Action describes what the trap did with a key event.
type Action int

const (
	// ActionNone means the event passed through untouched.
	ActionNone Action = iota

	// ActionHealed means focus was outside the set and was pulled back to
	// the first element.
	ActionHealed

	// ActionWrapped means Tab or Shift+Tab wrapped around the boundary.
	ActionWrapped

	// ActionStepped means an arrow key moved focus to a neighbor.
	ActionStepped
)

// String returns a short name for the action.
func (a Action) String() string {
	switch a {
	case ActionHealed:
		return "healed"
	case ActionWrapped:
		return "wrapped"
	case ActionStepped:
		return "stepped"
	default:
		return "none"
	}
}

// Result reports the outcome of HandleKeyDown.
type Result struct {
	// Handled is true when focus was redirected and the event's default
	// action must be suppressed.
	Handled bool
	Action  Action
	// Target is the element that received focus, when Handled.
	Target Element
}

// State is the configuration state of a trap.
type State int

const (
	StateUnconfigured State = iota
	StateConfigured
)

// String returns the state name.
func (s State) String() string {
	if s == StateConfigured {
		return "configured"
	}
	return "unconfigured"
}

// Option configures a Trap.
type Option func(*Trap)

// WithScheduler sets the scheduler used for deferred rescans.
func WithScheduler(s Scheduler) Option {
	return func(t *Trap) {
		if s != nil {
			t.scheduler = s
		}
	}
}

// WithLogger sets a logger for debug traces of focus moves.
func WithLogger(l *zap.Logger) Option {
	return func(t *Trap) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMode sets the initial navigation mode.
func WithMode(m Mode) Option {
	return func(t *Trap) {
		t.mode = m
	}
}

// Trap confines keyboard focus to the focusable descendants of a boundary.
// A Trap is not safe for concurrent use; it expects to be driven from a
// single event loop.
type Trap struct {
	host      Element
	doc       Document
	scheduler Scheduler
	logger    *zap.Logger

	boundaryID string
	mode       Mode
	configured bool
	resolved   bool
	detached   bool

	focusable []Element
}

// New attaches a trap to host. host may be nil, in which case only a
// resolvable boundary id yields focusable elements.
func New(host Element, doc Document, opts ...Option) *Trap {
	t := &Trap{
		host:      host,
		doc:       doc,
		scheduler: Immediate,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ViewInit performs the initial scan once the host view has settled.
func (t *Trap) ViewInit() {
	t.rescan()
}

// Configure sets the boundary id and navigation mode and schedules a
// rescan. An empty boundaryID means the host element.
func (t *Trap) Configure(boundaryID string, mode Mode) {
	if t.detached {
		return
	}
	t.boundaryID = boundaryID
	t.mode = mode
	t.configured = true
	t.scheduler.Schedule(t.rescan)
}

// Detach tears the trap down. Subsequent events pass through and pending
// rescans become no-ops.
func (t *Trap) Detach() {
	t.detached = true
	t.configured = false
	t.resolved = false
	t.focusable = nil
}

// Mode returns the navigation mode.
func (t *Trap) Mode() Mode {
	return t.mode
}

// BoundaryID returns the configured boundary id.
func (t *Trap) BoundaryID() string {
	return t.boundaryID
}

// State reports whether the trap is configured with a resolvable boundary.
func (t *Trap) State() State {
	if t.configured && t.resolved {
		return StateConfigured
	}
	return StateUnconfigured
}

// Focusable returns a copy of the most recently scanned focusable set.
func (t *Trap) Focusable() []Element {
	out := make([]Element, len(t.focusable))
	copy(out, t.focusable)
	return out
}

// HandleKeyDown applies the trap to a key event.
func (t *Trap) HandleKeyDown(ev KeyEvent) Result {
	if t.detached || t.doc == nil {
		return Result{}
	}

	// Contents may have changed since the last event.
	t.rescan()

	count := len(t.focusable)
	if count == 0 || !t.intercepts(ev) {
		return Result{}
	}

	first := t.focusable[0]
	last := t.focusable[count-1]
	current := t.indexOf(t.doc.ActiveElement())

	if current < 0 {
		return t.moveTo(first, ActionHealed, ev)
	}

	switch ev.Key {
	case KeyTab:
		if ev.Shift && current == 0 {
			return t.moveTo(last, ActionWrapped, ev)
		}
		if !ev.Shift && current == count-1 {
			return t.moveTo(first, ActionWrapped, ev)
		}
		return Result{}
	case KeyArrowDown:
		return t.moveTo(t.focusable[(current+1)%count], ActionStepped, ev)
	case KeyArrowUp:
		return t.moveTo(t.focusable[(current-1+count)%count], ActionStepped, ev)
	}
	return Result{}
}

// intercepts reports whether ev is a key the trap acts on in its mode.
func (t *Trap) intercepts(ev KeyEvent) bool {
	switch ev.Key {
	case KeyTab:
		return true
	case KeyArrowUp, KeyArrowDown:
		return t.mode == ModeTabAndArrowKeys
	default:
		return false
	}
}

func (t *Trap) moveTo(el Element, action Action, ev KeyEvent) Result {
	t.doc.Focus(el)
	t.logger.Debug("focus trap moved focus",
		zap.String("key", ev.Key),
		zap.Bool("shift", ev.Shift),
		zap.Stringer("action", action),
		zap.Int("focusable", len(t.focusable)),
	)
	return Result{Handled: true, Action: action, Target: el}
}

func (t *Trap) indexOf(el Element) int {
	if el == nil {
		return -1
	}
	for i, candidate := range t.focusable {
		if candidate == el {
			return i
		}
	}
	return -1
}

// boundary resolves the boundary element: the configured id first, then
// the host.
func (t *Trap) boundary() Element {
	if t.boundaryID != "" {
		if el := t.doc.ElementByID(t.boundaryID); el != nil {
			return el
		}
	}
	return t.host
}

func (t *Trap) rescan() {
	if t.detached || t.doc == nil {
		return
	}

	area := t.boundary()
	if area == nil {
		t.resolved = false
		t.focusable = nil
		return
	}
	t.resolved = true

	candidates := t.doc.FocusableDescendants(area)
	focusable := make([]Element, 0, len(candidates))
	for _, el := range candidates {
		if el == nil || el.Disabled() {
			continue
		}
		focusable = append(focusable, el)
	}
	t.focusable = focusable
}
