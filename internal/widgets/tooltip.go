package widgets

// Position places a tooltip relative to its host.
type Position string

const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
	PositionLeft   Position = "left"
	PositionRight  Position = "right"
)

// TooltipGap separates a tooltip from its host.
const TooltipGap = 8.0

// Rect is a box in viewport coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Point is a document position.
type Point struct {
	X, Y float64
}

// Tooltip shows help text on hover or, when Clickable, on click and
// keyboard activation.
type Tooltip struct {
	Text      string
	Position  Position
	Clickable bool

	visible bool
}

// NewTooltip returns a top-positioned hover tooltip.
func NewTooltip(text string) *Tooltip {
	return &Tooltip{Text: text, Position: PositionTop}
}

// Visible reports whether the tooltip is shown.
func (t *Tooltip) Visible() bool { return t.visible }

// MouseEnter shows a hover tooltip with text.
func (t *Tooltip) MouseEnter() {
	if !t.Clickable && t.Text != "" {
		t.visible = true
	}
}

// MouseLeave hides a hover tooltip.
func (t *Tooltip) MouseLeave() {
	if !t.Clickable {
		t.visible = false
	}
}

// Click toggles a clickable tooltip and reports whether it handled the
// click. A handled click must not reach the enclosing card.
func (t *Tooltip) Click() bool {
	if !t.Clickable {
		return false
	}
	t.visible = !t.visible
	return true
}

// KeyDown treats Enter and Space like a click on clickable tooltips.
func (t *Tooltip) KeyDown(key string) bool {
	if key != "Enter" && key != " " && key != "space" {
		return false
	}
	return t.Click()
}

// OutsideClick hides a visible clickable tooltip when a click lands
// outside both the host and the tooltip.
func (t *Tooltip) OutsideClick(insideHost, insideTip bool) {
	if t.Clickable && t.visible && !insideHost && !insideTip {
		t.visible = false
	}
}

// Role returns "dialog" for clickable tooltips.
func (t *Tooltip) Role() string {
	if t.Clickable {
		return "dialog"
	}
	return ""
}

// AriaLive returns "polite" for clickable tooltips.
func (t *Tooltip) AriaLive() string {
	if t.Clickable {
		return "polite"
	}
	return ""
}

// Place returns the document position of a tip box next to host, centred
// on the cross axis.
func (t *Tooltip) Place(host, tip Rect, scroll Point) Point {
	switch t.Position {
	case PositionBottom:
		return Point{
			X: host.X + scroll.X + (host.Width-tip.Width)/2,
			Y: host.Bottom() + scroll.Y + TooltipGap,
		}
	case PositionLeft:
		return Point{
			X: host.X + scroll.X - tip.Width - TooltipGap,
			Y: host.Y + scroll.Y + (host.Height-tip.Height)/2,
		}
	case PositionRight:
		return Point{
			X: host.Right() + scroll.X + TooltipGap,
			Y: host.Y + scroll.Y + (host.Height-tip.Height)/2,
		}
	default:
		return Point{
			X: host.X + scroll.X + (host.Width-tip.Width)/2,
			Y: host.Y + scroll.Y - tip.Height - TooltipGap,
		}
	}
}
