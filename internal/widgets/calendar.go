package widgets

import "time"

// Day is one visible calendar cell.
type Day struct {
	Date     time.Time
	Selected bool
}

// WeekCalendar shows one Monday-to-Sunday week and a single selected day.
type WeekCalendar struct {
	now      func() time.Time
	start    time.Time
	selected time.Time
	hasSel   bool
}

// NewWeekCalendar shows the week containing today and selects its first
// day. A nil clock uses time.Now.
func NewWeekCalendar(clock func() time.Time) *WeekCalendar {
	if clock == nil {
		clock = time.Now
	}
	c := &WeekCalendar{now: clock}
	c.start = StartOfWeek(clock())
	c.Select(c.start)
	return c
}

// StartOfWeek returns midnight of the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	d := dateOf(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Days returns the seven visible days.
func (c *WeekCalendar) Days() []Day {
	days := make([]Day, 7)
	for i := range days {
		d := c.start.AddDate(0, 0, i)
		days[i] = Day{Date: d, Selected: c.hasSel && sameDay(d, c.selected)}
	}
	return days
}

// Start returns the Monday of the visible week.
func (c *WeekCalendar) Start() time.Time { return c.start }

// PreviousWeek moves the view back seven days. The selection is kept and
// shows again once its week is visible.
func (c *WeekCalendar) PreviousWeek() { c.start = c.start.AddDate(0, 0, -7) }

// NextWeek moves the view forward seven days.
func (c *WeekCalendar) NextWeek() { c.start = c.start.AddDate(0, 0, 7) }

// Select marks day as selected if it is visible and reports whether it
// was.
func (c *WeekCalendar) Select(day time.Time) bool {
	if !c.visible(day) {
		return false
	}
	c.selected = dateOf(day)
	c.hasSel = true
	return true
}

// Selected returns the selected day, if any.
func (c *WeekCalendar) Selected() (time.Time, bool) {
	return c.selected, c.hasSel
}

// IsToday reports whether day is the clock's current date.
func (c *WeekCalendar) IsToday(day time.Time) bool {
	return sameDay(day, c.now())
}

func (c *WeekCalendar) visible(day time.Time) bool {
	d := dateOf(day)
	return !d.Before(c.start) && d.Before(c.start.AddDate(0, 0, 7))
}
