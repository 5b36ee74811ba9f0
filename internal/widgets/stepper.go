package widgets

// Step is one stage of a Stepper.
type Step struct {
	ID    int
	Title string
	Icon  string
}

// StepStatus describes a step relative to the active one.
type StepStatus string

const (
	StepComplete StepStatus = "complete"
	StepCurrent  StepStatus = "current"
	StepUpcoming StepStatus = "upcoming"
)

// DefaultSteps is the booking flow shown in the demo.
var DefaultSteps = []Step{
	{ID: 1, Title: "Flights", Icon: "✈"},
	{ID: 2, Title: "Passengers", Icon: "👥"},
	{ID: 3, Title: "Extras", Icon: "➕"},
	{ID: 4, Title: "Seats", Icon: "💺"},
	{ID: 5, Title: "Payment", Icon: "💳"},
	{ID: 6, Title: "A very long confirmation step title that has to wrap", Icon: "✅"},
}

// Stepper is an ordered progress indicator.
type Stepper struct {
	steps  []Step
	active int
}

// NewStepper returns a stepper positioned on the first step. With no steps
// it uses DefaultSteps.
func NewStepper(steps ...Step) *Stepper {
	if len(steps) == 0 {
		steps = DefaultSteps
	}
	s := &Stepper{steps: make([]Step, len(steps))}
	copy(s.steps, steps)
	return s
}

// Steps returns a copy of the steps.
func (s *Stepper) Steps() []Step {
	out := make([]Step, len(s.steps))
	copy(out, s.steps)
	return out
}

// Active returns the index of the current step.
func (s *Stepper) Active() int { return s.active }

// Next advances one step and reports whether it moved.
func (s *Stepper) Next() bool { return s.GoTo(s.active + 1) }

// Previous goes back one step and reports whether it moved.
func (s *Stepper) Previous() bool { return s.GoTo(s.active - 1) }

// GoTo clamps i into range, makes it active and reports whether the active
// step changed.
func (s *Stepper) GoTo(i int) bool {
	if i < 0 {
		i = 0
	}
	if i > len(s.steps)-1 {
		i = len(s.steps) - 1
	}
	if i == s.active || i < 0 {
		return false
	}
	s.active = i
	return true
}

// Status returns the status of step i.
func (s *Stepper) Status(i int) StepStatus {
	switch {
	case i < s.active:
		return StepComplete
	case i == s.active:
		return StepCurrent
	default:
		return StepUpcoming
	}
}

// AriaCurrent returns "step" for the active step and "" otherwise.
func (s *Stepper) AriaCurrent(i int) string {
	if i == s.active {
		return "step"
	}
	return ""
}
