package widgets

// CheckboxType selects the input role.
type CheckboxType string

const (
	TypeCheckbox CheckboxType = "checkbox"
	TypeRadio    CheckboxType = "radio"
)

// Size is a checkbox size token.
type Size string

const (
	SizeSmall  Size = "sm"
	SizeMedium Size = "md"
	SizeLarge  Size = "lg"
)

// Variant is a checkbox style token.
type Variant string

const (
	VariantDefault Variant = "default"
	VariantGhost   Variant = "ghost"
	VariantAccent  Variant = "accent"
)

// Checkbox is a custom checkbox or radio that keeps native semantics.
type Checkbox struct {
	ID       string
	Name     string
	Label    string
	Type     CheckboxType
	Size     Size
	Variant  Variant
	Checked  bool
	ReadOnly bool
	Disabled bool
	Required bool

	// OnChange is called with the new value after a successful toggle.
	OnChange func(checked bool)

	focused bool
}

// NewCheckbox returns a medium, default-styled checkbox.
func NewCheckbox(id, label string) *Checkbox {
	return &Checkbox{
		ID:      id,
		Name:    id,
		Label:   label,
		Type:    TypeCheckbox,
		Size:    SizeMedium,
		Variant: VariantDefault,
	}
}

// Toggle flips the value and reports whether it changed. Read-only and
// disabled boxes refuse.
func (c *Checkbox) Toggle() bool {
	if c.ReadOnly || c.Disabled {
		return false
	}
	c.Checked = !c.Checked
	if c.OnChange != nil {
		c.OnChange(c.Checked)
	}
	return true
}

func (c *Checkbox) Focus()         { c.focused = true }
func (c *Checkbox) Blur()          { c.focused = false }
func (c *Checkbox) HasFocus() bool { return c.focused }

// AriaChecked returns the aria-checked value.
func (c *Checkbox) AriaChecked() string {
	if c.Checked {
		return "true"
	}
	return "false"
}
