package catalog

import (
	"strings"
)

// Pillar is one of the four WCAG principles.
type Pillar string

const (
	PillarPerceivable    Pillar = "perceivable"
	PillarOperable       Pillar = "operable"
	PillarUnderstandable Pillar = "understandable"
	PillarRobust         Pillar = "robust"
)

// Pillars lists the principles in WCAG order.
var Pillars = []Pillar{PillarPerceivable, PillarOperable, PillarUnderstandable, PillarRobust}

// PillarFromCriterion derives the principle from the first component of a
// criterion number ("2.4.1" is operable). Unknown prefixes map to
// perceivable.
func PillarFromCriterion(criterion string) Pillar {
	prefix, _, _ := strings.Cut(strings.TrimSpace(criterion), ".")
	switch prefix {
	case "1":
		return PillarPerceivable
	case "2":
		return PillarOperable
	case "3":
		return PillarUnderstandable
	case "4":
		return PillarRobust
	default:
		return PillarPerceivable
	}
}

// Title returns the capitalized pillar name.
func (p Pillar) Title() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

// Valid reports whether p is one of the four principles.
func (p Pillar) Valid() bool {
	for _, known := range Pillars {
		if p == known {
			return true
		}
	}
	return false
}

// Variant selects one side of a case.
type Variant string

const (
	VariantInaccessible Variant = "inaccessible"
	VariantAccessible   Variant = "accessible"
)

// Case is one WCAG success criterion with a failing and a passing example.
type Case struct {
	ID           string `yaml:"id" json:"id"`
	Criterion    string `yaml:"criterion" json:"criterion"`
	Level        string `yaml:"level,omitempty" json:"level,omitempty"`
	Name         string `yaml:"name" json:"name"`
	Description  string `yaml:"description" json:"description"`
	Inaccessible string `yaml:"inaccessible" json:"inaccessible"`
	Accessible   string `yaml:"accessible" json:"accessible"`
	Explanation  string `yaml:"explanation" json:"explanation"`

	// Demo names an interactive demo registered for this case, if any.
	Demo string `yaml:"demo,omitempty" json:"demo,omitempty"`

	Pillar Pillar `yaml:"-" json:"pillar"`
}

// Example returns the snippet for a variant.
func (c *Case) Example(v Variant) string {
	if v == VariantAccessible {
		return c.Accessible
	}
	return c.Inaccessible
}

// TemplateKey returns the registry key for a variant, "<id>/<variant>".
func (c *Case) TemplateKey(v Variant) string {
	return c.ID + "/" + string(v)
}

// InaccessibleKey returns the registry key of the failing example.
func (c *Case) InaccessibleKey() string {
	return c.TemplateKey(VariantInaccessible)
}

// AccessibleKey returns the registry key of the passing example.
func (c *Case) AccessibleKey() string {
	return c.TemplateKey(VariantAccessible)
}

// FilterValue implements list.Item from bubbles so cases can be listed
// directly.
func (c *Case) FilterValue() string {
	return c.Criterion + " " + c.Name
}
