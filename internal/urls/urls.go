package urls

import "strings"

// Reference material linked from the CLI and the demo.

// QuickRef is the W3C "How to Meet WCAG" quick reference.
const QuickRef = "https://www.w3.org/WAI/WCAG22/quickref/"

// Understanding is the index of the "Understanding WCAG 2.2" documents.
const Understanding = "https://www.w3.org/WAI/WCAG22/Understanding/"

// DialogPattern is the ARIA Authoring Practices modal dialog pattern,
// which describes the Tab wrapping a focus trap implements.
const DialogPattern = "https://www.w3.org/WAI/ARIA/apg/patterns/dialog-modal/"

// KeyboardInterface is the ARIA Authoring Practices guide to keyboard
// navigation inside composite widgets.
const KeyboardInterface = "https://www.w3.org/WAI/ARIA/apg/practices/keyboard-interface/"

// Criterion returns the quick reference link that expands the techniques
// of one success criterion, e.g. "2.1.2". An empty criterion returns
// QuickRef.
func Criterion(criterion string) string {
	num := strings.ReplaceAll(strings.TrimSpace(criterion), ".", "")
	if num == "" {
		return QuickRef
	}
	return QuickRef + "?showtechniques=" + num
}
