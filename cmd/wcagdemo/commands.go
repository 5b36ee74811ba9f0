package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/muurk/wcagdemo/internal/catalog"
	"github.com/muurk/wcagdemo/internal/config"
	"github.com/muurk/wcagdemo/internal/dom"
	"github.com/muurk/wcagdemo/internal/focustrap"
	"github.com/muurk/wcagdemo/internal/tui"
	"github.com/muurk/wcagdemo/internal/ui"
	"github.com/muurk/wcagdemo/internal/urls"
)

// Catalog command flags
var (
	pillarFilter    string
	searchQuery     string
	outputFormat    string
	showExplanation bool
	showVariant     string
)

// Trap command flags
var (
	trapCase     string
	trapBoundary string
	trapMode     string
	trapFocus    string
	trapKeys     string
)

func init() {
	rootCmd.AddCommand(casesCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(trapCmd)

	casesCmd.Flags().StringVar(&pillarFilter, "pillar", "", "Only list one principle (perceivable, operable, understandable, robust)")
	casesCmd.Flags().StringVarP(&searchQuery, "search", "s", "", "Fuzzy search criterion, name and description")
	casesCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, compact, json)")

	showCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, json)")
	showCmd.Flags().BoolVarP(&showExplanation, "explain", "e", false, "Include the explanation (default from config)")
	showCmd.Flags().StringVar(&showVariant, "variant", "", "Print only one example, highlighted (inaccessible, accessible)")

	trapCmd.Flags().StringVar(&trapCase, "case", "", "Use a case's accessible example as the dialog")
	trapCmd.Flags().StringVar(&trapBoundary, "boundary", "", "Id of the trap boundary (default: dialog for built-in documents, the whole document for files)")
	trapCmd.Flags().StringVar(&trapMode, "mode", "tab", "Trap mode (tab, tab_and_arrow_keys)")
	trapCmd.Flags().StringVar(&trapFocus, "focus", "", "Id of the element focused before the first key (default: first trapped element)")
	trapCmd.Flags().StringVarP(&trapKeys, "keys", "k", "tab,tab,tab,shift+tab", "Keys to press: tab, shift+tab, up, down, separated by commas or spaces")
}

var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "List WCAG cases",
	Long: `List the cases in the catalog, grouped by WCAG principle.

Cases come from the embedded catalog unless --cases or the config file
names a cases file.`,
	Example: `  # All cases
  wcagdemo cases

  # Operable cases only
  wcagdemo cases --pillar operable

  # Fuzzy search, best matches first
  wcagdemo cases --search "focus order"

  # JSON output for scripting
  wcagdemo cases --format json`,
	Args: cobra.NoArgs,
	RunE: runCases,
}

func runCases(cmd *cobra.Command, args []string) error {
	cat, _, err := loadCommandCatalog()
	if err != nil {
		return err
	}

	pillar := catalog.Pillar(strings.ToLower(pillarFilter))
	if pillar != "" && !pillar.Valid() {
		return fmt.Errorf("unknown pillar %q (want perceivable, operable, understandable or robust)", pillarFilter)
	}

	var cases []*catalog.Case
	if searchQuery != "" {
		for _, c := range cat.Search(searchQuery) {
			if pillar == "" || c.Pillar == pillar {
				cases = append(cases, c)
			}
		}
	} else {
		cases = cat.ByPillar(pillar)
	}

	out := cmd.OutOrStdout()
	switch outputFormat {
	case "json":
		return writeJSON(out, cases)
	case "compact":
		for _, c := range cases {
			fmt.Fprintf(out, "%s\t%s\t%s\n", c.ID, c.Criterion, c.Name)
		}
		return nil
	case "detailed":
		if len(cases) == 0 {
			fmt.Fprintln(out, "No cases match.")
			return nil
		}
		fmt.Fprint(out, ui.RenderCaseList(cases))
		fmt.Fprintf(out, "\n%d case(s). Use 'wcagdemo show <id>' for details.\n", len(cases))
		return nil
	default:
		return fmt.Errorf("unknown format %q", outputFormat)
	}
}

var showCmd = &cobra.Command{
	Use:   "show <id|criterion>",
	Short: "Show one case with both examples",
	Long: `Display a case: its description, the inaccessible and the accessible
example with syntax highlighting and, optionally, the explanation.`,
	Example: `  # By id or criterion number
  wcagdemo show wcag-2-1-2
  wcagdemo show 2.4.7 --explain

  # Only the accessible markup
  wcagdemo show 2.1.2 --variant accessible`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	cat, cfg, err := loadCommandCatalog()
	if err != nil {
		return err
	}
	c, err := cat.Find(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if showVariant != "" {
		v := catalog.Variant(showVariant)
		if v != catalog.VariantAccessible && v != catalog.VariantInaccessible {
			return fmt.Errorf("unknown variant %q", showVariant)
		}
		fmt.Fprintln(out, ui.HighlightHTML(strings.TrimSpace(c.Example(v))))
		return nil
	}

	switch outputFormat {
	case "json":
		return writeJSON(out, c)
	case "detailed":
		printer := ui.NewPrinter(out)
		printer.Println(ui.RenderCase(c, ui.CaseOptions{
			Width:           printer.Width(),
			ShowExplanation: showExplanation || cfg.Preferences.ShowExplanations,
			StyledMarkdown:  term.IsTerminal(int(os.Stdout.Fd())),
			SideBySideMin:   100,
		}))
		printer.Newline()
		printer.Println("Reference: " + urls.Criterion(c.Criterion))
		return nil
	default:
		return fmt.Errorf("unknown format %q", outputFormat)
	}
}

var trapCmd = &cobra.Command{
	Use:   "trap [file|-]",
	Short: "Run a focus trap over a document and trace each key",
	Long: `Attach a focus trap to a document, press a sequence of keys and print
where focus lands after each one.

The document is an HTML file, standard input ("-"), a case's accessible
example (--case) or, by default, a built-in dialog. Case and built-in
documents place the dialog between two controls outside the trap.

Tab and Shift+Tab that the trap does not redirect move focus along the
document's tab order, as a browser would.`,
	Example: `  # Built-in dialog, default keys
  wcagdemo trap

  # A case's dialog in arrow key mode
  wcagdemo trap --case 2.1.2 --mode arrows --keys "down down up"

  # Your own markup
  wcagdemo trap modal.html --boundary modal --focus close --keys tab,shift+tab`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTrap,
}

func runTrap(cmd *cobra.Command, args []string) error {
	mode, err := focustrap.ParseMode(trapMode)
	if err != nil {
		return err
	}
	keys, err := parseKeys(trapKeys)
	if err != nil {
		return err
	}

	var markup string
	boundary := trapBoundary
	switch {
	case len(args) == 1 && args[0] == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		markup = string(data)
	case len(args) == 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read document: %w", err)
		}
		markup = string(data)
	default:
		var c *catalog.Case
		if trapCase != "" {
			cat, _, err := loadCommandCatalog()
			if err != nil {
				return err
			}
			if c, err = cat.Find(trapCase); err != nil {
				return err
			}
		}
		markup = tui.PlaygroundHTML(c)
		if boundary == "" {
			boundary = tui.PlaygroundBoundary
		}
	}

	return traceTrap(cmd.OutOrStdout(), markup, boundary, mode, trapFocus, keys)
}

// traceTrap runs keys through a trap over markup and writes one line per
// key.
func traceTrap(w io.Writer, markup, boundary string, mode focustrap.Mode, focus string, keys []focustrap.KeyEvent) error {
	doc, err := dom.ParseString(markup)
	if err != nil {
		return err
	}
	if boundary != "" && doc.ElementByID(boundary) == nil {
		return fmt.Errorf("no element with id %q to use as the boundary", boundary)
	}

	trap := focustrap.New(dom.TrapHost(doc.Root()), doc.TrapDocument())
	trap.Configure(boundary, mode)
	defer trap.Detach()

	trapped := trap.Focusable()
	if len(trapped) == 0 {
		return fmt.Errorf("the boundary contains no focusable elements")
	}

	switch {
	case focus != "":
		el := doc.ElementByID(focus)
		if el == nil {
			return fmt.Errorf("no element with id %q to focus", focus)
		}
		doc.Focus(el)
	default:
		doc.Focus(dom.FromTrap(trapped[0]))
	}

	scope := "document"
	if boundary != "" {
		scope = "#" + boundary
	}
	fmt.Fprintf(w, "Trap over %s, mode %s, %d focusable:\n", scope, mode, len(trapped))
	for _, el := range trapped {
		fmt.Fprintf(w, "       %s\n", dom.FromTrap(el))
	}
	fmt.Fprintf(w, "\n  0  %-11s %-8s %s %s\n", "start", "", ui.FocusMarker, doc.ActiveElement())

	for i, ev := range keys {
		res := trap.HandleKeyDown(ev)
		if !res.Handled && ev.Key == focustrap.KeyTab {
			doc.Focus(doc.NextTabStop(ev.Shift))
		}
		fmt.Fprintln(w, ui.RenderFocusStep(i+1, ev.Key, ev.Shift, res.Action.String(), doc.ActiveElement().String()))
	}
	fmt.Fprintf(w, "\nPattern: %s\n", urls.DialogPattern)
	return nil
}

// parseKeys parses a key script such as "tab, shift+tab down".
func parseKeys(script string) ([]focustrap.KeyEvent, error) {
	fields := strings.FieldsFunc(script, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	keys := make([]focustrap.KeyEvent, 0, len(fields))
	for _, f := range fields {
		switch strings.ToLower(f) {
		case "tab":
			keys = append(keys, focustrap.KeyEvent{Key: focustrap.KeyTab})
		case "shift+tab", "s-tab", "backtab":
			keys = append(keys, focustrap.KeyEvent{Key: focustrap.KeyTab, Shift: true})
		case "up", "arrowup":
			keys = append(keys, focustrap.KeyEvent{Key: focustrap.KeyArrowUp})
		case "down", "arrowdown":
			keys = append(keys, focustrap.KeyEvent{Key: focustrap.KeyArrowDown})
		default:
			return nil, fmt.Errorf("unknown key %q (want tab, shift+tab, up or down)", f)
		}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("no keys to press")
	}
	return keys, nil
}

// loadCommandCatalog loads the config and the catalog it selects.
func loadCommandCatalog() (*catalog.Catalog, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cat, cfg, nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
