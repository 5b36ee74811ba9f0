package ui

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/lipgloss"
)

// codePalette maps token categories to styles.
var codePalette = struct {
	Default, Keyword, String, Number, Comment, Punctuation, Tag, Attribute, Error lipgloss.Style
}{
	Default:     lipgloss.NewStyle().Foreground(TextColor),
	Keyword:     lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true),
	String:      lipgloss.NewStyle().Foreground(SuccessColor),
	Number:      lipgloss.NewStyle().Foreground(WarningColor),
	Comment:     lipgloss.NewStyle().Foreground(MutedColor).Italic(true),
	Punctuation: lipgloss.NewStyle().Foreground(MutedColor),
	Tag:         lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFFF")),
	Attribute:   lipgloss.NewStyle().Foreground(lipgloss.Color("#AF87FF")),
	Error:       lipgloss.NewStyle().Foreground(ErrorColor).Bold(true),
}

// HighlightHTML highlights an HTML snippet for terminal display.
func HighlightHTML(code string) string {
	return Highlight(code, "html")
}

// Highlight tokenizes code with the named lexer and styles each token.
// Unknown languages are guessed from the content. On a lexer failure the
// code is returned unchanged.
func Highlight(code, language string) string {
	if code == "" {
		return ""
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iter, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var b strings.Builder
	for token := iter(); token != chroma.EOF; token = iter() {
		if token.Value == "" {
			continue
		}
		style := styleForToken(token.Type)
		// Styles pad multi-line input, so render line by line.
		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if part != "" {
				b.WriteString(style.Render(part))
			}
			if i < len(parts)-1 {
				b.WriteByte('\n')
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func styleForToken(ttype chroma.TokenType) lipgloss.Style {
	if ttype == chroma.Error {
		return codePalette.Error
	}
	switch {
	case ttype.InCategory(chroma.Comment):
		return codePalette.Comment
	case ttype.InCategory(chroma.Keyword):
		return codePalette.Keyword
	case ttype.InCategory(chroma.LiteralString):
		return codePalette.String
	case ttype.InCategory(chroma.LiteralNumber):
		return codePalette.Number
	case ttype.InCategory(chroma.Punctuation):
		return codePalette.Punctuation
	case ttype == chroma.NameTag:
		return codePalette.Tag
	case ttype == chroma.NameAttribute:
		return codePalette.Attribute
	}
	return codePalette.Default
}
