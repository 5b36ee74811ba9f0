// Package ui provides terminal output components for the wcagdemo CLI.
//
// This package uses Lipgloss to render polished, non-interactive output:
// header banners, success and error boxes, WCAG case summaries and focus
// trap traces. The interactive demo lives in the tui package and reuses
// the palette defined here.
//
// # Components
//
//   - Printer: writes headers and result boxes to any io.Writer
//   - RenderCase / RenderCaseList: case details and grouped listings
//   - HighlightHTML: snippet syntax highlighting via chroma
//   - RenderMarkdown: explanations rendered with glamour
//
// # Logging Integration
//
// Logging is controlled via the WCAGDEMO_LOG_LEVEL environment variable
// and written to stderr, so curated output on stdout stays clean.
package ui
