package main

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// styles renders command output. Without color every style is plain but
// still pads columns.
type styles struct {
	header  lipgloss.Style
	context lipgloss.Style
	changed lipgloss.Style
	unbound lipgloss.Style
	dim     lipgloss.Style
	warn    lipgloss.Style
	ok      lipgloss.Style
}

func newStyles(w io.Writer, mode string) styles {
	if !useColor(w, mode) {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain}
	}
	return styles{
		header:  lipgloss.NewStyle().Bold(true).Underline(true),
		context: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		changed: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		unbound: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		ok:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

// useColor decides on color: "always" and "never" are explicit, "auto"
// colors only a terminal and respects NO_COLOR.
func useColor(w io.Writer, mode string) bool {
	switch strings.ToLower(mode) {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var lipglossPlain = lipgloss.NewStyle()

// cell pads s to width using st.
func cell(st lipgloss.Style, width int, s string) string {
	return st.Width(width).Render(s)
}
