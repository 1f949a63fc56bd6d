// Package termstyle holds the lipgloss styles the CLIs print status lines with.
package termstyle

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	Success = lipgloss.Color("#8BC34A")
	Failure = lipgloss.Color("#e53935")
	Warning = lipgloss.Color("#FFC107")
	Info    = lipgloss.Color("#2196F3")
	Muted   = lipgloss.Color("#8a94a6")
)

var (
	okStyle     = lipgloss.NewStyle().Foreground(Success).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(Failure).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(Warning)
	headerStyle = lipgloss.NewStyle().Foreground(Info).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(Muted)
)

// Header prints a bold section title.
func Header(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf(format, args...)))
}

// OK prints a success line with a check mark.
func OK(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, okStyle.Render("✓")+" "+fmt.Sprintf(format, args...))
}

// Fail prints a failure line with a cross.
func Fail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, failStyle.Render("✗")+" "+fmt.Sprintf(format, args...))
}

// Warn prints a highlighted warning line.
func Warn(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, warnStyle.Render("! "+fmt.Sprintf(format, args...)))
}

// Dim renders s in the muted colour.
func Dim(s string) string { return dimStyle.Render(s) }

// Status renders "passed" or "failed" in the matching colour.
func Status(ok bool) string {
	if ok {
		return okStyle.Render("passed")
	}
	return failStyle.Render("failed")
}
