// Package ui prints installer progress for the operator.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	failStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Reporter writes status lines. Warnings and failures go to Err.
type Reporter struct {
	Out io.Writer
	Err io.Writer
}

func New(out, errOut io.Writer) *Reporter {
	return &Reporter{Out: out, Err: errOut}
}

// Stdio reports on the process's stdout and stderr.
func Stdio() *Reporter {
	return New(os.Stdout, os.Stderr)
}

// Step announces step n of total.
func (r *Reporter) Step(n, total int, msg string) {
	fmt.Fprintf(r.Out, "\n%s %s\n", headerStyle.Render(fmt.Sprintf("[%d/%d]", n, total)), msg)
}

func (r *Reporter) Title(msg string) {
	fmt.Fprintf(r.Out, "\n%s\n", headerStyle.Render(msg))
}

func (r *Reporter) Success(format string, args ...any) {
	fmt.Fprintf(r.Out, "  %s %s\n", okStyle.Render("[+]"), fmt.Sprintf(format, args...))
}

func (r *Reporter) Info(format string, args ...any) {
	fmt.Fprintf(r.Out, "  %s %s\n", dimStyle.Render("[-]"), fmt.Sprintf(format, args...))
}

func (r *Reporter) Warn(format string, args ...any) {
	fmt.Fprintf(r.Err, "  %s %s\n", warnStyle.Render("[!]"), fmt.Sprintf(format, args...))
}

func (r *Reporter) Fail(format string, args ...any) {
	fmt.Fprintf(r.Err, "  %s %s\n", failStyle.Render("[x]"), fmt.Sprintf(format, args...))
}

// Row prints one summary line: a marker, a padded name and a note.
func (r *Reporter) Row(state, name, note string) {
	var marker string
	switch state {
	case "done":
		marker = okStyle.Render("[+]")
	case "warning":
		marker = warnStyle.Render("[!]")
	case "failed":
		marker = failStyle.Render("[x]")
	default:
		marker = dimStyle.Render("[-]")
	}
	fmt.Fprintf(r.Out, "  %s %-22s %s\n", marker, name, note)
}
