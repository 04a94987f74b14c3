package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// console prints human-facing status lines: green for success, blue for
// information and red for errors. Colour is used only on terminals.
type console struct {
	w       io.Writer
	color   bool
	success lipgloss.Style
	info    lipgloss.Style
	fail    lipgloss.Style
}

func newConsole(w io.Writer, color bool) *console {
	c := &console{w: w}
	if !color || !isTerminal(w) {
		return c
	}
	c.color = true
	r := lipgloss.NewRenderer(w)
	c.success = r.NewStyle().Foreground(lipgloss.Color("2"))
	c.info = r.NewStyle().Foreground(lipgloss.Color("4"))
	c.fail = r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	return c
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (c *console) Success(format string, args ...interface{}) {
	c.print(c.success, fmt.Sprintf(format, args...))
}

func (c *console) Info(format string, args ...interface{}) {
	c.print(c.info, fmt.Sprintf(format, args...))
}

func (c *console) Error(err error) {
	c.print(c.fail, "Error: "+err.Error())
}

func (c *console) print(style lipgloss.Style, msg string) {
	if c.color {
		msg = style.Render(msg)
	}
	_, _ = fmt.Fprintln(c.w, msg)
}
