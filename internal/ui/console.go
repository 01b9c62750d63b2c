package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Console prints leveled status lines. Errors go to errOut, everything else
// to out. Colors are applied only when enabled.
type Console struct {
	out    io.Writer
	errOut io.Writer
	styles Styles
	color  bool
}

// NewConsole builds a Console using the named theme.
func NewConsole(out, errOut io.Writer, themeName string, color bool) *Console {
	if errOut == nil {
		errOut = out
	}
	return &Console{out: out, errOut: errOut, styles: GetTheme(themeName).Styles(), color: color}
}

// ColorEnabled reports whether f is a terminal that should receive colors.
func ColorEnabled(f *os.File) bool {
	if f == nil || !IsTerminal(f) {
		return false
	}
	return os.Getenv("NO_COLOR") == "" && strings.ToLower(os.Getenv("TERM")) != "dumb"
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Styles exposes the console styles so prompts can match them.
func (c *Console) Styles() Styles {
	return c.styles
}

// Title prints an accented heading.
func (c *Console) Title(text string) {
	fmt.Fprintln(c.out, c.render(c.styles.AccentText, text))
}

// Infof prints an informational line.
func (c *Console) Infof(format string, args ...any) {
	c.line(c.out, "info", c.styles.InfoText, format, args...)
}

// Successf prints a success line.
func (c *Console) Successf(format string, args ...any) {
	c.line(c.out, "done", c.styles.SuccessText, format, args...)
}

// Warnf prints a warning line.
func (c *Console) Warnf(format string, args ...any) {
	c.line(c.out, "warn", c.styles.WarningText, format, args...)
}

// Errorf prints an error line to the error writer.
func (c *Console) Errorf(format string, args ...any) {
	c.line(c.errOut, "error", c.styles.DangerText, format, args...)
}

// Plain prints text without a level badge.
func (c *Console) Plain(text string) {
	fmt.Fprintln(c.out, c.render(c.styles.MutedText, text))
}

func (c *Console) line(w io.Writer, level string, style lipgloss.Style, format string, args ...any) {
	badge := c.render(style, fmt.Sprintf("%-5s", level))
	fmt.Fprintf(w, "%s %s\n", badge, fmt.Sprintf(format, args...))
}

func (c *Console) render(style lipgloss.Style, text string) string {
	if !c.color {
		return text
	}
	return style.Render(text)
}
