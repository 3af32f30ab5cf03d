// Package tui provides styled terminal output for ganttflow.
// Simple streaming output - no full-screen TUI, just clean styles.
package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"
)

// Colors (Swiss minimal)
var (
	accent  = lipgloss.Color("#FF0000")
	muted   = lipgloss.Color("#666666")
	success = lipgloss.Color("#00CC66")
	white   = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(white)
	AccentStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(muted)
	SuccessStyle = lipgloss.NewStyle().Foreground(success).Bold(true)
)

// Logger writes verbose diagnostics to stderr. The zero value is a
// silent logger; all methods are safe on a nil receiver so callers can
// pass the logger through unconditionally.
type Logger struct {
	Verbose bool
	Out     io.Writer
}

// NewLogger returns a stderr logger.
func NewLogger(verbose bool) *Logger {
	return &Logger{Verbose: verbose, Out: os.Stderr}
}

// Debugf prints a muted debug line when verbose mode is on.
func (l *Logger) Debugf(format string, args ...any) {
	if l == nil || !l.Verbose {
		return
	}
	fmt.Fprintln(l.out(), MutedStyle.Render("[debug] "+fmt.Sprintf(format, args...)))
}

// Warnf prints an accented warning line when verbose mode is on.
func (l *Logger) Warnf(format string, args ...any) {
	if l == nil || !l.Verbose {
		return
	}
	fmt.Fprintln(l.out(), AccentStyle.Render("[warn] ")+fmt.Sprintf(format, args...))
}

// Errorf prints an error line regardless of verbosity.
func (l *Logger) Errorf(format string, args ...any) {
	if l == nil {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
		return
	}
	fmt.Fprintln(l.out(), AccentStyle.Render("✗ ")+fmt.Sprintf(format, args...))
}

func (l *Logger) out() io.Writer {
	if l.Out != nil {
		return l.Out
	}
	return os.Stderr
}

// ProgressReader wraps r with a byte progress bar on stderr.
// Size may be -1 when unknown (renders a spinner).
func ProgressReader(r io.Reader, size int64, desc string) io.Reader {
	bar := progressbar.DefaultBytes(size, desc)
	return io.TeeReader(r, bar)
}
