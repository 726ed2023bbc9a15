// Package console prints colored operator messages.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/shiena/ansicolor"
)

const (
	red   = "\x1b[31m"
	cyan  = "\x1b[36m"
	amber = "\x1b[33m"
	reset = "\x1b[0m"
)

// Console writes one colored line per message
type Console struct {
	w     io.Writer
	color bool
}

// New wraps w so ANSI colors also render on Windows consoles.
// Colors are only emitted when w is a terminal.
func New(w io.Writer) *Console {
	if !isTerminal(w) {
		return &Console{w: w}
	}
	return &Console{w: ansicolor.NewAnsiColorWriter(w), color: true}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Info prints a success or progress message
func (c *Console) Info(format string, a ...interface{}) {
	c.line(cyan, format, a...)
}

// Warn prints a message about a run that ended without output
func (c *Console) Warn(format string, a ...interface{}) {
	c.line(amber, format, a...)
}

// Alert prints a failure
func (c *Console) Alert(format string, a ...interface{}) {
	c.line(red, format, a...)
}

func (c *Console) line(color, format string, a ...interface{}) {
	if !c.color {
		fmt.Fprintf(c.w, "%s\n", fmt.Sprintf(format, a...))
		return
	}
	fmt.Fprintf(c.w, "%s%v%s\n", color, fmt.Sprintf(format, a...), reset)
}
