// Package output provides CLI output formatting utilities
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Printer handles formatted output to the terminal
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// NewPrinter creates a printer on stdout/stderr
func NewPrinter(useColors bool) *Printer {
	return NewPrinterWithWriters(os.Stdout, os.Stderr, useColors)
}

// NewPrinterWithWriters creates a printer with custom writers
func NewPrinterWithWriters(out, errOut io.Writer, useColors bool) *Printer {
	return &Printer{
		out:       out,
		err:       errOut,
		useColors: useColors && ColorsAllowed(),
	}
}

// ColorsAllowed reports whether the environment permits colored output
func ColorsAllowed() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// Out returns the standard output writer
func (p *Printer) Out() io.Writer {
	return p.out
}

// Info prints an informational message
func (p *Printer) Info(format string, args ...any) {
	p.print(p.out, color.FgCyan, format, args...)
}

// Success prints a success message
func (p *Printer) Success(format string, args ...any) {
	p.print(p.out, color.FgGreen, format, args...)
}

// Warning prints a warning message
func (p *Printer) Warning(format string, args ...any) {
	p.print(p.err, color.FgYellow, format, args...)
}

func (p *Printer) print(w io.Writer, attr color.Attribute, format string, args ...any) {
	if p.useColors {
		color.New(attr).Fprintf(w, format+"\n", args...)
		return
	}
	fmt.Fprintf(w, format+"\n", args...)
}
