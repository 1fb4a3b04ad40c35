package ui

import (
	"fmt"
	"io"
	"os"
)

// Printer emits the uniformly formatted single-line status messages used for
// all operator feedback: a colored symbol followed by the message.
type Printer struct {
	Out io.Writer
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}
	return &Printer{Out: out}
}

// Success prints a ✓ line.
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintf(p.Out, "%s %s\n", SuccessStyle().Render(SymbolSuccess), fmt.Sprintf(format, args...))
}

// Error prints a ✗ line.
func (p *Printer) Error(format string, args ...interface{}) {
	fmt.Fprintf(p.Out, "%s %s\n", ErrorStyle().Render(SymbolFail), fmt.Sprintf(format, args...))
}

// Warning prints a ⚠ line.
func (p *Printer) Warning(format string, args ...interface{}) {
	fmt.Fprintf(p.Out, "%s %s\n", WarningStyle().Render(SymbolWarning), fmt.Sprintf(format, args...))
}

// Info prints a ◐ line.
func (p *Printer) Info(format string, args ...interface{}) {
	fmt.Fprintf(p.Out, "%s %s\n", InfoStyle().Render(SymbolProgress), fmt.Sprintf(format, args...))
}

// Plain prints an unstyled line through the same writer.
func (p *Printer) Plain(format string, args ...interface{}) {
	fmt.Fprintf(p.Out, format+"\n", args...)
}

// Default is the package-level printer writing to stdout.
var Default = NewPrinter(os.Stdout)

// PrintSuccess prints a ✓ line to stdout.
func PrintSuccess(format string, args ...interface{}) {
	Default.Success(format, args...)
}
