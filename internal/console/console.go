// Package console prints batch progress for a human operator.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	stepColor    = color.New(color.FgBlue)
	successColor = color.New(color.FgGreen)
	failureColor = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
)

// Printer writes colored progress lines to w.
type Printer struct {
	w io.Writer
}

// New returns a Printer on w, or on stdout when w is nil.
func New(w io.Writer) *Printer {
	if w == nil {
		w = color.Output
	}
	return &Printer{w: w}
}

// Stdout returns a Printer on the process stdout.
func Stdout() *Printer {
	return New(os.Stdout)
}

func (p *Printer) Header(title string) {
	headerColor.Fprintf(p.w, "== %s ==\n", title)
}

// Step prints "[n/total] msg".
func (p *Printer) Step(n, total int, msg string) {
	stepColor.Fprintf(p.w, "[%d/%d] ", n, total)
	fmt.Fprintln(p.w, msg)
}

func (p *Printer) Info(msg string) {
	fmt.Fprintf(p.w, "  %s\n", msg)
}

func (p *Printer) Success(msg string) {
	successColor.Fprintf(p.w, "  ✓ %s\n", msg)
}

func (p *Printer) Warn(msg string) {
	warnColor.Fprintf(p.w, "  ! %s\n", msg)
}

func (p *Printer) Failure(msg string) {
	failureColor.Fprintf(p.w, "  ✗ %s\n", msg)
}
