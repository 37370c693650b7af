package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
)

type Printer struct {
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out: out,
	}
}

func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.out, a...)
}

func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// PrintField prints an aligned "key: value" line with the key in bold.
func (p *Printer) PrintField(key string, value any) {
	p.Printf("%s %v\n", p.style(bold, fmt.Sprintf("%-16s", key+":")), value)
}

// PrintMissing prints a field whose value could not be determined.
func (p *Printer) PrintMissing(key string) {
	p.PrintField(key, p.style(faint, "(unavailable)"))
}

// PrintSuccess prints a message highlighted in green.
func (p *Printer) PrintSuccess(msg string) {
	p.Println(p.style(green, msg))
}

// PrintError prints an error message
func (p *Printer) PrintError(err error) {
	p.Printf("❌ %s\n", err)
}

// style only colors output written to a terminal.
func (p *Printer) style(f func(a ...any) string, s string) string {
	if file, ok := p.out.(*os.File); ok && isatty.IsTerminal(file.Fd()) {
		return f(s)
	}
	return s
}
