package output

import (
	"fmt"
	"io"
	"os"
)

type Class int

const (
	Required Class = iota //explicitly requested information, shown even in quiet mode
	Error
	Normal
	Verbose
)

type Printer struct {
	classes    map[Class]bool
	terminal   io.Writer
	diagnosis  io.Writer
	useEscapes bool
}

func NewPrinter(include []Class, allowEscapes bool) (p Printer) {
	p = Printer{
		classes:    map[Class]bool{},
		terminal:   os.Stdout,
		diagnosis:  os.Stderr,
		useEscapes: allowEscapes,
	}
	for _, class := range include {
		p.classes[class] = true
	}
	return
}

func (p Printer) Out(class Class, format string, values ...interface{}) {
	if !p.classes[class] {
		return
	}
	if class == Error {
		message := fmt.Sprintf(format, values...)
		if p.useEscapes {
			message = TerminalFormatAsError(message)
		}
		fmt.Fprint(p.diagnosis, message)
		return
	}
	fmt.Fprintf(p.terminal, format, values...)
}

func (p Printer) AllowsEscapes() bool {
	return p.useEscapes
}
