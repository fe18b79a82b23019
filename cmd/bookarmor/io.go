package main

import (
	"os"

	"golang.org/x/term"
)

// stdoutIsTerminal decides whether ANSI escape sequences are acceptable in
// the output. Piped or redirected output stays plain.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
