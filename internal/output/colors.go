package output

import "fmt"

// SGR wrappers, applied only when the printer allows escape sequences.

// TerminalFormatAsDim renders de-emphasized labels, e.g. in the
// configuration printout.
func TerminalFormatAsDim(text string) string {
	return fmt.Sprintf("\x1B[2m%s\x1B[0m", text)
}

// TerminalFormatAsError renders findings in red (mismatches, damaged
// containers, failed protections).
func TerminalFormatAsError(text string) string {
	return fmt.Sprintf("\x1B[31m%s\x1B[0m", text)
}
