package bookarmor

import (
	"fmt"
	"strings"
)

// CommandError wraps a failed facade operation with context.
type CommandError struct {
	message string
	cause   error
}

func (e *CommandError) Error() string {
	var msg strings.Builder
	fmt.Fprint(&msg, e.message)
	if e.cause != nil {
		fmt.Fprint(&msg, ": ", e.cause)
	}
	return msg.String()
}

func (e *CommandError) Unwrap() error {
	return e.cause
}

func newCommandError(message string, cause error) *CommandError {
	return &CommandError{message: message, cause: cause}
}

// LedgerError marks bookkeeping failures (ledger or catalog log unreadable
// or unwritable). These are always fatal to a run: continuing to armor
// books without a working ledger would lose track of what happened.
type LedgerError struct {
	cause error
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("ledger failure: %s", e.cause)
}

func (e *LedgerError) Unwrap() error {
	return e.cause
}

func newLedgerError(cause error) *LedgerError {
	return &LedgerError{cause: cause}
}

// ProtectionError marks a failed repair-set creation (generation or
// self-verification). Whether it aborts the run is a policy decision, see
// Config.OnError.
type ProtectionError struct {
	Book  string //collection-qualified book key
	cause error
}

func (e *ProtectionError) Error() string {
	return fmt.Sprintf("protection of %s failed: %s", e.Book, e.cause)
}

func (e *ProtectionError) Unwrap() error {
	return e.cause
}

func newProtectionError(book string, cause error) *ProtectionError {
	return &ProtectionError{Book: book, cause: cause}
}
