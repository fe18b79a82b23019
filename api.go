package bookarmor

import "context"

// BookArmor lets you interface with an ebook library whose handle was
// retrieved using Open.
type BookArmor interface {

	// ArmorAll walks every collection and runs the catalog-or-verify
	// protocol on each book: unknown books are hashed, appended to the
	// checksum ledger and the catalog log and handed to the repair store
	// for protection; known books are re-verified against their recorded
	// checksum. After the full walk the complete ledger is scanned once
	// for duplicate content, reported as a final summary.
	// Cancellation is honored between books, never mid-book.
	ArmorAll(ctx context.Context) (Report, error)

	// VerifyAll is a read-only pass: it re-verifies every cataloged book
	// (checksum, and structure for zip containers) and reports books that
	// are not cataloged yet. Nothing is appended and nothing is protected.
	VerifyAll(ctx context.Context) (Report, error)

	// PrintDuplicates reports all checksums occurring more than once in
	// the ledger and returns the number of duplicate groups.
	PrintDuplicates() (groups int, err error)

	// PrintTree renders the collections and their books as a tree with a
	// per-book marker for cataloged/uncataloged state.
	PrintTree() error

	// PrintConfig outputs the effective configuration values.
	PrintConfig()

	// Close releases the ledger and catalog log file handles.
	Close() error
}

// Report summarizes one engine pass. Per-book outcomes are printed as they
// occur; the report carries what the caller needs for the exit status.
type Report struct {
	Cataloged  int //books newly hashed, recorded, and protected
	VerifiedOk int //known books whose content still matches the ledger

	Mismatches        []string //book keys whose recomputed checksum differs from the ledger
	ContainerFailures []string //book keys whose zip structure test failed
	ProtectFailures   []string //book keys whose repair set could not be created or verified
	Unreadable        []string //book keys whose content could not be read for hashing
	Uncataloged       []string //book keys missing from the ledger (verify-only passes)

	DuplicateGroups int //checksums occurring more than once in the complete ledger
}

// Clean reports whether the pass finished without any finding that warrants
// a non-zero exit status.
func (r Report) Clean() bool {
	return len(r.Mismatches) == 0 &&
		len(r.ContainerFailures) == 0 &&
		len(r.ProtectFailures) == 0 &&
		len(r.Unreadable) == 0 &&
		len(r.Uncataloged) == 0 &&
		r.DuplicateGroups == 0
}
