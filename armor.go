package bookarmor

import (
	"context"
	"errors"
	"time"

	"github.com/n2code/bookarmor/internal/checksum"
	out "github.com/n2code/bookarmor/internal/output"
	"github.com/n2code/bookarmor/internal/walk"
)

// ArmorAll is the full pass: catalog-or-verify per book, duplicate scan at
// the end. Book order is traversal order and processing is strictly
// sequential. A ledger failure aborts immediately; a protection failure
// follows the configured error policy.
func (b *bookArmor) ArmorAll(ctx context.Context) (report Report, err error) {
	runDate := time.Now()

	b.Print(out.Verbose, "Armoring %s ...\n", b.config.BookDir)
	walkErr := b.walker.Walk(func(book walk.Book) error {
		if ctx.Err() != nil {
			return ctx.Err() //interruption takes effect at book boundaries only
		}
		if expected, known := b.ledger.LookUp(book.Key()); known {
			b.verifyBook(book, expected, &report)
			return nil
		}
		return b.catalogBook(ctx, runDate, book, &report)
	})
	if walkErr != nil {
		return report, b.describeWalkFailure(walkErr)
	}

	report.DuplicateGroups = b.printDuplicateGroups(out.Normal)
	b.printRunSummary(report)
	return report, nil
}

// catalogBook takes a first-seen book through the Cataloging state: hash,
// structure check for containers, ledger append before catalog append (the
// catalog must never reference a ledger entry that does not exist), then
// protection with self-verified recovery data.
func (b *bookArmor) catalogBook(ctx context.Context, runDate time.Time, book walk.Book, report *Report) error {
	b.Print(out.Verbose, "Cataloging (%s) ...\n", book.Key())

	sum, err := checksum.File(book.AbsPath, b.config.Algorithm)
	if err != nil {
		report.Unreadable = append(report.Unreadable, book.Key())
		b.Print(out.Error, "Cannot read %s: %s\n", book.Key(), err)
		return nil //nothing was recorded, the book stays uncataloged
	}

	if checksum.IsZipContainer(book.AbsPath) {
		if structureErr := checksum.CheckZipStructure(book.AbsPath); structureErr != nil {
			report.ContainerFailures = append(report.ContainerFailures, book.Key())
			b.Print(out.Error, "Container damaged %s: %s\n", book.Key(), structureErr)
			//cataloging continues: protecting the bytes as they are is still worthwhile
		}
	}

	if err := b.ledger.Append(book.Key(), sum); err != nil {
		return newLedgerError(err)
	}
	if err := b.catalog.Append(runDate, sum, book.Key()); err != nil {
		return newLedgerError(err)
	}

	if err := b.repairs.Protect(ctx, book, b.config.Redundancy); err != nil {
		report.ProtectFailures = append(report.ProtectFailures, book.Key())
		protectionErr := newProtectionError(book.Key(), err)
		if b.config.OnError == AbortOnError {
			return protectionErr
		}
		b.Print(out.Error, "%s\n", protectionErr)
		return nil
	}

	report.Cataloged++
	b.Print(out.Normal, "Cataloged %s (%s)\n", book.Key(), sum)
	return nil
}

// verifyBook re-checks a known book against the checksum recorded when it
// was first cataloged. The ledger entry is never rewritten: a mismatch is a
// finding to report, not a state to adopt.
func (b *bookArmor) verifyBook(book walk.Book, expected string, report *Report) {
	actual, err := checksum.File(book.AbsPath, b.config.Algorithm)
	if err != nil {
		report.Unreadable = append(report.Unreadable, book.Key())
		b.Print(out.Error, "Cannot read %s: %s\n", book.Key(), err)
		return
	}
	if actual != expected {
		report.Mismatches = append(report.Mismatches, book.Key())
		b.Print(out.Error, "CHECKSUM MISMATCH %s: expected %s, got %s\n", book.Key(), expected, actual)
		return
	}
	report.VerifiedOk++
	b.Print(out.Verbose, "Verified %s\n", book.Key())
}

// describeWalkFailure keeps the error taxonomy intact across the walk
// boundary: ledger and protection failures pass through, anything else is
// wrapped as a command failure.
func (b *bookArmor) describeWalkFailure(err error) error {
	var ledgerFailure *LedgerError
	var protectionFailure *ProtectionError
	if errors.As(err, &ledgerFailure) || errors.As(err, &protectionFailure) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return newCommandError("collection walk failed", err)
}

func (b *bookArmor) printRunSummary(report Report) {
	b.Print(out.Normal, "\n%d cataloged, %d verified", report.Cataloged, report.VerifiedOk)
	if !report.Clean() {
		b.Print(out.Normal, ", %d %s, %d container %s, %d protection %s, %d unreadable",
			len(report.Mismatches), out.Plural(report.Mismatches, "mismatch", "mismatches"),
			len(report.ContainerFailures), out.Plural(report.ContainerFailures, "failure", "failures"),
			len(report.ProtectFailures), out.Plural(report.ProtectFailures, "failure", "failures"),
			len(report.Unreadable))
	}
	b.Print(out.Normal, "\n")
}
