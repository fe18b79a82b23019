package bookarmor

import (
	"context"

	"github.com/n2code/bookarmor/internal/checksum"
	out "github.com/n2code/bookarmor/internal/output"
	"github.com/n2code/bookarmor/internal/walk"
)

// VerifyAll re-checks every cataloged book without touching the ledger, the
// catalog log, or the repair store. Compared to the verify half of
// ArmorAll it is thorough: zip containers get the structural test as well.
// Books that are not cataloged yet are reported instead of being added.
func (b *bookArmor) VerifyAll(ctx context.Context) (report Report, err error) {
	b.Print(out.Verbose, "Verifying %s ...\n", b.config.BookDir)

	walkErr := b.walker.Walk(func(book walk.Book) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		expected, known := b.ledger.LookUp(book.Key())
		if !known {
			report.Uncataloged = append(report.Uncataloged, book.Key())
			b.Print(out.Normal, "Not cataloged yet: %s\n", book.Key())
			return nil
		}

		b.verifyBook(book, expected, &report)

		if checksum.IsZipContainer(book.AbsPath) {
			if structureErr := checksum.CheckZipStructure(book.AbsPath); structureErr != nil {
				report.ContainerFailures = append(report.ContainerFailures, book.Key())
				b.Print(out.Error, "Container damaged %s: %s\n", book.Key(), structureErr)
			}
		}
		return nil
	})
	if walkErr != nil {
		return report, b.describeWalkFailure(walkErr)
	}

	report.DuplicateGroups = b.printDuplicateGroups(out.Normal)
	b.Print(out.Normal, "\n%d verified, %d not cataloged\n", report.VerifiedOk, len(report.Uncataloged))
	return report, nil
}
