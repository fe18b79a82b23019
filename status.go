package bookarmor

import (
	out "github.com/n2code/bookarmor/internal/output"
	"github.com/n2code/bookarmor/internal/walk"
)

// PrintTree renders the collection root as a tree. Books missing from the
// ledger carry a "+" marker, books whose content checksum occurs more than
// once carry a "2"; cataloged singletons are unmarked.
func (b *bookArmor) PrintTree() error {
	tree := out.NewVisualFileTree(b.config.BookDir + " [collection root]")

	duplicated := make(map[string]bool)
	for _, group := range b.ledger.Duplicates() {
		duplicated[group.Checksum] = true
	}

	err := b.walker.Walk(func(book walk.Book) error {
		prefix := ""
		if sum, known := b.ledger.LookUp(book.Key()); !known {
			prefix = "[+] "
		} else if duplicated[sum] {
			prefix = "[2] "
		}
		tree.InsertPath(book.Key(), prefix)
		return nil
	})
	if err != nil {
		return newCommandError("tree rendering failed", err)
	}

	b.Print(out.Required, "%s", tree.Render())
	return nil
}

// PrintConfig outputs the effective configuration in the environment
// variable notation the values can be overridden with.
func (b *bookArmor) PrintConfig() {
	dim := func(text string) string {
		if b.printer.AllowsEscapes() {
			return out.TerminalFormatAsDim(text)
		}
		return text
	}
	b.Print(out.Required, "%s %s=%s\n", dim("book directory:  "), envBookDir, b.config.BookDir)
	b.Print(out.Required, "%s %s=%s\n", dim("checksum ledger: "), envIndex, b.config.LedgerPath)
	b.Print(out.Required, "%s %s=%s\n", dim("catalog log:     "), envCsv, b.config.CatalogPath)
	b.Print(out.Required, "%s %s=%s\n", dim("repair store:    "), envRepair, b.config.RepairDir)
	b.Print(out.Required, "%s %s=%d\n", dim("redundancy:      "), envRedundancy, b.config.Redundancy)
	b.Print(out.Required, "%s %s=%s\n", dim("hash algorithm:  "), envHash, b.config.Algorithm)
	b.Print(out.Required, "%s %s=%s\n", dim("error policy:    "), envOnError, b.config.OnError)
}
