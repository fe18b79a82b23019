package bookarmor

import (
	out "github.com/n2code/bookarmor/internal/output"
)

// PrintDuplicates scans the complete ledger for checksums occurring more
// than once and prints one group per duplicated checksum. Duplicates are
// reported, never removed. Deduplication is the operator's call.
func (b *bookArmor) PrintDuplicates() (int, error) {
	return b.printDuplicateGroups(out.Required), nil
}

func (b *bookArmor) printDuplicateGroups(class out.Class) int {
	groups := b.ledger.Duplicates()
	if len(groups) == 0 {
		return 0
	}

	b.Print(class, "\n%d duplicate %s in the ledger:\n", len(groups), out.Plural(groups, "checksum", "checksums"))
	for _, group := range groups {
		b.Print(class, " %s\n", group.Checksum)
		for _, name := range group.Names {
			b.Print(class, "  = %s\n", name)
		}
	}
	return len(groups)
}
