package bookarmor

import (
	"fmt"

	"github.com/n2code/bookarmor/internal/ledger"
	"github.com/n2code/bookarmor/internal/output"
	"github.com/n2code/bookarmor/internal/repair"
	"github.com/n2code/bookarmor/internal/walk"
)

type VerbosityLevel int

const (
	DefaultVerbosity VerbosityLevel = iota //normal level of information, all noteworthy facts without too much noise
	VerboseMode                            //exhaustive information about what is happening, repeating context
	QuietMode                              //only output errors and information that was explicitly requested (-> Print* functions)
)

// CreateConfig holds a set of common switches that concern all calls to the
// bookarmor API. The zero value is a sensible default.
type CreateConfig struct {
	Verbosity     VerbosityLevel
	FancyTerminal bool          //allow ANSI escape sequences in output
	RepairTool    repair.Runner //overrides the PAR2 toolchain, nil means the real par2 binary
}

type bookArmor struct {
	config  Config
	ledger  *ledger.Ledger
	catalog *ledger.Catalog
	repairs *repair.Store
	walker  walk.Walker
	printer output.Printer
}

// Open prepares an armor handle for the library described by the given
// configuration: the ledger is loaded, the catalog log is opened for
// appending, and the repair store is attached. The collection root itself
// is only touched once a walk starts.
func Open(config Config, create CreateConfig) (BookArmor, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("library configuration error: %w", err)
	}

	handle := &bookArmor{config: config, printer: makePrinter(create)}

	var err error
	handle.ledger, err = ledger.Open(config.LedgerPath)
	if err != nil {
		return nil, newLedgerError(err)
	}
	handle.catalog, err = ledger.OpenCatalog(config.CatalogPath)
	if err != nil {
		handle.ledger.Close()
		return nil, newLedgerError(err)
	}

	tool := create.RepairTool
	if tool == nil {
		tool = repair.Par2Runner{}
	}
	handle.repairs = repair.NewStore(mustAbsFilepath(config.RepairDir), tool)
	handle.walker = walk.NewWalker(mustAbsFilepath(config.BookDir), handle.repairs.DirName())
	return handle, nil
}

func (b *bookArmor) Close() error {
	ledgerErr := b.ledger.Close()
	catalogErr := b.catalog.Close()
	if ledgerErr != nil {
		return ledgerErr
	}
	return catalogErr
}

func (b *bookArmor) Print(class output.Class, format string, values ...interface{}) {
	b.printer.Out(class, format, values...)
}

func makePrinter(create CreateConfig) output.Printer {
	classes := []output.Class{output.Required, output.Error}
	switch create.Verbosity {
	case VerboseMode:
		classes = append(classes, output.Normal, output.Verbose)
	case DefaultVerbosity:
		classes = append(classes, output.Normal)
	}
	return output.NewPrinter(classes, create.FancyTerminal)
}
