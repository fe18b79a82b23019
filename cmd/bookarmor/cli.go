package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/n2code/bookarmor"
)

const version = "1.0.0"

// exit codes, worst finding wins (protection > mismatch > duplicates)
const (
	exitOk             = 0
	exitFailure        = 1 //fatal error: ledger unusable, walk aborted, bad setup
	exitUsage          = 2
	exitMismatch       = 3 //at least one cataloged book no longer matches its checksum
	exitProtectFailed  = 4 //at least one repair set could not be created or verified
	exitDuplicatesOnly = 5 //informational: duplicate content found, everything else clean
)

type CliRequest struct {
	verbose    bool
	quiet      bool
	configFile string
	action     string
	actionArgs []string
}

func parseFlags(args []string, errOut io.Writer) (request *CliRequest, exitCode int) {
	flags := flag.NewFlagSet("", flag.ExitOnError)
	flags.Usage = func() {
		flags.Output().Write([]byte(`
Usage:
   bookarmor [-v|-q] [-config FILE] [-h] <ACTION>

 ACTIONs:  armor  verify  dupes  tree  config  version

`))
		flags.PrintDefaults()
		flags.Output().Write([]byte(`
 armor    Catalog new books, verify known ones, protect and report.
 verify   Re-check all cataloged books without changing anything.
 dupes    Report books sharing identical content checksums.
 tree     Show collections and books with their catalog state.
 config   Show the effective configuration values.
 version  Show the bookarmor version.

 Configuration is resolved from built-in defaults, the INI file
 (-config FILE or its default location), and the environment
 variables BOOK_DIR, INDEX, CSV, REPAIR, REDUNDANCY, HASH, ON_ERROR.

`))
	}

	request = &CliRequest{}
	var generalHelpRequested bool
	flags.BoolVar(&request.verbose, "v", false, "Output more details on what is done (verbose mode)")
	flags.BoolVar(&request.quiet, "q", false, "Output as little as possible, i.e. only requested information (quiet mode)")
	flags.BoolVar(&generalHelpRequested, "h", false, "Display general usage help")
	flags.StringVar(&request.configFile, "config", "", "Path of the INI configuration file to use instead of the default location")

	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(errOut, "%s\nUsage help: bookarmor -h\n", err)
			exitCode = exitUsage
			request = nil
		}
	}()

	flags.Parse(args) //exits on error

	if generalHelpRequested {
		flags.Usage()
		exitCode = exitOk
		request = nil
		return
	}
	if flags.NArg() == 0 {
		err = errors.New("No action given!")
		return
	}
	if request.verbose && request.quiet {
		err = errors.New("Quiet mode and verbose mode are mutually exclusive!")
		return
	}

	request.action = flags.Arg(0)
	request.actionArgs = flags.Args()[1:]

	switch request.action {
	case "armor", "verify", "dupes", "tree", "config", "version":
		if len(request.actionArgs) > 0 {
			err = fmt.Errorf("action %s accepts no arguments", request.action)
		}
	default:
		err = fmt.Errorf(`unknown action "%s"`, request.action)
	}
	return
}

func (rq *CliRequest) execute(ctx context.Context) int {
	if rq.action == "version" {
		fmt.Fprintf(os.Stdout, "bookarmor %s\n", version)
		return exitOk
	}

	config, err := bookarmor.LoadConfig(rq.configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}

	create := bookarmor.CreateConfig{FancyTerminal: stdoutIsTerminal()}
	if rq.verbose {
		create.Verbosity = bookarmor.VerboseMode
	}
	if rq.quiet {
		create.Verbosity = bookarmor.QuietMode
	}

	armor, err := bookarmor.Open(config, create)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}
	defer armor.Close()

	switch rq.action {
	case "armor":
		report, err := armor.ArmorAll(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return runFailureCode(err)
		}
		return reportCode(report)
	case "verify":
		report, err := armor.VerifyAll(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return runFailureCode(err)
		}
		return reportCode(report)
	case "dupes":
		groups, err := armor.PrintDuplicates()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitFailure
		}
		if groups > 0 {
			return exitDuplicatesOnly
		}
		return exitOk
	case "tree":
		if err := armor.PrintTree(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitFailure
		}
		return exitOk
	case "config":
		armor.PrintConfig()
		return exitOk
	}
	panic("bad action")
}

// reportCode maps a completed pass to its exit status: every distinct
// finding gets a distinct signal and the most severe one wins.
func reportCode(report bookarmor.Report) int {
	switch {
	case len(report.ProtectFailures) > 0 || len(report.Unreadable) > 0:
		return exitProtectFailed
	case len(report.Mismatches) > 0 || len(report.ContainerFailures) > 0 || len(report.Uncataloged) > 0:
		return exitMismatch
	case report.DuplicateGroups > 0:
		return exitDuplicatesOnly
	}
	return exitOk
}

func runFailureCode(err error) int {
	var protectionFailure *bookarmor.ProtectionError
	if errors.As(err, &protectionFailure) {
		return exitProtectFailed
	}
	return exitFailure
}

func main() {
	rq, rc := parseFlags(os.Args[1:], os.Stderr)
	if rc != exitOk || rq == nil {
		os.Exit(rc)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(rq.execute(ctx))
}
