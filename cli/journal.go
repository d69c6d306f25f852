package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"payproc/renderer"
)

type journalCmd struct {
	permitNegative      bool
	disputeDepositsOnly bool
}

func (*journalCmd) Name() string     { return "journal" }
func (*journalCmd) Synopsis() string { return "list the transactions retained for dispute lookups" }
func (*journalCmd) Usage() string {
	return `payproc journal [-permit-negative] [-dispute-deposits-only] <file>

  Streams the transaction records of <file> through the ledger engine and
  lists the retained deposit/withdrawal transactions in insertion order,
  with their final dispute status.
`
}

func (p *journalCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.permitNegative, "permit-negative", false, "Let debits and holds drive the available balance negative.")
	f.BoolVar(&p.disputeDepositsOnly, "dispute-deposits-only", false, "Only deposits may be disputed.")
}

func (p *journalCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: specify exactly one input file.")
		return subcommands.ExitUsageError
	}

	ledger, err := runLedger(f.Arg(0), p.permitNegative, p.disputeDepositsOnly)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Journal(ledger.Store().All()))
	return subcommands.ExitSuccess
}
