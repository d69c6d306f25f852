package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"payproc"
)

type processCmd struct {
	permitNegative      bool
	disputeDepositsOnly bool
}

func (*processCmd) Name() string     { return "process" }
func (*processCmd) Synopsis() string { return "apply a transaction stream and print final accounts" }
func (*processCmd) Usage() string {
	return `payproc process [-permit-negative] [-dispute-deposits-only] <file>

  Streams the transaction records of <file> (CSV, or JSONL when the file
  ends in .jsonl) through the ledger engine and writes the final client
  account table as CSV to stdout. Invalid records are discarded silently;
  use "payproc check" to see why records were discarded.
`
}

func (p *processCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.permitNegative, "permit-negative", false, "Let debits and holds drive the available balance negative.")
	f.BoolVar(&p.disputeDepositsOnly, "dispute-deposits-only", false, "Only deposits may be disputed.")
}

func (p *processCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: specify exactly one input file.")
		return subcommands.ExitUsageError
	}

	ledger, err := runLedger(f.Arg(0), p.permitNegative, p.disputeDepositsOnly)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if err := payproc.WriteCSV(os.Stdout, payproc.BuildReport(ledger)); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing report:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
