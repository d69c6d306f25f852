package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"payproc"
	"payproc/renderer"
)

type reportCmd struct {
	permitNegative      bool
	disputeDepositsOnly bool
	currency            string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "apply a transaction stream and render an account report" }
func (*reportCmd) Usage() string {
	return `payproc report [-permit-negative] [-dispute-deposits-only] [-currency <code>] <file>

  Like "payproc process", but renders the final account table as markdown
  on the terminal. With -currency, balances are formatted in that ISO
  currency (e.g. USD) instead of raw four-digit amounts.
`
}

func (p *reportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.permitNegative, "permit-negative", false, "Let debits and holds drive the available balance negative.")
	f.BoolVar(&p.disputeDepositsOnly, "dispute-deposits-only", false, "Only deposits may be disputed.")
	f.StringVar(&p.currency, "currency", "", "Display balances in this ISO currency code.")
}

func (p *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: specify exactly one input file.")
		return subcommands.ExitUsageError
	}

	ledger, err := runLedger(f.Arg(0), p.permitNegative, p.disputeDepositsOnly)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Accounts(payproc.BuildReport(ledger), p.currency))
	return subcommands.ExitSuccess
}
