package cli

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/google/subcommands"

	"payproc"
)

type checkCmd struct {
	permitNegative      bool
	disputeDepositsOnly bool
	verbose             bool
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "report which records a run would discard, and why" }
func (*checkCmd) Usage() string {
	return `payproc check [-permit-negative] [-dispute-deposits-only] [-v] <file>

  Streams the transaction records of <file> through the ledger engine and
  prints the counts of applied and discarded records, bucketed by discard
  reason. With -v, every discarded record is logged as it is seen.
`
}

func (p *checkCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.permitNegative, "permit-negative", false, "Let debits and holds drive the available balance negative.")
	f.BoolVar(&p.disputeDepositsOnly, "dispute-deposits-only", false, "Only deposits may be disputed.")
	f.BoolVar(&p.verbose, "v", false, "Log every discarded record.")
}

func (p *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: specify exactly one input file.")
		return subcommands.ExitUsageError
	}

	src, file, err := openSource(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	ledger := newLedger(p.permitNegative, p.disputeDepositsOnly)
	if p.verbose {
		ledger.Hook = func(rec payproc.Record, err error) {
			if err != nil {
				log.Printf("discarded %s: %v", rec, err)
			}
		}
	}

	if err := ledger.Process(src); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	fmt.Printf("applied: %d\n", ledger.Applied())
	fmt.Printf("discarded: %d\n", ledger.Rejected())
	rejections := ledger.Rejections()
	reasons := make([]string, 0, len(rejections))
	for r := range rejections {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		fmt.Printf("  %s: %d\n", r, rejections[r])
	}
	return subcommands.ExitSuccess
}
