// Package cli implements the payproc command-line application.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"payproc"
)

// Commands lists the subcommands a main package registers on its commander.
var Commands = []subcommands.Command{
	&processCmd{},
	&reportCmd{},
	&checkCmd{},
	&journalCmd{},
	&fmtCmd{},
}

// openSource opens the input file and picks a decoder from its extension:
// ".jsonl" is read as a journal, anything else as CSV. The caller closes
// the returned file.
func openSource(path string) (payproc.RecordSource, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if strings.HasSuffix(path, ".jsonl") {
		return payproc.NewJournalDecoder(f), f, nil
	}
	return payproc.NewCSVDecoder(f), f, nil
}

// newLedger builds a ledger from the shared policy flags.
func newLedger(permitNegative, disputeDepositsOnly bool) *payproc.Ledger {
	policy := payproc.StrictReject
	if permitNegative {
		policy = payproc.PermitNegative
	}
	l := payproc.NewLedger(policy)
	if disputeDepositsOnly {
		l.Disputable = payproc.DisputeDepositsOnly
	}
	return l
}

// runLedger streams one input file through a fresh ledger.
func runLedger(path string, permitNegative, disputeDepositsOnly bool) (*payproc.Ledger, error) {
	src, f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	l := newLedger(permitNegative, disputeDepositsOnly)
	if err := l.Process(src); err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return l, nil
}

// printMarkdown renders a markdown document to the terminal.
func printMarkdown(doc string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		fmt.Print(doc)
		return
	}
	out, err := r.Render(doc)
	if err != nil {
		fmt.Print(doc)
		return
	}
	fmt.Print(out)
}
