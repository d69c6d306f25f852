package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/subcommands"

	"payproc"
)

type fmtCmd struct {
	outputFile string
}

func (*fmtCmd) Name() string     { return "fmt" }
func (*fmtCmd) Synopsis() string { return "rewrite a transaction stream in canonical JSONL form" }
func (*fmtCmd) Usage() string {
	return `payproc fmt [-o <file>] <file>

  Reads the transaction records of <file> (CSV or JSONL) and writes them
  back in the canonical JSONL journal format, one record per line.
  Malformed rows are skipped with a warning. Writes to stdout unless -o
  names an output file.
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.outputFile, "o", "", "Write the canonical journal to this file instead of stdout.")
}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var w io.Writer = os.Stdout
	if p.outputFile != "" {
		out, err := os.Create(p.outputFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		defer out.Close()
		w = out
	}

	for {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			return subcommands.ExitSuccess
		}
		var rowErr *payproc.RowError
		switch {
		case errors.As(err, &rowErr):
			log.Printf("warning, skipping malformed %v", rowErr)
			continue
		case err != nil:
			fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", f.Arg(0), err)
			return subcommands.ExitFailure
		}
		if err := payproc.EncodeRecord(w, rec); err != nil {
			fmt.Fprintln(os.Stderr, "Error writing record:", err)
			return subcommands.ExitFailure
		}
	}
}
