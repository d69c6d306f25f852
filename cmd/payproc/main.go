package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"payproc/cli"
)

func main() {
	// Shell completion: when invoked by the shell's completion machinery
	// this prints candidates and exits, otherwise it is a no-op.
	policyFlags := map[string]complete.Predictor{
		"permit-negative":       predict.Nothing,
		"dispute-deposits-only": predict.Nothing,
	}
	reportFlags := map[string]complete.Predictor{
		"permit-negative":       predict.Nothing,
		"dispute-deposits-only": predict.Nothing,
		"currency":              predict.Set{"USD", "EUR", "GBP"},
	}
	cmp := &complete.Command{
		Sub: map[string]*complete.Command{
			"process": {Flags: policyFlags, Args: predict.Files("*")},
			"report":  {Flags: reportFlags, Args: predict.Files("*")},
			"check":   {Flags: policyFlags, Args: predict.Files("*")},
			"journal": {Flags: policyFlags, Args: predict.Files("*")},
			"fmt":     {Flags: map[string]complete.Predictor{"o": predict.Files("*.jsonl")}, Args: predict.Files("*")},
		},
	}
	cmp.Complete("payproc")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")

	for _, c := range cli.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
