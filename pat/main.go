// Command pat tracks a personal investment portfolio from a plain-text
// ledger of transactions.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/patrimoine/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	completion()
	applyEnv()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// applyEnv overrides the global flag defaults from the environment, so the
// ledger location can be configured once per shell.
func applyEnv() {
	for env, name := range map[string]string{
		cmd.EnvLedgerFile:      "ledger-file",
		cmd.EnvQuotesFile:      "quotes-file",
		cmd.EnvDefaultCurrency: "currency",
	} {
		if v := os.Getenv(env); v != "" {
			flag.Set(name, v)
		}
	}
}

// completion handles shell completion requests. It returns immediately when
// the process is not being invoked by the shell completion hook.
func completion() {
	sub := make(map[string]*complete.Command, len(cmd.Commands))
	for _, c := range cmd.Commands {
		sub[c.Name()] = &complete.Command{}
	}
	root := &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"ledger-file": predict.Files("*.jsonl"),
			"quotes-file": predict.Files("*.jsonl"),
			"currency":    predict.Set{"EUR", "USD", "GBP", "CHF"},
		},
	}
	root.Complete("pat")
}
