// Command ivd buys instruments from a catalog, by amount or by shares.
package main

import (
	"context"
	"flag"
	"os"
	"path"
	"strings"

	"github.com/etnz/invest"
	"github.com/etnz/invest/cmd"
	"github.com/etnz/invest/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	completion().Complete("ivd")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the command line for shell completion.
// Run "COMP_INSTALL=1 ivd" to install it.
func completion() *complete.Command {
	global := map[string]complete.Predictor{
		"catalog":  predict.Files("*.jsonl"),
		"orders":   predict.Files("*.jsonl"),
		"executor": predict.Something,
	}
	symbols := complete.PredictFunc(predictSymbols)
	amount := predict.Something

	return &complete.Command{
		Flags: global,
		Sub: map[string]*complete.Command{
			"catalog": {
				Flags: map[string]complete.Predictor{
					"import": predict.Files("*.json"),
					"url":    predict.Something,
					"path":   predict.Set{"$", "$.data", "$.data.investments"},
				},
				Args: symbols,
			},
			"quote": {Args: symbols},
			"reconcile": {
				Flags: map[string]complete.Predictor{"amount": amount, "shares": amount},
				Args:  symbols,
			},
			"validate": {
				Flags: map[string]complete.Predictor{"amount": amount, "shares": amount, "balance": amount},
				Args:  symbols,
			},
			"buy": {
				Flags: map[string]complete.Predictor{"balance": amount},
				Args:  symbols,
			},
			"serve": {
				Flags: map[string]complete.Predictor{"env": predict.Files("*.env")},
			},
			"taxid": {Args: predict.Something},
			"topic": {
				Flags: map[string]complete.Predictor{"list": predict.Nothing},
				Args:  complete.PredictFunc(predictTopics),
			},
		},
	}
}

// predictSymbols completes with the symbols in the default catalog.
func predictSymbols(prefix string) []string {
	f, err := os.Open(cmd.CatalogFile())
	if err != nil {
		return nil
	}
	defer f.Close()
	c, err := invest.DecodeCatalog(f.Name(), f)
	if err != nil {
		return nil
	}
	return c.Symbols(prefix)
}

func predictTopics(prefix string) []string {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	var list []string
	for _, t := range topics {
		if strings.HasPrefix(t, prefix) {
			list = append(list, t)
		}
	}
	return list
}
