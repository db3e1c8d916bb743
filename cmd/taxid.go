package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/invest/taxid"
	"github.com/google/subcommands"
)

type taxidCmd struct{}

func (*taxidCmd) Name() string     { return "taxid" }
func (*taxidCmd) Synopsis() string { return "validate CPF and CNPJ numbers" }
func (*taxidCmd) Usage() string {
	return `ivd taxid <number>...

  Validates each CPF (11 digits) or CNPJ (14 digits), punctuation allowed,
  and prints it in its canonical form.
`
}

func (*taxidCmd) SetFlags(f *flag.FlagSet) {}

func (*taxidCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one number is required.")
		return subcommands.ExitUsageError
	}
	status := subcommands.ExitSuccess
	for _, s := range f.Args() {
		kind, err := taxid.Validate(s)
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Printf("✅ %s %s\n", kind, taxid.Format(s))
	}
	return status
}
