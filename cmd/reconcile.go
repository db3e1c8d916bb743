package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/invest"
	"github.com/google/subcommands"
)

type reconcileCmd struct {
	amount string
	shares string
}

func (*reconcileCmd) Name() string     { return "reconcile" }
func (*reconcileCmd) Synopsis() string { return "derive the purchase from an amount or a share count" }
func (*reconcileCmd) Usage() string {
	return `ivd reconcile (-amount <amount> | -shares <count>) <symbol>

  Prints the amount and the whole number of shares that would be bought, and
  the adjustment warning if any.
`
}

func (c *reconcileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "Amount to invest, as typed (e.g. \"1.234,56\")")
	f.StringVar(&c.shares, "shares", "", "Number of shares to buy")
}

func (c *reconcileCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || (c.amount == "") == (c.shares == "") {
		fmt.Fprintln(os.Stderr, "Error: a symbol and exactly one of -amount or -shares are required.")
		return subcommands.ExitUsageError
	}
	q, ok := lookup(strings.ToUpper(f.Arg(0)))
	if !ok {
		return subcommands.ExitFailure
	}

	var r invest.Reconciliation
	if c.amount != "" {
		r = invest.ReconcileFromAmount(invest.ParseAmount(c.amount, q.Currency()), q)
	} else {
		r = invest.ReconcileFromShares(invest.ParseShares(c.shares), q)
	}

	fmt.Printf("Amount : %s\n", r.Amount)
	if q.Priced() {
		fmt.Printf("Shares : %d\n", r.Shares)
	}
	if r.Warning != "" {
		fmt.Printf("⚠️  %s\n", r.Warning)
	}
	return subcommands.ExitSuccess
}

type validateCmd struct {
	amount  string
	shares  string
	balance string
}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "check a purchase before submitting it" }
func (*validateCmd) Usage() string {
	return `ivd validate -amount <amount> [-shares <count>] [-balance <amount>] <symbol>

  Checks that the purchase can be submitted: a positive amount, a whole number
  of shares for share-based instruments, and an amount within the balance.
  An unknown balance never allows a purchase.
`
}

func (c *validateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "Amount of the purchase")
	f.StringVar(&c.shares, "shares", "", "Number of shares of the purchase")
	f.StringVar(&c.balance, "balance", "", "Available balance, unknown if empty")
}

func (c *validateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: a single symbol is required.")
		return subcommands.ExitUsageError
	}
	q, ok := lookup(strings.ToUpper(f.Arg(0)))
	if !ok {
		return subcommands.ExitFailure
	}

	var balance *invest.Money
	if c.balance != "" {
		b, err := invest.ParseBalance(c.balance, q.Currency())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		balance = &b
	}
	err := invest.Validate(q, invest.ParseAmount(c.amount, q.Currency()), invest.ParseShares(c.shares), balance)
	var verr *invest.ValidationError
	switch {
	case errors.As(err, &verr):
		fmt.Printf("❌ %s\n", verr.Message)
		return subcommands.ExitFailure
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("✅ The purchase can be submitted.")
	return subcommands.ExitSuccess
}
