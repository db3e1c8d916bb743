package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/invest"
	"github.com/etnz/invest/renderer"
	"github.com/google/subcommands"
)

type buyCmd struct {
	balance string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "open an interactive purchase of an instrument" }
func (*buyCmd) Usage() string {
	return `ivd buy [-balance <amount>] <symbol>

  Opens a purchase draft and reads commands from the standard input, one per line:

` + sessionHelp
}

const sessionHelp = `    mode shares|amount  switch the input mode, clearing the draft
    shares <count>      type the number of shares
    amount <amount>     type the amount, e.g. "1.234,56"
    confirm             settle the typed amount to whole shares
    quote <symbol>      switch to another instrument, clearing the draft
    balance [<amount>]  set the available balance, unknown if empty
    submit              validate and execute the purchase
    show                print the draft
    help                print this help
    quit                leave without buying
`

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.balance, "balance", "", "Available balance, unknown if empty")
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: a single symbol is required.")
		return subcommands.ExitUsageError
	}
	catalog, err := DecodeCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		return subcommands.ExitFailure
	}
	q, ok := catalog.Get(strings.ToUpper(f.Arg(0)))
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown instrument %q.\n", f.Arg(0))
		return subcommands.ExitFailure
	}

	x, release, err := Executor()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer release()

	s := &session{
		draft:    invest.NewDraft(q),
		catalog:  catalog,
		executor: x,
		show:     printMarkdown,
		prompt:   os.Stdout,
	}
	if err := s.setBalance(c.balance); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := s.run(ctx, os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// session drives a draft from line commands.
type session struct {
	draft    *invest.Draft
	catalog  *invest.Catalog // for switching instruments
	balance  *invest.Money
	executor invest.Executor
	show     func(md string) // prints markdown
	prompt   io.Writer       // nil for no prompt
	orders   []invest.Order  // executed so far
}

var errQuit = errors.New("quit")

// run reads commands from r until quit or end of input.
func (s *session) run(ctx context.Context, r io.Reader) error {
	s.show(renderer.RenderDraft(ptr(s.draft.Snapshot())))
	scanner := bufio.NewScanner(r)
	for {
		if s.prompt != nil {
			fmt.Fprint(s.prompt, "> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := s.handle(ctx, scanner.Text()); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
	}
}

// handle executes a single command line. Only errQuit and context errors are
// returned, user mistakes are shown.
func (s *session) handle(ctx context.Context, line string) error {
	verb, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	var err error
	switch strings.ToLower(verb) {
	case "":
		return nil
	case "quit", "exit", "q":
		return errQuit
	case "help", "?":
		s.show("```\n" + sessionHelp + "```\n")
		return nil
	case "show":
	case "mode":
		var m invest.Mode
		if m, err = invest.ParseMode(arg); err == nil {
			err = s.draft.SetMode(m)
		}
	case "shares":
		err = s.draft.EditShares(arg)
	case "amount":
		err = s.draft.EditAmount(arg)
	case "confirm":
		s.draft.ConfirmAmount()
	case "quote":
		q, ok := s.catalog.Get(strings.ToUpper(arg))
		if !ok {
			err = fmt.Errorf("unknown instrument %q", arg)
			break
		}
		s.draft.SetQuote(q)
	case "balance":
		if err := s.setBalance(arg); err != nil {
			s.show(fmt.Sprintf("Cannot set balance: %v.\n", err))
			return nil
		}
		if s.balance == nil {
			s.show("Balance is unknown.\n")
		} else {
			s.show(fmt.Sprintf("Balance is %s.\n", *s.balance))
		}
		return nil
	case "submit":
		return s.submit(ctx)
	default:
		s.show(fmt.Sprintf("Unknown command %q, type `help` for the list of commands.\n", verb))
		return nil
	}
	if err != nil {
		s.show(fmt.Sprintf("Cannot %s: %v.\n", verb, err))
		return nil
	}
	s.show(renderer.RenderDraft(ptr(s.draft.Snapshot())))
	return nil
}

func (s *session) submit(ctx context.Context) error {
	o, err := s.draft.Submit(ctx, s.balance, s.executor)
	var verr *invest.ValidationError
	switch {
	case errors.As(err, &verr):
		s.show(renderer.RenderDraft(ptr(s.draft.Snapshot())))
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case err != nil:
		s.show(fmt.Sprintf("Purchase failed: %v.\n", err))
		return nil
	}
	s.orders = append(s.orders, o)
	s.show(renderer.RenderOrder(renderer.NewOrder(o)))
	return nil
}

// setBalance parses the balance in the draft currency, empty means unknown.
// An invalid balance leaves the current one unchanged.
func (s *session) setBalance(raw string) error {
	if strings.TrimSpace(raw) == "" {
		s.balance = nil
		return nil
	}
	b, err := invest.ParseBalance(raw, s.draft.Quote().Currency())
	if err != nil {
		return err
	}
	s.balance = &b
	return nil
}

func ptr[T any](v T) *T { return &v }
