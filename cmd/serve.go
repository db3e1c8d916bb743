package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/etnz/invest"
	"github.com/etnz/invest/desk"
	"github.com/google/subcommands"
)

type serveCmd struct {
	envFile string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve purchase drafts over HTTP" }
func (*serveCmd) Usage() string {
	return `ivd serve [-env <file>]

  Serves the purchase desk HTTP API. The configuration is read from the
  environment, after loading the .env file:

    IVD_ADDR          listen address (":8080")
    IVD_CATALOG       catalog file ("catalog.jsonl")
    IVD_CURRENCY      currency of the desk ("BRL")
    IVD_DRAFT_TTL     idle drafts are closed after it ("15m")
    IVD_RATE          requests per second (10)
    IVD_BURST         request burst (30)
    IVD_EXECUTOR_URL  backend purchase endpoint
    IVD_ORDER_LOG     orders file when there is no executor URL ("orders.jsonl")

  See "ivd topic desk" for the routes.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.envFile, "env", ".env", "Path to the .env file")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := desk.LoadConfig(c.envFile)

	catalog, err := decodeCatalogFile(cfg.CatalogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		return subcommands.ExitFailure
	}

	var executor invest.Executor
	if cfg.ExecutorURL != "" {
		executor = &invest.HTTPExecutor{URL: cfg.ExecutorURL}
	} else {
		f, err := os.OpenFile(cfg.OrderLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening orders file %q: %v\n", cfg.OrderLog, err)
			return subcommands.ExitFailure
		}
		defer f.Close()
		executor = invest.NewOrderLog(f)
	}

	srv := desk.NewServer(catalog, desk.NewSessions(cfg.DraftTTL), executor, cfg.Currency)
	router := srv.Router(desk.NewLimiter(cfg.Rate, cfg.Burst))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := desk.ListenAndServe(ctx, cfg.Addr, router); err != nil {
		fmt.Fprintf(os.Stderr, "Error serving: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
