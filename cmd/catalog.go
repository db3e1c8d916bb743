package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/etnz/invest"
	"github.com/etnz/invest/renderer"
	"github.com/google/subcommands"
)

type catalogCmd struct {
	importFile string
	url        string
	path       string
}

func (*catalogCmd) Name() string     { return "catalog" }
func (*catalogCmd) Synopsis() string { return "list or import the instruments on sale" }
func (*catalogCmd) Usage() string {
	return `ivd catalog [-import <file> | -url <url>] [-path <jsonpath>] [<prefix>]

  Lists the instruments in the catalog whose symbol starts with <prefix>.

  With -import or -url, reads the instruments from a JSON document first, and
  merges them into the catalog file. -path selects the array of instruments in
  the document (e.g. "$.data.investments").
`
}

func (c *catalogCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.importFile, "import", "", "JSON document to import instruments from")
	f.StringVar(&c.url, "url", "", "URL of a JSON document to import instruments from")
	f.StringVar(&c.path, "path", "$", "JSONPath to the array of instruments in the imported document")
}

func (c *catalogCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: at most one prefix is allowed.")
		return subcommands.ExitUsageError
	}
	if c.importFile != "" && c.url != "" {
		fmt.Fprintln(os.Stderr, "Error: -import and -url are mutually exclusive.")
		return subcommands.ExitUsageError
	}

	catalog, err := DecodeCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.importFile != "" || c.url != "" {
		n, err := c.importInto(ctx, catalog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error importing instruments: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := EncodeCatalog(catalog); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving catalog: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("✅ Successfully imported %d instruments into %s\n", n, *catalogFile)
		return subcommands.ExitSuccess
	}

	prefix := strings.ToUpper(f.Arg(0))
	title := "Catalog"
	if prefix != "" {
		title = fmt.Sprintf("Catalog: %s*", prefix)
	}
	printMarkdown(renderer.RenderCatalog(renderer.NewCatalog(title, catalog.Search(prefix))))
	return subcommands.ExitSuccess
}

// importInto adds the imported instruments to catalog, and returns how many.
// Invalid entries are reported and skipped.
func (c *catalogCmd) importInto(ctx context.Context, catalog *invest.Catalog) (int, error) {
	var (
		imported *invest.Catalog
		skipped  []error
		err      error
	)
	if c.url != "" {
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		imported, skipped, err = invest.FetchCatalog(ctx, http.DefaultClient, c.url, c.path)
	} else {
		var r io.ReadCloser
		if r, err = os.Open(c.importFile); err != nil {
			return 0, err
		}
		defer r.Close()
		imported, skipped, err = invest.DecodeCatalogJSON(r, c.path)
	}
	if err != nil {
		return 0, err
	}
	for _, e := range skipped {
		fmt.Fprintf(os.Stderr, "warning, skipped: %v\n", e)
	}
	for _, q := range imported.All() {
		if err := catalog.Add(q); err != nil {
			return 0, err
		}
	}
	return imported.Len(), nil
}

type quoteCmd struct{}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "show an instrument and its minimum purchase" }
func (*quoteCmd) Usage() string {
	return `ivd quote <symbol>

  Shows an instrument of the catalog, and the minimum amount to buy it.
`
}

func (*quoteCmd) SetFlags(f *flag.FlagSet) {}

func (*quoteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: a single symbol is required.")
		return subcommands.ExitUsageError
	}
	q, ok := lookup(strings.ToUpper(f.Arg(0)))
	if !ok {
		return subcommands.ExitFailure
	}

	var b strings.Builder
	b.WriteString(renderer.RenderCatalog(renderer.NewCatalog(q.Symbol(), []invest.Quote{q})))
	if q.Priced() {
		fmt.Fprintf(&b, "\nBought by shares, %s\n", strings.TrimPrefix(invest.MinimumPurchaseMessage(q.UnitPrice()), "the "))
	} else {
		b.WriteString("\nBought by amount, in " + q.Currency() + ".\n")
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
