// Package cmd implements the CLI application to buy instruments from a catalog.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/invest"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&catalogCmd{}, "catalog")
	c.Register(&quoteCmd{}, "catalog")

	c.Register(&reconcileCmd{}, "purchase")
	c.Register(&validateCmd{}, "purchase")
	c.Register(&buyCmd{}, "purchase")
	c.Register(&serveCmd{}, "purchase")

	c.Register(&taxidCmd{}, "tools")
	c.Register(&topicCmd{}, "tools")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var catalogFile = flag.String("catalog", "catalog.jsonl", "Path to the catalog file (JSONL format)")
var ordersFile = flag.String("orders", "orders.jsonl", "Path to the file where executed orders are appended (JSONL format)")
var executorURL = flag.String("executor", "", "URL of the backend purchase endpoint, orders are appended to -orders if empty")

// CatalogFile returns the path to the catalog, for completion.
func CatalogFile() string { return *catalogFile }

// DecodeCatalog decodes the catalog from the app catalog file.
func DecodeCatalog() (c *invest.Catalog, err error) {
	c, err = decodeCatalogFile(*catalogFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, catalog does not exist, using an empty catalog instead")
		c, err = invest.NewCatalog(), nil
	}
	return
}

func decodeCatalogFile(filename string) (*invest.Catalog, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return invest.DecodeCatalog(filename, f)
}

// EncodeCatalog encodes the catalog into the app catalog file.
func EncodeCatalog(c *invest.Catalog) error {
	f, err := os.Create(*catalogFile)
	if err != nil {
		return err
	}
	if err := invest.EncodeCatalog(f, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// lookup returns the catalog quote for symbol, printing the error if any.
func lookup(symbol string) (invest.Quote, bool) {
	c, err := DecodeCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		return invest.Quote{}, false
	}
	q, ok := c.Get(symbol)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown instrument %q.\n", symbol)
	}
	return q, ok
}

// Executor returns the executor orders are handed to, and a function to
// release it.
func Executor() (invest.Executor, func() error, error) {
	if *executorURL != "" {
		return &invest.HTTPExecutor{URL: *executorURL}, func() error { return nil }, nil
	}
	f, err := os.OpenFile(*ordersFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open orders file %q: %w", *ordersFile, err)
	}
	return invest.NewOrderLog(f), f.Close, nil
}

// printMarkdown prints markdown to the terminal, styled if possible.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
