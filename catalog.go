package invest

import (
	"fmt"
	"strings"

	"github.com/google/btree"
)

// Catalog holds the purchasable instruments, indexed by symbol.
type Catalog struct {
	quotes *btree.BTreeG[Quote]
}

func lessSymbol(a, b Quote) bool { return a.symbol < b.symbol }

// NewCatalog returns a new empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{quotes: btree.NewG(8, lessSymbol)}
}

// Add adds or replaces a quote. The symbol must be valid and a share-based
// quote must have a positive unit price.
func (c *Catalog) Add(q Quote) error {
	if !ValidSymbol(q.symbol) {
		return fmt.Errorf("invalid symbol %q", q.symbol)
	}
	if q.kind == ShareBased && !q.price.IsPositive() {
		return fmt.Errorf("share-based instrument %q must have a positive unit price, got %s", q.symbol, q.price)
	}
	c.quotes.ReplaceOrInsert(q)
	return nil
}

func (c *Catalog) Has(symbol string) bool {
	return c.quotes.Has(Quote{symbol: symbol})
}

// Get returns the quote for a symbol.
func (c *Catalog) Get(symbol string) (Quote, bool) {
	return c.quotes.Get(Quote{symbol: symbol})
}

func (c *Catalog) Len() int { return c.quotes.Len() }

// All returns the quotes in symbol order.
func (c *Catalog) All() []Quote {
	list := make([]Quote, 0, c.quotes.Len())
	c.quotes.Ascend(func(q Quote) bool {
		list = append(list, q)
		return true
	})
	return list
}

// Search returns the quotes whose symbol starts with prefix, in symbol order.
// The prefix is case insensitive.
func (c *Catalog) Search(prefix string) []Quote {
	prefix = strings.ToUpper(prefix)
	var list []Quote
	c.quotes.AscendGreaterOrEqual(Quote{symbol: prefix}, func(q Quote) bool {
		if !strings.HasPrefix(q.symbol, prefix) {
			return false
		}
		list = append(list, q)
		return true
	})
	return list
}

// Symbols returns the symbols starting with prefix.
func (c *Catalog) Symbols(prefix string) []string {
	var list []string
	for _, q := range c.Search(prefix) {
		list = append(list, q.symbol)
	}
	return list
}
