package renderer

import (
	"time"

	"github.com/etnz/invest"
)

// Draft is the view of a purchase draft.
type Draft = invest.Snapshot

// QuoteRow is one instrument of a catalog view.
type QuoteRow struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Price  string `json:"price"` // "-" when bought by amount
}

// Catalog is the view of a list of instruments.
type Catalog struct {
	Title  string     `json:"title"`
	Quotes []QuoteRow `json:"quotes"`
}

// NewCatalog builds the catalog view of quotes.
func NewCatalog(title string, quotes []invest.Quote) *Catalog {
	c := &Catalog{Title: title}
	for _, q := range quotes {
		row := QuoteRow{Symbol: q.Symbol(), Name: q.Name(), Type: q.Type(), Price: "-"}
		if q.Priced() {
			row.Price = q.UnitPrice().String()
		}
		c.Quotes = append(c.Quotes, row)
	}
	return c
}

// Order is the view of an executed order.
type Order struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Shares string `json:"shares"`
	Noun   string `json:"noun"`
	Amount string `json:"amount"`
	Time   string `json:"time"`
}

// NewOrder builds the order view.
func NewOrder(o invest.Order) *Order {
	return &Order{
		ID:     o.ID,
		Symbol: o.Symbol,
		Shares: o.Shares.String(),
		Noun:   o.Shares.Noun(),
		Amount: o.Amount.String(),
		Time:   o.Time.Format(time.DateTime),
	}
}
