package invest

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind tells how an instrument is bought.
type Kind int

const (
	// FixedIncome instruments are bought for any amount (CDB, LCI, treasury bonds).
	FixedIncome Kind = iota
	// ShareBased instruments are bought by whole units (stocks, real-estate fund quotas).
	ShareBased
)

func (k Kind) String() string {
	switch k {
	case ShareBased:
		return "share-based"
	default:
		return "fixed-income"
	}
}

// kindAliases maps catalog instrument types to their kind.
var kindAliases = map[string]Kind{
	"fixed-income": FixedIncome,
	"cdb":          FixedIncome,
	"lci":          FixedIncome,
	"lca":          FixedIncome,
	"tesouro":      FixedIncome,
	"bond":         FixedIncome,
	"debenture":    FixedIncome,
	"share-based":  ShareBased,
	"stock":        ShareBased,
	"acao":         ShareBased,
	"equity":       ShareBased,
	"etf":          ShareBased,
	"fii":          ShareBased,
	"reit":         ShareBased,
}

// ParseKind parses a kind or an instrument type, case insensitive.
func ParseKind(s string) (Kind, error) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return FixedIncome, fmt.Errorf("unknown instrument kind %q", s)
	}
	return k, nil
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(text []byte) (err error) {
	*k, err = ParseKind(string(text))
	return err
}

// symbolRegex checks a catalog symbol: uppercase letters and digits, with
// optional dots or dashes (PETR4, HGLG11, CDB-XP-2027, TESOURO.IPCA.2035).
var symbolRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9.\-]{0,31}$`)

// ValidSymbol reports whether s is a well formed catalog symbol.
func ValidSymbol(s string) bool { return symbolRegex.MatchString(s) }

// Quote describes a purchasable instrument.
// It is immutable for the duration of one purchase flow.
type Quote struct {
	symbol string
	name   string
	typ    string // catalog instrument type, e.g. "fii"
	kind   Kind
	price  Money // unit price, meaningful for share-based instruments only
}

// NewQuote returns a quote. The price is ignored for fixed-income instruments.
func NewQuote(symbol, name string, kind Kind, price Money) Quote {
	q := Quote{symbol: symbol, name: name, kind: kind, typ: kind.String()}
	if kind == ShareBased {
		q.price = price
	} else {
		q.price = Money{cur: price.cur}
	}
	return q
}

// WithType returns a copy of q with the catalog instrument type set.
func (q Quote) WithType(typ string) Quote {
	q.typ = typ
	return q
}

func (q Quote) Symbol() string   { return q.symbol }
func (q Quote) Name() string     { return q.name }
func (q Quote) Type() string     { return q.typ }
func (q Quote) Kind() Kind       { return q.kind }
func (q Quote) UnitPrice() Money { return q.price }

// Currency of the quote, DefaultCurrency when unset.
func (q Quote) Currency() string {
	if q.price.cur == "" {
		return DefaultCurrency
	}
	return q.price.cur
}

// Priced reports whether the quote is bought by whole shares: it is share-based
// and has a positive unit price. Other quotes are bought by amount.
func (q Quote) Priced() bool {
	return q.kind == ShareBased && q.price.IsPositive()
}

// money returns v in the quote currency.
func (q Quote) money(v Money) Money {
	if v.cur == "" {
		v.cur = q.Currency()
	}
	return v
}
