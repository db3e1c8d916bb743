package invest

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency used when none is given.
const DefaultCurrency = "BRL"

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// BRL creates money in brazilian reais.
func BRL[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return M(value, "BRL")
}

// formatters overrides the go-money layout for currencies displayed with a
// local convention.
var formatters = map[string]*money.Formatter{
	"BRL": money.NewFormatter(2, ",", ".", "R$", "$ 1"),
}

// formatter returns the display formatter for the money's currency.
func (m Money) formatter() *money.Formatter {
	if f, ok := formatters[m.cur]; ok {
		return f
	}
	// to get a never nil currency I need to call the Money constructor
	return money.New(0, m.cur).Currency().Formatter()
}

// String returns the money formatted for display, e.g. "R$ 1.234,56".
//
// The value is rounded to the currency fraction only here, computations keep
// the full precision.
func (m Money) String() string {
	f := m.formatter()
	dec := m.value.Shift(int32(f.Fraction)).Round(0)
	if !dec.BigInt().IsInt64() {
		// beyond go-money's minor units range.
		return f.Grapheme + " " + m.value.StringFixed(int32(f.Fraction))
	}
	return f.Format(dec.IntPart())
}

func (m Money) Currency() string                { return m.cur }
func (m Money) Decimal() decimal.Decimal        { return m.value }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Abs() Money                      { return Money{value: m.value.Abs(), cur: m.cur} }
func (m Money) Mul(n Shares) Money              { return Money{value: m.value.Mul(decimal.NewFromInt(int64(n))), cur: m.cur} }

// Add and Sub are binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// Round rounds half away from zero to the cent.
func (m Money) Round() Money { return Money{value: m.value.Round(2), cur: m.cur} }

// RoundUp rounds to the cent, towards positive infinity.
func (m Money) RoundUp() Money { return Money{value: m.value.RoundCeil(2), cur: m.cur} }

// Near reports whether m and n differ by at most one cent.
func (m Money) Near(n Money) bool {
	return m.value.Sub(n.value).Abs().LessThanOrEqual(cent)
}

// FloorShares returns the number of whole shares m can buy at the given unit
// price, at most maxShares. It is zero for a non positive amount or price.
func (m Money) FloorShares(price Money) Shares {
	if !m.value.IsPositive() || !price.value.IsPositive() {
		return 0
	}
	q, _ := m.value.QuoRem(price.value, 0)
	if !q.BigInt().IsInt64() || q.IntPart() > int64(maxShares) {
		return maxShares
	}
	return Shares(q.IntPart())
}

var cent = decimal.New(1, -2)

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// MarshalJSON persists the value rounded to the cent, as a quoted decimal.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.Round(2).MarshalJSON()
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}
