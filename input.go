package invest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseShares reads a share count typed by the user.
// Every non digit character is dropped, an empty result is the empty count.
func ParseShares(raw string) Shares {
	var n Shares
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		n = n*10 + Shares(r-'0')
		if n > maxShares {
			return maxShares
		}
	}
	return n
}

// maxShares caps absurd inputs before they overflow.
const maxShares Shares = 1e12

// ParseAmount reads an amount typed by the user, in any of the usual layouts:
// "1.234,56", "R$ 1234,5", "1,234.56" or "100".
//
// Anything but digits and separators is dropped. The last '.' or ',' is the
// decimal separator when it is followed by one or two digits, every other
// separator groups thousands. An empty result is the empty amount. Amounts are
// capped at maxAmount.
func ParseAmount(raw, currency string) Money {
	var digits strings.Builder
	decimals := -1 // digits after the last separator, -1 if none
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
			if decimals >= 0 {
				decimals++
			}
		case r == '.' || r == ',':
			decimals = 0
		}
	}
	if digits.Len() == 0 {
		return Money{cur: currency}
	}
	exp := int32(0)
	if decimals == 1 || decimals == 2 {
		exp = -int32(decimals)
	}
	d, err := decimal.NewFromString(digits.String())
	if err != nil {
		// only digits were kept.
		return Money{cur: currency}
	}
	d = d.Shift(exp)
	if d.GreaterThan(maxAmount) {
		d = maxAmount
	}
	return Money{value: d, cur: currency}
}

// maxAmount caps typed amounts, far beyond any balance.
var maxAmount = decimal.New(1, 15)

// ErrInvalidBalance is returned by ParseBalance for anything but a number.
var ErrInvalidBalance = errors.New("invalid balance")

// ParseBalance reads an account balance: an optional sign and currency symbol
// followed by an amount in the layouts ParseAmount accepts.
//
// Unlike typed amounts, a balance keeps its sign, and any other character is
// an error.
func ParseBalance(raw, currency string) (Money, error) {
	s := strings.TrimSpace(raw)
	neg := false
	sign := func() {
		if strings.HasPrefix(s, "-") {
			neg = true
			s = strings.TrimSpace(s[1:])
		}
	}
	sign()
	grapheme := Money{cur: currency}.formatter().Grapheme
	for _, prefix := range []string{grapheme, currency} {
		if prefix != "" && strings.HasPrefix(s, prefix) {
			s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
			break
		}
	}
	if !neg {
		sign()
	}
	if !strings.ContainsAny(s, "0123456789") || strings.Trim(s, "0123456789.,") != "" {
		return Money{cur: currency}, fmt.Errorf("%w %q", ErrInvalidBalance, raw)
	}
	m := ParseAmount(s, currency)
	if neg {
		m.value = m.value.Neg()
	}
	return m, nil
}
