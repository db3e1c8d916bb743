package invest

import "fmt"

// Reconciliation is a consistent (amount, shares) pair derived from a single
// user entered value.
type Reconciliation struct {
	Amount  Money  // zero when empty
	Shares  Shares // zero when empty or not applicable
	Warning string // informational, never blocks a purchase
}

// ReconcileFromAmount derives the purchase from a requested amount.
//
// Fixed-income quotes keep the requested amount rounded to the cent.
// Share-based quotes buy as many whole shares as the amount allows: the amount
// is adjusted down to the cost of those shares, or up to the price of one
// share when it was not enough for a single one. Both adjustments are
// reported in the Warning.
func ReconcileFromAmount(requested Money, q Quote) Reconciliation {
	requested = q.money(requested)
	if !requested.IsPositive() {
		return Reconciliation{Amount: Money{cur: requested.cur}}
	}
	if !q.Priced() {
		return Reconciliation{Amount: requested.Round()}
	}

	price := q.UnitPrice()
	if requested.LessThan(price) {
		return Reconciliation{
			Amount:  price.RoundUp(),
			Shares:  1,
			Warning: MinimumPurchaseMessage(price),
		}
	}

	shares := requested.FloorShares(price)
	adjusted := price.Mul(shares).RoundUp()
	r := Reconciliation{Amount: adjusted, Shares: shares}
	// exact: any change to the typed amount is reported, even a cent.
	if !adjusted.Equal(requested) {
		r.Warning = fmt.Sprintf("amount adjusted to %s, equivalent to %d %s.", adjusted, shares, shares.Noun())
	}
	return r
}

// ReconcileFromShares derives the amount to pay for a share count.
// It is empty for non positive counts and for quotes not bought by shares.
func ReconcileFromShares(requested Shares, q Quote) Reconciliation {
	if !requested.IsPositive() || !q.Priced() {
		return Reconciliation{Amount: Money{cur: q.Currency()}}
	}
	return Reconciliation{
		Amount: q.UnitPrice().Mul(requested).RoundUp(),
		Shares: requested,
	}
}

// MinimumPurchaseMessage is the user message for amounts below one share.
func MinimumPurchaseMessage(price Money) string {
	return fmt.Sprintf("the minimum purchase amount is %s, equivalent to 1 share.", price.RoundUp())
}
