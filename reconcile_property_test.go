package invest

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"
)

// cents draws a positive amount on the cent grid.
func cents(t *rapid.T, label string, min, max int64) Money {
	return BRL(decimal.New(rapid.Int64Range(min, max).Draw(t, label), -2))
}

func priced(t *rapid.T) Quote {
	return NewQuote("PROP11", "", ShareBased, cents(t, "price", 1, 500_000))
}

func TestProperty_FloorRounding(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		q := priced(t)
		requested := q.UnitPrice().Add(cents(t, "extra", 0, 10_000_000))

		got := ReconcileFromAmount(requested, q)

		want := requested.FloorShares(q.UnitPrice())
		if got.Shares != want {
			t.Fatalf("Shares = %d, want %d", got.Shares, want)
		}
		if !got.Amount.Equal(q.UnitPrice().Mul(want)) {
			t.Fatalf("Amount = %v, want %v × %d", got.Amount.value, q.UnitPrice().value, want)
		}
		if got.Amount.GreaterThan(requested) {
			t.Fatalf("Amount %v exceeds requested %v", got.Amount.value, requested.value)
		}
		if got.Amount.Equal(requested) != (got.Warning == "") {
			t.Fatalf("Warning = %q for amount %v requested %v", got.Warning, got.Amount.value, requested.value)
		}
	})
}

func TestProperty_SubMinimumCorrection(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		q := NewQuote("PROP11", "", ShareBased, cents(t, "price", 2, 500_000))
		requested := cents(t, "requested", 1, q.UnitPrice().value.Shift(2).IntPart()-1)

		got := ReconcileFromAmount(requested, q)

		if got.Shares != 1 {
			t.Fatalf("Shares = %d, want 1", got.Shares)
		}
		if !got.Amount.Equal(q.UnitPrice()) {
			t.Fatalf("Amount = %v, want %v", got.Amount.value, q.UnitPrice().value)
		}
		if got.Warning == "" {
			t.Fatal("Warning is empty")
		}
	})
}

func TestProperty_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		q := priced(t)
		n := Shares(rapid.Int64Range(1, 100_000).Draw(t, "shares"))

		amount := ReconcileFromShares(n, q).Amount
		back := ReconcileFromAmount(amount, q)

		if back.Shares != n {
			t.Fatalf("round trip of %d shares gave %d", n, back.Shares)
		}
		if back.Warning != "" {
			t.Fatalf("Warning = %q, want none", back.Warning)
		}
	})
}

func TestProperty_ValidatorOrdering(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		q := priced(t)
		shares := Shares(rapid.Int64Range(0, 100).Draw(t, "shares"))
		balance := cents(t, "balance", 0, 1_000_000)

		err := Validate(q, BRL(0), shares, &balance)
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("Validate() error = %v, want %v", err, ErrInvalidAmount)
		}
	})
}

func TestProperty_BalanceGating(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		q := priced(t)
		n := Shares(rapid.Int64Range(1, 1000).Draw(t, "shares"))
		amount := ReconcileFromShares(n, q).Amount
		balance := amount.Sub(cents(t, "missing", 1, amount.value.Shift(2).IntPart()))

		err := Validate(q, amount, n, &balance)
		if !errors.Is(err, ErrInsufficientBalance) {
			t.Fatalf("Validate() error = %v, want %v", err, ErrInsufficientBalance)
		}
		if err := Validate(q, amount, n, &amount); err != nil {
			t.Fatalf("Validate() with exact balance error = %v, want nil", err)
		}
	})
}

func TestProperty_ModeSwitchReset(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		q := priced(t)
		d := NewDraft(q)
		// random edits before the switch.
		for i, n := 0, rapid.IntRange(0, 5).Draw(t, "edits"); i < n; i++ {
			switch rapid.IntRange(0, 3).Draw(t, "edit") {
			case 0:
				_ = d.SetMode(ByShares)
				_ = d.EditShares(rapid.StringMatching(`[0-9]{0,4}`).Draw(t, "shares"))
			case 1:
				_ = d.SetMode(ByAmount)
				_ = d.EditAmount(rapid.StringMatching(`[0-9]{0,5}(,[0-9]{2})?`).Draw(t, "amount"))
			case 2:
				d.ConfirmAmount()
			case 3:
				_ = d.Validate(nil)
			}
		}

		mode := rapid.SampledFrom([]Mode{ByShares, ByAmount}).Draw(t, "mode")
		if rapid.Bool().Draw(t, "requote") {
			d.SetQuote(priced(t))
		} else if err := d.SetMode(mode); err != nil {
			t.Fatalf("SetMode(%v) error = %v", mode, err)
		}

		if !d.Shares().IsZero() || !d.Amount().IsZero() || d.Warning() != "" || d.Err() != nil {
			t.Fatalf("draft not reset: %+v", d.Snapshot())
		}
	})
}

func TestProperty_AnyTypedAmountBuysNonNegativeShares(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		q := priced(t)
		raw := rapid.StringMatching(`[0-9]{1,40}([.,][0-9]{1,3})?`).Draw(t, "amount")

		got := ReconcileFromAmount(ParseAmount(raw, "BRL"), q)
		if got.Shares < 0 || got.Shares > maxShares {
			t.Fatalf("Shares = %d, want within [0, %d]", got.Shares, maxShares)
		}
		if got.Amount.IsNegative() {
			t.Fatalf("Amount = %v, want non negative", got.Amount.value)
		}
	})
}
