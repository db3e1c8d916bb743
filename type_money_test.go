package invest

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoney_String(t *testing.T) {
	tests := []struct {
		m    Money
		want string
	}{
		{BRL(97.5), "R$ 97,50"},
		{BRL(32.5), "R$ 32,50"},
		{BRL(1234567.891), "R$ 1.234.567,89"},
		{BRL(0), "R$ 0,00"},
		{BRL(-10), "-R$ 10,00"},
		{M(1234.5, "USD"), "$1,234.50"},
		{M(decimal.New(1, 23), "BRL"), "R$ 100000000000000000000000.00"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", tt.m.value, got, tt.want)
		}
	}
}

func TestMoney_FloorShares(t *testing.T) {
	tests := []struct {
		amount, price Money
		want          Shares
	}{
		{BRL(100), BRL(32.5), 3},
		{BRL(97.5), BRL(32.5), 3},
		{BRL(32.49), BRL(32.5), 0},
		{BRL(0.3), BRL(0.1), 3},
		{BRL(0), BRL(32.5), 0},
		{BRL(-100), BRL(32.5), 0},
		{BRL(100), BRL(0), 0},
		{M(decimal.New(1, 15), "BRL"), BRL(0.01), maxShares},
		{M(decimal.New(1, 30), "BRL"), BRL(0.01), maxShares},
	}
	for _, tt := range tests {
		if got := tt.amount.FloorShares(tt.price); got != tt.want {
			t.Errorf("%v.FloorShares(%v) = %d, want %d", tt.amount.value, tt.price.value, got, tt.want)
		}
	}
}

func TestMoney_Rounding(t *testing.T) {
	if got, want := BRL(123.456).Round(), BRL(123.46); !got.Equal(want) {
		t.Errorf("Round() = %v, want %v", got.value, want.value)
	}
	if got, want := BRL(123.454).Round(), BRL(123.45); !got.Equal(want) {
		t.Errorf("Round() = %v, want %v", got.value, want.value)
	}
	if got, want := BRL(30.369).RoundUp(), BRL(30.37); !got.Equal(want) {
		t.Errorf("RoundUp() = %v, want %v", got.value, want.value)
	}
	if got, want := BRL(30.361).RoundUp(), BRL(30.37); !got.Equal(want) {
		t.Errorf("RoundUp() = %v, want %v", got.value, want.value)
	}
}

func TestMoney_Near(t *testing.T) {
	if !BRL(97.5).Near(BRL(97.51)) {
		t.Error("97.50 should be near 97.51")
	}
	if BRL(97.5).Near(BRL(97.52)) {
		t.Error("97.50 should not be near 97.52")
	}
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Add() of different currencies should panic")
		}
	}()
	BRL(1).Add(M(1, "USD"))
}

func TestMoney_WeakCurrency(t *testing.T) {
	if got := NO(1).Add(BRL(2)).Currency(); got != "BRL" {
		t.Errorf("Currency() = %q, want BRL", got)
	}
}
