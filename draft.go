package invest

import (
	"context"
	"errors"
	"fmt"
)

// Mode tells which input of a draft is authoritative.
type Mode int

const (
	// ByShares: the user types a share count, the amount follows.
	ByShares Mode = iota
	// ByAmount: the user types an amount, the share count follows.
	ByAmount
)

func (m Mode) String() string {
	if m == ByAmount {
		return "amount"
	}
	return "shares"
}

// ParseMode parses "shares" or "amount".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "shares", "by-shares":
		return ByShares, nil
	case "amount", "by-amount":
		return ByAmount, nil
	}
	return ByShares, fmt.Errorf("unknown input mode %q, want \"shares\" or \"amount\"", s)
}

var (
	// ErrSharesNotSupported is returned when a share input is used on a quote
	// that is only bought by amount.
	ErrSharesNotSupported = errors.New("instrument is not bought by shares")
	// ErrWrongMode is returned when editing the input that is not authoritative.
	ErrWrongMode = errors.New("input is not editable in the current mode")
)

// Draft is the transient state of one purchase interaction.
//
// It is created for a quote, edited field by field, and reset whenever the
// quote or the input mode changes. A Draft is not safe for concurrent use.
type Draft struct {
	quote   Quote
	mode    Mode
	shares  Shares
	amount  Money
	pending bool // amount typed but not confirmed yet
	warning string
	err     *ValidationError
}

// NewDraft opens a draft for q.
func NewDraft(q Quote) *Draft {
	d := new(Draft)
	d.SetQuote(q)
	return d
}

func (d *Draft) Quote() Quote    { return d.quote }
func (d *Draft) Mode() Mode      { return d.mode }
func (d *Draft) Shares() Shares  { return d.shares }
func (d *Draft) Amount() Money   { return d.amount }
func (d *Draft) Warning() string { return d.warning }

// Err returns the last validation failure, nil if none.
func (d *Draft) Err() error {
	if d.err == nil {
		return nil
	}
	return d.err
}

// SetQuote selects another instrument, and resets the draft.
func (d *Draft) SetQuote(q Quote) {
	d.quote = q
	if q.Priced() {
		d.mode = ByShares
	} else {
		d.mode = ByAmount
	}
	d.Reset()
}

// SetMode switches the authoritative input. Everything typed so far is
// cleared, even when the mode does not change.
func (d *Draft) SetMode(m Mode) error {
	if m == ByShares && !d.quote.Priced() {
		return ErrSharesNotSupported
	}
	d.mode = m
	d.Reset()
	return nil
}

// Reset clears the inputs, warning and error, keeping the quote and mode.
func (d *Draft) Reset() {
	d.shares = 0
	d.amount = Money{cur: d.quote.Currency()}
	d.pending = false
	d.clearMessages()
}

func (d *Draft) clearMessages() {
	d.warning = ""
	d.err = nil
}

// EditShares handles the share input text, and updates the amount.
func (d *Draft) EditShares(raw string) error {
	if !d.quote.Priced() {
		return ErrSharesNotSupported
	}
	if d.mode != ByShares {
		return ErrWrongMode
	}
	d.clearMessages()
	r := ReconcileFromShares(ParseShares(raw), d.quote)
	d.shares, d.amount = r.Shares, r.Amount
	return nil
}

// EditAmount handles the amount input text as it is typed.
//
// The amount is kept as typed and only the share count it would buy is
// derived. Rounding the amount to whole shares is left to ConfirmAmount, so
// that the field is not rewritten while the user is typing.
func (d *Draft) EditAmount(raw string) error {
	if d.quote.Priced() && d.mode != ByAmount {
		return ErrWrongMode
	}
	d.clearMessages()
	d.amount = ParseAmount(raw, d.quote.Currency())
	d.shares = 0
	if d.quote.Priced() {
		d.shares = d.amount.FloorShares(d.quote.UnitPrice())
	}
	d.pending = d.amount.IsPositive()
	return nil
}

// ConfirmAmount settles the typed amount, when the amount input loses focus or
// the user presses Enter. Share-based amounts are snapped to whole shares,
// with a warning when the amount changed.
func (d *Draft) ConfirmAmount() {
	if d.mode != ByAmount {
		return
	}
	r := ReconcileFromAmount(d.amount, d.quote)
	d.amount, d.shares, d.warning = r.Amount, r.Shares, r.Warning
	d.pending = false
}

// Validate checks the draft against the available balance (nil if unknown).
// The failure, if any, is also kept as the draft error.
func (d *Draft) Validate(balance *Money) error {
	if err := Validate(d.quote, d.amount, d.shares, balance); err != nil {
		d.err = err.(*ValidationError)
		return err
	}
	d.err = nil
	return nil
}

// Submit validates the draft and hands the order to the executor.
//
// An amount still being typed is confirmed first. On success the draft is
// reset and the executed order returned. On failure the draft is kept so that
// the user can correct it.
func (d *Draft) Submit(ctx context.Context, balance *Money, x Executor) (Order, error) {
	if d.pending {
		d.ConfirmAmount()
	}
	if err := d.Validate(balance); err != nil {
		return Order{}, err
	}
	o := NewOrder(d.quote, d.shares, d.amount)
	if err := x.Execute(ctx, o); err != nil {
		return Order{}, fmt.Errorf("cannot execute purchase of %s: %w", d.quote.Symbol(), err)
	}
	d.Reset()
	return o, nil
}

// Snapshot is a display view of a draft.
type Snapshot struct {
	Symbol  string `json:"symbol"`
	Name    string `json:"name,omitempty"`
	Kind    Kind   `json:"kind"`
	Mode    Mode   `json:"mode"`
	Price   string `json:"price,omitempty"`
	Shares  string `json:"shares"`
	Amount  string `json:"amount"`
	Warning string `json:"warning,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Snapshot returns the current display state. Empty inputs are empty strings.
func (d *Draft) Snapshot() Snapshot {
	s := Snapshot{
		Symbol:  d.quote.Symbol(),
		Name:    d.quote.Name(),
		Kind:    d.quote.Kind(),
		Mode:    d.mode,
		Shares:  d.shares.String(),
		Warning: d.warning,
	}
	if d.quote.Priced() {
		s.Price = d.quote.UnitPrice().String()
	}
	if d.amount.IsPositive() {
		s.Amount = d.amount.String()
	}
	if d.err != nil {
		s.Error = d.err.Message
	}
	return s
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(text []byte) (err error) {
	*m, err = ParseMode(string(text))
	return err
}
