package invest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Order is a validated purchase, ready to be executed.
type Order struct {
	ID     string    // unique order identifier
	Symbol string    // instrument symbol
	Kind   Kind      // instrument kind
	Shares Shares    // zero for fixed-income instruments
	Amount Money     // amount to charge
	Time   time.Time // creation time
}

// NewOrder creates an order for a validated draft.
func NewOrder(q Quote, shares Shares, amount Money) Order {
	return Order{
		ID:     uuid.NewString(),
		Symbol: q.Symbol(),
		Kind:   q.Kind(),
		Shares: shares,
		Amount: amount,
		Time:   time.Now().UTC(),
	}
}

// MarshalJSON implements the json.Marshaler interface for Order.
func (o Order) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", o.ID)
	w.Time("time", o.Time)
	w.Append("symbol", o.Symbol)
	w.Append("kind", o.Kind)
	w.Optional("shares", o.Shares)
	w.Append("amount", o.Amount)
	w.Optional("currency", o.Amount.Currency())
	return w.MarshalJSON()
}

// Executor executes purchases. It is the boundary with the backend that
// actually moves money.
type Executor interface {
	Execute(ctx context.Context, o Order) error
}

// OrderLog is an Executor that appends orders to a JSONL stream, one order per line.
type OrderLog struct {
	mu sync.Mutex
	w  io.Writer
}

// NewOrderLog returns an OrderLog writing to w.
func NewOrderLog(w io.Writer) *OrderLog { return &OrderLog{w: w} }

func (l *OrderLog) Execute(ctx context.Context, o Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	line, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("cannot encode order %s: %w", o.ID, err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.w.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("cannot write order %s: %w", o.ID, err)
	}
	return nil
}
