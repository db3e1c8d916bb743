package invest

import "errors"

// Sentinel errors for a purchase that cannot proceed. Validate wraps them in a
// *ValidationError that carries the message to show to the user.
var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidShares       = errors.New("invalid share count")
	ErrBelowMinimum        = errors.New("amount below one share")
	ErrFractionalShares    = errors.New("amount is not a whole number of shares")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// ValidationError is a user correctable purchase error.
type ValidationError struct {
	Err     error  // one of the sentinel errors
	Message string // user facing copy
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(err error, msg string) *ValidationError {
	return &ValidationError{Err: err, Message: msg}
}

// Validate checks whether a purchase of 'amount' (and 'shares' for share-based
// quotes) may proceed given the available balance. A nil balance means it is
// unknown, which never allows a purchase.
//
// Checks run in order and the first failure is returned: the amount itself,
// then its consistency with whole shares, then affordability.
func Validate(q Quote, amount Money, shares Shares, balance *Money) error {
	if !amount.IsPositive() {
		return invalid(ErrInvalidAmount, "please enter a valid amount greater than zero.")
	}

	if q.Priced() {
		price := q.UnitPrice()
		if !shares.IsPositive() {
			return invalid(ErrInvalidShares, "please enter a valid number of shares.")
		}
		if amount.LessThan(price) {
			return invalid(ErrBelowMinimum, MinimumPurchaseMessage(price))
		}
		if !amount.Near(price.Mul(shares)) {
			return invalid(ErrFractionalShares, "the amount must correspond to a whole number of shares.")
		}
	}

	if balance == nil || amount.GreaterThan(*balance) {
		return invalid(ErrInsufficientBalance, "insufficient balance to complete the purchase.")
	}
	return nil
}
