package invest

import "strconv"

// Shares is a whole number of units of a share-based instrument.
// The zero value means no share count was entered.
type Shares int64

func (s Shares) IsZero() bool     { return s == 0 }
func (s Shares) IsPositive() bool { return s > 0 }

// String returns the decimal count, or "" for the empty count.
func (s Shares) String() string {
	if s == 0 {
		return ""
	}
	return strconv.FormatInt(int64(s), 10)
}

// Noun returns "share" or "shares" to agree with s.
func (s Shares) Noun() string {
	if s == 1 {
		return "share"
	}
	return "shares"
}
