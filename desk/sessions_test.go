package desk

import (
	"testing"
	"time"

	"github.com/etnz/invest"
)

func TestSessions(t *testing.T) {
	s := NewSessions(time.Minute)
	q := invest.NewQuote("PETR4", "Petrobras PN", invest.ShareBased, invest.BRL(32.5))

	id := s.Open(q)
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}

	ok := s.With(id, func(d *invest.Draft) {
		if err := d.EditShares("2"); err != nil {
			t.Errorf("EditShares() unexpected error: %v", err)
		}
	})
	if !ok {
		t.Fatalf("With(%q) = false, want true", id)
	}

	var got invest.Shares
	s.With(id, func(d *invest.Draft) { got = d.Shares() })
	if got != 2 {
		t.Errorf("draft shares = %d, want 2, edits must persist across calls", got)
	}

	if !s.Close(id) {
		t.Errorf("Close(%q) = false, want true", id)
	}
	if s.Close(id) {
		t.Errorf("second Close(%q) = true, want false", id)
	}
	if s.With(id, func(*invest.Draft) { t.Error("f called on a closed draft") }) {
		t.Errorf("With() on a closed draft = true, want false")
	}
}

func TestSessions_Expire(t *testing.T) {
	s := NewSessions(20 * time.Millisecond)
	id := s.Open(invest.NewQuote("PETR4", "", invest.ShareBased, invest.BRL(32.5)))
	time.Sleep(50 * time.Millisecond)
	if s.With(id, func(*invest.Draft) {}) {
		t.Errorf("With() on an expired draft = true, want false")
	}
}
