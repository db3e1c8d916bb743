package desk

import (
	"sync"
	"time"

	"github.com/etnz/invest"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// session is one open draft. Requests on the same draft are serialized.
type session struct {
	mu    sync.Mutex
	draft *invest.Draft
}

// Sessions stores the open drafts by id. Idle drafts expire, like a purchase
// modal left open.
type Sessions struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewSessions returns a store where drafts expire after ttl without access.
func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{cache: cache.New(ttl, ttl/2), ttl: ttl}
}

// Open stores a new draft for q and returns its id.
func (s *Sessions) Open(q invest.Quote) string {
	id := uuid.NewString()
	s.cache.Set(id, &session{draft: invest.NewDraft(q)}, s.ttl)
	return id
}

// With runs f on the draft 'id', holding its lock, and extends its life.
// It returns false if there is no such draft.
func (s *Sessions) With(id string, f func(d *invest.Draft)) bool {
	v, ok := s.cache.Get(id)
	if !ok {
		return false
	}
	// touch
	s.cache.Set(id, v, s.ttl)
	sess := v.(*session)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	f(sess.draft)
	return true
}

// Close discards a draft. It returns false if there was none.
func (s *Sessions) Close(id string) bool {
	if _, ok := s.cache.Get(id); !ok {
		return false
	}
	s.cache.Delete(id)
	return true
}

// Len returns the number of open drafts.
func (s *Sessions) Len() int { return s.cache.ItemCount() }
