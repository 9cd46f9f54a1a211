package cart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps active session carts in memory, keyed by a minted id.
// Carts are never persisted; a restart gives everyone an empty cart.
type Store struct {
	mu     sync.RWMutex
	carts  map[string]*entry
	maxAge time.Duration
}

type entry struct {
	cart    *Cart
	touched time.Time
}

func NewStore(maxAge time.Duration) *Store {
	return &Store{
		carts:  make(map[string]*entry),
		maxAge: maxAge,
	}
}

// Create mints a new session id with an empty cart behind it.
func (s *Store) Create() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.carts[id] = &entry{cart: New(), touched: time.Now()}
	s.mu.Unlock()
	return id
}

// Get returns the cart for id and refreshes its age.
func (s *Store) Get(id string) (*Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.carts[id]
	if !ok {
		return nil, false
	}
	e.touched = time.Now()
	return e.cart, true
}

// Prune drops carts idle longer than the configured max age.
func (s *Store) Prune(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.carts {
		if now.Sub(e.touched) > s.maxAge {
			delete(s.carts, id)
			n++
		}
	}
	return n
}

// PruneLoop runs Prune on a ticker until ctx is cancelled.
func (s *Store) PruneLoop(ctx context.Context, every time.Duration) {
	tick := time.NewTicker(every)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-tick.C:
			s.Prune(now)
		}
	}
}
