package quiz

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps live sessions in memory. Sessions idle for longer than the TTL are
// dropped lazily on the next access; there is no background sweeper.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*storeEntry
	ttl      time.Duration
	now      func() time.Time
}

type storeEntry struct {
	session *Session
	touched time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*storeEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (st *Store) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sweepLocked()
	st.sessions[s.ID()] = &storeEntry{session: s, touched: st.now()}
}

// Get returns a live session and refreshes its idle timer.
func (st *Store) Get(id uuid.UUID) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	e, ok := st.sessions[id]
	if !ok || st.expired(e) {
		delete(st.sessions, id)
		return nil, ErrSessionNotFound
	}
	e.touched = st.now()
	return e.session, nil
}

// Delete discards a session. Deleting an unknown id is a no-op.
func (st *Store) Delete(id uuid.UUID) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Len counts stored sessions, including expired ones not yet swept.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

func (st *Store) expired(e *storeEntry) bool {
	return st.ttl > 0 && st.now().Sub(e.touched) > st.ttl
}

func (st *Store) sweepLocked() {
	for id, e := range st.sessions {
		if st.expired(e) {
			delete(st.sessions, id)
		}
	}
}
