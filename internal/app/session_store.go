package app

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dkeye/callrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

// sessionEntry owns one session and the lock serializing its mutations.
type sessionEntry struct {
	mu      sync.RWMutex
	session *domain.Session
	// ended is set under mu once the last participant is gone.
	ended atomic.Bool
}

// SessionStore holds live sessions and the participant -> session index.
// Lock order: sessionEntry.mu, then SessionStore.mu.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*sessionEntry
	memberOf map[domain.ParticipantID]domain.SessionID
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[domain.SessionID]*sessionEntry),
		memberOf: make(map[domain.ParticipantID]domain.SessionID),
	}
}

// Create inserts s unless a live session already uses its id.
func (st *SessionStore) Create(s *domain.Session) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if e, ok := st.sessions[s.ID]; ok && !e.ended.Load() {
		return fmt.Errorf("%w: session %s", domain.ErrAlreadyExists, s.ID)
	}
	st.sessions[s.ID] = &sessionEntry{session: s}
	log.Info().Str("module", "app.sessions").Str("session", string(s.ID)).Int("capacity", s.Capacity).Msg("session created")
	return nil
}

func (st *SessionStore) entry(id domain.SessionID) (*sessionEntry, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	e, ok := st.sessions[id]
	return e, ok
}

// Tx is the view a mutation runs against while the session is locked.
type Tx struct {
	Session *domain.Session
	store   *SessionStore
}

// Bind records pid as a member of the session in the reverse index,
// overwriting any previous session for pid.
func (tx *Tx) Bind(pid domain.ParticipantID) {
	tx.store.mu.Lock()
	prev, had := tx.store.memberOf[pid]
	tx.store.memberOf[pid] = tx.Session.ID
	tx.store.mu.Unlock()
	if had && prev != tx.Session.ID {
		log.Warn().Str("module", "app.sessions").Str("participant", string(pid)).
			Str("from", string(prev)).Str("to", string(tx.Session.ID)).Msg("participant index moved without leave")
	}
}

// Unbind drops pid from the reverse index if it still points at this session.
func (tx *Tx) Unbind(pid domain.ParticipantID) {
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	if tx.store.memberOf[pid] == tx.Session.ID {
		delete(tx.store.memberOf, pid)
	}
}

// Update runs fn with the session write-locked. A session left empty after
// fn returns is removed from the store and ended is reported true.
func (st *SessionStore) Update(id domain.SessionID, fn func(tx *Tx) error) (ended bool, err error) {
	e, ok := st.entry(id)
	if !ok {
		return false, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ended.Load() {
		return false, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	if err := fn(&Tx{Session: e.session, store: st}); err != nil {
		return false, err
	}
	if !e.session.Empty() {
		return false, nil
	}
	e.ended.Store(true)
	st.mu.Lock()
	if st.sessions[id] == e {
		delete(st.sessions, id)
	}
	st.mu.Unlock()
	log.Info().Str("module", "app.sessions").Str("session", string(id)).Msg("session ended")
	return true, nil
}

// View runs fn with the session read-locked.
func (st *SessionStore) View(id domain.SessionID, fn func(s *domain.Session) error) error {
	e, ok := st.entry(id)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.ended.Load() {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return fn(e.session)
}

// Get returns a copy of the session.
func (st *SessionStore) Get(id domain.SessionID) (domain.Session, bool) {
	var out domain.Session
	err := st.View(id, func(s *domain.Session) error {
		out = s.Clone()
		return nil
	})
	return out, err == nil
}

// SessionOf reads the reverse index.
func (st *SessionStore) SessionOf(pid domain.ParticipantID) (domain.SessionID, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	sid, ok := st.memberOf[pid]
	return sid, ok
}

// List returns copies of all live sessions.
func (st *SessionStore) List() []domain.Session {
	st.mu.RLock()
	entries := make([]*sessionEntry, 0, len(st.sessions))
	for _, e := range st.sessions {
		entries = append(entries, e)
	}
	st.mu.RUnlock()

	out := make([]domain.Session, 0, len(entries))
	for _, e := range entries {
		e.mu.RLock()
		if !e.ended.Load() {
			out = append(out, e.session.Clone())
		}
		e.mu.RUnlock()
	}
	return out
}

func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
