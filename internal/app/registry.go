package app

import (
	"sync"

	"github.com/dkeye/callrelay/internal/core"
	"github.com/dkeye/callrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

// Registry maps a participant id to its live signal connection.
// It knows nothing about sessions.
type Registry struct {
	mu    sync.RWMutex
	conns map[domain.ParticipantID]core.SignalConnection
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[domain.ParticipantID]core.SignalConnection)}
}

// Register binds pid to conn. A previous binding is replaced (reconnect).
func (r *Registry) Register(pid domain.ParticipantID, conn core.SignalConnection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, replaced := r.conns[pid]
	r.conns[pid] = conn
	log.Info().Str("module", "app.registry").Str("participant", string(pid)).Bool("replaced", replaced).Msg("registered connection")
}

func (r *Registry) Lookup(pid domain.ParticipantID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conns[pid]
	return c, ok
}

// Unregister is idempotent.
func (r *Registry) Unregister(pid domain.ParticipantID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[pid]; !ok {
		return
	}
	delete(r.conns, pid)
	log.Info().Str("module", "app.registry").Str("participant", string(pid)).Msg("unregistered connection")
}

func (r *Registry) Participants() []domain.ParticipantID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.ParticipantID, 0, len(r.conns))
	for pid := range r.conns {
		out = append(out, pid)
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
