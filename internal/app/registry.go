package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"codepair/internal/core"
	"codepair/internal/domain"
)

// SessionRegistryImpl is the single in-memory authority over live
// sessions. State lives only as long as at least one participant does.
type SessionRegistryImpl struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]core.SessionService
}

func NewSessionRegistry() core.SessionRegistry {
	return &SessionRegistryImpl{sessions: make(map[domain.SessionID]core.SessionService)}
}

func (r *SessionRegistryImpl) GetOrCreate(id domain.SessionID, role domain.Role) (core.SessionService, bool, error) {
	r.mu.RLock()
	sess, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		// Role is per-participant, not per-session: an existing session
		// is handed out regardless of the requested role.
		return sess, false, nil
	}
	if role != domain.RoleInterviewer {
		return nil, false, core.ErrSessionNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	// Re-check under the write lock so two near-simultaneous first
	// joins for the same id converge on one session.
	if sess, ok = r.sessions[id]; ok {
		return sess, false, nil
	}
	sess = core.NewSession(id)
	r.sessions[id] = sess
	log.Info().Str("module", "app.registry").Str("session", string(id)).Msg("created session")
	return sess, true, nil
}

func (r *SessionRegistryImpl) Get(id domain.SessionID) (core.SessionService, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[id]
	return sess, ok
}

func (r *SessionRegistryImpl) RemoveIfEmpty(id domain.SessionID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	if !ok {
		return false
	}
	// A join that raced the last leave keeps the session alive.
	if sess.ParticipantCount() > 0 {
		return false
	}
	delete(r.sessions, id)
	log.Info().Str("module", "app.registry").Str("session", string(id)).Msg("removed empty session")
	return true
}

func (r *SessionRegistryImpl) Snapshot() []core.SessionService {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.SessionService, 0, len(r.sessions))
	for _, sess := range r.sessions {
		out = append(out, sess)
	}
	return out
}

func (r *SessionRegistryImpl) List() []core.SessionInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.SessionInfo, 0, len(r.sessions))
	for id, sess := range r.sessions {
		out = append(out, core.SessionInfo{ID: id, ParticipantCount: sess.ParticipantCount()})
	}
	return out
}
