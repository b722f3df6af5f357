package core

import (
	"sync"

	"github.com/rs/zerolog/log"

	"codepair/internal/domain"
)

// sessionImpl is a threadsafe in-memory session.
// It never closes adapter-owned resources.
type sessionImpl struct {
	id domain.SessionID

	mu           sync.RWMutex
	participants map[domain.ConnID]ParticipantSession

	code             string
	testCases        []domain.TestCase
	problemStatement string
}

func NewSession(id domain.SessionID) SessionService {
	return &sessionImpl{
		id:           id,
		participants: make(map[domain.ConnID]ParticipantSession),
		testCases:    []domain.TestCase{},
	}
}

func (s *sessionImpl) ID() domain.SessionID { return s.id }

func (s *sessionImpl) ParticipantCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.participants)
}

func (s *sessionImpl) ParticipantsSnapshot() []ParticipantInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ParticipantInfo, 0, len(s.participants))
	for cid, ps := range s.participants {
		out = append(out, ParticipantInfo{ID: cid, Role: ps.Role()})
	}
	return out
}

func (s *sessionImpl) HasMember(cid domain.ConnID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.participants[cid]
	return ok
}

func (s *sessionImpl) Join(cid domain.ConnID, ps ParticipantSession) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.participants[cid]; ok {
		// Duplicate join, usually a client-side retry. Membership is
		// untouched and the stored role wins.
		log.Debug().Str("module", "core.session").Str("session", string(s.id)).Str("conn", string(cid)).Msg("duplicate join ignored")
		return s.snapshotLocked(existing.Role()), false
	}
	s.participants[cid] = ps
	log.Info().Str("module", "core.session").Str("session", string(s.id)).Str("conn", string(cid)).Str("role", string(ps.Role())).Int("count", len(s.participants)).Msg("participant joined")
	return s.snapshotLocked(ps.Role()), true
}

func (s *sessionImpl) snapshotLocked(role domain.Role) Snapshot {
	return Snapshot{
		SessionID:        s.id,
		Role:             role,
		Code:             s.code,
		TestCases:        s.testCases,
		ProblemStatement: s.problemStatement,
	}
}

func (s *sessionImpl) Leave(cid domain.ConnID) (bool, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.participants[cid]; !ok {
		return false, len(s.participants)
	}
	delete(s.participants, cid)
	log.Info().Str("module", "core.session").Str("session", string(s.id)).Str("conn", string(cid)).Int("count", len(s.participants)).Msg("participant left")
	return true, len(s.participants)
}

func (s *sessionImpl) SetCode(from domain.ConnID, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.participants[from]; !ok {
		return ErrStaleMembership
	}
	s.code = code
	return nil
}

func (s *sessionImpl) SetTestCases(from domain.ConnID, testCases []domain.TestCase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.participants[from]; !ok {
		return ErrStaleMembership
	}
	if testCases == nil {
		testCases = []domain.TestCase{}
	}
	s.testCases = testCases
	return nil
}

func (s *sessionImpl) SetProblemStatement(from domain.ConnID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.participants[from]; !ok {
		return ErrStaleMembership
	}
	s.problemStatement = text
	return nil
}

func (s *sessionImpl) Broadcast(from domain.ConnID, data Frame) PublishResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := PublishResult{}
	for cid, ps := range s.participants {
		if cid == from {
			continue
		}
		if err := ps.Signal().TrySend(data); err != nil {
			res.Dropped = append(res.Dropped, ps)
			continue
		}
		res.SentTo++
	}
	log.Debug().Str("module", "core.session").Str("session", string(s.id)).Str("from", string(from)).Int("sent_to", res.SentTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}

func (s *sessionImpl) RelayToInterviewers(from domain.ConnID, data Frame) PublishResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := PublishResult{}
	for cid, ps := range s.participants {
		if cid == from || ps.Role() != domain.RoleInterviewer {
			continue
		}
		if err := ps.Signal().TrySend(data); err != nil {
			res.Dropped = append(res.Dropped, ps)
			continue
		}
		res.SentTo++
	}
	return res
}
