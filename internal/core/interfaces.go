package core

import "codepair/internal/domain"

// Frame is a marshaled wire payload, ready to hand to a transport.
type Frame []byte

// SignalConnection abstracts a system messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// ParticipantSession binds a declared role and its transport endpoint.
// This is what a session stores and fans out to.
type ParticipantSession interface {
	Role() domain.Role
	Signal() SignalConnection
}

// Snapshot is the full canonical state handed to a joining connection.
type Snapshot struct {
	SessionID        domain.SessionID
	Role             domain.Role
	Code             string
	TestCases        []domain.TestCase
	ProblemStatement string
}

// ParticipantInfo is a read-only membership view (no transport fields).
type ParticipantInfo struct {
	ID   domain.ConnID `json:"id"`
	Role domain.Role   `json:"role"`
}

// PublishResult reports delivery stats/backpressure to the orchestrator.
type PublishResult struct {
	SentTo  int
	Dropped []ParticipantSession
}

// SessionService is the core-facing API of one live session.
// It owns the membership set and the shared document but never touches
// transport resources beyond TrySend.
type SessionService interface {
	ID() domain.SessionID
	ParticipantCount() int
	ParticipantsSnapshot() []ParticipantInfo
	HasMember(cid domain.ConnID) bool

	// Join is idempotent: a second call for the same ConnID is a no-op
	// and reports added=false.
	Join(cid domain.ConnID, ps ParticipantSession) (snap Snapshot, added bool)
	// Leave reports whether the ConnID was actually a member and how
	// many participants remain.
	Leave(cid domain.ConnID) (removed bool, remaining int)

	// Document writes are last-write-wins full replacements. A write
	// from a ConnID that is not a current member fails with
	// ErrStaleMembership.
	SetCode(from domain.ConnID, code string) error
	SetTestCases(from domain.ConnID, testCases []domain.TestCase) error
	SetProblemStatement(from domain.ConnID, text string) error

	// Broadcast sends to every member except from.
	Broadcast(from domain.ConnID, data Frame) PublishResult
	// RelayToInterviewers sends to every interviewer-role member except
	// from. It never touches canonical state.
	RelayToInterviewers(from domain.ConnID, data Frame) PublishResult
}

type SessionInfo struct {
	ID               domain.SessionID `json:"id"`
	ParticipantCount int              `json:"participant_count"`
}

// SessionRegistry owns the session table and its lifecycle.
type SessionRegistry interface {
	// GetOrCreate returns the session for id, creating it when the
	// requester is an interviewer. An interviewee asking for an unknown
	// id gets ErrSessionNotFound.
	GetOrCreate(id domain.SessionID, role domain.Role) (sess SessionService, created bool, err error)
	Get(id domain.SessionID) (SessionService, bool)
	// RemoveIfEmpty drops the registry entry unless a concurrent join
	// repopulated it.
	RemoveIfEmpty(id domain.SessionID) bool
	Snapshot() []SessionService
	List() []SessionInfo
}
