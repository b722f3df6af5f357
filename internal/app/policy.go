package app

import "codepair/internal/core"

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	DropFrame
	KickMember
)

// Policy decides what happens to a recipient whose send buffer is full
// during a canonical-state broadcast.
type Policy interface {
	OnBackPressure(sess core.SessionService, member core.ParticipantSession) BackpressureAction
}

// SimplePolicy drops the frame for the slow recipient only. Everyone
// else still gets the update and the member stays in the session.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(sess core.SessionService, member core.ParticipantSession) BackpressureAction {
	return DropFrame
}

// KickPolicy disconnects slow members instead; the transport teardown
// then drives the normal leave path.
type KickPolicy struct{}

func (KickPolicy) OnBackPressure(sess core.SessionService, member core.ParticipantSession) BackpressureAction {
	return KickMember
}
