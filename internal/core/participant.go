package core

import "codepair/internal/domain"

// participantSession implements ParticipantSession by pairing role + transport.
type participantSession struct {
	role domain.Role
	conn SignalConnection
}

func NewParticipantSession(role domain.Role, conn SignalConnection) ParticipantSession {
	return &participantSession{role: role, conn: conn}
}

func (p *participantSession) Role() domain.Role        { return p.role }
func (p *participantSession) Signal() SignalConnection { return p.conn }
