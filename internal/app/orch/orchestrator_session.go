package orch

import (
	"github.com/rs/zerolog/log"

	"codepair/internal/core"
	"codepair/internal/domain"
	"codepair/internal/metrics"
)

// Join resolves or creates the session per the membership policy, adds
// the connection and announces it to the other members with joinedFrame.
// added=false means a duplicate join was ignored.
func (o *Orchestrator) Join(sid domain.SessionID, cid domain.ConnID, role domain.Role, ps core.ParticipantSession, joinedFrame core.Frame) (core.Snapshot, bool, error) {
	sess, created, err := o.Registry.GetOrCreate(sid, role)
	if err != nil {
		return core.Snapshot{}, false, err
	}
	if created {
		metrics.SessionsCreated.Inc()
		metrics.ActiveSessions.Inc()
	}
	snap, added := sess.Join(cid, ps)
	if !added {
		return snap, false, nil
	}
	metrics.ConnectedParticipants.Inc()
	o.applyBackpressure(sess, sess.Broadcast(cid, joinedFrame))
	return snap, true, nil
}

// Leave removes the connection from sid, announces it with leftFrame and
// tears the session down when the membership reaches zero.
func (o *Orchestrator) Leave(sid domain.SessionID, cid domain.ConnID, leftFrame core.Frame) bool {
	sess, ok := o.Registry.Get(sid)
	if !ok {
		log.Warn().Str("module", "orch").Str("session", string(sid)).Str("conn", string(cid)).Msg("leave for unknown session")
		return false
	}
	return o.leaveSession(sess, cid, leftFrame)
}

// Disconnect runs the leave path for every session the connection still
// belongs to. One session per connection is the common case but not an
// assumption. Returns how many sessions were left.
func (o *Orchestrator) Disconnect(cid domain.ConnID, leftFrame core.Frame) int {
	left := 0
	for _, sess := range o.Registry.Snapshot() {
		if o.leaveSession(sess, cid, leftFrame) {
			left++
		}
	}
	if left > 0 {
		log.Info().Str("module", "orch").Str("conn", string(cid)).Int("sessions", left).Msg("disconnect cleanup")
	}
	return left
}

func (o *Orchestrator) leaveSession(sess core.SessionService, cid domain.ConnID, leftFrame core.Frame) bool {
	removed, remaining := sess.Leave(cid)
	if !removed {
		return false
	}
	metrics.ConnectedParticipants.Dec()
	if remaining > 0 {
		o.applyBackpressure(sess, sess.Broadcast(cid, leftFrame))
		return true
	}
	if o.Registry.RemoveIfEmpty(sess.ID()) {
		metrics.ActiveSessions.Dec()
	}
	return true
}
