package orch

import (
	"codepair/internal/core"
	"codepair/internal/domain"
	"codepair/internal/metrics"
)

// RelayActivity fans activityFrame out to the interviewer-role members
// of sid, sender excluded. Pure pass-through: canonical state is never
// touched and delivery is fire-and-forget, so backpressure drops are
// counted but not escalated to the policy.
func (o *Orchestrator) RelayActivity(sid domain.SessionID, from domain.ConnID, activityFrame core.Frame) error {
	sess, ok := o.Registry.Get(sid)
	if !ok {
		return core.ErrSessionNotFound
	}
	if !sess.HasMember(from) {
		return core.ErrStaleMembership
	}
	res := sess.RelayToInterviewers(from, activityFrame)
	metrics.ActivityRelayed.Inc()
	if n := len(res.Dropped); n > 0 {
		metrics.ActivityDropped.Add(float64(n))
	}
	return nil
}
