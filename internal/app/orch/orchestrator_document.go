package orch

import (
	"codepair/internal/core"
	"codepair/internal/domain"
	"codepair/internal/metrics"
)

// Document updates are last-write-wins: the session field is fully
// replaced, then updateFrame goes to every member except the sender.
// Unknown sessions and non-member senders come back as errors for the
// adapter to log and drop.

func (o *Orchestrator) UpdateCode(sid domain.SessionID, from domain.ConnID, code string, updateFrame core.Frame) error {
	return o.updateDocument(sid, from, "code", updateFrame, func(sess core.SessionService) error {
		return sess.SetCode(from, code)
	})
}

func (o *Orchestrator) UpdateTestCases(sid domain.SessionID, from domain.ConnID, testCases []domain.TestCase, updateFrame core.Frame) error {
	return o.updateDocument(sid, from, "test_cases", updateFrame, func(sess core.SessionService) error {
		return sess.SetTestCases(from, testCases)
	})
}

func (o *Orchestrator) UpdateProblemStatement(sid domain.SessionID, from domain.ConnID, text string, updateFrame core.Frame) error {
	return o.updateDocument(sid, from, "problem_statement", updateFrame, func(sess core.SessionService) error {
		return sess.SetProblemStatement(from, text)
	})
}

func (o *Orchestrator) updateDocument(sid domain.SessionID, from domain.ConnID, field string, updateFrame core.Frame, mutate func(core.SessionService) error) error {
	sess, ok := o.Registry.Get(sid)
	if !ok {
		return core.ErrSessionNotFound
	}
	if err := mutate(sess); err != nil {
		return err
	}
	metrics.DocumentUpdates.WithLabelValues(field).Inc()
	o.applyBackpressure(sess, sess.Broadcast(from, updateFrame))
	return nil
}
