package signal

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"codepair/internal/core"
	"codepair/internal/domain"
)

func (ctl *SignalWSController) handleJoinSession(cid domain.ConnID, conn *WsSignalConn, data []byte) {
	type joinPayload struct {
		Type      string `json:"type"`
		SessionID string `json:"sessionId"`
		Role      string `json:"role"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendSessionError(conn, "bad payload")
		return
	}
	if p.SessionID == "" || len(p.SessionID) > domain.MaxSessionIDLen {
		ctl.sendSessionError(conn, "invalid session id")
		return
	}
	role, err := domain.ParseRole(p.Role)
	if err != nil {
		ctl.sendSessionError(conn, fmt.Sprintf("invalid role: %q", p.Role))
		return
	}

	sid := domain.SessionID(p.SessionID)
	joinedFrame, ok := marshalFrame(struct {
		Type string      `json:"type"`
		Role domain.Role `json:"role"`
	}{"participant_joined", role})
	if !ok {
		return
	}

	ps := core.NewParticipantSession(role, conn)
	snap, added, err := ctl.Orch.Join(sid, cid, role, ps, joinedFrame)
	if err != nil {
		if errors.Is(err, core.ErrSessionNotFound) {
			log.Info().Str("module", "signal").Str("session", p.SessionID).Str("conn", string(cid)).Msg("interviewee join on unknown session")
			ctl.sendSessionError(conn, fmt.Sprintf("Invalid session ID: %s. This session does not exist.", p.SessionID))
			return
		}
		log.Error().Err(err).Str("module", "signal").Str("session", p.SessionID).Msg("join failed")
		ctl.sendSessionError(conn, "join failed")
		return
	}
	if !added {
		// Client-side retry; the first join already answered.
		return
	}

	resp := struct {
		Type             string            `json:"type"`
		SessionID        domain.SessionID  `json:"sessionId"`
		Role             domain.Role       `json:"role"`
		Code             string            `json:"code"`
		TestCases        []domain.TestCase `json:"testCases"`
		ProblemStatement string            `json:"problemStatement"`
	}{
		Type:             "session_state",
		SessionID:        snap.SessionID,
		Role:             snap.Role,
		Code:             snap.Code,
		TestCases:        snap.TestCases,
		ProblemStatement: snap.ProblemStatement,
	}
	ctl.sendJSON(conn, resp)
}

func (ctl *SignalWSController) handleLeaveSession(cid domain.ConnID, data []byte) {
	type leavePayload struct {
		Type      string `json:"type"`
		SessionID string `json:"sessionId"`
	}
	var p leavePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad leave payload")
		return
	}

	leftFrame, ok := marshalFrame(participantLeftEvent{Type: "participant_left", ID: cid})
	if !ok {
		return
	}
	// No direct reply: leaving is acknowledged by silence, remaining
	// members get participant_left.
	ctl.Orch.Leave(domain.SessionID(p.SessionID), cid, leftFrame)
}
