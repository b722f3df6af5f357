package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"codepair/internal/domain"
)

// Document change handlers. Errors out of the orchestrator here are
// expected races with leave/disconnect, so they are logged and dropped
// rather than surfaced.

func (ctl *SignalWSController) handleCodeChange(cid domain.ConnID, data []byte) {
	type payload struct {
		Type      string `json:"type"`
		SessionID string `json:"sessionId"`
		Code      string `json:"code"`
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad code_change payload")
		return
	}

	updateFrame, ok := marshalFrame(struct {
		Type string `json:"type"`
		Code string `json:"code"`
	}{"code_updated", p.Code})
	if !ok {
		return
	}
	if err := ctl.Orch.UpdateCode(domain.SessionID(p.SessionID), cid, p.Code, updateFrame); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("session", p.SessionID).Str("conn", string(cid)).Msg("dropped code_change")
	}
}

func (ctl *SignalWSController) handleTestCaseChange(cid domain.ConnID, data []byte) {
	type payload struct {
		Type      string            `json:"type"`
		SessionID string            `json:"sessionId"`
		TestCases []domain.TestCase `json:"testCases"`
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad test_case_change payload")
		return
	}

	updateFrame, ok := marshalFrame(struct {
		Type      string            `json:"type"`
		TestCases []domain.TestCase `json:"testCases"`
	}{"test_cases_updated", p.TestCases})
	if !ok {
		return
	}
	if err := ctl.Orch.UpdateTestCases(domain.SessionID(p.SessionID), cid, p.TestCases, updateFrame); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("session", p.SessionID).Str("conn", string(cid)).Msg("dropped test_case_change")
	}
}

func (ctl *SignalWSController) handleProblemStatementChange(cid domain.ConnID, data []byte) {
	type payload struct {
		Type             string `json:"type"`
		SessionID        string `json:"sessionId"`
		ProblemStatement string `json:"problemStatement"`
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad problem_statement_change payload")
		return
	}

	updateFrame, ok := marshalFrame(struct {
		Type             string `json:"type"`
		ProblemStatement string `json:"problemStatement"`
	}{"problem_statement_updated", p.ProblemStatement})
	if !ok {
		return
	}
	if err := ctl.Orch.UpdateProblemStatement(domain.SessionID(p.SessionID), cid, p.ProblemStatement, updateFrame); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("session", p.SessionID).Str("conn", string(cid)).Msg("dropped problem_statement_change")
	}
}
