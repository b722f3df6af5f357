package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"codepair/internal/core"
	"codepair/internal/domain"
	"codepair/internal/metrics"
)

// handleCandidateActivity relays an opaque activity event to the
// interviewers of its session. The payload is forwarded as received —
// it already carries type and sessionId — so unknown telemetry fields
// survive the hop untouched.
func (ctl *SignalWSController) handleCandidateActivity(cid domain.ConnID, data []byte) {
	var p map[string]any
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad candidate_activity payload")
		return
	}
	sid, _ := p["sessionId"].(string)
	if sid == "" {
		// Unattributed activity is never guessed onto a session.
		log.Warn().Str("module", "signal").Str("conn", string(cid)).Msg("candidate_activity without session id")
		metrics.ActivityDropped.Inc()
		return
	}
	if !ctl.limiter.Allow(cid) {
		metrics.ActivityDropped.Inc()
		return
	}
	if err := ctl.Orch.RelayActivity(domain.SessionID(sid), cid, core.Frame(data)); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("session", sid).Str("conn", string(cid)).Msg("dropped candidate_activity")
	}
}
