// Package orch coordinates the session registry, membership lifecycle
// and fan-out paths. Adapters own the wire format; the orchestrator is
// handed ready-to-send frames and decides who receives them.
package orch

import (
	"codepair/internal/app"
	"codepair/internal/core"
)

type Orchestrator struct {
	Registry core.SessionRegistry
	Policy   app.Policy
}

func (o *Orchestrator) applyBackpressure(sess core.SessionService, res core.PublishResult) {
	if o.Policy == nil || len(res.Dropped) == 0 {
		return
	}
	for _, slow := range res.Dropped {
		switch o.Policy.OnBackPressure(sess, slow) {
		case app.KickMember:
			// Closing the signal makes the transport run the normal
			// disconnect path, which converges on leave.
			slow.Signal().Close()
		case app.DropFrame, app.NoAction:
		}
	}
}
