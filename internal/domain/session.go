package domain

type (
	// SessionID is the caller-supplied key of a live session.
	SessionID string
	// ConnID identifies one live connection. Assigned by the transport
	// on upgrade, not stable across reconnects.
	ConnID string
)

const MaxSessionIDLen = 64
