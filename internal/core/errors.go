package core

import "errors"

var (
	// ErrSessionNotFound: an interviewee asked for a session id nobody
	// created. Surfaced to the caller, never silently created.
	ErrSessionNotFound = errors.New("session not found")
	// ErrStaleMembership: a message arrived from a connection that is no
	// longer a member, usually a race with leave/disconnect. Dropped and
	// logged, never surfaced.
	ErrStaleMembership = errors.New("sender is not a session member")
)
