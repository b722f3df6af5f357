// Package domain contains entity without logic, just meta-data
package domain

import "errors"

var ErrUnknownRole = errors.New("unknown role")

// Role is a closed two-value set. Clients declare it once at join time
// and it is never renegotiated for that connection.
type Role string

const (
	RoleInterviewer Role = "interviewer"
	RoleInterviewee Role = "interviewee"
)

// ParseRole is the only way a wire string becomes a Role, so adapters
// can never carry an illegal role past the boundary.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleInterviewer, RoleInterviewee:
		return Role(s), nil
	}
	return "", ErrUnknownRole
}
