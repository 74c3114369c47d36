package convo

import "strings"

// Role is the caller's permission class. It gates which response and
// suggestion variants are eligible.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// ParseRole maps a caller-supplied role string onto a known Role.
// Unrecognized values degrade to RoleStudent; the second return value
// tells the caller whether the input was recognized so it can emit an
// unknown-role signal.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleTeacher:
		return RoleTeacher, true
	case RoleStudent:
		return RoleStudent, true
	default:
		return RoleStudent, false
	}
}
