package domain

import "strings"

// Role labels as stored by the school backend.
const (
	RoleAdmin   = "ROLE_ADMIN"
	RoleTeacher = "ROLE_TEACHER"
	RoleStudent = "ROLE_STUDENT"
	RoleParent  = "ROLE_PARENT"
)

// RoleUnknown is displayed while the account-type lookup is pending or failed.
const RoleUnknown = "UNKNOWN"

// DisplayRole converts a stored role label to its display form by stripping
// the ROLE_ prefix: "ROLE_ADMIN" -> "ADMIN". Empty or malformed labels
// degrade to RoleUnknown rather than failing the render.
func DisplayRole(role string) string {
	if role == "" {
		return RoleUnknown
	}
	return strings.TrimPrefix(role, "ROLE_")
}

// ValidRole reports whether role is one of the four known labels.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleParent:
		return true
	}
	return false
}
