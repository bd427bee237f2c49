package enums

import "fmt"

// MemberRole represents a user's role for a store. The set is open: records
// written with roles this build does not know about are preserved and simply
// fall through to the evaluator's unknown-role branch.
type MemberRole string

const (
	MemberRoleOwner    MemberRole = "owner"
	MemberRoleEmployee MemberRole = "employee"
)

var validMemberRoles = []MemberRole{
	MemberRoleOwner,
	MemberRoleEmployee,
}

// String implements fmt.Stringer.
func (m MemberRole) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MemberRole.
func (m MemberRole) IsValid() bool {
	for _, candidate := range validMemberRoles {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMemberRole converts raw input into a MemberRole.
func ParseMemberRole(value string) (MemberRole, error) {
	for _, candidate := range validMemberRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid member role %q", value)
}
