package enum

import (
	"fmt"
	"strings"
)

// Role determines what a user account is allowed to do. Moderators
// can act on other users' content and manage bans.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
)

// ParseRole normalizes a role string.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser, nil
	case "moderator", "mod":
		return RoleModerator, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

func (r Role) String() string {
	return string(r)
}
