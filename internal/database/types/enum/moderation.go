package enum

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors for the enum package.
var (
	ErrUnknownRole       = errors.New("unknown role")
	ErrUnknownBugStatus  = errors.New("unknown bug status")
	ErrUnknownVoteType   = errors.New("unknown vote type")
	ErrUnknownVoteTarget = errors.New("unknown vote target")
	ErrUnknownActionType = errors.New("unknown moderation action type")
)

// ActionType classifies an entry in the moderation audit trail.
type ActionType string

const (
	ActionTypeBanUser       ActionType = "ban_user"
	ActionTypeUnbanUser     ActionType = "unban_user"
	ActionTypeRemoveBug     ActionType = "remove_bug"
	ActionTypeEditBug       ActionType = "edit_bug"
	ActionTypeRemoveComment ActionType = "remove_comment"
	ActionTypeEditComment   ActionType = "edit_comment"
)

// ParseActionType normalizes an action type string.
func ParseActionType(s string) (ActionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ban_user":
		return ActionTypeBanUser, nil
	case "unban_user":
		return ActionTypeUnbanUser, nil
	case "remove_bug":
		return ActionTypeRemoveBug, nil
	case "edit_bug":
		return ActionTypeEditBug, nil
	case "remove_comment":
		return ActionTypeRemoveComment, nil
	case "edit_comment":
		return ActionTypeEditComment, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownActionType, s)
	}
}

func (t ActionType) String() string {
	return string(t)
}
