package enum

import (
	"fmt"
	"strings"
)

// VoteType is the direction of a vote. LIKE/DISLIKE are historical
// synonyms accepted on input and normalized before storage.
type VoteType string

const (
	VoteTypeUp   VoteType = "up"
	VoteTypeDown VoteType = "down"
)

// ParseVoteType normalizes a vote type string to a VoteType value.
func ParseVoteType(s string) (VoteType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "upvote", "like":
		return VoteTypeUp, nil
	case "down", "downvote", "dislike":
		return VoteTypeDown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownVoteType, s)
	}
}

func (t VoteType) String() string {
	return string(t)
}

// VoteTarget identifies which kind of entity a vote applies to.
// Modeling the target as (kind, id) makes a vote that points at
// neither or both of bug/comment unrepresentable.
type VoteTarget string

const (
	VoteTargetBug     VoteTarget = "bug"
	VoteTargetComment VoteTarget = "comment"
)

// ParseVoteTarget normalizes a target kind string.
func ParseVoteTarget(s string) (VoteTarget, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bug":
		return VoteTargetBug, nil
	case "comment":
		return VoteTargetComment, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownVoteTarget, s)
	}
}

func (t VoteTarget) String() string {
	return string(t)
}
