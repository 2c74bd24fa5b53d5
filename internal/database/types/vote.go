package types

import (
	"time"

	"github.com/bugboard/bugboard/internal/database/types/enum"
	"github.com/uptrace/bun"
)

// Vote is a single user's vote on one target. The (voter, kind, id)
// triple is unique; resubmitting switches the type in place.
type Vote struct {
	bun.BaseModel `bun:"table:votes"`

	ID         int64           `bun:",pk,autoincrement" json:"id"`
	VoterID    int64           `bun:",notnull"          json:"voterId"`
	TargetKind enum.VoteTarget `bun:",notnull"          json:"targetKind"`
	TargetID   int64           `bun:",notnull"          json:"targetId"`
	Type       enum.VoteType   `bun:",notnull"          json:"type"`
	CreatedAt  time.Time       `bun:",notnull"          json:"createdAt"`
}

// CountValue is the vote's contribution to a target's derived vote
// count: +1 for an upvote, -1 for a downvote.
func (v *Vote) CountValue() int {
	switch v.Type {
	case enum.VoteTypeUp:
		return 1
	case enum.VoteTypeDown:
		return -1
	default:
		return 0
	}
}
