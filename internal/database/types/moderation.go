package types

import (
	"time"

	"github.com/bugboard/bugboard/internal/database/types/enum"
	"github.com/uptrace/bun"
)

// ModerationAction is one entry in the append-only audit trail. The
// core never updates or deletes rows of this table.
type ModerationAction struct {
	bun.BaseModel `bun:"table:moderation_actions"`

	ID              int64           `bun:",pk,autoincrement" json:"id"`
	ModeratorID     int64           `bun:",notnull"          json:"moderatorId"`
	ActionType      enum.ActionType `bun:",notnull"          json:"actionType"`
	TargetUserID    *int64          `bun:",nullzero"         json:"targetUserId,omitempty"`
	TargetBugID     *int64          `bun:",nullzero"         json:"targetBugId,omitempty"`
	TargetCommentID *int64          `bun:",nullzero"         json:"targetCommentId,omitempty"`
	Details         string          `bun:",type:text"        json:"details,omitempty"`
	CreatedAt       time.Time       `bun:",notnull"          json:"createdAt"`
}
