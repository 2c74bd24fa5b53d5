package types

import (
	"time"

	"github.com/bugboard/bugboard/internal/database/types/enum"
	"github.com/uptrace/bun"
)

// Bug represents a reported bug. Bugs start in the received state and
// only ever move forward through the lifecycle.
type Bug struct {
	bun.BaseModel `bun:"table:bugs"`

	ID                int64          `bun:",pk,autoincrement" json:"id"`
	AuthorID          int64          `bun:",notnull"          json:"authorId"`
	Title             string         `bun:",notnull"          json:"title"`
	Description       string         `bun:",type:text"        json:"description"`
	Image             string         `bun:""                  json:"image,omitempty"`
	Status            enum.BugStatus `bun:",notnull"          json:"status"`
	AcceptedCommentID *int64         `bun:",nullzero"         json:"acceptedCommentId,omitempty"`
	CreatedAt         time.Time      `bun:",notnull"          json:"createdAt"`

	Author *User  `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
	Tags   []*Tag `bun:"m2m:bug_tags,join:Bug=Tag"        json:"tags,omitempty"`
}
