package types

import (
	"time"

	"github.com/uptrace/bun"
)

// Comment represents a comment on a bug. At most one comment per bug
// carries Accepted, set only through the accept-comment operation.
type Comment struct {
	bun.BaseModel `bun:"table:comments"`

	ID        int64     `bun:",pk,autoincrement"      json:"id"`
	BugID     int64     `bun:",notnull"               json:"bugId"`
	AuthorID  int64     `bun:",notnull"               json:"authorId"`
	Text      string    `bun:",notnull,type:text"     json:"text"`
	Image     string    `bun:""                       json:"image,omitempty"`
	Accepted  bool      `bun:",notnull,default:false" json:"accepted"`
	CreatedAt time.Time `bun:",notnull"               json:"createdAt"`

	Author *User `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`

	// VoteCount is derived from live votes (+1 per upvote, -1 per
	// downvote) and never persisted.
	VoteCount int `bun:"-" json:"voteCount"`
}
