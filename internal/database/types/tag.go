package types

import (
	"github.com/uptrace/bun"
)

// Tag is a label that can be attached to bugs.
type Tag struct {
	bun.BaseModel `bun:"table:tags"`

	ID   int64  `bun:",pk,autoincrement" json:"id"`
	Name string `bun:",notnull,unique"   json:"name"`
}

// BugTag is the bug/tag association row.
type BugTag struct {
	bun.BaseModel `bun:"table:bug_tags"`

	BugID int64 `bun:",pk" json:"bugId"`
	TagID int64 `bun:",pk" json:"tagId"`

	Bug *Bug `bun:"rel:belongs-to,join:bug_id=id" json:"-"`
	Tag *Tag `bun:"rel:belongs-to,join:tag_id=id" json:"-"`
}
