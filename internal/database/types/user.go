package types

import (
	"time"

	"github.com/bugboard/bugboard/internal/database/types/enum"
	"github.com/uptrace/bun"
)

// User represents a board member.
//
// Score is a running cache of the per-vote contributions against the
// user's bugs and comments. It is mutated only by the vote engine and
// the cascade reversal paths; a SQL NULL is treated as zero.
type User struct {
	bun.BaseModel `bun:"table:users"`

	ID           int64     `bun:",pk,autoincrement" json:"id"`
	Username     string    `bun:",notnull,unique"   json:"username"`
	Email        string    `bun:",notnull"          json:"email"`
	Phone        string    `bun:""                  json:"phone,omitempty"`
	PasswordHash string    `bun:",notnull"          json:"-"`
	Role         enum.Role `bun:",notnull"          json:"role"`
	Score        *float64  `bun:",nullzero"         json:"score"`
	Banned       bool      `bun:",notnull,default:false" json:"banned"`
	CreatedAt    time.Time `bun:",notnull"          json:"createdAt"`
}

// CurrentScore returns the cached score, treating NULL as zero.
func (u *User) CurrentScore() float64 {
	if u.Score == nil {
		return 0
	}

	return *u.Score
}

// IsModerator reports whether the user holds the moderator role.
func (u *User) IsModerator() bool {
	return u.Role == enum.RoleModerator
}
