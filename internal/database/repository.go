package database

import (
	"github.com/bugboard/bugboard/internal/database/models"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	user       *models.UserModel
	bug        *models.BugModel
	comment    *models.CommentModel
	vote       *models.VoteModel
	tag        *models.TagModel
	moderation *models.ModerationModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(logger *zap.Logger) *Repository {
	return &Repository{
		user:       models.NewUser(logger),
		bug:        models.NewBug(logger),
		comment:    models.NewComment(logger),
		vote:       models.NewVote(logger),
		tag:        models.NewTag(logger),
		moderation: models.NewModeration(logger),
	}
}

// User returns the user model repository.
func (r *Repository) User() *models.UserModel {
	return r.user
}

// Bug returns the bug model repository.
func (r *Repository) Bug() *models.BugModel {
	return r.bug
}

// Comment returns the comment model repository.
func (r *Repository) Comment() *models.CommentModel {
	return r.comment
}

// Vote returns the vote model repository.
func (r *Repository) Vote() *models.VoteModel {
	return r.vote
}

// Tag returns the tag model repository.
func (r *Repository) Tag() *models.TagModel {
	return r.tag
}

// Moderation returns the moderation audit model repository.
func (r *Repository) Moderation() *models.ModerationModel {
	return r.moderation
}
