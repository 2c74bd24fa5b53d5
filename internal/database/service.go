package database

import (
	"github.com/bugboard/bugboard/internal/database/service"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Service provides access to all business logic services.
type Service struct {
	user       *service.UserService
	bug        *service.BugService
	comment    *service.CommentService
	vote       *service.VoteService
	moderation *service.ModerationService
}

// NewService creates a new service instance with all services.
func NewService(db *bun.DB, repository *Repository, notifier service.Notifier, logger *zap.Logger) *Service {
	userModel := repository.User()
	bugModel := repository.Bug()
	commentModel := repository.Comment()
	voteModel := repository.Vote()
	tagModel := repository.Tag()
	moderationModel := repository.Moderation()

	bugService := service.NewBug(db, bugModel, userModel, commentModel, voteModel, tagModel, logger)
	commentService := service.NewComment(db, commentModel, bugModel, userModel, voteModel, logger)

	return &Service{
		user:       service.NewUser(db, userModel, logger),
		bug:        bugService,
		comment:    commentService,
		vote:       service.NewVote(db, voteModel, userModel, bugModel, commentModel, logger),
		moderation: service.NewModeration(db, userModel, moderationModel, bugService, commentService, notifier, logger),
	}
}

// User returns the user service.
func (s *Service) User() *service.UserService {
	return s.user
}

// Bug returns the bug service.
func (s *Service) Bug() *service.BugService {
	return s.bug
}

// Comment returns the comment service.
func (s *Service) Comment() *service.CommentService {
	return s.comment
}

// Vote returns the vote service.
func (s *Service) Vote() *service.VoteService {
	return s.vote
}

// Moderation returns the moderation service.
func (s *Service) Moderation() *service.ModerationService {
	return s.moderation
}
