package service

import (
	"context"
	"fmt"

	"github.com/bugboard/bugboard/internal/database/dbretry"
	"github.com/bugboard/bugboard/internal/database/models"
	"github.com/bugboard/bugboard/internal/database/types"
	"github.com/bugboard/bugboard/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// CommentService handles comment creation, edits and the single-comment
// deletion path of the cascade coordinator.
type CommentService struct {
	db       *bun.DB
	comments *models.CommentModel
	bugs     *models.BugModel
	users    *models.UserModel
	votes    *models.VoteModel
	logger   *zap.Logger
}

// NewComment creates a new comment service.
func NewComment(
	db *bun.DB,
	comments *models.CommentModel,
	bugs *models.BugModel,
	users *models.UserModel,
	votes *models.VoteModel,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		db:       db,
		comments: comments,
		bugs:     bugs,
		users:    users,
		votes:    votes,
		logger:   logger.Named("comment_service"),
	}
}

// UpdateCommentParams carries the optional fields of a comment edit.
type UpdateCommentParams struct {
	Text  *string
	Image *string
}

// Add posts a comment on a bug. Solved bugs reject new comments; the
// first comment on a received bug moves it to in_progress.
func (s *CommentService) Add(
	ctx context.Context, bugID, authorID int64, text, image string,
) (*types.Comment, error) {
	var comment *types.Comment

	err := dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		bug, err := s.bugs.Get(ctx, tx, bugID)
		if err != nil {
			return err
		}

		if bug.Status == enum.BugStatusSolved {
			return types.ErrBugAlreadySolved
		}

		if _, err := s.users.Get(ctx, tx, authorID); err != nil {
			return err
		}

		comment = &types.Comment{
			BugID:    bugID,
			AuthorID: authorID,
			Text:     text,
			Image:    image,
		}
		if err := s.comments.Create(ctx, tx, comment); err != nil {
			return err
		}

		return advanceOnFirstComment(ctx, tx, s.comments, s.bugs, bugID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	s.logger.Debug("Comment added",
		zap.Int64("bugID", bugID),
		zap.Int64("authorID", authorID),
		zap.Int64("commentID", comment.ID))

	return comment, nil
}

// Get retrieves one comment.
func (s *CommentService) Get(ctx context.Context, id int64) (*types.Comment, error) {
	return s.comments.Get(ctx, s.db, id)
}

// ListByBug returns a bug's comments with their derived vote counts.
func (s *CommentService) ListByBug(ctx context.Context, bugID int64) ([]*types.Comment, error) {
	if _, err := s.bugs.Get(ctx, s.db, bugID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByBug(ctx, s.db, bugID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(comments))
	for _, comment := range comments {
		ids = append(ids, comment.ID)
	}

	votes, err := s.votes.ListByTargets(ctx, s.db, enum.VoteTargetComment, ids)
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int, len(comments))
	for _, vote := range votes {
		counts[vote.TargetID] += vote.CountValue()
	}

	for _, comment := range comments {
		comment.VoteCount = counts[comment.ID]
	}

	return comments, nil
}

// Update edits a comment's text or image. Only the author or a
// moderator may edit.
func (s *CommentService) Update(
	ctx context.Context, commentID, actorID int64, params UpdateCommentParams,
) (*types.Comment, error) {
	var comment *types.Comment

	err := dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		var err error

		comment, err = s.updateInTx(ctx, tx, commentID, actorID, params)

		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return comment, nil
}

// updateInTx applies an update inside a caller-owned transaction so
// moderation can append its audit record in the same unit of work.
func (s *CommentService) updateInTx(
	ctx context.Context, tx bun.IDB, commentID, actorID int64, params UpdateCommentParams,
) (*types.Comment, error) {
	actor, err := s.users.Get(ctx, tx, actorID)
	if err != nil {
		return nil, err
	}

	if actor.Banned {
		return nil, types.ErrActorBanned
	}

	comment, err := s.comments.Get(ctx, tx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.AuthorID != actorID && !actor.IsModerator() {
		return nil, types.ErrNotAuthorized
	}

	if params.Text != nil {
		comment.Text = *params.Text
	}

	if params.Image != nil {
		comment.Image = *params.Image
	}

	if err := s.comments.Update(ctx, tx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// Delete removes a comment, reversing the score effects of its votes
// first. Deleting the accepted comment clears the bug's reference to
// it but never regresses the bug's status.
func (s *CommentService) Delete(ctx context.Context, commentID, actorID int64) error {
	err := dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		return s.deleteInTx(ctx, tx, commentID, actorID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.logger.Info("Comment deleted",
		zap.Int64("commentID", commentID),
		zap.Int64("actorID", actorID))

	return nil
}

// deleteInTx runs the comment cascade inside a caller-owned
// transaction so moderation can append its audit record in the same
// unit of work.
func (s *CommentService) deleteInTx(ctx context.Context, tx bun.IDB, commentID, actorID int64) error {
	actor, err := s.users.Get(ctx, tx, actorID)
	if err != nil {
		return err
	}

	if actor.Banned {
		return types.ErrActorBanned
	}

	comment, err := s.comments.Get(ctx, tx, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != actorID && !actor.IsModerator() {
		return types.ErrNotAuthorized
	}

	votes, err := s.votes.ListByTarget(ctx, tx, enum.VoteTargetComment, commentID)
	if err != nil {
		return err
	}

	err = reverseVoteEffects(
		ctx, tx, s.users, votes, enum.VoteTargetComment,
		map[int64]int64{commentID: comment.AuthorID},
	)
	if err != nil {
		return err
	}

	if err := s.votes.DeleteByTarget(ctx, tx, enum.VoteTargetComment, commentID); err != nil {
		return err
	}

	if err := s.bugs.ClearAcceptedComment(ctx, tx, commentID); err != nil {
		return err
	}

	return s.comments.Delete(ctx, tx, commentID)
}
