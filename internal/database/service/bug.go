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

// BugService owns the bug lifecycle and the cascading deletion that
// reverses score effects before rows are removed.
type BugService struct {
	db       *bun.DB
	bugs     *models.BugModel
	users    *models.UserModel
	comments *models.CommentModel
	votes    *models.VoteModel
	tags     *models.TagModel
	logger   *zap.Logger
}

// NewBug creates a new bug service.
func NewBug(
	db *bun.DB,
	bugs *models.BugModel,
	users *models.UserModel,
	comments *models.CommentModel,
	votes *models.VoteModel,
	tags *models.TagModel,
	logger *zap.Logger,
) *BugService {
	return &BugService{
		db:       db,
		bugs:     bugs,
		users:    users,
		comments: comments,
		votes:    votes,
		tags:     tags,
		logger:   logger.Named("bug_service"),
	}
}

// UpdateBugParams carries the optional fields of a bug update. Nil
// fields are left unchanged.
type UpdateBugParams struct {
	Title       *string
	Description *string
	Image       *string
	Status      *enum.BugStatus
}

// Create reports a new bug in the received state, attaching any tags.
func (s *BugService) Create(
	ctx context.Context, authorID int64, title, description, image string, tagIDs []int64,
) (*types.Bug, error) {
	var bug *types.Bug

	err := dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := s.users.Get(ctx, tx, authorID); err != nil {
			return err
		}

		bug = &types.Bug{
			AuthorID:    authorID,
			Title:       title,
			Description: description,
			Image:       image,
			Status:      enum.BugStatusReceived,
		}
		if err := s.bugs.Create(ctx, tx, bug); err != nil {
			return err
		}

		return s.tags.AttachToBug(ctx, tx, bug.ID, tagIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bug: %w", err)
	}

	s.logger.Debug("Bug reported",
		zap.Int64("bugID", bug.ID),
		zap.Int64("authorID", authorID))

	return bug, nil
}

// Get retrieves one bug.
func (s *BugService) Get(ctx context.Context, id int64) (*types.Bug, error) {
	return s.bugs.Get(ctx, s.db, id)
}

// List retrieves all bugs, newest first.
func (s *BugService) List(ctx context.Context) ([]*types.Bug, error) {
	return s.bugs.List(ctx, s.db)
}

// ListByAuthor retrieves the bugs one user reported.
func (s *BugService) ListByAuthor(ctx context.Context, authorID int64) ([]*types.Bug, error) {
	if _, err := s.users.Get(ctx, s.db, authorID); err != nil {
		return nil, err
	}

	return s.bugs.ListByAuthor(ctx, s.db, authorID)
}

// Count returns the total number of bugs.
func (s *BugService) Count(ctx context.Context) (int, error) {
	return s.bugs.Count(ctx, s.db)
}

// Update edits a bug's fields. Only the author or a moderator may
// edit; moving a bug with no comments straight to solved is rejected.
func (s *BugService) Update(
	ctx context.Context, bugID, actorID int64, params UpdateBugParams,
) (*types.Bug, error) {
	var bug *types.Bug

	err := dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		var err error

		bug, err = s.updateInTx(ctx, tx, bugID, actorID, params)

		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update bug: %w", err)
	}

	return bug, nil
}

// updateInTx applies an update inside a caller-owned transaction so
// moderation can append its audit record in the same unit of work.
func (s *BugService) updateInTx(
	ctx context.Context, tx bun.IDB, bugID, actorID int64, params UpdateBugParams,
) (*types.Bug, error) {
	actor, err := s.users.Get(ctx, tx, actorID)
	if err != nil {
		return nil, err
	}

	if actor.Banned {
		return nil, types.ErrActorBanned
	}

	bug, err := s.bugs.Get(ctx, tx, bugID)
	if err != nil {
		return nil, err
	}

	if bug.AuthorID != actorID && !actor.IsModerator() {
		return nil, types.ErrNotAuthorized
	}

	if params.Title != nil {
		bug.Title = *params.Title
	}

	if params.Description != nil {
		bug.Description = *params.Description
	}

	if params.Image != nil {
		bug.Image = *params.Image
	}

	if params.Status != nil && *params.Status != bug.Status {
		if *params.Status == enum.BugStatusSolved {
			count, err := s.comments.CountByBug(ctx, tx, bugID)
			if err != nil {
				return nil, err
			}

			if count == 0 {
				return nil, types.ErrCannotSolveWithoutComments
			}
		}

		bug.Status = *params.Status
	}

	if err := s.bugs.Update(ctx, tx, bug); err != nil {
		return nil, err
	}

	return bug, nil
}

// AcceptComment lets the bug's author accept one of its comments as
// the answer, superseding any previous acceptance and marking the bug
// solved.
func (s *BugService) AcceptComment(ctx context.Context, bugID, commentID, actorID int64) (*types.Bug, error) {
	var bug *types.Bug

	err := dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		var err error

		bug, err = s.bugs.Get(ctx, tx, bugID)
		if err != nil {
			return err
		}

		if bug.AuthorID != actorID {
			return types.ErrNotBugAuthor
		}

		comment, err := s.comments.Get(ctx, tx, commentID)
		if err != nil {
			return err
		}

		if comment.BugID != bugID {
			return types.ErrCommentNotOnBug
		}

		if err := s.comments.ClearAccepted(ctx, tx, bugID); err != nil {
			return err
		}

		if err := s.comments.SetAccepted(ctx, tx, commentID); err != nil {
			return err
		}

		if err := s.bugs.SetAcceptedComment(ctx, tx, bugID, commentID); err != nil {
			return err
		}

		bug.AcceptedCommentID = &commentID
		bug.Status = enum.BugStatusSolved

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to accept comment: %w", err)
	}

	s.logger.Debug("Comment accepted",
		zap.Int64("bugID", bugID),
		zap.Int64("commentID", commentID))

	return bug, nil
}

// Delete removes a bug and everything hanging off it. Score effects
// of every vote on the bug and on its comments are reversed before
// the rows are deleted, all inside one transaction, so an abort at
// any step leaves no partial effect.
func (s *BugService) Delete(ctx context.Context, bugID, actorID int64) error {
	err := dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		return s.deleteInTx(ctx, tx, bugID, actorID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete bug: %w", err)
	}

	s.logger.Info("Bug deleted",
		zap.Int64("bugID", bugID),
		zap.Int64("actorID", actorID))

	return nil
}

// deleteInTx runs the ordered cascade inside a caller-owned
// transaction so moderation can append its audit record in the same
// unit of work.
func (s *BugService) deleteInTx(ctx context.Context, tx bun.IDB, bugID, actorID int64) error {
	actor, err := s.users.Get(ctx, tx, actorID)
	if err != nil {
		return err
	}

	if actor.Banned {
		return types.ErrActorBanned
	}

	bug, err := s.bugs.Get(ctx, tx, bugID)
	if err != nil {
		return err
	}

	if bug.AuthorID != actorID && !actor.IsModerator() {
		return types.ErrNotAuthorized
	}

	// Read comments and their authors while the rows still exist.
	comments, err := s.comments.ListByBug(ctx, tx, bugID)
	if err != nil {
		return err
	}

	commentIDs := make([]int64, 0, len(comments))
	commentAuthor := make(map[int64]int64, len(comments))

	for _, comment := range comments {
		commentIDs = append(commentIDs, comment.ID)
		commentAuthor[comment.ID] = comment.AuthorID
	}

	// 1. Reverse and delete votes on the bug's comments.
	commentVotes, err := s.votes.ListByTargets(ctx, tx, enum.VoteTargetComment, commentIDs)
	if err != nil {
		return err
	}

	if err := reverseVoteEffects(ctx, tx, s.users, commentVotes, enum.VoteTargetComment, commentAuthor); err != nil {
		return err
	}

	if err := s.votes.DeleteByTargets(ctx, tx, enum.VoteTargetComment, commentIDs); err != nil {
		return err
	}

	// 2. Reverse and delete votes directly on the bug.
	bugVotes, err := s.votes.ListByTarget(ctx, tx, enum.VoteTargetBug, bugID)
	if err != nil {
		return err
	}

	err = reverseVoteEffects(ctx, tx, s.users, bugVotes, enum.VoteTargetBug, map[int64]int64{bugID: bug.AuthorID})
	if err != nil {
		return err
	}

	if err := s.votes.DeleteByTarget(ctx, tx, enum.VoteTargetBug, bugID); err != nil {
		return err
	}

	// 3. Tag links, comments, then the bug itself.
	if err := s.tags.DeleteByBug(ctx, tx, bugID); err != nil {
		return err
	}

	if err := s.comments.DeleteByBug(ctx, tx, bugID); err != nil {
		return err
	}

	return s.bugs.Delete(ctx, tx, bugID)
}
