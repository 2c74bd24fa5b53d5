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

// Notifier delivers ban/unban notifications out of band. Calls must
// not block: implementations dispatch asynchronously, log their own
// failures and never surface them to the moderation operation.
type Notifier interface {
	NotifyBan(user *types.User, reason string)
	NotifyUnban(user *types.User)
}

// ModerationService is the moderator-only surface over the other
// engines. Every operation authorizes the acting moderator, performs
// the underlying mutation and appends one audit record.
type ModerationService struct {
	db         *bun.DB
	users      *models.UserModel
	moderation *models.ModerationModel
	bugSvc     *BugService
	commentSvc *CommentService
	notifier   Notifier
	logger     *zap.Logger
}

// NewModeration creates a new moderation service.
func NewModeration(
	db *bun.DB,
	users *models.UserModel,
	moderation *models.ModerationModel,
	bugSvc *BugService,
	commentSvc *CommentService,
	notifier Notifier,
	logger *zap.Logger,
) *ModerationService {
	return &ModerationService{
		db:         db,
		users:      users,
		moderation: moderation,
		bugSvc:     bugSvc,
		commentSvc: commentSvc,
		notifier:   notifier,
		logger:     logger.Named("moderation_service"),
	}
}

// requireModerator loads the actor and verifies they hold the
// moderator role and are not banned themselves.
func (s *ModerationService) requireModerator(ctx context.Context, db bun.IDB, moderatorID int64) (*types.User, error) {
	actor, err := s.users.Get(ctx, db, moderatorID)
	if err != nil {
		return nil, err
	}

	if actor.Banned {
		return nil, types.ErrActorBanned
	}

	if !actor.IsModerator() {
		return nil, types.ErrNotModerator
	}

	return actor, nil
}

// BanUser bans a user and records the action. The ban flag and the
// audit row commit together; the notification goes out afterwards and
// its failure never rolls anything back. Banning an already banned
// user is a state no-op and is not re-notified.
func (s *ModerationService) BanUser(ctx context.Context, moderatorID, userID int64, reason string) error {
	var (
		target  *types.User
		changed bool
	)

	err := dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := s.requireModerator(ctx, tx, moderatorID); err != nil {
			return err
		}

		var err error

		target, err = s.users.Get(ctx, tx, userID)
		if err != nil {
			return err
		}

		changed, err = s.users.SetBanned(ctx, tx, userID, true)
		if err != nil {
			return err
		}

		return s.moderation.Append(ctx, tx, &types.ModerationAction{
			ModeratorID:  moderatorID,
			ActionType:   enum.ActionTypeBanUser,
			TargetUserID: &userID,
			Details:      reason,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to ban user: %w", err)
	}

	if changed {
		s.notifier.NotifyBan(target, reason)
	}

	s.logger.Info("User banned",
		zap.Int64("moderatorID", moderatorID),
		zap.Int64("userID", userID),
		zap.Bool("changed", changed))

	return nil
}

// UnbanUser lifts a ban and records the action.
func (s *ModerationService) UnbanUser(ctx context.Context, moderatorID, userID int64) error {
	var (
		target  *types.User
		changed bool
	)

	err := dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := s.requireModerator(ctx, tx, moderatorID); err != nil {
			return err
		}

		var err error

		target, err = s.users.Get(ctx, tx, userID)
		if err != nil {
			return err
		}

		changed, err = s.users.SetBanned(ctx, tx, userID, false)
		if err != nil {
			return err
		}

		return s.moderation.Append(ctx, tx, &types.ModerationAction{
			ModeratorID:  moderatorID,
			ActionType:   enum.ActionTypeUnbanUser,
			TargetUserID: &userID,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to unban user: %w", err)
	}

	if changed {
		s.notifier.NotifyUnban(target)
	}

	s.logger.Info("User unbanned",
		zap.Int64("moderatorID", moderatorID),
		zap.Int64("userID", userID),
		zap.Bool("changed", changed))

	return nil
}

// RemoveBug deletes a bug through the cascade coordinator with the
// moderator as actor, recording the action in the same transaction.
func (s *ModerationService) RemoveBug(ctx context.Context, moderatorID, bugID int64) error {
	err := dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := s.requireModerator(ctx, tx, moderatorID); err != nil {
			return err
		}

		if err := s.bugSvc.deleteInTx(ctx, tx, bugID, moderatorID); err != nil {
			return err
		}

		return s.moderation.Append(ctx, tx, &types.ModerationAction{
			ModeratorID: moderatorID,
			ActionType:  enum.ActionTypeRemoveBug,
			TargetBugID: &bugID,
			Details:     fmt.Sprintf("removed bug id=%d", bugID),
		})
	})
	if err != nil {
		return fmt.Errorf("failed to remove bug: %w", err)
	}

	s.logger.Info("Bug removed",
		zap.Int64("moderatorID", moderatorID),
		zap.Int64("bugID", bugID))

	return nil
}

// EditBug edits a bug's title and description as a moderator and
// records the action.
func (s *ModerationService) EditBug(ctx context.Context, moderatorID, bugID int64, title, description string) error {
	err := dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := s.requireModerator(ctx, tx, moderatorID); err != nil {
			return err
		}

		_, err := s.bugSvc.updateInTx(ctx, tx, bugID, moderatorID, UpdateBugParams{
			Title:       &title,
			Description: &description,
		})
		if err != nil {
			return err
		}

		return s.moderation.Append(ctx, tx, &types.ModerationAction{
			ModeratorID: moderatorID,
			ActionType:  enum.ActionTypeEditBug,
			TargetBugID: &bugID,
			Details:     fmt.Sprintf("edited bug id=%d", bugID),
		})
	})
	if err != nil {
		return fmt.Errorf("failed to edit bug: %w", err)
	}

	s.logger.Info("Bug edited",
		zap.Int64("moderatorID", moderatorID),
		zap.Int64("bugID", bugID))

	return nil
}

// RemoveComment deletes a comment with the moderator as actor and
// records the action.
func (s *ModerationService) RemoveComment(ctx context.Context, moderatorID, commentID int64) error {
	err := dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := s.requireModerator(ctx, tx, moderatorID); err != nil {
			return err
		}

		if err := s.commentSvc.deleteInTx(ctx, tx, commentID, moderatorID); err != nil {
			return err
		}

		return s.moderation.Append(ctx, tx, &types.ModerationAction{
			ModeratorID:     moderatorID,
			ActionType:      enum.ActionTypeRemoveComment,
			TargetCommentID: &commentID,
			Details:         fmt.Sprintf("removed comment id=%d", commentID),
		})
	})
	if err != nil {
		return fmt.Errorf("failed to remove comment: %w", err)
	}

	s.logger.Info("Comment removed",
		zap.Int64("moderatorID", moderatorID),
		zap.Int64("commentID", commentID))

	return nil
}

// EditComment edits a comment's text as a moderator and records the
// action.
func (s *ModerationService) EditComment(ctx context.Context, moderatorID, commentID int64, text string) error {
	err := dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := s.requireModerator(ctx, tx, moderatorID); err != nil {
			return err
		}

		_, err := s.commentSvc.updateInTx(ctx, tx, commentID, moderatorID, UpdateCommentParams{Text: &text})
		if err != nil {
			return err
		}

		return s.moderation.Append(ctx, tx, &types.ModerationAction{
			ModeratorID:     moderatorID,
			ActionType:      enum.ActionTypeEditComment,
			TargetCommentID: &commentID,
			Details:         fmt.Sprintf("edited comment id=%d", commentID),
		})
	})
	if err != nil {
		return fmt.Errorf("failed to edit comment: %w", err)
	}

	s.logger.Info("Comment edited",
		zap.Int64("moderatorID", moderatorID),
		zap.Int64("commentID", commentID))

	return nil
}

// Actions returns the audit trail, newest first.
func (s *ModerationService) Actions(ctx context.Context) ([]*types.ModerationAction, error) {
	return s.moderation.List(ctx, s.db)
}
