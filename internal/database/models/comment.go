package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bugboard/bugboard/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// CommentModel handles database operations for comments.
type CommentModel struct {
	logger *zap.Logger
}

// NewComment creates a new comment model.
func NewComment(logger *zap.Logger) *CommentModel {
	return &CommentModel{
		logger: logger.Named("db_comment"),
	}
}

// Get retrieves a comment by ID.
func (m *CommentModel) Get(ctx context.Context, db bun.IDB, id int64) (*types.Comment, error) {
	var comment types.Comment

	err := db.NewSelect().
		Model(&comment).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrCommentNotFound
		}

		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return &comment, nil
}

// ListByBug retrieves the comments under a bug, newest first.
func (m *CommentModel) ListByBug(ctx context.Context, db bun.IDB, bugID int64) ([]*types.Comment, error) {
	var comments []*types.Comment

	err := db.NewSelect().
		Model(&comments).
		Where("comment.bug_id = ?", bugID).
		Relation("Author").
		Order("comment.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

// CountByBug returns the number of comments under a bug.
func (m *CommentModel) CountByBug(ctx context.Context, db bun.IDB, bugID int64) (int, error) {
	count, err := db.NewSelect().
		Model((*types.Comment)(nil)).
		Where("bug_id = ?", bugID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}

	return count, nil
}

// Create inserts a new comment and fills in its generated ID.
func (m *CommentModel) Create(ctx context.Context, db bun.IDB, comment *types.Comment) error {
	comment.CreatedAt = time.Now()

	_, err := db.NewInsert().
		Model(comment).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// Update persists changes to an existing comment row.
func (m *CommentModel) Update(ctx context.Context, db bun.IDB, comment *types.Comment) error {
	res, err := db.NewUpdate().
		Model(comment).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	if affected == 0 {
		return types.ErrCommentNotFound
	}

	return nil
}

// ClearAccepted drops the accepted flag from whichever comment of the
// bug currently holds it, so a new acceptance can supersede it.
func (m *CommentModel) ClearAccepted(ctx context.Context, db bun.IDB, bugID int64) error {
	_, err := db.NewUpdate().
		Model((*types.Comment)(nil)).
		Set("accepted = ?", false).
		Where("bug_id = ?", bugID).
		Where("accepted = ?", true).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear accepted comment: %w", err)
	}

	return nil
}

// SetAccepted marks one comment as the accepted answer.
func (m *CommentModel) SetAccepted(ctx context.Context, db bun.IDB, commentID int64) error {
	_, err := db.NewUpdate().
		Model((*types.Comment)(nil)).
		Set("accepted = ?", true).
		Where("id = ?", commentID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set accepted comment: %w", err)
	}

	return nil
}

// Delete removes a comment row.
func (m *CommentModel) Delete(ctx context.Context, db bun.IDB, id int64) error {
	_, err := db.NewDelete().
		Model((*types.Comment)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}

// DeleteByBug removes all comments under a bug.
func (m *CommentModel) DeleteByBug(ctx context.Context, db bun.IDB, bugID int64) error {
	_, err := db.NewDelete().
		Model((*types.Comment)(nil)).
		Where("bug_id = ?", bugID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete comments for bug: %w", err)
	}

	return nil
}
