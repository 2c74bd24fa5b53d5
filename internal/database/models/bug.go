package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bugboard/bugboard/internal/database/types"
	"github.com/bugboard/bugboard/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// BugModel handles database operations for bugs.
type BugModel struct {
	logger *zap.Logger
}

// NewBug creates a new bug model.
func NewBug(logger *zap.Logger) *BugModel {
	return &BugModel{
		logger: logger.Named("db_bug"),
	}
}

// Get retrieves a bug by ID.
func (m *BugModel) Get(ctx context.Context, db bun.IDB, id int64) (*types.Bug, error) {
	var bug types.Bug

	err := db.NewSelect().
		Model(&bug).
		Relation("Author").
		Relation("Tags").
		Where("bug.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrBugNotFound
		}

		return nil, fmt.Errorf("failed to get bug: %w", err)
	}

	return &bug, nil
}

// List retrieves all bugs, newest first.
func (m *BugModel) List(ctx context.Context, db bun.IDB) ([]*types.Bug, error) {
	var bugs []*types.Bug

	err := db.NewSelect().
		Model(&bugs).
		Relation("Author").
		Order("bug.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bugs: %w", err)
	}

	return bugs, nil
}

// ListByAuthor retrieves all bugs reported by one user, newest first.
func (m *BugModel) ListByAuthor(ctx context.Context, db bun.IDB, authorID int64) ([]*types.Bug, error) {
	var bugs []*types.Bug

	err := db.NewSelect().
		Model(&bugs).
		Where("bug.author_id = ?", authorID).
		Order("bug.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bugs by author: %w", err)
	}

	return bugs, nil
}

// Count returns the total number of bugs.
func (m *BugModel) Count(ctx context.Context, db bun.IDB) (int, error) {
	count, err := db.NewSelect().
		Model((*types.Bug)(nil)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count bugs: %w", err)
	}

	return count, nil
}

// Create inserts a new bug and fills in its generated ID.
func (m *BugModel) Create(ctx context.Context, db bun.IDB, bug *types.Bug) error {
	bug.CreatedAt = time.Now()

	_, err := db.NewInsert().
		Model(bug).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create bug: %w", err)
	}

	return nil
}

// Update persists changes to an existing bug row.
func (m *BugModel) Update(ctx context.Context, db bun.IDB, bug *types.Bug) error {
	res, err := db.NewUpdate().
		Model(bug).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update bug: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update bug: %w", err)
	}

	if affected == 0 {
		return types.ErrBugNotFound
	}

	return nil
}

// AdvanceStatus moves a bug from one status to another in a single
// guarded statement. Returns true if the transition applied, false if
// the bug was no longer in the expected state.
func (m *BugModel) AdvanceStatus(
	ctx context.Context, db bun.IDB, bugID int64, from, to enum.BugStatus,
) (bool, error) {
	res, err := db.NewUpdate().
		Model((*types.Bug)(nil)).
		Set("status = ?", to).
		Where("id = ?", bugID).
		Where("status = ?", from).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to advance bug status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to advance bug status: %w", err)
	}

	return affected > 0, nil
}

// SetAcceptedComment records the accepted comment and marks the bug
// solved in one statement.
func (m *BugModel) SetAcceptedComment(ctx context.Context, db bun.IDB, bugID, commentID int64) error {
	_, err := db.NewUpdate().
		Model((*types.Bug)(nil)).
		Set("accepted_comment_id = ?", commentID).
		Set("status = ?", enum.BugStatusSolved).
		Where("id = ?", bugID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set accepted comment: %w", err)
	}

	return nil
}

// ClearAcceptedComment drops a dangling accepted-comment reference
// when that comment is deleted. The solved status is left untouched.
func (m *BugModel) ClearAcceptedComment(ctx context.Context, db bun.IDB, commentID int64) error {
	_, err := db.NewUpdate().
		Model((*types.Bug)(nil)).
		Set("accepted_comment_id = NULL").
		Where("accepted_comment_id = ?", commentID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear accepted comment: %w", err)
	}

	return nil
}

// Delete removes a bug row.
func (m *BugModel) Delete(ctx context.Context, db bun.IDB, id int64) error {
	_, err := db.NewDelete().
		Model((*types.Bug)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete bug: %w", err)
	}

	return nil
}
