package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bugboard/bugboard/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// TagModel handles database operations for tags and bug/tag links.
type TagModel struct {
	logger *zap.Logger
}

// NewTag creates a new tag model.
func NewTag(logger *zap.Logger) *TagModel {
	return &TagModel{
		logger: logger.Named("db_tag"),
	}
}

// Get retrieves a tag by ID.
func (m *TagModel) Get(ctx context.Context, db bun.IDB, id int64) (*types.Tag, error) {
	var tag types.Tag

	err := db.NewSelect().
		Model(&tag).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrTagNotFound
		}

		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return &tag, nil
}

// List retrieves all tags ordered by name.
func (m *TagModel) List(ctx context.Context, db bun.IDB) ([]*types.Tag, error) {
	var tags []*types.Tag

	err := db.NewSelect().
		Model(&tags).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	return tags, nil
}

// Create inserts a new tag and fills in its generated ID.
func (m *TagModel) Create(ctx context.Context, db bun.IDB, tag *types.Tag) error {
	_, err := db.NewInsert().
		Model(tag).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	return nil
}

// AttachToBug links a set of tags to a bug. Every tag must exist.
func (m *TagModel) AttachToBug(ctx context.Context, db bun.IDB, bugID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	links := make([]*types.BugTag, 0, len(tagIDs))

	for _, tagID := range tagIDs {
		if _, err := m.Get(ctx, db, tagID); err != nil {
			return err
		}

		links = append(links, &types.BugTag{BugID: bugID, TagID: tagID})
	}

	_, err := db.NewInsert().
		Model(&links).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to attach tags: %w", err)
	}

	return nil
}

// DeleteByBug removes all tag links of a bug.
func (m *TagModel) DeleteByBug(ctx context.Context, db bun.IDB, bugID int64) error {
	_, err := db.NewDelete().
		Model((*types.BugTag)(nil)).
		Where("bug_id = ?", bugID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete bug tags: %w", err)
	}

	return nil
}
