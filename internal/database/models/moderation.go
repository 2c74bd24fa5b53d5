package models

import (
	"context"
	"fmt"
	"time"

	"github.com/bugboard/bugboard/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ModerationModel handles the append-only moderation audit trail.
// The core never updates or deletes rows here.
type ModerationModel struct {
	logger *zap.Logger
}

// NewModeration creates a new moderation model.
func NewModeration(logger *zap.Logger) *ModerationModel {
	return &ModerationModel{
		logger: logger.Named("db_moderation"),
	}
}

// Append records one moderation action. It runs inside the same
// transaction as the mutation it describes, so a failed audit write
// aborts the whole operation.
func (m *ModerationModel) Append(ctx context.Context, db bun.IDB, action *types.ModerationAction) error {
	action.CreatedAt = time.Now()

	_, err := db.NewInsert().
		Model(action).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to append moderation action: %w", err)
	}

	m.logger.Debug("Recorded moderation action",
		zap.Int64("moderatorID", action.ModeratorID),
		zap.String("actionType", action.ActionType.String()))

	return nil
}

// List retrieves the audit trail, newest first.
func (m *ModerationModel) List(ctx context.Context, db bun.IDB) ([]*types.ModerationAction, error) {
	var actions []*types.ModerationAction

	err := db.NewSelect().
		Model(&actions).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list moderation actions: %w", err)
	}

	return actions, nil
}
