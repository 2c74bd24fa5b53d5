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

// VoteModel handles database operations for votes.
type VoteModel struct {
	logger *zap.Logger
}

// NewVote creates a new vote model.
func NewVote(logger *zap.Logger) *VoteModel {
	return &VoteModel{
		logger: logger.Named("db_vote"),
	}
}

// GetByVoterAndTarget retrieves the single vote a voter holds on a
// target, if any.
func (m *VoteModel) GetByVoterAndTarget(
	ctx context.Context, db bun.IDB, voterID int64, kind enum.VoteTarget, targetID int64,
) (*types.Vote, error) {
	var vote types.Vote

	err := db.NewSelect().
		Model(&vote).
		Where("voter_id = ?", voterID).
		Where("target_kind = ?", kind).
		Where("target_id = ?", targetID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrVoteNotFound
		}

		return nil, fmt.Errorf("failed to get vote: %w", err)
	}

	return &vote, nil
}

// ListByTarget retrieves all votes on one target.
func (m *VoteModel) ListByTarget(
	ctx context.Context, db bun.IDB, kind enum.VoteTarget, targetID int64,
) ([]*types.Vote, error) {
	var votes []*types.Vote

	err := db.NewSelect().
		Model(&votes).
		Where("target_kind = ?", kind).
		Where("target_id = ?", targetID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}

	return votes, nil
}

// ListByTargets retrieves all votes across a set of targets of one kind.
func (m *VoteModel) ListByTargets(
	ctx context.Context, db bun.IDB, kind enum.VoteTarget, targetIDs []int64,
) ([]*types.Vote, error) {
	if len(targetIDs) == 0 {
		return nil, nil
	}

	var votes []*types.Vote

	err := db.NewSelect().
		Model(&votes).
		Where("target_kind = ?", kind).
		Where("target_id IN (?)", bun.In(targetIDs)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes for targets: %w", err)
	}

	return votes, nil
}

// Create inserts a new vote and fills in its generated ID.
func (m *VoteModel) Create(ctx context.Context, db bun.IDB, vote *types.Vote) error {
	vote.CreatedAt = time.Now()

	_, err := db.NewInsert().
		Model(vote).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create vote: %w", err)
	}

	return nil
}

// UpdateType switches an existing vote's type in place.
func (m *VoteModel) UpdateType(ctx context.Context, db bun.IDB, voteID int64, voteType enum.VoteType) error {
	_, err := db.NewUpdate().
		Model((*types.Vote)(nil)).
		Set("type = ?", voteType).
		Where("id = ?", voteID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update vote type: %w", err)
	}

	return nil
}

// DeleteByTarget removes all votes on one target.
func (m *VoteModel) DeleteByTarget(ctx context.Context, db bun.IDB, kind enum.VoteTarget, targetID int64) error {
	_, err := db.NewDelete().
		Model((*types.Vote)(nil)).
		Where("target_kind = ?", kind).
		Where("target_id = ?", targetID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete votes: %w", err)
	}

	return nil
}

// DeleteByTargets removes all votes across a set of targets of one kind.
func (m *VoteModel) DeleteByTargets(
	ctx context.Context, db bun.IDB, kind enum.VoteTarget, targetIDs []int64,
) error {
	if len(targetIDs) == 0 {
		return nil
	}

	_, err := db.NewDelete().
		Model((*types.Vote)(nil)).
		Where("target_kind = ?", kind).
		Where("target_id IN (?)", bun.In(targetIDs)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete votes for targets: %w", err)
	}

	return nil
}

// Count returns the total number of votes.
func (m *VoteModel) Count(ctx context.Context, db bun.IDB) (int, error) {
	count, err := db.NewSelect().
		Model((*types.Vote)(nil)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}

	return count, nil
}
