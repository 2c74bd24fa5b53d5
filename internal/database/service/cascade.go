package service

import (
	"context"

	"github.com/bugboard/bugboard/internal/database/models"
	"github.com/bugboard/bugboard/internal/database/types"
	"github.com/bugboard/bugboard/internal/database/types/enum"
	"github.com/uptrace/bun"
)

// reverseVoteEffects applies the exact inverse of the creation deltas
// for a batch of votes before those votes are deleted. authorOf maps a
// target ID to its author, read before any rows go away.
func reverseVoteEffects(
	ctx context.Context,
	db bun.IDB,
	users *models.UserModel,
	votes []*types.Vote,
	kind enum.VoteTarget,
	authorOf map[int64]int64,
) error {
	for _, vote := range votes {
		authorID, ok := authorOf[vote.TargetID]
		if !ok {
			continue
		}

		if err := users.AdjustScore(ctx, db, authorID, -authorWeight(kind, vote.Type)); err != nil {
			return err
		}

		if err := users.AdjustScore(ctx, db, vote.VoterID, -voterWeight(kind, vote.Type)); err != nil {
			return err
		}
	}

	return nil
}
