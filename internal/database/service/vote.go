package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bugboard/bugboard/internal/database/dbretry"
	"github.com/bugboard/bugboard/internal/database/models"
	"github.com/bugboard/bugboard/internal/database/types"
	"github.com/bugboard/bugboard/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Score weights applied to the target's author when a vote is created.
// Switching a vote applies the difference between the new and old
// weight, so replaying all live votes always reproduces the cached
// score.
const (
	bugUpvoteWeight       = 2.5
	bugDownvoteWeight     = -1.5
	commentUpvoteWeight   = 5.0
	commentDownvoteWeight = -2.5

	// Penalty carried by the voter for downvoting a comment, refunded
	// when the vote moves away from downvote. Bug votes never touch
	// the voter's own score.
	voterDownvotePenalty = -1.5
)

// authorWeight returns the author-side score contribution of one vote.
func authorWeight(kind enum.VoteTarget, voteType enum.VoteType) float64 {
	switch kind {
	case enum.VoteTargetBug:
		switch voteType {
		case enum.VoteTypeUp:
			return bugUpvoteWeight
		case enum.VoteTypeDown:
			return bugDownvoteWeight
		}
	case enum.VoteTargetComment:
		switch voteType {
		case enum.VoteTypeUp:
			return commentUpvoteWeight
		case enum.VoteTypeDown:
			return commentDownvoteWeight
		}
	}

	return 0
}

// voterWeight returns the voter-side score contribution of one vote.
func voterWeight(kind enum.VoteTarget, voteType enum.VoteType) float64 {
	if kind == enum.VoteTargetComment && voteType == enum.VoteTypeDown {
		return voterDownvotePenalty
	}

	return 0
}

// VoteService owns vote upsert semantics and score delta arithmetic.
type VoteService struct {
	db       *bun.DB
	votes    *models.VoteModel
	users    *models.UserModel
	bugs     *models.BugModel
	comments *models.CommentModel
	logger   *zap.Logger
}

// NewVote creates a new vote service.
func NewVote(
	db *bun.DB,
	votes *models.VoteModel,
	users *models.UserModel,
	bugs *models.BugModel,
	comments *models.CommentModel,
	logger *zap.Logger,
) *VoteService {
	return &VoteService{
		db:       db,
		votes:    votes,
		users:    users,
		bugs:     bugs,
		comments: comments,
		logger:   logger.Named("vote_service"),
	}
}

// CastVote records or switches a user's vote on a bug or comment and
// applies the matching score deltas, all in one transaction.
//
// Resubmitting the same vote type is a no-op, so retries never double
// apply a delta. Switching applies the differential between the new
// and old weights rather than two independent deltas.
func (s *VoteService) CastVote(
	ctx context.Context, voterID int64, kind enum.VoteTarget, targetID int64, voteType enum.VoteType,
) (*types.Vote, error) {
	var result *types.Vote

	err := dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := s.users.Get(ctx, tx, voterID); err != nil {
			return err
		}

		// Resolve the target's author, and for comments the owning bug
		// so the first-comment transition can fire below.
		var (
			authorID int64
			bugID    int64
		)

		switch kind {
		case enum.VoteTargetBug:
			bug, err := s.bugs.Get(ctx, tx, targetID)
			if err != nil {
				return err
			}

			authorID = bug.AuthorID
		case enum.VoteTargetComment:
			comment, err := s.comments.Get(ctx, tx, targetID)
			if err != nil {
				return err
			}

			authorID = comment.AuthorID
			bugID = comment.BugID
		}

		if authorID == voterID {
			return types.ErrSelfVote
		}

		existing, err := s.votes.GetByVoterAndTarget(ctx, tx, voterID, kind, targetID)

		switch {
		case err == nil:
			// Identical resubmission changes nothing.
			if existing.Type == voteType {
				result = existing
				return nil
			}

			if err := s.votes.UpdateType(ctx, tx, existing.ID, voteType); err != nil {
				return err
			}

			authorDelta := authorWeight(kind, voteType) - authorWeight(kind, existing.Type)
			voterDelta := voterWeight(kind, voteType) - voterWeight(kind, existing.Type)

			if err := s.users.AdjustScore(ctx, tx, authorID, authorDelta); err != nil {
				return err
			}

			if err := s.users.AdjustScore(ctx, tx, voterID, voterDelta); err != nil {
				return err
			}

			existing.Type = voteType
			result = existing
		case errors.Is(err, types.ErrVoteNotFound):
			vote := &types.Vote{
				VoterID:    voterID,
				TargetKind: kind,
				TargetID:   targetID,
				Type:       voteType,
			}
			if err := s.votes.Create(ctx, tx, vote); err != nil {
				return err
			}

			if err := s.users.AdjustScore(ctx, tx, authorID, authorWeight(kind, voteType)); err != nil {
				return err
			}

			if err := s.users.AdjustScore(ctx, tx, voterID, voterWeight(kind, voteType)); err != nil {
				return err
			}

			result = vote
		default:
			return err
		}

		// Vote recording and comment posting are the two paths that can
		// observe a bug's first comment; both go through the same
		// idempotent transition.
		if kind == enum.VoteTargetComment {
			if err := advanceOnFirstComment(ctx, tx, s.comments, s.bugs, bugID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to cast vote: %w", err)
	}

	s.logger.Debug("Vote cast",
		zap.Int64("voterID", voterID),
		zap.String("targetKind", kind.String()),
		zap.Int64("targetID", targetID),
		zap.String("type", voteType.String()))

	return result, nil
}

// LikeComment casts an upvote on a comment.
func (s *VoteService) LikeComment(ctx context.Context, voterID, commentID int64) (*types.Vote, error) {
	return s.CastVote(ctx, voterID, enum.VoteTargetComment, commentID, enum.VoteTypeUp)
}

// DislikeComment casts a downvote on a comment.
func (s *VoteService) DislikeComment(ctx context.Context, voterID, commentID int64) (*types.Vote, error) {
	return s.CastVote(ctx, voterID, enum.VoteTargetComment, commentID, enum.VoteTypeDown)
}

// VotesForBug returns all votes directly on a bug.
func (s *VoteService) VotesForBug(ctx context.Context, bugID int64) ([]*types.Vote, error) {
	if _, err := s.bugs.Get(ctx, s.db, bugID); err != nil {
		return nil, err
	}

	return s.votes.ListByTarget(ctx, s.db, enum.VoteTargetBug, bugID)
}

// VotesForComment returns all votes on a comment.
func (s *VoteService) VotesForComment(ctx context.Context, commentID int64) ([]*types.Vote, error) {
	if _, err := s.comments.Get(ctx, s.db, commentID); err != nil {
		return nil, err
	}

	return s.votes.ListByTarget(ctx, s.db, enum.VoteTargetComment, commentID)
}

// VoteCountForBug returns a bug's derived vote count.
func (s *VoteService) VoteCountForBug(ctx context.Context, bugID int64) (int, error) {
	votes, err := s.VotesForBug(ctx, bugID)
	if err != nil {
		return 0, err
	}

	return tallyVotes(votes), nil
}

// VoteCountForComment returns a comment's derived vote count.
func (s *VoteService) VoteCountForComment(ctx context.Context, commentID int64) (int, error) {
	votes, err := s.VotesForComment(ctx, commentID)
	if err != nil {
		return 0, err
	}

	return tallyVotes(votes), nil
}

// VoteCount returns the total number of votes on the board.
func (s *VoteService) VoteCount(ctx context.Context) (int, error) {
	return s.votes.Count(ctx, s.db)
}

func tallyVotes(votes []*types.Vote) int {
	total := 0
	for _, vote := range votes {
		total += vote.CountValue()
	}

	return total
}
